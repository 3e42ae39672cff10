package content

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRe = regexp.MustCompile(`[\s_-]+`)
)

// SlugChecker reports whether a slug is already taken, excluding the
// row identified by excludeID (0 when creating).
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
}

// Slugify derives a URL-safe slug from a title: lowercase, word
// characters and hyphens only, runs of whitespace/underscores/hyphens
// collapsed to a single hyphen, no leading or trailing hyphen.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugCollapseRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// UniqueSlug derives a slug from title and disambiguates collisions by
// appending -1, -2, ... until a free slug is found. During edits the
// entity's own row is excluded from the collision check via excludeID.
func UniqueSlug(ctx context.Context, checker SlugChecker, title string, excludeID int64) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "untitled"
	}

	slug := base
	for suffix := 1; ; suffix++ {
		taken, err := checker.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", fmt.Errorf("slug collision check: %w", err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, suffix)
	}
}
