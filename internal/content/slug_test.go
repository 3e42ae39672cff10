package content

import (
	"context"
	"regexp"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "simple title",
			title:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "punctuation stripped",
			title:    "Go 1.24: What's New?",
			expected: "go-124-whats-new",
		},
		{
			name:     "runs collapse to single hyphen",
			title:    "a  -  b___c",
			expected: "a-b-c",
		},
		{
			name:     "leading and trailing separators trimmed",
			title:    "  --spaced out-- ",
			expected: "spaced-out",
		},
		{
			name:     "uppercase lowered",
			title:    "UPPER Case",
			expected: "upper-case",
		},
		{
			name:     "already a slug",
			title:    "already-a-slug",
			expected: "already-a-slug",
		},
		{
			name:     "only punctuation",
			title:    "!!!",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.title)
			if got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.expected)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{"Hello World", "Go 1.24: What's New?", "a  -  b___c", "MiXeD CaSe"}
	for _, title := range titles {
		once := Slugify(title)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}

func TestSlugifyShape(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	titles := []string{"Hello, World!", "  spaces  ", "under_score words", "Ünïcode Tïtle", "trailing-", "Go 1.24"}
	for _, title := range titles {
		slug := Slugify(title)
		if slug == "" {
			continue
		}
		if !shape.MatchString(slug) {
			t.Errorf("Slugify(%q) = %q, want lowercase word characters and single hyphens only", title, slug)
		}
	}
}

// fakeSlugChecker treats taken as the set of existing slugs and ownID
// as the row being edited.
type fakeSlugChecker struct {
	taken map[string]int64 // slug -> owning entity id
}

func (f *fakeSlugChecker) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	owner, ok := f.taken[slug]
	if !ok {
		return false, nil
	}
	if excludeID != 0 && owner == excludeID {
		return false, nil
	}
	return true, nil
}

func TestUniqueSlug(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		taken     map[string]int64
		title     string
		excludeID int64
		expected  string
	}{
		{
			name:     "no collision",
			taken:    map[string]int64{},
			title:    "Fresh Title",
			expected: "fresh-title",
		},
		{
			name:     "single collision appends -1",
			taken:    map[string]int64{"fresh-title": 7},
			title:    "Fresh Title",
			expected: "fresh-title-1",
		},
		{
			name:     "double collision appends -2",
			taken:    map[string]int64{"fresh-title": 7, "fresh-title-1": 8},
			title:    "Fresh Title",
			expected: "fresh-title-2",
		},
		{
			name:      "editing own row is not a collision",
			taken:     map[string]int64{"fresh-title": 7},
			title:     "Fresh Title",
			excludeID: 7,
			expected:  "fresh-title",
		},
		{
			name:      "editing still collides with other rows",
			taken:     map[string]int64{"fresh-title": 9},
			title:     "Fresh Title",
			excludeID: 7,
			expected:  "fresh-title-1",
		},
		{
			name:     "empty base falls back to untitled",
			taken:    map[string]int64{},
			title:    "!!!",
			expected: "untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &fakeSlugChecker{taken: tt.taken}
			got, err := UniqueSlug(ctx, checker, tt.title, tt.excludeID)
			if err != nil {
				t.Fatalf("UniqueSlug() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("UniqueSlug() = %q, want %q", got, tt.expected)
			}
		})
	}
}
