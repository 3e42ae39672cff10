package content

import (
	"context"

	"go.uber.org/zap"

	"github.com/bytebrief/bytebrief/internal/db"
	"github.com/bytebrief/bytebrief/internal/models"
	"github.com/bytebrief/bytebrief/pkg/logging"
)

// Service provides the public-facing content read operations. All of
// them expose published posts only.
type Service struct {
	posts      *db.PostRepository
	categories *db.CategoryRepository
	tags       *db.TagRepository
	logger     *zap.Logger
}

// NewService creates a new content service
func NewService(posts *db.PostRepository, categories *db.CategoryRepository, tags *db.TagRepository) *Service {
	return &Service{
		posts:      posts,
		categories: categories,
		tags:       tags,
		logger:     logging.WithComponent("content"),
	}
}

// LatestPosts returns the most recently published post summaries
func (s *Service) LatestPosts(ctx context.Context, limit int) ([]models.PostSummary, error) {
	posts, err := s.posts.Latest(ctx, limit)
	if err != nil {
		return nil, err
	}
	return summaries(posts), nil
}

// PublishedPosts returns published post summaries matching both
// filters. The category filter is skipped when empty or "all".
func (s *Service) PublishedPosts(ctx context.Context, categorySlug, search string) ([]models.PostSummary, error) {
	posts, err := s.posts.ListPublished(ctx, categorySlug, search)
	if err != nil {
		return nil, err
	}
	return summaries(posts), nil
}

// PostBySlug returns a published post with rendered content and bumps
// its view counter. Returns nil when no published post has the slug.
func (s *Service) PostBySlug(ctx context.Context, slug string) (*models.Post, string, error) {
	post, err := s.posts.GetBySlug(ctx, slug, true)
	if err != nil {
		return nil, "", err
	}
	if post == nil {
		return nil, "", nil
	}

	rendered, err := RenderMarkdown(post.Content)
	if err != nil {
		return nil, "", err
	}

	if err := s.posts.IncrementViews(ctx, post.ID); err != nil {
		// A lost view increment does not block the read
		s.logger.Warn("failed to increment views", zap.Int64("post_id", post.ID), zap.Error(err))
	}

	return post, rendered, nil
}

// Categories returns all categories with published post counts
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

// Tags returns all tags with published post counts
func (s *Service) Tags(ctx context.Context) ([]models.Tag, error) {
	return s.tags.List(ctx)
}

// PostsByCategory returns one page of published posts in a category.
// The category result is nil when the slug is unknown.
func (s *Service) PostsByCategory(ctx context.Context, slug string, page, pageSize int) ([]models.PostSummary, *models.Category, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if category == nil {
		return nil, nil, nil
	}

	if page < 1 {
		page = 1
	}
	posts, err := s.posts.ListPublishedByCategory(ctx, category.ID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, nil, err
	}

	count, err := s.categories.PublishedPostCount(ctx, category.ID)
	if err != nil {
		return nil, nil, err
	}
	category.PostCount = count

	return summaries(posts), category, nil
}

// PostsByTag returns one page of published posts carrying a tag
func (s *Service) PostsByTag(ctx context.Context, slug string, page, pageSize int) ([]models.PostSummary, *models.Tag, error) {
	tag, err := s.tags.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if tag == nil {
		return nil, nil, nil
	}

	if page < 1 {
		page = 1
	}
	posts, err := s.posts.ListPublishedByTag(ctx, tag.ID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, nil, err
	}

	count, err := s.tags.PublishedPostCount(ctx, tag.ID)
	if err != nil {
		return nil, nil, err
	}
	tag.PostCount = count

	return summaries(posts), tag, nil
}

func summaries(posts []models.Post) []models.PostSummary {
	out := make([]models.PostSummary, len(posts))
	for i := range posts {
		out[i] = posts[i].Summary()
	}
	return out
}
