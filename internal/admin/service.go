package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bytebrief/bytebrief/internal/content"
	"github.com/bytebrief/bytebrief/internal/models"
	"github.com/bytebrief/bytebrief/pkg/logging"
)

// PostStore is the slice of the post repository the mutation service needs
type PostStore interface {
	content.SlugChecker
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
}

// TaxonomyStore is the shared shape of category and tag repositories
type TaxonomyStore interface {
	content.SlugChecker
	PublishedPostCount(ctx context.Context, id int64) (int64, error)
}

// CategoryStore provides category persistence for the mutation service
type CategoryStore interface {
	TaxonomyStore
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
}

// TagStore provides tag persistence for the mutation service
type TagStore interface {
	TaxonomyStore
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id int64) error
}

// Service performs the admin create/update/delete operations. Input
// validation and the slug/publish invariants live here; handlers only
// translate errors to HTTP statuses.
type Service struct {
	posts      PostStore
	categories CategoryStore
	tags       TagStore
	logger     *zap.Logger

	// now is swappable for tests
	now func() time.Time
}

// NewService creates the admin mutation service
func NewService(posts PostStore, categories CategoryStore, tags TagStore) *Service {
	return &Service{
		posts:      posts,
		categories: categories,
		tags:       tags,
		logger:     logging.WithComponent("admin"),
		now:        time.Now,
	}
}

// PostInput carries the writable fields of a post
type PostInput struct {
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	Excerpt    string            `json:"excerpt"`
	Content    string            `json:"content"`
	CoverImage string            `json:"coverImage"`
	Status     models.PostStatus `json:"status"`
	CategoryID int64             `json:"categoryId"`
	TagIDs     []int64           `json:"tagIds"`
}

func (s *Service) validatePostInput(in *PostInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return requiredField("title")
	}
	if in.CategoryID == 0 {
		return requiredField("categoryId")
	}
	if in.Status == "" {
		in.Status = models.StatusDraft
	}
	if !in.Status.Valid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", in.Status)}
	}
	return nil
}

// resolveSlug picks the post slug: an explicit slug must be free (a
// duplicate is a conflict), a derived one is disambiguated with
// numeric suffixes. excludeID skips the post's own row during edits.
func (s *Service) resolveSlug(ctx context.Context, in *PostInput, excludeID int64) (string, error) {
	if explicit := content.Slugify(in.Slug); explicit != "" {
		taken, err := s.posts.SlugExists(ctx, explicit, excludeID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", fmt.Errorf("%w: slug %q is already in use", ErrConflict, explicit)
		}
		return explicit, nil
	}
	return content.UniqueSlug(ctx, s.posts, in.Title, excludeID)
}

// CreatePost creates a post on behalf of authorID
func (s *Service) CreatePost(ctx context.Context, authorID int64, in PostInput) (*models.Post, error) {
	if err := s.validatePostInput(&in); err != nil {
		return nil, err
	}

	slug, err := s.resolveSlug(ctx, &in, 0)
	if err != nil {
		return nil, err
	}

	tags, err := s.tags.GetByIDs(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:      strings.TrimSpace(in.Title),
		Slug:       slug,
		Excerpt:    in.Excerpt,
		Content:    in.Content,
		CoverImage: in.CoverImage,
		Status:     in.Status,
		ReadTime:   content.CalculateReadTime(in.Content),
		CategoryID: in.CategoryID,
		AuthorID:   authorID,
		Tags:       tags,
	}
	if post.Status == models.StatusPublished {
		now := s.now().UTC()
		post.PublishedAt = &now
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		zap.Int64("id", post.ID),
		zap.String("slug", post.Slug),
		zap.String("status", string(post.Status)))
	return post, nil
}

// UpdatePost updates a post. PublishedAt is set exactly once, at the
// first transition into published, and never cleared afterwards.
func (s *Service) UpdatePost(ctx context.Context, id int64, in PostInput) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
	}

	if err := s.validatePostInput(&in); err != nil {
		return nil, err
	}

	slug, err := s.resolveSlug(ctx, &in, id)
	if err != nil {
		return nil, err
	}

	tags, err := s.tags.GetByIDs(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Slug = slug
	post.Excerpt = in.Excerpt
	post.Content = in.Content
	post.CoverImage = in.CoverImage
	post.Status = in.Status
	post.ReadTime = content.CalculateReadTime(in.Content)
	post.CategoryID = in.CategoryID
	post.Tags = tags

	if post.Status == models.StatusPublished && post.PublishedAt == nil {
		now := s.now().UTC()
		post.PublishedAt = &now
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post updated", zap.Int64("id", post.ID), zap.String("slug", post.Slug))
	return post, nil
}

// DeletePost deletes a post
func (s *Service) DeletePost(ctx context.Context, id int64) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("%w: post %d", ErrNotFound, id)
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("post deleted", zap.Int64("id", id))
	return nil
}

// CategoryInput carries the writable fields of a category
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

func (s *Service) resolveTaxonomySlug(ctx context.Context, checker content.SlugChecker, explicit, name string, excludeID int64) (string, error) {
	if slug := content.Slugify(explicit); slug != "" {
		taken, err := checker.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", fmt.Errorf("%w: slug %q is already in use", ErrConflict, slug)
		}
		return slug, nil
	}
	return content.UniqueSlug(ctx, checker, name, excludeID)
}

// CreateCategory creates a category
func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, requiredField("name")
	}

	slug, err := s.resolveTaxonomySlug(ctx, s.categories, in.Slug, in.Name, 0)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates a category
func (s *Service) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, requiredField("name")
	}

	slug, err := s.resolveTaxonomySlug(ctx, s.categories, in.Slug, in.Name, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(in.Name)
	category.Slug = slug
	category.Description = in.Description
	category.Color = in.Color
	category.Icon = in.Icon

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category unless published posts depend on it
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: category %d", ErrNotFound, id)
	}

	count, err := s.categories.PublishedPostCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: category %q still has %d published posts", ErrConflict, category.Name, count)
	}

	return s.categories.Delete(ctx, id)
}

// TagInput carries the writable fields of a tag
type TagInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateTag creates a tag
func (s *Service) CreateTag(ctx context.Context, in TagInput) (*models.Tag, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, requiredField("name")
	}

	slug, err := s.resolveTaxonomySlug(ctx, s.tags, in.Slug, in.Name, 0)
	if err != nil {
		return nil, err
	}

	tag := &models.Tag{
		Name: strings.TrimSpace(in.Name),
		Slug: slug,
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateTag updates a tag
func (s *Service) UpdateTag(ctx context.Context, id int64, in TagInput) (*models.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, fmt.Errorf("%w: tag %d", ErrNotFound, id)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, requiredField("name")
	}

	slug, err := s.resolveTaxonomySlug(ctx, s.tags, in.Slug, in.Name, id)
	if err != nil {
		return nil, err
	}

	tag.Name = strings.TrimSpace(in.Name)
	tag.Slug = slug

	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag deletes a tag unless published posts still carry it
func (s *Service) DeleteTag(ctx context.Context, id int64) error {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tag == nil {
		return fmt.Errorf("%w: tag %d", ErrNotFound, id)
	}

	count, err := s.tags.PublishedPostCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: tag %q is still on %d published posts", ErrConflict, tag.Name, count)
	}

	return s.tags.Delete(ctx, id)
}

// GetPost retrieves a post for the admin edit form
func (s *Service) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
	}
	return post, nil
}
