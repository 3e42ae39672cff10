package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bytebrief/bytebrief/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// searchPattern builds the ILIKE pattern for free-text filters
func searchPattern(search string) string {
	return "%" + search + "%"
}

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID with its relations loaded
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Author").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a post by slug with its relations loaded.
// When publishedOnly is set, draft and archived posts are invisible.
func (r *PostRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Post, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Author").
		Preload("Tags").
		Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("status = ?", models.StatusPublished)
	}

	var post models.Post
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update updates a post and replaces its tag associations
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(post).Association("Tags").Replace(post.Tags); err != nil {
			return err
		}
		return tx.Save(post).Error
	})
}

// Delete deletes a post and its tag associations
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post := models.Post{ID: id}
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// SlugExists reports whether a slug is already taken by a different post.
// excludeID skips the post's own row during edits; pass 0 when creating.
func (r *PostRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applySearch adds the case-insensitive substring filter across
// title, slug, excerpt and content.
func applySearch(query *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return query
	}
	p := searchPattern(search)
	return query.Where(
		"title ILIKE ? OR slug ILIKE ? OR excerpt ILIKE ? OR content ILIKE ?",
		p, p, p, p,
	)
}

// ListPage retrieves one page of posts for the admin listing, newest first
func (r *PostRepository) ListPage(ctx context.Context, offset, limit int, search string) ([]models.Post, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Preload("Category").
		Preload("Tags")
	query = applySearch(query, search)

	var posts []models.Post
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the total number of posts matching the search filter
func (r *PostRepository) Count(ctx context.Context, search string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{})
	query = applySearch(query, search)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// publishedQuery scopes a post query to published rows with relations loaded
func (r *PostRepository) publishedQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Preload("Category").
		Preload("Author").
		Preload("Tags").
		Where("status = ?", models.StatusPublished)
}

// Latest retrieves the most recently published posts
func (r *PostRepository) Latest(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.publishedQuery(ctx).
		Order("published_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPublished retrieves published posts, optionally filtered by
// category slug and a free-text search. An empty or "all" category
// slug matches every category.
func (r *PostRepository) ListPublished(ctx context.Context, categorySlug, search string) ([]models.Post, error) {
	query := r.publishedQuery(ctx)
	if categorySlug != "" && categorySlug != "all" {
		query = query.Joins("INNER JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	if search != "" {
		p := searchPattern(search)
		query = query.Where("title ILIKE ? OR excerpt ILIKE ? OR content ILIKE ?", p, p, p)
	}

	var posts []models.Post
	if err := query.Order("published_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPublishedByCategory retrieves one page of published posts in a category
func (r *PostRepository) ListPublishedByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.publishedQuery(ctx).
		Where("category_id = ?", categoryID).
		Order("published_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPublishedByTag retrieves one page of published posts carrying a tag
func (r *PostRepository) ListPublishedByTag(ctx context.Context, tagID int64, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.publishedQuery(ctx).
		Joins("INNER JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID).
		Order("published_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// IncrementViews bumps the view counter without touching updated_at
func (r *PostRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// CategoryRepository provides category-related database operations
type CategoryRepository struct {
	*Repository
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(repo *Repository) *CategoryRepository {
	return &CategoryRepository{Repository: repo}
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetBySlug retrieves a category by slug
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// List retrieves all categories with their published post counts
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	for i := range categories {
		count, err := r.PublishedPostCount(ctx, categories[i].ID)
		if err != nil {
			return nil, err
		}
		categories[i].PostCount = count
	}
	return categories, nil
}

// PublishedPostCount counts published posts in a category
func (r *CategoryRepository) PublishedPostCount(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("category_id = ? AND status = ?", id, models.StatusPublished).
		Count(&count).Error
	return count, err
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update updates a category
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete deletes a category. Returns ErrConflict when it still has
// published posts; any dependent rows stay untouched in that case.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	count, err := r.PublishedPostCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return r.db.WithContext(ctx).Delete(&models.Category{}, id).Error
}

// SlugExists reports whether a slug is already taken by a different category
func (r *CategoryRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// TagRepository provides tag-related database operations
type TagRepository struct {
	*Repository
}

// NewTagRepository creates a new tag repository
func NewTagRepository(repo *Repository) *TagRepository {
	return &TagRepository{Repository: repo}
}

// GetByID retrieves a tag by ID
func (r *TagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// GetBySlug retrieves a tag by slug
func (r *TagRepository) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// GetByIDs retrieves multiple tags by IDs
func (r *TagRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// List retrieves all tags with their published post counts
func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}

	for i := range tags {
		count, err := r.PublishedPostCount(ctx, tags[i].ID)
		if err != nil {
			return nil, err
		}
		tags[i].PostCount = count
	}
	return tags, nil
}

// PublishedPostCount counts published posts carrying a tag
func (r *TagRepository) PublishedPostCount(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("INNER JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ? AND posts.status = ?", id, models.StatusPublished).
		Count(&count).Error
	return count, err
}

// Create creates a new tag
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// Update updates a tag
func (r *TagRepository) Update(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// Delete deletes a tag. Returns ErrConflict when it is still attached
// to published posts.
func (r *TagRepository) Delete(ctx context.Context, id int64) error {
	count, err := r.PublishedPostCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Join rows for draft or archived posts go with the tag.
		if err := tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}

// SlugExists reports whether a slug is already taken by a different tag
func (r *TagRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Tag{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpsertGoogle creates a user on first Google sign-in or refreshes the
// profile fields on subsequent sign-ins. Role is never touched here.
func (r *UserRepository) UpsertGoogle(ctx context.Context, googleID, email, name, avatarURL string) (*models.User, error) {
	existing, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.GoogleID = googleID
		existing.Name = name
		existing.AvatarURL = avatarURL
		if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	user := &models.User{
		Email:     email,
		Name:      name,
		AvatarURL: avatarURL,
		GoogleID:  googleID,
		Role:      models.RoleUser,
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
