package models

import (
	"time"
)

// PostStatus is the publication state of a post
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusArchived  PostStatus = "archived"
)

// Valid reports whether s is a known post status
func (s PostStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Post represents an article
type Post struct {
	ID          int64      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null;column:title" json:"title"`
	Slug        string     `gorm:"type:varchar(255);not null;uniqueIndex:posts_ux_slug;column:slug" json:"slug"`
	Excerpt     string     `gorm:"type:varchar(512);not null;default:'';column:excerpt" json:"excerpt"`
	Content     string     `gorm:"type:text;not null;default:'';column:content" json:"content"`
	CoverImage  string     `gorm:"type:varchar(1024);not null;default:'';column:cover_image" json:"coverImage"`
	Status      PostStatus `gorm:"type:varchar(16);not null;default:'draft';index;column:status" json:"status"`
	ReadTime    int        `gorm:"not null;default:1;column:read_time" json:"readTime"`
	Views       int64      `gorm:"not null;default:0;column:views" json:"views"`
	CreatedAt   time.Time  `gorm:"not null;column:created_at" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null;column:updated_at" json:"updatedAt"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"publishedAt"`

	CategoryID int64 `gorm:"not null;index;column:category_id" json:"categoryId"`
	AuthorID   int64 `gorm:"not null;index;column:author_id" json:"authorId"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags     []Tag     `gorm:"many2many:post_tags;" json:"tags,omitempty"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// IsPublished reports whether the post is publicly visible
func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// PostSummary is a reduced projection of a Post used for list views
type PostSummary struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	CoverImage  string     `json:"coverImage"`
	Status      PostStatus `json:"status"`
	ReadTime    int        `json:"readTime"`
	Views       int64      `json:"views"`
	CreatedAt   time.Time  `json:"createdAt"`
	PublishedAt *time.Time `json:"publishedAt"`
	Category    *Category  `json:"category,omitempty"`
	Tags        []Tag      `json:"tags,omitempty"`
	AuthorName  string     `json:"authorName,omitempty"`
}

// Summary converts a Post to its list-view projection
func (p *Post) Summary() PostSummary {
	s := PostSummary{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		CoverImage:  p.CoverImage,
		Status:      p.Status,
		ReadTime:    p.ReadTime,
		Views:       p.Views,
		CreatedAt:   p.CreatedAt,
		PublishedAt: p.PublishedAt,
		Category:    p.Category,
		Tags:        p.Tags,
	}
	if p.Author != nil {
		s.AuthorName = p.Author.Name
	}
	return s
}
