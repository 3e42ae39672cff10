package models

import "time"

// Tag represents a post tag
type Tag struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name      string    `gorm:"type:varchar(64);not null;column:name" json:"name"`
	Slug      string    `gorm:"type:varchar(64);not null;uniqueIndex:tags_ux_slug;column:slug" json:"slug"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updatedAt"`

	// Derived, not a column: count of published posts carrying this tag
	PostCount int64 `gorm:"-" json:"postCount"`
}

// TableName specifies the table name for Tag
func (Tag) TableName() string {
	return "tags"
}
