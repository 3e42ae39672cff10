package models

import "time"

// Category represents a post category
type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string    `gorm:"type:varchar(64);not null;column:name" json:"name"`
	Slug        string    `gorm:"type:varchar(64);not null;uniqueIndex:categories_ux_slug;column:slug" json:"slug"`
	Description string    `gorm:"type:varchar(255);not null;default:'';column:description" json:"description"`
	Color       string    `gorm:"type:varchar(16);not null;default:'';column:color" json:"color"`
	Icon        string    `gorm:"type:varchar(64);not null;default:'';column:icon" json:"icon"`
	CreatedAt   time.Time `gorm:"not null;column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;column:updated_at" json:"updatedAt"`

	// Derived, not a column: count of published posts in this category
	PostCount int64 `gorm:"-" json:"postCount"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}
