package db

import (
	"fmt"

	"github.com/bytebrief/bytebrief/internal/models"
)

// Migrate creates or updates the schema for all models. The post_tags
// join table is created implicitly by the Tags association.
func (d *DB) Migrate() error {
	if err := d.DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
	); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
