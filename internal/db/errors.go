package db

import "errors"

var (
	// ErrConflict is returned when a write would violate a dependency,
	// such as deleting a category or tag that still has published posts.
	ErrConflict = errors.New("conflicting dependent records")
)
