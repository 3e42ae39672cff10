package admin

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the target entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned for duplicate slugs and for deletes
	// blocked by dependent published posts
	ErrConflict = errors.New("conflict")
)

// ValidationError reports a missing or malformed input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func requiredField(field string) error {
	return &ValidationError{Field: field, Message: field + " is required"}
}
