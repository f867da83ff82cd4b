package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every *NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrNoOwnerIdentity is returned when a token carries none of the identity
	// fields an owner id can be resolved from.
	ErrNoOwnerIdentity = errors.New("no owner identity in token")

	// ErrArchiveDisabled is returned when no object storage bucket is configured.
	ErrArchiveDisabled = errors.New("export archive storage is not configured")
)

// ValidationError represents a rejected create or update payload
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError is returned when a record does not exist for the caller.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func recipeNotFound(id string) *NotFoundError {
	return &NotFoundError{Resource: "recipe", ID: id}
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
