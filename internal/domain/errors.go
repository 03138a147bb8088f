// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared by every service. Each typed error below matches exactly
// one of these through errors.Is, so callers can branch on the kind without
// reading message text.
var (
	// ErrValidation is returned when required input is missing or malformed.
	// API layer should map this to HTTP 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced entity does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an operation would break a catalog invariant,
	// such as a duplicate ISBN or deleting an author that still has books.
	// API layer should map this to HTTP 409 Conflict.
	ErrConflict = errors.New("conflict")
)

// ValidationError describes a single invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports that an entity with the given ID does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

// NewNotFoundError creates a NotFoundError for the given entity and ID.
func NewNotFoundError(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError reports an invariant violation. Err keeps the underlying
// store error, if any, for logging.
type ConflictError struct {
	Entity  string
	Message string
	Err     error
}

// NewConflictError creates a ConflictError.
func NewConflictError(entity, message string, err error) *ConflictError {
	return &ConflictError{Entity: entity, Message: message, Err: err}
}

// Error implements the error interface for ConflictError.
func (e *ConflictError) Error() string {
	return e.Message
}

// Is reports whether target is ErrConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Unwrap returns the wrapped store error to support errors.Is/errors.As.
func (e *ConflictError) Unwrap() error {
	return e.Err
}
