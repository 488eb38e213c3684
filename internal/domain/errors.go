package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBookNotFound means the metadata catalog has no match for an ISBN.
	// It wraps ErrNotFound so generic not-found handling still applies.
	ErrBookNotFound = fmt.Errorf("book not found for isbn: %w", ErrNotFound)

	// ErrLookupFailed means the metadata catalog could not be queried
	// (network, timeout, unexpected status or payload).
	ErrLookupFailed = errors.New("book lookup failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// First returns the first field error. Callers that report a single reason
// (the HTTP layer) use it.
func (e *ValidationError) First() FieldError {
	if len(e.Errors) == 0 {
		return FieldError{Field: "input", Message: "invalid"}
	}
	return e.Errors[0]
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
