package event

import (
	"errors"
	"fmt"
)

// ValidationError reports user input that was rejected before any store
// mutation. It carries a stable code so surfaces can map it to an exit
// status or HTTP status without string matching.
type ValidationError struct {
	// Code identifies the rule that failed.
	Code ValidationCode

	// Field names the offending input field.
	Field string

	// Message is a human-readable description.
	Message string
}

// ValidationCode categorizes validation failures.
type ValidationCode string

const (
	// CodeEmptyTitle indicates an empty or whitespace-only title.
	CodeEmptyTitle ValidationCode = "EMPTY_TITLE"
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
}

// NewEmptyTitleError creates the ValidationError for a blank title.
func NewEmptyTitleError() *ValidationError {
	return &ValidationError{
		Code:    CodeEmptyTitle,
		Field:   "title",
		Message: "title must not be empty",
	}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
