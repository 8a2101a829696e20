package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation signals malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
)

// ValidationError collects every violation found in a request instead of
// stopping at the first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Violations, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error from one or more violations.
func NewValidationError(violations ...string) error {
	return &ValidationError{Violations: violations}
}

// Invalidf creates a single-violation validation error with formatting.
func Invalidf(format string, args ...any) error {
	return &ValidationError{Violations: []string{fmt.Sprintf(format, args...)}}
}
