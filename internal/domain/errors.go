package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is returned when a lookup misses and a calculation cannot proceed
	ErrInsufficientData = errors.New("insufficient data to compute")
	// ErrNotFound is returned by stores when a record does not exist
	ErrNotFound = errors.New("not found")
	// ErrFeatureLocked is returned when the caller's tier does not include a feature
	ErrFeatureLocked = errors.New("feature requires a higher subscription tier")
)

// ValidationError reports a field-level input problem the caller can show next to the field
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Validation is the result of a pure input check
type Validation struct {
	OK     bool   `json:"ok"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Valid is the passing Validation
func Valid() Validation {
	return Validation{OK: true}
}

// Invalid builds a failing Validation
func Invalid(field, reason string) Validation {
	return Validation{Field: field, Reason: reason}
}

// Err converts a failing Validation to a *ValidationError and a passing one to nil
func (v Validation) Err() error {
	if v.OK {
		return nil
	}
	return NewValidationError(v.Field, v.Reason)
}

// IsValidationError reports whether err wraps a *ValidationError and returns it
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
