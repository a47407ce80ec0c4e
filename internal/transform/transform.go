// Package transform provides composable what-if changes to retirement inputs.
package transform

import (
	"fmt"

	"github.com/maplemetrics/maplemetrics/internal/domain"
)

// RetirementTransform defines the interface for all retirement input transformations.
// Transforms are composable operations that modify inputs in predictable ways,
// enabling what-if projections and side-by-side comparison.
type RetirementTransform interface {
	// Apply returns a modified copy of base. The base is never mutated.
	Apply(base *domain.RetirementInputs) (*domain.RetirementInputs, error)

	// Name returns a short identifier for this transform (e.g., "postpone_retirement").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid for base without applying it.
	Validate(base *domain.RetirementInputs) error
}

// ApplyTransforms applies a sequence of transforms to a base input.
// Each transform receives the output of the previous one.
func ApplyTransforms(base *domain.RetirementInputs, transforms []RetirementTransform) (*domain.RetirementInputs, error) {
	if base == nil {
		return nil, fmt.Errorf("base inputs cannot be nil")
	}

	current := clone(base)
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// Describe joins the descriptions of transforms
func Describe(transforms []RetirementTransform) string {
	out := ""
	for i, t := range transforms {
		if i > 0 {
			out += "; "
		}
		out += t.Description()
	}
	return out
}

func clone(in *domain.RetirementInputs) *domain.RetirementInputs {
	cp := *in
	return &cp
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
