package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain-specific errors for business logic validation.
var (
	// Not-found errors
	ErrTaskNotFound     = errors.New("task not found")
	ErrEvidenceNotFound = errors.New("evidence not found")
	ErrPhaseNotFound    = errors.New("construction phase not found")
	ErrUnitNotFound     = errors.New("project unit not found")

	// Transition errors
	ErrInvalidTransition = errors.New("invalid status transition")

	// Permission errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnknownActor     = errors.New("unknown actor")

	// Validation errors
	ErrValidation = errors.New("validation failed")
)

// FieldError names a single invalid or missing input field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError carries the complete list of offending fields for an
// operation. Callers receive every problem at once, not just the first.
type ValidationError struct {
	Fields []FieldError
}

// Add appends a field error.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// Empty reports whether no field errors were collected.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Error lists every offending field in submission order.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Unwrap makes errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
