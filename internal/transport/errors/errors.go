// Package errors defines the error taxonomy shared by the domain
// services: lookup misses, validation failures and duplicate keys.
package errors

import (
	"fmt"
	"strings"
)

var (
	ErrNotFound       = fmt.Errorf("not found")
	ErrValidation     = fmt.Errorf("validation failed")
	ErrDuplicatePlate = fmt.Errorf("duplicate license plate")
)

// ValidationError aggregates every violated rule of one failed
// operation. Callers always get the complete list, not the first hit.
type ValidationError struct {
	Violations []string
}

// NewValidation builds a ValidationError from one or more violation
// messages.
func NewValidation(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// Is makes errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
