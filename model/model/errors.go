package model

import "fmt"

// ValidationError is a client fault detected before any write. Kept as
// a distinct type so handlers can map it to a 400 without matching on
// error strings.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// AsValidationError returns the validation error when err is one.
func AsValidationError(err error) (*ValidationError, bool) {
	validationErr, ok := err.(*ValidationError)
	return validationErr, ok
}
