package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by repositories when a record does not exist
	ErrNotFound = errors.New("not found")

	// ErrEmailInUse is returned when signing up with an email that already has an account
	ErrEmailInUse = errors.New("email already in use")

	// ErrInvalidCredentials is returned for any failed login attempt
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned when an owner acts on another owner's data
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports a caller-supplied parameter outside its contract.
// It is never retried.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
