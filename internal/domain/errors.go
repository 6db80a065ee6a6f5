package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is usually wrapped by a ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyEmail is returned when a user is created without an email.
	ErrEmptyEmail = fmt.Errorf("%w: email cannot be empty", ErrValidation)

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email format", ErrValidation)

	// ErrEmptyPassword is returned when a plaintext password is empty.
	ErrEmptyPassword = fmt.Errorf("%w: password cannot be empty", ErrValidation)

	// ErrPasswordTooLong is returned when a plaintext password exceeds MaxPasswordBytes.
	ErrPasswordTooLong = fmt.Errorf("%w: password is too long", ErrValidation)

	// ErrEmptyHashedPassword is returned when a user has no password hash.
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)

	// ErrEmptyCreator is returned when a spending record has no owner.
	ErrEmptyCreator = fmt.Errorf("%w: creator cannot be empty", ErrValidation)

	// ErrInvalidDate is returned when a spending date is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", ErrValidation)

	// ErrNegativeAmount is returned when a monetary amount is below zero.
	ErrNegativeAmount = fmt.Errorf("%w: amounts cannot be negative", ErrValidation)
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
