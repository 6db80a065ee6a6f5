package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/spending-api/internal/domain"
	"github.com/phrazzld/spending-api/internal/service"
	"github.com/phrazzld/spending-api/internal/service/auth"
	"github.com/phrazzld/spending-api/internal/store"
)

// Client-facing messages.
const (
	MsgUserCreated      = "User created successfully!"
	MsgEmailExists      = "User with supplied username exists"
	MsgUserNotFound     = "User with supplied email does not exist"
	MsgInvalidDetails   = "Invalid details passed."
	MsgNotAllowed       = "Operation not allowed"
	MsgRecordCreated    = "Record created successfully"
	MsgRecordDeleted    = "Record deleted successfully"
	MsgRecordNotFound   = "Record with supplied ID does not exist"
	MsgInvalidRequest   = "Invalid request format"
	MsgNotAuthenticated = "Not authenticated"
	MsgUnexpected       = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Ownership violations are reported as bad requests
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return MsgInvalidDetails

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return MsgNotAuthenticated

	case errors.Is(err, service.ErrNotOwned):
		return MsgNotAllowed

	case errors.Is(err, store.ErrUserNotFound):
		return MsgUserNotFound

	case errors.Is(err, store.ErrNotFound):
		return MsgRecordNotFound

	case errors.Is(err, store.ErrEmailExists):
		return MsgEmailExists

	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return MsgUnexpected
	}
}

// SanitizeValidationError turns validator errors into a user-friendly message
// naming the first offending field.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "gte":
		return "must not be negative"
	case "max":
		return "is too long"
	case "datetime":
		return "must be formatted as YYYY-MM-DD"
	default:
		return "validation failed"
	}
}
