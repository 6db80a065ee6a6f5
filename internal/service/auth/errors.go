package auth

import (
	"errors"
	"fmt"
)

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token cannot be trusted. The more specific
	// errors below all wrap it.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrInvalidSignature indicates the token was not signed with our key.
	ErrInvalidSignature = fmt.Errorf("%w: signature is invalid", ErrInvalidToken)

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrInvalidToken)

	// ErrMalformedToken indicates the value is not a JWT at all.
	ErrMalformedToken = fmt.Errorf("%w: token is malformed", ErrInvalidToken)

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")
)
