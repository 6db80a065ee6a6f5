package auth

import (
	"context"
	"time"
)

// TokenService issues and validates access tokens.
type TokenService interface {
	// GenerateToken creates a signed access token for subject (a user's email).
	GenerateToken(ctx context.Context, subject string) (AccessToken, error)

	// ValidateToken verifies the token's signature and expiry and returns its claims.
	// An empty token returns ErrMissingToken; every other failure wraps ErrInvalidToken.
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

// AccessToken is a signed token together with what it asserts.
type AccessToken struct {
	Value     string
	Subject   string
	ExpiresAt time.Time
}

// Claims are the validated contents of an access token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
