package mocks

import (
	"errors"

	"github.com/phrazzld/spending-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing.
// By default Hash returns "hashed:"+password and Verify accepts exactly that pair.
type MockPasswordHasher struct {
	// HashFn allows for custom hashing logic in tests
	HashFn func(password string) (string, error)

	// VerifyFn allows for custom comparison logic in tests
	VerifyFn func(hashedPassword, password string) bool

	// HashErr is returned by the default Hash when set
	HashErr error

	// VerifyCallCount tracks how many times Verify was called
	VerifyCallCount int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// ErrMockHash is a convenience error for hash failures.
var ErrMockHash = errors.New("mock hash failure")

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// Verify implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Verify(hashedPassword, password string) bool {
	m.VerifyCallCount++
	if m.VerifyFn != nil {
		return m.VerifyFn(hashedPassword, password)
	}
	return hashedPassword == "hashed:"+password
}
