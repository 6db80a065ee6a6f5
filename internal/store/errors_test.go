package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "wrapped ErrNotFound", err: fmt.Errorf("lookup: %w", ErrNotFound), expected: true},
		{name: "ErrUserNotFound", err: ErrUserNotFound, expected: true},
		{name: "ErrSpendingNotFound", err: ErrSpendingNotFound, expected: true},
		{name: "ErrEmailExists", err: ErrEmailExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("signup: %w", ErrEmailExists)))
	assert.False(t, IsDuplicateError(ErrUserNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestEntitySpecificErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrUserNotFound, ErrSpendingNotFound))
	assert.False(t, errors.Is(ErrSpendingNotFound, ErrUserNotFound))
	assert.Equal(t, "entity not found: spending", ErrSpendingNotFound.Error())
	assert.Equal(t, "entity already exists: email", ErrEmailExists.Error())
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection refused")

	err := NewStoreError("spendings", "save", "failed to insert document", cause)
	assert.Equal(t,
		"save operation on spendings failed: failed to insert document: connection refused",
		err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsStoreError(fmt.Errorf("wrapped: %w", err)))

	bare := NewStoreError("users", "get", "no connection", nil)
	assert.Equal(t, "get operation on users failed: no connection", bare.Error())
	assert.False(t, IsStoreError(cause))
}
