package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/spending-api/internal/domain"
	"github.com/phrazzld/spending-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockUserCollection is a mock of store.Collection[*domain.User] for use with testify/mock
type TestifyMockUserCollection struct {
	mock.Mock
}

var _ store.Collection[*domain.User] = (*TestifyMockUserCollection)(nil)

// Save is a mock implementation of store.Collection.Save
func (m *TestifyMockUserCollection) Save(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Get is a mock implementation of store.Collection.Get
func (m *TestifyMockUserCollection) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetAll is a mock implementation of store.Collection.GetAll
func (m *TestifyMockUserCollection) GetAll(ctx context.Context, filter store.Filter) ([]*domain.User, error) {
	args := m.Called(ctx, filter)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindOne is a mock implementation of store.Collection.FindOne
func (m *TestifyMockUserCollection) FindOne(ctx context.Context, filter store.Filter) (*domain.User, error) {
	args := m.Called(ctx, filter)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.Collection.Update
func (m *TestifyMockUserCollection) Update(ctx context.Context, id uuid.UUID, patch any) (*domain.User, error) {
	args := m.Called(ctx, id, patch)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.Collection.Delete
func (m *TestifyMockUserCollection) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// WithTx is a mock implementation of store.Collection.WithTx
func (m *TestifyMockUserCollection) WithTx(tx *sql.Tx) store.Collection[*domain.User] {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.Collection[*domain.User]); ok {
		return ret
	}
	return m
}
