package mocks_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/spending-api/internal/domain"
	"github.com/phrazzld/spending-api/internal/mocks"
	"github.com/phrazzld/spending-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpendings() *mocks.MemoryCollection[*domain.Spending] {
	return mocks.NewMemoryCollection(store.ErrSpendingNotFound, func() *domain.Spending {
		return &domain.Spending{}
	})
}

func TestMemoryCollection(t *testing.T) {
	ctx := context.Background()
	c := newSpendings()

	a := &domain.Spending{Creator: "a@example.com", Date: "2024-01-01", Food: 1}
	b := &domain.Spending{Creator: "b@example.com", Date: "2024-01-02", Food: 2}
	require.NoError(t, c.Save(ctx, a))
	require.NoError(t, c.Save(ctx, b))
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.ErrorIs(t, c.Save(ctx, a), store.ErrDuplicate)

	got, err := c.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = c.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrSpendingNotFound)

	owned, err := c.GetAll(ctx, store.Filter{"creator": "b@example.com"})
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, b.ID, owned[0].ID)

	transport := 7.5
	updated, err := c.Update(ctx, a.ID, domain.SpendingPatch{Transport: &transport})
	require.NoError(t, err)
	assert.Equal(t, 7.5, updated.Transport)
	assert.Equal(t, 1.0, updated.Food)

	deleted, err := c.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = c.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, c.Len())
}
