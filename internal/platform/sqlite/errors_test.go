package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/phrazzld/spending-api/internal/platform/sqlite"
	"github.com/phrazzld/spending-api/internal/store"
	"github.com/phrazzld/spending-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError_Sentinels(t *testing.T) {
	t.Parallel()

	assert.NoError(t, sqlite.MapError(nil))
	assert.ErrorIs(t, sqlite.MapError(sql.ErrNoRows), store.ErrNotFound)

	generic := errors.New("disk on fire")
	assert.Equal(t, generic, sqlite.MapError(generic))
	assert.False(t, store.IsDuplicateError(sqlite.MapError(generic)))
}

func TestMapError_DriverErrors(t *testing.T) {
	ctx := context.Background()
	db := testdb.NewSQLite(t)

	insert := "INSERT INTO users (id, body) VALUES (?1, ?2)"
	_, err := db.ExecContext(ctx, insert, "a", `{"email":"dup@example.com"}`)
	require.NoError(t, err)

	t.Run("unique index", func(t *testing.T) {
		_, err := db.ExecContext(ctx, insert, "b", `{"email":"dup@example.com"}`)
		require.Error(t, err)
		assert.ErrorIs(t, sqlite.MapError(err), store.ErrDuplicate)
	})

	t.Run("primary key", func(t *testing.T) {
		_, err := db.ExecContext(ctx, insert, "a", `{"email":"other@example.com"}`)
		require.Error(t, err)
		assert.ErrorIs(t, sqlite.MapError(err), store.ErrDuplicate)
	})

	t.Run("check constraint", func(t *testing.T) {
		_, err := db.ExecContext(ctx, insert, "c", `[1, 2]`)
		require.Error(t, err)
		assert.ErrorIs(t, sqlite.MapError(err), store.ErrInvalidEntity)
	})

	t.Run("not null", func(t *testing.T) {
		_, err := db.ExecContext(ctx, insert, "d", nil)
		require.Error(t, err)
		assert.ErrorIs(t, sqlite.MapError(err), store.ErrInvalidEntity)
	})
}
