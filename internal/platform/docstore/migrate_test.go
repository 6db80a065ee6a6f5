package docstore_test

import (
	"context"
	"testing"

	"github.com/phrazzld/spending-api/internal/platform/docstore"
	"github.com/phrazzld/spending-api/internal/platform/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tableExists := func(name string) bool {
		var count int
		err := db.QueryRowContext(ctx,
			"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
		require.NoError(t, err)
		return count == 1
	}

	require.NoError(t, docstore.Migrate(ctx, db, sqlite.Dialect{}, "up", nil))
	assert.True(t, tableExists("users"))
	assert.True(t, tableExists("spendings"))
	assert.True(t, tableExists(docstore.MigrationTableName))

	// Applying again is a no-op.
	require.NoError(t, docstore.Migrate(ctx, db, sqlite.Dialect{}, "up", nil))
	require.NoError(t, docstore.Migrate(ctx, db, sqlite.Dialect{}, "status", nil))
	require.NoError(t, docstore.Migrate(ctx, db, sqlite.Dialect{}, "version", nil))

	require.NoError(t, docstore.Migrate(ctx, db, sqlite.Dialect{}, "down", nil))
	assert.False(t, tableExists("users"))
	assert.False(t, tableExists("spendings"))

	err = docstore.Migrate(ctx, db, sqlite.Dialect{}, "sideways", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration command")
}
