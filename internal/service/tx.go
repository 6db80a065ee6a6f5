package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/spending-api/internal/store"
)

// withCollection runs fn against c inside a transaction when db is set, and
// directly against c otherwise (e.g. with in-memory collections in tests).
func withCollection[T store.Document](
	ctx context.Context,
	db *sql.DB,
	c store.Collection[T],
	fn func(ctx context.Context, c store.Collection[T]) error,
) error {
	if db == nil {
		return fn(ctx, c)
	}
	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, c.WithTx(tx))
	})
}
