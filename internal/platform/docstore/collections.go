package docstore

import (
	"log/slog"

	"github.com/phrazzld/spending-api/internal/domain"
	"github.com/phrazzld/spending-api/internal/store"
)

// Collection table names.
const (
	UsersTable     = "users"
	SpendingsTable = "spendings"
)

// NewUserCollection returns the users collection. Missing users surface as
// store.ErrUserNotFound and email clashes as store.ErrEmailExists.
func NewUserCollection(db store.DBTX, dialect Dialect, logger *slog.Logger) *Collection[*domain.User] {
	return New[*domain.User](db, dialect, Options{
		Table:     UsersTable,
		NotFound:  store.ErrUserNotFound,
		Duplicate: store.ErrEmailExists,
	}, logger)
}

// NewSpendingCollection returns the spendings collection.
func NewSpendingCollection(db store.DBTX, dialect Dialect, logger *slog.Logger) *Collection[*domain.Spending] {
	return New[*domain.Spending](db, dialect, Options{
		Table:    SpendingsTable,
		NotFound: store.ErrSpendingNotFound,
	}, logger)
}
