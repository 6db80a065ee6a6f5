package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Document is implemented by every record type kept in a Collection.
// Implementations are pointer types so the store can assign identifiers.
type Document interface {
	DocumentID() uuid.UUID
	SetDocumentID(id uuid.UUID)
}

// Filter restricts GetAll and FindOne to documents whose top-level fields equal the
// given values, e.g. Filter{"creator": "a@b.com"}. A nil or empty Filter matches
// every document.
type Filter map[string]any

// Collection defines generic CRUD persistence over one document collection.
type Collection[T Document] interface {
	// Save persists a new document. A nil ID is replaced with a generated one
	// before insertion. Returns ErrDuplicate (or the entity-specific variant)
	// when a uniqueness constraint is violated.
	Save(ctx context.Context, doc T) error

	// Get retrieves a document by ID.
	// Returns ErrNotFound (or the entity-specific variant) if it does not exist.
	Get(ctx context.Context, id uuid.UUID) (T, error)

	// GetAll returns the documents matching scope in storage order.
	// An empty result is not an error.
	GetAll(ctx context.Context, scope Filter) ([]T, error)

	// FindOne returns the first document matching scope, or ErrNotFound.
	FindOne(ctx context.Context, scope Filter) (T, error)

	// Update merges the JSON encoding of patch into the stored document and
	// returns the result. Fields absent from the encoding are left unchanged,
	// so patch types should mark optional fields with omitempty.
	// Returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, id uuid.UUID, patch any) (T, error)

	// Delete removes a document, reporting whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// WithTx returns a Collection bound to the provided transaction.
	WithTx(tx *sql.Tx) Collection[T]
}
