package docstore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/google/uuid"
	"github.com/phrazzld/spending-api/internal/redact"
	"github.com/phrazzld/spending-api/internal/store"
)

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Options configures a Collection.
type Options struct {
	// Table is the backing table name. Required.
	Table string

	// NotFound is returned when a document is missing. Defaults to store.ErrNotFound.
	NotFound error

	// Duplicate is returned on uniqueness violations. Defaults to store.ErrDuplicate.
	Duplicate error
}

// Collection is a store.Collection backed by a SQL table of JSON documents.
type Collection[T store.Document] struct {
	db      store.DBTX
	dialect Dialect
	opts    Options
	logger  *slog.Logger
}

// New creates a Collection over the given connection or transaction.
// If logger is nil, a default logger will be used.
func New[T store.Document](db store.DBTX, dialect Dialect, opts Options, logger *slog.Logger) *Collection[T] {
	if db == nil {
		panic("db cannot be nil")
	}
	if dialect == nil {
		panic("dialect cannot be nil")
	}
	if !tableNamePattern.MatchString(opts.Table) {
		panic(fmt.Sprintf("invalid table name %q", opts.Table))
	}
	if opts.NotFound == nil {
		opts.NotFound = store.ErrNotFound
	}
	if opts.Duplicate == nil {
		opts.Duplicate = store.ErrDuplicate
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Collection[T]{
		db:      db,
		dialect: dialect,
		opts:    opts,
		logger:  logger.With(slog.String("component", "docstore"), slog.String("collection", opts.Table)),
	}
}

var _ store.Collection[store.Document] = (*Collection[store.Document])(nil)

// Save implements store.Collection.Save.
func (c *Collection[T]) Save(ctx context.Context, doc T) error {
	if doc.DocumentID() == uuid.Nil {
		doc.SetDocumentID(uuid.New())
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", store.ErrInvalidEntity, err)
	}

	_, err = c.db.ExecContext(ctx, c.dialect.InsertQuery(c.opts.Table), doc.DocumentID().String(), string(body))
	if err != nil {
		return c.mapError(ctx, "save", err)
	}

	c.logger.DebugContext(ctx, "document saved", slog.String("id", doc.DocumentID().String()))
	return nil
}

// Get implements store.Collection.Get.
func (c *Collection[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	row := c.db.QueryRowContext(ctx, c.dialect.GetQuery(c.opts.Table), id.String())
	doc, err := c.scan(row)
	if err != nil {
		var zero T
		return zero, c.mapError(ctx, "get", err)
	}
	return doc, nil
}

// GetAll implements store.Collection.GetAll.
func (c *Collection[T]) GetAll(ctx context.Context, scope store.Filter) ([]T, error) {
	return c.list(ctx, "get_all", scope, 0)
}

// FindOne implements store.Collection.FindOne.
func (c *Collection[T]) FindOne(ctx context.Context, scope store.Filter) (T, error) {
	var zero T
	docs, err := c.list(ctx, "find_one", scope, 1)
	if err != nil {
		return zero, err
	}
	if len(docs) == 0 {
		return zero, c.opts.NotFound
	}
	return docs[0], nil
}

// Update implements store.Collection.Update.
func (c *Collection[T]) Update(ctx context.Context, id uuid.UUID, patch any) (T, error) {
	var zero T

	encoded := []byte("{}")
	if patch != nil {
		var err error
		encoded, err = json.Marshal(patch)
		if err != nil {
			return zero, fmt.Errorf("%w: encode patch: %v", store.ErrInvalidEntity, err)
		}
	}
	if !bytes.HasPrefix(encoded, []byte("{")) {
		return zero, fmt.Errorf("%w: patch must encode to a JSON object", store.ErrInvalidEntity)
	}

	row := c.db.QueryRowContext(ctx, c.dialect.MergeQuery(c.opts.Table), id.String(), string(encoded))
	doc, err := c.scan(row)
	if err != nil {
		return zero, c.mapError(ctx, "update", err)
	}

	c.logger.DebugContext(ctx, "document updated", slog.String("id", id.String()))
	return doc, nil
}

// Delete implements store.Collection.Delete.
func (c *Collection[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := c.db.ExecContext(ctx, c.dialect.DeleteQuery(c.opts.Table), id.String())
	if err != nil {
		return false, c.mapError(ctx, "delete", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, c.mapError(ctx, "delete", err)
	}
	return affected > 0, nil
}

// WithTx implements store.Collection.WithTx.
func (c *Collection[T]) WithTx(tx *sql.Tx) store.Collection[T] {
	return &Collection[T]{
		db:      tx,
		dialect: c.dialect,
		opts:    c.opts,
		logger:  c.logger,
	}
}

func (c *Collection[T]) list(ctx context.Context, op string, scope store.Filter, limit int) ([]T, error) {
	query, args, err := c.dialect.ListQuery(c.opts.Table, scope, limit)
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, c.mapError(ctx, op, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "failed to close rows", slog.String("error", redact.Error(closeErr)))
		}
	}()

	docs := make([]T, 0)
	for rows.Next() {
		doc, err := c.scan(rows)
		if err != nil {
			return nil, c.mapError(ctx, op, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, c.mapError(ctx, op, err)
	}
	return docs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (c *Collection[T]) scan(row scanner) (T, error) {
	var (
		doc  T
		id   string
		body []byte
	)
	if err := row.Scan(&id, &body); err != nil {
		return doc, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return doc, fmt.Errorf("%w: stored id %q: %v", store.ErrInvalidEntity, id, err)
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return doc, fmt.Errorf("%w: decode document %s: %v", store.ErrInvalidEntity, id, err)
	}
	doc.SetDocumentID(parsed)
	return doc, nil
}

// mapError converts an error from the database into the collection's error
// vocabulary. Anything the dialect cannot classify becomes a *store.StoreError.
func (c *Collection[T]) mapError(ctx context.Context, op string, err error) error {
	if errors.Is(err, store.ErrInvalidEntity) {
		return err
	}

	mapped := c.dialect.MapError(err)
	switch {
	case store.IsNotFoundError(mapped):
		return c.opts.NotFound
	case store.IsDuplicateError(mapped):
		return c.opts.Duplicate
	case errors.Is(mapped, store.ErrInvalidEntity):
		return mapped
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}

	c.logger.ErrorContext(ctx, "database operation failed",
		slog.String("operation", op),
		slog.String("error", redact.Error(err)))
	return store.NewStoreError(c.opts.Table, op, "database operation failed", err)
}
