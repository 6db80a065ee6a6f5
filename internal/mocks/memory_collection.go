package mocks

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/spending-api/internal/store"
)

// MemoryCollection is an in-memory store.Collection. Documents are stored as
// JSON so that filters and merge patches see the same field names as the
// database-backed collections.
type MemoryCollection[T store.Document] struct {
	mu       sync.Mutex
	docs     map[uuid.UUID]map[string]any
	order    []uuid.UUID
	notFound error
	newDoc   func() T

	// Err, when set, is returned by every operation.
	Err error
}

// NewMemoryCollection creates an empty collection. notFound is returned for
// missing documents; newDoc allocates a fresh T for decoding.
func NewMemoryCollection[T store.Document](notFound error, newDoc func() T) *MemoryCollection[T] {
	return &MemoryCollection[T]{
		docs:     make(map[uuid.UUID]map[string]any),
		notFound: notFound,
		newDoc:   newDoc,
	}
}

var _ store.Collection[store.Document] = (*MemoryCollection[store.Document])(nil)

// Save stores doc, assigning an ID if it has none.
func (c *MemoryCollection[T]) Save(_ context.Context, doc T) error {
	if c.Err != nil {
		return c.Err
	}
	if doc.DocumentID() == uuid.Nil {
		doc.SetDocumentID(uuid.New())
	}
	fields, err := toFields(doc)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[doc.DocumentID()]; ok {
		return store.ErrDuplicate
	}
	c.docs[doc.DocumentID()] = fields
	c.order = append(c.order, doc.DocumentID())
	return nil
}

// Get returns the document with the given ID.
func (c *MemoryCollection[T]) Get(_ context.Context, id uuid.UUID) (T, error) {
	var zero T
	if c.Err != nil {
		return zero, c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fields, ok := c.docs[id]
	if !ok {
		return zero, c.notFound
	}
	return c.decode(id, fields)
}

// GetAll returns matching documents in insertion order.
func (c *MemoryCollection[T]) GetAll(_ context.Context, filter store.Filter) ([]T, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, 0)
	for _, id := range c.order {
		fields := c.docs[id]
		if !matches(fields, filter) {
			continue
		}
		doc, err := c.decode(id, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// FindOne returns the first matching document.
func (c *MemoryCollection[T]) FindOne(ctx context.Context, filter store.Filter) (T, error) {
	var zero T
	docs, err := c.GetAll(ctx, filter)
	if err != nil {
		return zero, err
	}
	if len(docs) == 0 {
		return zero, c.notFound
	}
	return docs[0], nil
}

// Update merges the top-level fields of patch into the stored document.
func (c *MemoryCollection[T]) Update(_ context.Context, id uuid.UUID, patch any) (T, error) {
	var zero T
	if c.Err != nil {
		return zero, c.Err
	}
	changes := map[string]any{}
	if patch != nil {
		raw, err := json.Marshal(patch)
		if err != nil {
			return zero, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		if err := json.Unmarshal(raw, &changes); err != nil {
			return zero, fmt.Errorf("%w: patch must be an object", store.ErrInvalidEntity)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fields, ok := c.docs[id]
	if !ok {
		return zero, c.notFound
	}
	for k, v := range changes {
		fields[k] = v
	}
	return c.decode(id, fields)
}

// Delete removes the document and reports whether it existed.
func (c *MemoryCollection[T]) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if c.Err != nil {
		return false, c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return false, nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// WithTx returns the collection itself; MemoryCollection has no transactions.
func (c *MemoryCollection[T]) WithTx(*sql.Tx) store.Collection[T] {
	return c
}

// Len returns the number of stored documents.
func (c *MemoryCollection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

func (c *MemoryCollection[T]) decode(id uuid.UUID, fields map[string]any) (T, error) {
	doc := c.newDoc()
	raw, err := json.Marshal(fields)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return doc, err
	}
	doc.SetDocumentID(id)
	return doc, nil
}

func toFields(doc any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return fields, nil
}

func matches(fields map[string]any, filter store.Filter) bool {
	for k, want := range filter {
		if fmt.Sprint(fields[k]) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}
