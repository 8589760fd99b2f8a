package persistence

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/asaidimu/go-portal/core/schema"
)

type memoryCollection struct {
	order []string
	docs  map[string]schema.Document
}

// MemoryInteractor keeps documents in process memory. It is safe for
// concurrent use and hands out copies, never its own maps.
type MemoryInteractor struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
	closed      bool
}

// NewMemoryInteractor creates an empty in-memory store.
func NewMemoryInteractor() *MemoryInteractor {
	return &MemoryInteractor{collections: make(map[string]*memoryCollection)}
}

func (m *MemoryInteractor) Insert(ctx context.Context, collection string, doc schema.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	id := doc.RecordID()
	if id == "" {
		return fmt.Errorf("insert into %s: document has no id", collection)
	}
	c, ok := m.collections[collection]
	if !ok {
		c = &memoryCollection{docs: make(map[string]schema.Document)}
		m.collections[collection] = c
	}
	if _, exists := c.docs[id]; exists {
		return fmt.Errorf("insert %s into %s: %w", id, collection, ErrDuplicateID)
	}
	c.order = append(c.order, id)
	c.docs[id] = doc.Clone()
	return nil
}

func (m *MemoryInteractor) Get(ctx context.Context, collection, id string) (schema.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	c, ok := m.collections[collection]
	if !ok {
		return nil, fmt.Errorf("get %s from %s: %w", id, collection, ErrNotFound)
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, fmt.Errorf("get %s from %s: %w", id, collection, ErrNotFound)
	}
	return doc.Clone(), nil
}

func (m *MemoryInteractor) List(ctx context.Context, collection string) ([]schema.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}

	c, ok := m.collections[collection]
	if !ok {
		return []schema.Document{}, nil
	}
	out := make([]schema.Document, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.docs[id].Clone())
	}
	return out, nil
}

func (m *MemoryInteractor) Update(ctx context.Context, collection string, doc schema.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	id := doc.RecordID()
	c, ok := m.collections[collection]
	if !ok {
		return fmt.Errorf("update %s in %s: %w", id, collection, ErrNotFound)
	}
	if _, exists := c.docs[id]; !exists {
		return fmt.Errorf("update %s in %s: %w", id, collection, ErrNotFound)
	}
	c.docs[id] = doc.Clone()
	return nil
}

func (m *MemoryInteractor) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	c, ok := m.collections[collection]
	if !ok {
		return fmt.Errorf("delete %s from %s: %w", id, collection, ErrNotFound)
	}
	if _, exists := c.docs[id]; !exists {
		return fmt.Errorf("delete %s from %s: %w", id, collection, ErrNotFound)
	}
	delete(c.docs, id)
	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == id })
	return nil
}

// Close drops every document. Later calls fail with ErrClosed.
func (m *MemoryInteractor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.collections = nil
	return nil
}
