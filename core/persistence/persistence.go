// Package persistence stores portal records behind a DatabaseInteractor and
// answers list queries over them with the query engine.
package persistence

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/asaidimu/go-portal/core/query"
	"github.com/asaidimu/go-portal/core/schema"
	"go.uber.org/zap"
)

// Persistence owns the collections of one store. All collections share the
// interactor and the query engine.
type Persistence struct {
	interactor  DatabaseInteractor
	engine      *query.Engine
	logger      *zap.Logger
	mu          sync.RWMutex
	collections map[string]*Collection
}

// NewPersistence creates a store over interactor with a collection for each
// schema. A nil engine or logger gets a default.
func NewPersistence(interactor DatabaseInteractor, engine *query.Engine, logger *zap.Logger, schemas ...*schema.SchemaDefinition) (*Persistence, error) {
	if interactor == nil {
		return nil, fmt.Errorf("persistence requires a database interactor")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = query.NewEngine(logger)
	}
	p := &Persistence{
		interactor:  interactor,
		engine:      engine,
		logger:      logger,
		collections: make(map[string]*Collection),
	}
	for _, s := range schemas {
		if _, err := p.Create(s); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Create registers a collection for s. Names are unique within a store.
func (p *Persistence) Create(s *schema.SchemaDefinition) (*Collection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s != nil {
		if _, exists := p.collections[s.Name]; exists {
			return nil, fmt.Errorf("a collection named %q already exists", s.Name)
		}
	}
	c, err := NewCollection(p.interactor, s, p.engine, p.logger)
	if err != nil {
		return nil, err
	}
	p.collections[s.Name] = c
	p.logger.Debug("Registered collection", zap.String("collection", s.Name), zap.String("version", s.Version))
	return c, nil
}

// Collection returns the collection registered under name.
func (p *Persistence) Collection(name string) (*Collection, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return c, nil
}

// Collections returns the registered collection names, sorted.
func (p *Persistence) Collections() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.collections))
	for name := range p.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Seed creates every document of docs in the collection named by its key.
// Collections are seeded in name order. Documents are created last to first,
// so a collection lists them in slice order and anything created later comes
// ahead of them. Seeding stops at the first failure.
func (p *Persistence) Seed(ctx context.Context, docs map[string][]schema.Document) error {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c, err := p.Collection(name)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		for _, doc := range slices.Backward(docs[name]) {
			if _, err := c.Create(ctx, doc); err != nil {
				return fmt.Errorf("seed %s/%s: %w", name, doc.RecordID(), err)
			}
		}
		p.logger.Debug("Seeded collection", zap.String("collection", name), zap.Int("documents", len(docs[name])))
	}
	return nil
}

// Engine returns the engine queries run on.
func (p *Persistence) Engine() *query.Engine { return p.engine }

// Close closes the interactor.
func (p *Persistence) Close() error {
	return p.interactor.Close()
}
