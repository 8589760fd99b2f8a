package persistence

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/asaidimu/go-events"
	"github.com/asaidimu/go-portal/core/query"
	"github.com/asaidimu/go-portal/core/schema"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// collectionBase performs the store operations of one collection. Collection
// wraps it with event emission.
type collectionBase struct {
	schema        *schema.SchemaDefinition
	interactor    DatabaseInteractor
	validator     *schema.Validator
	engine        *query.Engine
	logger        *zap.Logger
	bus           *events.TypedEventBus[PersistenceEvent]
	subscriptions map[string]*SubscriptionInfo
	subMu         sync.RWMutex
}

func (c *collectionBase) validate(doc schema.Document, loose bool) error {
	valid, issues := c.validator.Validate(doc, loose)
	if !valid {
		return &ValidationError{Collection: c.schema.Name, Issues: issues}
	}
	return nil
}

func (c *collectionBase) create(ctx context.Context, doc schema.Document) (schema.Document, error) {
	record := doc.Clone()
	if record.RecordID() == "" {
		record[schema.IDField] = uuid.NewString()
	}
	if err := c.validate(record, false); err != nil {
		return nil, err
	}
	if err := c.interactor.Insert(ctx, c.schema.Name, record); err != nil {
		return nil, fmt.Errorf("failed to insert into collection '%s': %w", c.schema.Name, err)
	}
	c.logger.Debug("Document created",
		zap.String("collection", c.schema.Name),
		zap.String("id", record.RecordID()))
	return record, nil
}

func (c *collectionBase) get(ctx context.Context, id string) (schema.Document, error) {
	doc, err := c.interactor.Get(ctx, c.schema.Name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read from collection '%s': %w", c.schema.Name, err)
	}
	return doc, nil
}

// list returns the documents most recently created first, the order list
// screens show before any sort applies.
func (c *collectionBase) list(ctx context.Context) ([]schema.Document, error) {
	docs, err := c.interactor.List(ctx, c.schema.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection '%s': %w", c.schema.Name, err)
	}
	slices.Reverse(docs)
	return docs, nil
}

// update merges patch into the stored document: keys with a nil value are
// removed, all others overwrite. The id cannot change.
func (c *collectionBase) update(ctx context.Context, id string, patch schema.Document) (schema.Document, error) {
	if pid, ok := patch[schema.IDField]; ok && fmt.Sprint(pid) != id {
		return nil, fmt.Errorf("update %s in collection '%s': id cannot change to %v", id, c.schema.Name, pid)
	}
	if err := c.validate(withoutNulls(patch), true); err != nil {
		return nil, err
	}

	current, err := c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	for k, v := range patch {
		if v == nil {
			delete(current, k)
			continue
		}
		current[k] = v
	}
	if err := c.validate(current, false); err != nil {
		return nil, err
	}

	if err := c.interactor.Update(ctx, c.schema.Name, current); err != nil {
		return nil, fmt.Errorf("failed to update collection '%s': %w", c.schema.Name, err)
	}
	c.logger.Debug("Document updated",
		zap.String("collection", c.schema.Name),
		zap.String("id", id),
		zap.Int("fields", len(patch)))
	return current, nil
}

func (c *collectionBase) delete(ctx context.Context, id string) error {
	if err := c.interactor.Delete(ctx, c.schema.Name, id); err != nil {
		return fmt.Errorf("failed to delete from collection '%s': %w", c.schema.Name, err)
	}
	c.logger.Debug("Document deleted",
		zap.String("collection", c.schema.Name),
		zap.String("id", id))
	return nil
}

func (c *collectionBase) query(ctx context.Context, view *query.View, criteria query.Criteria) ([]schema.Document, error) {
	docs, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	return query.Apply(c.engine, view, docs, criteria), nil
}

// registerSubscription registers a collection-scoped subscription.
func (c *collectionBase) registerSubscription(options RegisterSubscriptionOptions) string {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	unsubscribe := c.bus.Subscribe(string(options.Event), options.Callback)
	id := uuid.NewString()

	c.subscriptions[id] = &SubscriptionInfo{
		ID:          id,
		Event:       options.Event,
		Label:       options.Label,
		Description: options.Description,
		unsubscribe: unsubscribe,
	}
	return id
}

// unregisterSubscription reports whether id named a live subscription.
func (c *collectionBase) unregisterSubscription(id string) bool {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	info := c.subscriptions[id]
	if info == nil {
		return false
	}
	info.unsubscribe()
	delete(c.subscriptions, id)
	return true
}

func withoutNulls(doc schema.Document) schema.Document {
	out := make(schema.Document, len(doc))
	for k, v := range doc {
		if v != nil {
			out[k] = v
		}
	}
	return out
}
