package persistence

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/asaidimu/go-portal/core/query"
	"github.com/asaidimu/go-portal/core/schema"
	"go.uber.org/zap"
)

// Collection is the store of one kind of record. Every operation emits a
// start event and then a success or failed event on the collection's bus.
type Collection struct {
	collection *collectionBase
	bus        *events.TypedEventBus[PersistenceEvent]
	schema     *schema.SchemaDefinition
}

// NewCollection creates a collection over interactor for documents of s.
// A nil engine or logger gets a default.
func NewCollection(interactor DatabaseInteractor, s *schema.SchemaDefinition, engine *query.Engine, logger *zap.Logger) (*Collection, error) {
	if s == nil || s.Name == "" {
		return nil, fmt.Errorf("collection schema must have a name")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = query.NewEngine(logger)
	}
	bus, err := events.NewTypedEventBus[PersistenceEvent](events.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("could not initialize event bus: %w", err)
	}

	base := &collectionBase{
		schema:        s,
		interactor:    interactor,
		validator:     schema.NewValidator(s),
		engine:        engine,
		logger:        logger,
		bus:           bus,
		subscriptions: make(map[string]*SubscriptionInfo),
	}
	return &Collection{collection: base, bus: bus, schema: s}, nil
}

// Name returns the collection name.
func (e *Collection) Name() string { return e.schema.Name }

// Schema returns the schema documents are validated against.
func (e *Collection) Schema() *schema.SchemaDefinition { return e.schema }

// emitEvent is a helper method to emit events
func (e *Collection) emitEvent(event PersistenceEvent) {
	if e.bus != nil {
		e.bus.Emit(string(event.Type), event)
	}
}

// withEventEmission wraps an operation with start, success, and failure events
func (e *Collection) withEventEmission(
	operation string,
	startEventType PersistenceEventType,
	successEventType PersistenceEventType,
	failedEventType PersistenceEventType,
	input any,
	queryParam any,
	fn func() (any, error),
) (any, error) {
	startTime := time.Now()
	e.emitEvent(createEvent(startEventType, operation, e.schema.Name, input, nil, queryParam, nil, nil, startTime))

	result, err := fn()
	if err != nil {
		errStr := err.Error()
		var issues []schema.Issue
		var verr *ValidationError
		if errors.As(err, &verr) {
			issues = verr.Issues
		}
		e.emitEvent(createEvent(failedEventType, operation, e.schema.Name, input, nil, queryParam, &errStr, issues, startTime))
		return nil, err
	}

	e.emitEvent(createEvent(successEventType, operation, e.schema.Name, input, result, queryParam, nil, nil, startTime))
	return result, nil
}

// Create validates doc and stores it. A document without an id gets a
// generated one. The stored document is returned.
func (e *Collection) Create(ctx context.Context, doc schema.Document) (schema.Document, error) {
	result, err := e.withEventEmission("create", DocumentCreateStart, DocumentCreateSuccess, DocumentCreateFailed, doc, nil,
		func() (any, error) { return e.collection.create(ctx, doc) })
	if err != nil {
		return nil, err
	}
	return result.(schema.Document), nil
}

// Get returns the document stored under id.
func (e *Collection) Get(ctx context.Context, id string) (schema.Document, error) {
	result, err := e.withEventEmission("read", DocumentReadStart, DocumentReadSuccess, DocumentReadFailed, id, nil,
		func() (any, error) { return e.collection.get(ctx, id) })
	if err != nil {
		return nil, err
	}
	return result.(schema.Document), nil
}

// List returns every document in insertion order.
func (e *Collection) List(ctx context.Context) ([]schema.Document, error) {
	result, err := e.withEventEmission("list", DocumentReadStart, DocumentReadSuccess, DocumentReadFailed, nil, nil,
		func() (any, error) { return e.collection.list(ctx) })
	if err != nil {
		return nil, err
	}
	return result.([]schema.Document), nil
}

// Update merges patch into the document stored under id and returns the
// result. A nil value in patch removes the field. The merged document must
// satisfy the schema.
func (e *Collection) Update(ctx context.Context, id string, patch schema.Document) (schema.Document, error) {
	result, err := e.withEventEmission("update", DocumentUpdateStart, DocumentUpdateSuccess, DocumentUpdateFailed, patch, id,
		func() (any, error) { return e.collection.update(ctx, id, patch) })
	if err != nil {
		return nil, err
	}
	return result.(schema.Document), nil
}

// Delete removes the document stored under id.
func (e *Collection) Delete(ctx context.Context, id string) error {
	_, err := e.withEventEmission("delete", DocumentDeleteStart, DocumentDeleteSuccess, DocumentDeleteFailed, id, nil,
		func() (any, error) { return nil, e.collection.delete(ctx, id) })
	return err
}

// Query lists the collection and evaluates criteria against it through view.
func (e *Collection) Query(ctx context.Context, view *query.View, criteria query.Criteria) ([]schema.Document, error) {
	if view == nil {
		return nil, fmt.Errorf("query collection '%s': nil view", e.schema.Name)
	}
	result, err := e.withEventEmission("query", DocumentQueryStart, DocumentQuerySuccess, DocumentQueryFailed, view.Name(), criteria,
		func() (any, error) { return e.collection.query(ctx, view, criteria) })
	if err != nil {
		return nil, err
	}
	return result.([]schema.Document), nil
}

// Validate checks doc against the collection schema without storing it.
func (e *Collection) Validate(doc schema.Document, loose bool) *schema.ValidationResult {
	valid, issues := e.collection.validator.Validate(doc, loose)
	return &schema.ValidationResult{Valid: valid, Issues: issues}
}

// RegisterSubscription registers a callback for one event type and returns
// the subscription id.
func (e *Collection) RegisterSubscription(options RegisterSubscriptionOptions) string {
	id := e.collection.registerSubscription(options)
	e.emitEvent(createEvent(SubscriptionRegister, "subscribe", e.schema.Name, options.Label, id, nil, nil, nil, time.Time{}))
	return id
}

// UnregisterSubscription removes a subscription. Unknown ids are ignored.
func (e *Collection) UnregisterSubscription(id string) {
	if e.collection.unregisterSubscription(id) {
		e.emitEvent(createEvent(SubscriptionUnregister, "unsubscribe", e.schema.Name, id, nil, nil, nil, nil, time.Time{}))
	}
}

// Subscriptions returns the registered subscriptions ordered by event type.
func (e *Collection) Subscriptions() []SubscriptionInfo {
	e.collection.subMu.RLock()
	defer e.collection.subMu.RUnlock()
	out := make([]SubscriptionInfo, 0, len(e.collection.subscriptions))
	for _, info := range e.collection.subscriptions {
		out = append(out, *info)
	}
	slices.SortFunc(out, func(a, b SubscriptionInfo) int {
		if c := strings.Compare(string(a.Event), string(b.Event)); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}
