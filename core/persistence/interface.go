package persistence

import (
	"context"

	"github.com/asaidimu/go-portal/core/schema"
)

// PersistenceEventType defines the possible event types for persistence operations.
type PersistenceEventType string

const (
	DocumentCreateStart    PersistenceEventType = "document:create:start"
	DocumentCreateSuccess  PersistenceEventType = "document:create:success"
	DocumentCreateFailed   PersistenceEventType = "document:create:failed"
	DocumentReadStart      PersistenceEventType = "document:read:start"
	DocumentReadSuccess    PersistenceEventType = "document:read:success"
	DocumentReadFailed     PersistenceEventType = "document:read:failed"
	DocumentUpdateStart    PersistenceEventType = "document:update:start"
	DocumentUpdateSuccess  PersistenceEventType = "document:update:success"
	DocumentUpdateFailed   PersistenceEventType = "document:update:failed"
	DocumentDeleteStart    PersistenceEventType = "document:delete:start"
	DocumentDeleteSuccess  PersistenceEventType = "document:delete:success"
	DocumentDeleteFailed   PersistenceEventType = "document:delete:failed"
	DocumentQueryStart     PersistenceEventType = "document:query:start"
	DocumentQuerySuccess   PersistenceEventType = "document:query:success"
	DocumentQueryFailed    PersistenceEventType = "document:query:failed"
	SubscriptionRegister   PersistenceEventType = "subscription:register"
	SubscriptionUnregister PersistenceEventType = "subscription:unregister"
)

// PersistenceEvent represents events emitted during persistence operations.
type PersistenceEvent struct {
	Type       PersistenceEventType `json:"type"`
	Timestamp  int64                `json:"timestamp"` // Unix milliseconds.
	Operation  string               `json:"operation"`
	Collection string               `json:"collection"`
	Input      any                  `json:"input,omitempty"`
	Output     any                  `json:"output,omitempty"`
	Error      *string              `json:"error,omitempty"`
	Issues     []schema.Issue       `json:"issues,omitempty"`
	Query      any                  `json:"query,omitempty"`
	Duration   *int64               `json:"duration,omitempty"` // Milliseconds.
}

// EventCallbackFunction receives the events of a subscription.
type EventCallbackFunction func(ctx context.Context, event PersistenceEvent) error

// SubscriptionInfo describes a subscription configuration.
type SubscriptionInfo struct {
	ID          string               `json:"id"`
	Event       PersistenceEventType `json:"event"`
	Label       string               `json:"label,omitempty"`
	Description string               `json:"description,omitempty"`
	unsubscribe func()
}

// RegisterSubscriptionOptions defines options for registering a subscription.
type RegisterSubscriptionOptions struct {
	Event       PersistenceEventType
	Label       string
	Description string
	Callback    EventCallbackFunction
}
