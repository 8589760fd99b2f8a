package persistence

import (
	"context"

	"github.com/asaidimu/go-portal/core/schema"
)

// DatabaseInteractor stores documents keyed by their id in named collections.
// List returns documents in insertion order; an update keeps a document's
// position. Collections present that order newest first. Implementations report unknown ids with ErrNotFound and id
// conflicts with ErrDuplicateID.
type DatabaseInteractor interface {
	Insert(ctx context.Context, collection string, doc schema.Document) error
	Get(ctx context.Context, collection, id string) (schema.Document, error)
	List(ctx context.Context, collection string) ([]schema.Document, error)
	// Update replaces the stored document with the same id.
	Update(ctx context.Context, collection string, doc schema.Document) error
	Delete(ctx context.Context, collection, id string) error
	Close() error
}
