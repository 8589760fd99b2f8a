package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/asaidimu/go-portal/core/schema"
)

var (
	// ErrNotFound reports a document id that is not stored.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateID reports an insert whose id is already stored.
	ErrDuplicateID = errors.New("duplicate document id")
	// ErrUnknownCollection reports a collection without a registered schema.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrClosed is returned by an interactor after Close.
	ErrClosed = errors.New("interactor closed")
)

// ValidationError carries the issues that made a document fail its schema.
type ValidationError struct {
	Collection string
	Issues     []schema.Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.Message)
	}
	return fmt.Sprintf("document does not conform to the %s schema: %s", e.Collection, strings.Join(msgs, "; "))
}
