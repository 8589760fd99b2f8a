package query

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidView is returned by NewView for a malformed configuration.
	ErrInvalidView = errors.New("invalid view configuration")
	// ErrUnknownTab reports a tab name the view does not define.
	ErrUnknownTab = errors.New("unknown tab")
	// ErrUnknownComparator reports a sort comparator the view does not define.
	ErrUnknownComparator = errors.New("unknown sort comparator")
	// ErrUnknownFilterField reports an equality filter on a field the view does not expose.
	ErrUnknownFilterField = errors.New("unknown filter field")
	// ErrInvalidSortDirection reports a sort direction other than asc or desc.
	ErrInvalidSortDirection = errors.New("invalid sort direction")
	// ErrAmbiguousSort reports a sort naming both a field and a comparator.
	ErrAmbiguousSort = errors.New("sort names both a field and a comparator")
	// ErrSearchNotSupported reports search text for a view without search fields.
	ErrSearchNotSupported = errors.New("view has no search fields")
)

// CriteriaError describes one malformed part of a Criteria for a given view.
type CriteriaError struct {
	View  string
	Field string
	Value string
	Err   error
}

func (e *CriteriaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("view %q: %v: %q", e.View, e.Err, e.Value)
	}
	return fmt.Sprintf("view %q: %s: %v: %q", e.View, e.Field, e.Err, e.Value)
}

func (e *CriteriaError) Unwrap() error {
	return e.Err
}
