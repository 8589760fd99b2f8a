package persistence

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/asaidimu/go-portal/core/portal"
	"github.com/asaidimu/go-portal/core/query"
	"github.com/asaidimu/go-portal/core/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedNow = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func noticeSchema() *schema.SchemaDefinition {
	return schema.NewSchema("notices", "1.0.0",
		schema.Required("id", schema.FieldTypeString),
		schema.Required("title", schema.FieldTypeString),
		schema.Optional("likes", schema.FieldTypeInteger),
		schema.Enum("status", false, "Draft", "Published"),
	)
}

func newNotices(t *testing.T) *Collection {
	t.Helper()
	c, err := NewCollection(NewMemoryInteractor(), noticeSchema(), nil, nil)
	require.NoError(t, err)
	return c
}

func TestNewCollection_RequiresNamedSchema(t *testing.T) {
	_, err := NewCollection(NewMemoryInteractor(), nil, nil, nil)
	assert.Error(t, err)
	_, err = NewCollection(NewMemoryInteractor(), &schema.SchemaDefinition{}, nil, nil)
	assert.Error(t, err)
}

func TestCollection_Create(t *testing.T) {
	ctx := context.Background()
	c := newNotices(t)

	t.Run("keeps given id", func(t *testing.T) {
		doc, err := c.Create(ctx, schema.Document{"id": "n1", "title": "Gala"})
		require.NoError(t, err)
		assert.Equal(t, "n1", doc.RecordID())
	})

	t.Run("generates missing id", func(t *testing.T) {
		input := schema.Document{"title": "Hội thao"}
		doc, err := c.Create(ctx, input)
		require.NoError(t, err)
		_, err = uuid.Parse(doc.RecordID())
		assert.NoError(t, err)
		assert.NotContains(t, input, "id", "input must not be modified")

		stored, err := c.Get(ctx, doc.RecordID())
		require.NoError(t, err)
		assert.Equal(t, "Hội thao", stored["title"])
	})

	t.Run("rejects invalid document", func(t *testing.T) {
		_, err := c.Create(ctx, schema.Document{"id": "n2", "status": "Archived"})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "notices", verr.Collection)

		codes := make([]string, 0, len(verr.Issues))
		for _, issue := range verr.Issues {
			codes = append(codes, issue.Code)
		}
		assert.ElementsMatch(t, []string{schema.IssueInvalidEnumValue, schema.IssueRequiredFieldMissing}, codes)

		_, err = c.Get(ctx, "n2")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := c.Create(ctx, schema.Document{"id": "n1", "title": "again"})
		assert.ErrorIs(t, err, ErrDuplicateID)
	})
}

func TestCollection_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		id       string
		patch    schema.Document
		expected schema.Document
		errIs    error
		invalid  bool
	}{
		{
			name:     "merges fields",
			id:       "n1",
			patch:    schema.Document{"likes": 12, "status": "Published"},
			expected: schema.Document{"id": "n1", "title": "Gala", "likes": 12, "status": "Published"},
		},
		{
			name:     "nil removes a field",
			id:       "n1",
			patch:    schema.Document{"status": nil},
			expected: schema.Document{"id": "n1", "title": "Gala", "likes": 3},
		},
		{
			name:    "removing a required field fails",
			id:      "n1",
			patch:   schema.Document{"title": nil},
			invalid: true,
		},
		{
			name:    "invalid enum",
			id:      "n1",
			patch:   schema.Document{"status": "Hidden"},
			invalid: true,
		},
		{
			name:    "unexpected field",
			id:      "n1",
			patch:   schema.Document{"author": "HH001"},
			invalid: true,
		},
		{
			name:  "unknown id",
			id:    "missing",
			patch: schema.Document{"likes": 1},
			errIs: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newNotices(t)
			_, err := c.Create(ctx, schema.Document{"id": "n1", "title": "Gala", "likes": 3, "status": "Draft"})
			require.NoError(t, err)

			got, err := c.Update(ctx, tt.id, tt.patch)
			switch {
			case tt.invalid:
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr), "got %v", err)
				stored, gerr := c.Get(ctx, "n1")
				require.NoError(t, gerr)
				assert.Equal(t, "Draft", stored["status"], "failed update must not be stored")
			case tt.errIs != nil:
				assert.ErrorIs(t, err, tt.errIs)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
				stored, gerr := c.Get(ctx, tt.id)
				require.NoError(t, gerr)
				assert.Equal(t, tt.expected, stored)
			}
		})
	}
}

func TestCollection_UpdateCannotChangeID(t *testing.T) {
	ctx := context.Background()
	c := newNotices(t)
	_, err := c.Create(ctx, schema.Document{"id": "n1", "title": "Gala"})
	require.NoError(t, err)

	_, err = c.Update(ctx, "n1", schema.Document{"id": "n2"})
	assert.Error(t, err)

	_, err = c.Update(ctx, "n1", schema.Document{"id": "n1", "title": "Gala 2024"})
	assert.NoError(t, err)
}

func TestCollection_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	c := newNotices(t)
	for _, id := range []string{"3", "1", "2"} {
		_, err := c.Create(ctx, schema.Document{"id": id, "title": "t" + id})
		require.NoError(t, err)
	}

	require.NoError(t, c.Delete(ctx, "1"))
	assert.ErrorIs(t, c.Delete(ctx, "1"), ErrNotFound)

	docs, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, ids(docs), "most recently created first")
}

func TestCollection_Query(t *testing.T) {
	ctx := context.Background()
	seed, err := portal.LoadSeed()
	require.NoError(t, err)
	colls, err := seed.Collections()
	require.NoError(t, err)

	engine := query.NewEngine(nil, query.WithClock(func() time.Time { return seedNow }))
	c, err := NewCollection(NewMemoryInteractor(), portal.SurveySchema(portal.ViewSurveys), engine, nil)
	require.NoError(t, err)
	for _, doc := range colls[portal.ViewSurveys] {
		_, err := c.Create(ctx, doc)
		require.NoError(t, err)
	}

	tests := []struct {
		name     string
		criteria query.Criteria
		expected []string
	}{
		{"open tab", query.Criteria{Tab: portal.TabOpen}, []string{"2", "1"}},
		{"expired tab", query.Criteria{Tab: portal.TabExpired}, []string{"4"}},
		{"ending soon", query.Criteria{Sort: query.SortSpec{Comparator: portal.SortEndingSoon}}, []string{"4", "3", "2", "1", "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := c.Query(ctx, portal.SurveyView(), tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(docs))
		})
	}

	_, err = c.Query(ctx, nil, query.Criteria{})
	assert.Error(t, err)
}

func TestCollection_Events(t *testing.T) {
	ctx := context.Background()
	c := newNotices(t)

	var created atomic.Int32
	var mu sync.Mutex
	var failed []PersistenceEvent

	c.RegisterSubscription(RegisterSubscriptionOptions{
		Event: DocumentCreateSuccess,
		Label: "count",
		Callback: func(ctx context.Context, event PersistenceEvent) error {
			created.Add(1)
			return nil
		},
	})
	c.RegisterSubscription(RegisterSubscriptionOptions{
		Event: DocumentCreateFailed,
		Callback: func(ctx context.Context, event PersistenceEvent) error {
			mu.Lock()
			defer mu.Unlock()
			failed = append(failed, event)
			return nil
		},
	})

	_, err := c.Create(ctx, schema.Document{"id": "1", "title": "a"})
	require.NoError(t, err)
	_, err = c.Create(ctx, schema.Document{"id": "2", "title": "b"})
	require.NoError(t, err)
	_, err = c.Create(ctx, schema.Document{"id": "3"})
	require.Error(t, err)

	assert.Eventually(t, func() bool { return created.Load() == 2 }, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(failed) == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	event := failed[0]
	mu.Unlock()
	assert.Equal(t, DocumentCreateFailed, event.Type)
	assert.Equal(t, "create", event.Operation)
	assert.Equal(t, "notices", event.Collection)
	require.NotNil(t, event.Error)
	require.Len(t, event.Issues, 1)
	assert.Equal(t, schema.IssueRequiredFieldMissing, event.Issues[0].Code)
	assert.NotNil(t, event.Duration)
}

func TestCollection_QueryEventCarriesCriteria(t *testing.T) {
	ctx := context.Background()
	c := newNotices(t)

	events := make(chan PersistenceEvent, 1)
	c.RegisterSubscription(RegisterSubscriptionOptions{
		Event: DocumentQuerySuccess,
		Callback: func(ctx context.Context, event PersistenceEvent) error {
			events <- event
			return nil
		},
	})

	view := query.MustView(query.ViewConfig{Name: "notices", SearchFields: []string{"title"}})
	criteria := query.Criteria{SearchText: "gala"}
	_, err := c.Query(ctx, view, criteria)
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, "notices", event.Input)
		assert.Equal(t, criteria, event.Query)
	case <-time.After(time.Second):
		t.Fatal("query event not delivered")
	}
}

func TestCollection_Subscriptions(t *testing.T) {
	c := newNotices(t)
	noop := func(ctx context.Context, event PersistenceEvent) error { return nil }

	a := c.RegisterSubscription(RegisterSubscriptionOptions{Event: DocumentUpdateSuccess, Label: "audit", Callback: noop})
	b := c.RegisterSubscription(RegisterSubscriptionOptions{Event: DocumentCreateSuccess, Callback: noop})
	assert.NotEqual(t, a, b)

	subs := c.Subscriptions()
	require.Len(t, subs, 2)
	assert.Equal(t, DocumentCreateSuccess, subs[0].Event)
	assert.Equal(t, "audit", subs[1].Label)

	c.UnregisterSubscription(a)
	c.UnregisterSubscription("unknown")
	subs = c.Subscriptions()
	require.Len(t, subs, 1)
	assert.Equal(t, b, subs[0].ID)
}

func TestCollection_UnregisteredCallbackStopsReceiving(t *testing.T) {
	ctx := context.Background()
	c := newNotices(t)

	var calls atomic.Int32
	id := c.RegisterSubscription(RegisterSubscriptionOptions{
		Event: DocumentDeleteSuccess,
		Callback: func(ctx context.Context, event PersistenceEvent) error {
			calls.Add(1)
			return nil
		},
	})

	_, err := c.Create(ctx, schema.Document{"id": "1", "title": "a"})
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, "1"))
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)

	c.UnregisterSubscription(id)
	_, err = c.Create(ctx, schema.Document{"id": "2", "title": "b"})
	require.NoError(t, err)
	require.NoError(t, c.Delete(ctx, "2"))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCollection_Validate(t *testing.T) {
	c := newNotices(t)

	result := c.Validate(schema.Document{"likes": 2}, true)
	assert.True(t, result.Valid)

	result = c.Validate(schema.Document{"likes": 2}, false)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Issues)
}
