package query

import (
	"testing"

	"github.com/asaidimu/go-portal/core/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	e := NewEngine(nil, WithMetrics(m))
	e.RegisterFilterFunction("fails", func(any, bool, FilterValue) (bool, error) {
		return false, assert.AnError
	})

	v := surveyView(t)
	Apply(e, v, surveys(), Criteria{})
	Apply(e, v, surveys(), Criteria{Tab: "Archived", Sort: SortSpec{Comparator: "most-liked"}})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.queries.WithLabelValues("surveys")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("surveys", FallbackUnknownTab)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("surveys", FallbackUnknownComparator)))

	failing := MustView(ViewConfig{
		Name: "failing",
		Tabs: []TabPredicate{NewTab("x").Where("a").Custom("fails", nil).Build()},
	})
	got := Apply(e, failing, []schema.Document{{"id": "1", "a": 1}}, Criteria{Tab: "x"})
	assert.Empty(t, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("failing", FallbackPredicateError)))

	assert.Equal(t, 2, testutil.CollectAndCount(m.queries))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observe("v", 1, []string{FallbackUnknownTab}) })

	unregistered := NewMetrics(nil)
	assert.NotPanics(t, func() { unregistered.observe("v", 0, nil) })
}
