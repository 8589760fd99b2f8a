package query

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Fallback kinds recorded when Apply leniently ignores part of a criteria.
const (
	FallbackUnknownTab        = "unknown_tab"
	FallbackUnknownComparator = "unknown_comparator"
	FallbackInvalidDirection  = "invalid_direction"
	FallbackAmbiguousSort     = "ambiguous_sort"
	FallbackPredicateError    = "predicate_error"
	FallbackSearchUnsupported = "search_unsupported"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	queries   *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	results   *prometheus.HistogramVec
}

// NewMetrics creates the engine collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "query",
			Name:      "total",
			Help:      "Number of list queries evaluated, by view.",
		}, []string{"view"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Subsystem: "query",
			Name:      "fallbacks_total",
			Help:      "Criteria parts ignored by lenient evaluation, by view and kind.",
		}, []string{"view", "kind"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portal",
			Subsystem: "query",
			Name:      "result_records",
			Help:      "Number of records returned per query, by view.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		}, []string{"view"}),
	}
	if reg != nil {
		reg.MustRegister(m.queries, m.fallbacks, m.results)
	}
	return m
}

func (m *Metrics) observe(view string, results int, fallbacks []string) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(view).Inc()
	m.results.WithLabelValues(view).Observe(float64(results))
	for _, kind := range fallbacks {
		m.fallbacks.WithLabelValues(view, kind).Inc()
	}
}
