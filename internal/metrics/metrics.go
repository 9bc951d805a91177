// Package metrics holds the Prometheus instruments for the timeline engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TimelineMetrics instruments the public timeline operations.
type TimelineMetrics struct {
	QueryDurationSeconds *prometheus.HistogramVec
	SlowQueriesTotal     *prometheus.CounterVec
	SourceFailuresTotal  *prometheus.CounterVec
	EventsReturnedTotal  *prometheus.CounterVec
}

// Default creates metrics registered with the default registry.
func Default() *TimelineMetrics {
	return New(prometheus.DefaultRegisterer)
}

// New creates a new set of timeline metrics on the given registerer.
func New(reg prometheus.Registerer) *TimelineMetrics {
	factory := promauto.With(reg)

	return &TimelineMetrics{
		QueryDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "timeline_query_duration_seconds",
				Help:    "Wall-clock duration of timeline operations",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"operation"},
		),
		SlowQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timeline_slow_queries_total",
				Help: "Operations exceeding the slow-query threshold",
			},
			[]string{"operation"},
		),
		SourceFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timeline_source_failures_total",
				Help: "Adapter query failures per source",
			},
			[]string{"source"},
		),
		EventsReturnedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timeline_events_returned_total",
				Help: "Events returned to callers per operation",
			},
			[]string{"operation"},
		),
	}
}
