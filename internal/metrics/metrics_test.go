package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersInstruments(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.QueryDurationSeconds.WithLabelValues("get_events").Observe(0.02)
	m.SlowQueriesTotal.WithLabelValues("get_events").Inc()
	m.SourceFailuresTotal.WithLabelValues("tasks").Inc()
	m.EventsReturnedTotal.WithLabelValues("get_events").Add(11)

	if got := testutil.ToFloat64(m.SlowQueriesTotal.WithLabelValues("get_events")); got != 1 {
		t.Fatalf("slow queries: %v", got)
	}
	if got := testutil.ToFloat64(m.SourceFailuresTotal.WithLabelValues("tasks")); got != 1 {
		t.Fatalf("source failures: %v", got)
	}
	if got := testutil.ToFloat64(m.EventsReturnedTotal.WithLabelValues("get_events")); got != 11 {
		t.Fatalf("events returned: %v", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 4 {
		t.Fatalf("metric families: %d", len(families))
	}
}
