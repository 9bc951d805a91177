// Package timeline implements the unified timeline aggregation engine: six
// source adapters, a normalizer, a cross-source merge with filtering and
// pagination, and the stats/deadline projections.
package timeline

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/metrics"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
)

const (
	defaultSlowQueryThreshold = 1000 * time.Millisecond
	defaultAdapterTimeout     = 5 * time.Second
)

// Service is the aggregation engine. It owns no state beyond its
// collaborators and is safe for concurrent use.
type Service struct {
	store    store.Store
	adapters []sourceAdapter
	log      zerolog.Logger
	metrics  *metrics.TimelineMetrics

	now                func() time.Time
	slowQueryThreshold time.Duration
	adapterTimeout     time.Duration
}

// Option customizes a Service.
type Option func(*Service)

// WithClock substitutes the wall clock; tests use it to pin "now".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMetrics attaches Prometheus instruments.
func WithMetrics(m *metrics.TimelineMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSlowQueryThreshold overrides the slow-query warning threshold.
func WithSlowQueryThreshold(d time.Duration) Option {
	return func(s *Service) { s.slowQueryThreshold = d }
}

// WithAdapterTimeout bounds each fan-out leg so one slow source cannot
// degrade the whole aggregate.
func WithAdapterTimeout(d time.Duration) Option {
	return func(s *Service) { s.adapterTimeout = d }
}

// NewService builds the engine over a store. Adapter registration order is
// fixed; together with the stable sort it makes output ordering
// deterministic for identical inputs and source snapshots.
func NewService(st store.Store, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store: st,
		log:   log,
		adapters: []sourceAdapter{
			&taskAdapter{tasks: st.Tasks()},
			&appointmentAdapter{appts: st.Appointments()},
			&auditAdapter{audits: st.AuditLogs()},
			&agentAdapter{events: st.AgentActions()},
			&emailAdapter{emails: st.Emails()},
			&chatAdapter{chats: st.Chats()},
			&callAdapter{calls: st.Calls()},
			&documentAdapter{docs: st.Documents()},
		},
		now:                time.Now,
		slowQueryThreshold: defaultSlowQueryThreshold,
		adapterTimeout:     defaultAdapterTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetEvents fans out to the adapters selected by the type filter, merges the
// normalized results into one chronological ordering and returns the
// requested page. Fan-out is fail-fast: the first failing source cancels its
// siblings and the error names the source.
func (s *Service) GetEvents(ctx context.Context, q *model.TimelineQuery) (*model.TimelineResult, error) {
	if err := q.Normalize(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer s.observe("get_events", start)

	f := fetchFilter{
		scope:            q.Scope,
		entityID:         q.Scope.EntityID(),
		from:             q.FromDate,
		to:               q.ToDate,
		includeCompleted: q.CompletedVisible(),
		search:           q.Search,
		priorities:       q.Priorities,
		agentStatuses:    q.AgentActionStatuses,
		now:              s.now(),
	}

	g, gctx := errgroup.WithContext(ctx)
	results := make([][]model.TimelineEvent, len(s.adapters))
	for i, a := range s.adapters {
		i, a := i, a
		if !adapterSelected(a, q) {
			continue
		}
		g.Go(func() error {
			actx, cancel := context.WithTimeout(gctx, s.adapterTimeout)
			defer cancel()
			evs, err := a.fetch(actx, f)
			if err != nil {
				if s.metrics != nil {
					s.metrics.SourceFailuresTotal.WithLabelValues(a.source()).Inc()
				}
				return &model.SourceError{Source: a.source(), Err: err}
			}
			results[i] = evs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("entity_id", f.entityID).Msg("timeline fan-out failed")
		return nil, err
	}

	// Concatenate in registration order, then filter before the global
	// sort so total reflects exactly what a caller could page through.
	var merged []model.TimelineEvent
	for _, evs := range results {
		for i := range evs {
			if includeEvent(&evs[i], q) {
				merged = append(merged, evs[i])
			}
		}
	}

	asc := q.SortOrder == model.SortAsc
	sort.SliceStable(merged, func(i, j int) bool {
		if asc {
			return merged[i].Timestamp.Before(merged[j].Timestamp)
		}
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})

	total := len(merged)
	offset := (q.Page - 1) * q.Limit
	page := []model.TimelineEvent{}
	if offset < total {
		end := offset + q.Limit
		if end > total {
			end = total
		}
		page = merged[offset:end]
	}

	duration := time.Since(start)
	if s.metrics != nil {
		s.metrics.EventsReturnedTotal.WithLabelValues("get_events").Add(float64(len(page)))
	}

	return &model.TimelineResult{
		Events:          page,
		Total:           total,
		Page:            q.Page,
		Limit:           q.Limit,
		HasMore:         offset+len(page) < total,
		QueryDurationMs: duration.Milliseconds(),
	}, nil
}

// observe records operation latency and emits the structured slow-query
// warning. Slow queries still succeed; latency is an observability concern,
// not a correctness failure.
func (s *Service) observe(op string, start time.Time) {
	duration := time.Since(start)
	if s.metrics != nil {
		s.metrics.QueryDurationSeconds.WithLabelValues(op).Observe(duration.Seconds())
	}
	if duration > s.slowQueryThreshold {
		if s.metrics != nil {
			s.metrics.SlowQueriesTotal.WithLabelValues(op).Inc()
		}
		s.log.Warn().
			Str("operation", op).
			Int64("duration_ms", duration.Milliseconds()).
			Int64("threshold_ms", s.slowQueryThreshold.Milliseconds()).
			Msg("slow timeline query")
	}
}
