package timeline

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
)

const (
	maxDaysAhead      = 90
	maxProjectionSize = 50

	defaultDaysAhead     = 7
	defaultDeadlineLimit = 10
	defaultPendingLimit  = 20
)

// closedTaskStatuses are excluded from every "open work" counting query.
var closedTaskStatuses = []string{"COMPLETED", "CANCELLED"}

// GetStats runs the counting queries concurrently and returns the aggregate
// counters. No event materialization occurs.
func (s *Service) GetStats(ctx context.Context, scope model.Scope, from, to *time.Time) (*model.TimelineStats, error) {
	start := time.Now()
	defer s.observe("get_stats", start)

	now := s.now()
	entityID := scope.EntityID()
	base := store.TaskFilter{
		TenantID:  scope.TenantID,
		EntityID:  entityID,
		ContactID: scope.ContactID,
		From:      from,
		To:        to,
	}

	var out model.TimelineStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.store.Tasks().Count(gctx, base)
		if err != nil {
			return &model.SourceError{Source: "tasks", Err: err}
		}
		out.Tasks.Total = n
		return nil
	})
	g.Go(func() error {
		f := base
		f.StatusIn = []string{"COMPLETED"}
		n, err := s.store.Tasks().Count(gctx, f)
		if err != nil {
			return &model.SourceError{Source: "tasks", Err: err}
		}
		out.Tasks.Completed = n
		return nil
	})
	g.Go(func() error {
		f := base
		f.StatusNotIn = closedTaskStatuses
		f.DueBefore = &now
		n, err := s.store.Tasks().Count(gctx, f)
		if err != nil {
			return &model.SourceError{Source: "tasks", Err: err}
		}
		out.Tasks.Overdue = n
		return nil
	})
	g.Go(func() error {
		f := base
		f.StatusNotIn = closedTaskStatuses
		n, err := s.store.Tasks().Count(gctx, f)
		if err != nil {
			return &model.SourceError{Source: "tasks", Err: err}
		}
		out.Tasks.Pending = n
		return nil
	})
	g.Go(func() error {
		n, err := s.store.Appointments().CountUpcoming(gctx, store.AppointmentFilter{
			TenantID:      scope.TenantID,
			EntityID:      entityID,
			ParticipantID: scope.RequestorID,
			From:          &now,
		})
		if err != nil {
			return &model.SourceError{Source: "appointments", Err: err}
		}
		out.Appointments.Upcoming = n
		return nil
	})
	g.Go(func() error {
		n, err := s.store.AgentActions().CountPending(gctx, store.DomainEventFilter{
			TenantID:        scope.TenantID,
			EventTypePrefix: agentActionEventPrefix,
			AggregateID:     entityID,
			From:            from,
			To:              to,
			RawStatusNotIn:  TerminalRawAgentStatuses(),
		})
		if err != nil {
			return &model.SourceError{Source: "agent_actions", Err: err}
		}
		out.AgentActions.PendingApproval = n
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("stats projection failed")
		return nil, err
	}
	return &out, nil
}

// GetUpcomingDeadlines unions open tasks due and appointments starting within
// [now, now+daysAhead], sorted ascending by due time and truncated to limit.
// Only two sources participate, so this is a single-pass merge rather than
// the full aggregation path.
func (s *Service) GetUpcomingDeadlines(ctx context.Context, scope model.Scope, daysAhead, limit int) ([]model.Deadline, error) {
	if daysAhead == 0 {
		daysAhead = defaultDaysAhead
	}
	if limit == 0 {
		limit = defaultDeadlineLimit
	}
	if daysAhead < 1 || daysAhead > maxDaysAhead {
		return nil, model.InvalidQueryf("daysAhead must be within 1..%d, got %d", maxDaysAhead, daysAhead)
	}
	if limit < 1 || limit > maxProjectionSize {
		return nil, model.InvalidQueryf("limit must be within 1..%d, got %d", maxProjectionSize, limit)
	}

	start := time.Now()
	defer s.observe("get_upcoming_deadlines", start)

	now := s.now()
	horizon := now.AddDate(0, 0, daysAhead)
	entityID := scope.EntityID()

	var tasks []*model.Task
	var appts []*model.Appointment

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.store.Tasks().Find(gctx, store.TaskFilter{
			TenantID:    scope.TenantID,
			EntityID:    entityID,
			ContactID:   scope.ContactID,
			DueFrom:     &now,
			DueTo:       &horizon,
			StatusNotIn: closedTaskStatuses,
		})
		if err != nil {
			return &model.SourceError{Source: "tasks", Err: err}
		}
		tasks = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.Appointments().Find(gctx, store.AppointmentFilter{
			TenantID:      scope.TenantID,
			EntityID:      entityID,
			ParticipantID: scope.RequestorID,
			From:          &now,
			To:            &horizon,
			StatusNotIn:   []string{"cancelled"},
		})
		if err != nil {
			return &model.SourceError{Source: "appointments", Err: err}
		}
		appts = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("deadline projection failed")
		return nil, err
	}

	deadlines := make([]model.Deadline, 0, len(tasks)+len(appts))
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		d := model.Deadline{
			ID:         eventID("task", t.TaskID),
			Type:       model.EventTask,
			Title:      t.Title,
			DueAt:      *t.DueDate,
			EntityType: "task",
			EntityID:   t.TaskID,
		}
		if p, ok := MapPriority(t.Priority); ok {
			d.Priority = &p
		}
		deadlines = append(deadlines, d)
	}
	for _, ap := range appts {
		deadlines = append(deadlines, model.Deadline{
			ID:         eventID("appointment", ap.AppointmentID),
			Type:       model.EventAppointment,
			Title:      ap.Title,
			DueAt:      ap.StartTime,
			EntityType: "appointment",
			EntityID:   ap.AppointmentID,
		})
	}

	sort.SliceStable(deadlines, func(i, j int) bool {
		return deadlines[i].DueAt.Before(deadlines[j].DueAt)
	})
	if len(deadlines) > limit {
		deadlines = deadlines[:limit]
	}
	return deadlines, nil
}

// GetPendingAgentActions lists agent actions awaiting approval, newest first.
func (s *Service) GetPendingAgentActions(ctx context.Context, scope model.Scope, limit int) ([]model.AgentActionSummary, error) {
	if limit == 0 {
		limit = defaultPendingLimit
	}
	if limit < 1 || limit > maxProjectionSize {
		return nil, model.InvalidQueryf("limit must be within 1..%d, got %d", maxProjectionSize, limit)
	}

	start := time.Now()
	defer s.observe("get_pending_agent_actions", start)

	rows, err := s.store.AgentActions().Find(ctx, store.DomainEventFilter{
		TenantID:        scope.TenantID,
		EventTypePrefix: agentActionEventPrefix,
		AggregateID:     scope.EntityID(),
	})
	if err != nil {
		return nil, &model.SourceError{Source: "agent_actions", Err: err}
	}

	out := make([]model.AgentActionSummary, 0, len(rows))
	for _, de := range rows {
		ev := projectAgentAction(de)
		d := ev.Detail.(*model.AgentActionDetail)
		if d.Status != model.AgentStatusPendingApproval {
			continue
		}
		out = append(out, model.AgentActionSummary{
			EventID:     de.EventID,
			ActionType:  d.ActionType,
			Status:      d.Status,
			AgentID:     de.AgentID,
			AggregateID: de.AggregateID,
			OccurredAt:  de.OccurredAt,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
