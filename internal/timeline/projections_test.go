package timeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
)

func TestGetStats(t *testing.T) {
	svc := newTestService(fullFixture())
	scope := baseQuery().Scope

	stats, err := svc.GetStats(context.Background(), scope, nil, nil)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Tasks.Total != 3 || stats.Tasks.Completed != 1 || stats.Tasks.Overdue != 1 || stats.Tasks.Pending != 2 {
		t.Fatalf("task stats: %+v", stats.Tasks)
	}
	if stats.Appointments.Upcoming != 1 {
		t.Fatalf("appointment stats: %+v", stats.Appointments)
	}
	if stats.AgentActions.PendingApproval != 1 {
		t.Fatalf("agent stats: %+v", stats.AgentActions)
	}
}

func TestGetStatsSourceFailure(t *testing.T) {
	s := fullFixture()
	s.failing["appointments"] = errors.New("timeout")
	svc := newTestService(s)

	_, err := svc.GetStats(context.Background(), baseQuery().Scope, nil, nil)
	se, ok := model.AsSourceError(err)
	if !ok || se.Source != "appointments" {
		t.Fatalf("source error: %v", err)
	}
}

func TestGetUpcomingDeadlines(t *testing.T) {
	svc := newTestService(fullFixture())

	deadlines, err := svc.GetUpcomingDeadlines(context.Background(), baseQuery().Scope, 7, 10)
	if err != nil {
		t.Fatalf("GetUpcomingDeadlines: %v", err)
	}
	// Ascending by due time: the demo in one hour, then the task due tomorrow.
	if len(deadlines) != 2 {
		t.Fatalf("deadline count: %d", len(deadlines))
	}
	if deadlines[0].ID != "appointment-ap-demo" || deadlines[1].ID != "task-t-open" {
		t.Fatalf("deadline order: %s, %s", deadlines[0].ID, deadlines[1].ID)
	}
	if deadlines[1].Priority == nil || *deadlines[1].Priority != model.PriorityHigh {
		t.Fatalf("deadline priority: %+v", deadlines[1].Priority)
	}
}

func TestGetUpcomingDeadlinesTruncates(t *testing.T) {
	s := newFakeStore()
	entity := testEntity
	for i := 0; i < 15; i++ {
		s.tasks = append(s.tasks, &model.Task{
			TaskID: fmt.Sprintf("t-%02d", i), TenantID: testTenant, Title: "task",
			Status: "PENDING", Priority: "MEDIUM",
			DueDate: ptr(hours(i + 1)), CreatedAt: hours(-1), RelatedEntityID: &entity,
		})
	}
	for i := 0; i < 3; i++ {
		s.appts = append(s.appts, &model.Appointment{
			AppointmentID: fmt.Sprintf("ap-%d", i), TenantID: testTenant, Title: "meet",
			Status: "scheduled", StartTime: hours(i*24 + 12), OrganizerID: testUser, RelatedEntityID: &entity,
		})
	}
	svc := newTestService(s)

	deadlines, err := svc.GetUpcomingDeadlines(context.Background(), baseQuery().Scope, 7, 10)
	if err != nil {
		t.Fatalf("GetUpcomingDeadlines: %v", err)
	}
	if len(deadlines) != 10 {
		t.Fatalf("truncation: got %d want 10", len(deadlines))
	}
	for i := 1; i < len(deadlines); i++ {
		if deadlines[i].DueAt.Before(deadlines[i-1].DueAt) {
			t.Fatalf("not ascending at %d", i)
		}
	}
}

func TestGetUpcomingDeadlinesBounds(t *testing.T) {
	svc := newTestService(fullFixture())
	scope := baseQuery().Scope

	cases := []struct {
		daysAhead, limit int
	}{
		{91, 10},
		{-1, 10},
		{7, 51},
		{7, -1},
	}
	for _, tc := range cases {
		if _, err := svc.GetUpcomingDeadlines(context.Background(), scope, tc.daysAhead, tc.limit); !errors.Is(err, model.ErrInvalidQuery) {
			t.Fatalf("daysAhead=%d limit=%d: got %v, want ErrInvalidQuery", tc.daysAhead, tc.limit, err)
		}
	}

	// Zero values take the defaults.
	if _, err := svc.GetUpcomingDeadlines(context.Background(), scope, 0, 0); err != nil {
		t.Fatalf("defaults: %v", err)
	}
}

func TestGetPendingAgentActions(t *testing.T) {
	s := fullFixture()
	s.events = append(s.events,
		&model.DomainEvent{EventID: "ev-2", TenantID: testTenant, EventType: "AgentAction.DraftEmail",
			AggregateID: testEntity, AgentID: "agent-7",
			Payload: map[string]any{"status": "approved"}, OccurredAt: hours(-3)},
		&model.DomainEvent{EventID: "ev-3", TenantID: testTenant, EventType: "AgentAction.UpdateStage",
			AggregateID: testEntity, AgentID: "agent-8",
			Payload: map[string]any{"status": "pending"}, OccurredAt: hours(-1)},
	)
	svc := newTestService(s)
	scope := baseQuery().Scope

	actions, err := svc.GetPendingAgentActions(context.Background(), scope, 0)
	if err != nil {
		t.Fatalf("GetPendingAgentActions: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("pending count: %d", len(actions))
	}
	// Newest first; the approved action never appears.
	if actions[0].EventID != "ev-3" || actions[1].EventID != "ev-1" {
		t.Fatalf("order: %s, %s", actions[0].EventID, actions[1].EventID)
	}
	if actions[0].ActionType != "UpdateStage" {
		t.Fatalf("action type: %s", actions[0].ActionType)
	}

	one, err := svc.GetPendingAgentActions(context.Background(), scope, 1)
	if err != nil || len(one) != 1 || one[0].EventID != "ev-3" {
		t.Fatalf("limit: got=%v err=%v", one, err)
	}

	if _, err := svc.GetPendingAgentActions(context.Background(), scope, 51); !errors.Is(err, model.ErrInvalidQuery) {
		t.Fatalf("limit bound: %v", err)
	}
}
