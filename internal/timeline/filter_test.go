package timeline

import (
	"testing"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
)

func TestShouldIncludeType(t *testing.T) {
	task := model.EventTask
	email := model.EventEmail

	if !ShouldIncludeType(task, nil, nil) {
		t.Fatal("no filters should include everything")
	}
	if ShouldIncludeType(task, nil, []model.EventType{task}) {
		t.Fatal("exclude should drop the type")
	}
	if !ShouldIncludeType(task, []model.EventType{task}, nil) {
		t.Fatal("include membership should pass")
	}
	if ShouldIncludeType(email, []model.EventType{task}, nil) {
		t.Fatal("non-member should fail a non-empty include list")
	}
	// A type on both lists is excluded.
	if ShouldIncludeType(task, []model.EventType{task}, []model.EventType{task}) {
		t.Fatal("exclude must win over include")
	}
}

func TestIncludeEventPriority(t *testing.T) {
	q := &model.TimelineQuery{Priorities: []model.Priority{model.PriorityHigh}}
	if err := q.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	high := model.PriorityHigh
	low := model.PriorityLow

	withHigh := model.TimelineEvent{Type: model.EventTask, Priority: &high}
	withLow := model.TimelineEvent{Type: model.EventTask, Priority: &low}
	without := model.TimelineEvent{Type: model.EventAppointment}

	if !includeEvent(&withHigh, q) {
		t.Fatal("matching priority dropped")
	}
	if includeEvent(&withLow, q) {
		t.Fatal("non-matching priority kept")
	}
	// Events that carry no priority are not subject to the priority filter.
	if !includeEvent(&without, q) {
		t.Fatal("priority-less event dropped")
	}
}
