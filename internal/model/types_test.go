package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestTimelineEventMarshalDetailKey(t *testing.T) {
	due := time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)
	ev := TimelineEvent{
		ID:        "task-t1",
		Type:      EventTask,
		Title:     "Call the buyer",
		Timestamp: due,
		Detail:    &TaskDetail{Status: "PENDING", DueDate: &due},
	}

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := out["task"]; !ok {
		t.Fatalf("task detail missing: %s", data)
	}
	for _, key := range []string{"appointment", "document", "communication", "agentAction"} {
		if _, ok := out[key]; ok {
			t.Fatalf("unexpected detail %q present: %s", key, data)
		}
	}
}

func TestTimelineEventMarshalAgentDetail(t *testing.T) {
	ev := TimelineEvent{
		ID:     "agent_action-e1",
		Type:   EventAgentAction,
		Detail: &AgentActionDetail{ActionType: "LeadScored", Status: AgentStatusPendingApproval},
	}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out struct {
		AgentAction *AgentActionDetail `json:"agentAction"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.AgentAction == nil || out.AgentAction.Status != AgentStatusPendingApproval {
		t.Fatalf("agent detail: %s", data)
	}
}

func TestScopeEntityIDPrecedence(t *testing.T) {
	s := Scope{OpportunityID: "o", DealID: "d", CaseID: "c", AccountID: "a"}
	if got := s.EntityID(); got != "o" {
		t.Fatalf("precedence: %s", got)
	}
	s.OpportunityID = ""
	if got := s.EntityID(); got != "d" {
		t.Fatalf("deal next: %s", got)
	}
	s.DealID = ""
	if got := s.EntityID(); got != "c" {
		t.Fatalf("case next: %s", got)
	}
	s.CaseID = ""
	if got := s.EntityID(); got != "a" {
		t.Fatalf("account last: %s", got)
	}
	s.AccountID = ""
	if got := s.EntityID(); got != "" {
		t.Fatalf("empty scope: %s", got)
	}
}

func TestTimelineQueryNormalizeDefaults(t *testing.T) {
	q := &TimelineQuery{}
	if err := q.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if q.Page != 1 || q.Limit != 50 || q.SortOrder != SortDesc {
		t.Fatalf("defaults: page=%d limit=%d sort=%s", q.Page, q.Limit, q.SortOrder)
	}
	if !q.CompletedVisible() {
		t.Fatal("completed should default to visible")
	}
}

func TestTimelineQueryNormalizeBounds(t *testing.T) {
	for _, q := range []*TimelineQuery{
		{Page: -1},
		{Limit: 101},
		{Limit: -5},
		{SortOrder: "upward"},
	} {
		if err := q.Normalize(); !errors.Is(err, ErrInvalidQuery) {
			t.Fatalf("%+v: got %v, want ErrInvalidQuery", q, err)
		}
	}
}

func TestSourceErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	var err error = &SourceError{Source: "tasks", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("unwrap lost inner error")
	}
	se, ok := AsSourceError(err)
	if !ok || se.Source != "tasks" {
		t.Fatalf("AsSourceError: %v %v", se, ok)
	}
}
