package timeline

import (
	"testing"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
)

func TestMapPriority(t *testing.T) {
	cases := []struct {
		raw  string
		want model.Priority
		ok   bool
	}{
		{"HIGH", model.PriorityHigh, true},
		{"low", model.PriorityLow, true},
		{" Urgent ", model.PriorityUrgent, true},
		{"P1", model.PriorityMedium, true}, // unrecognized defaults to medium
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := MapPriority(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("MapPriority(%q) = %q,%v; want %q,%v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestClassifyAuditAction(t *testing.T) {
	cases := []struct {
		action string
		want   model.EventType
	}{
		{"stage_changed", model.EventStageChange},
		{"Pipeline Stage Updated", model.EventStageChange},
		{"status_updated", model.EventStatusChange},
		{"stage_status_sync", model.EventStageChange}, // first rule wins
		{"field_edited", model.EventAudit},
	}
	for _, tc := range cases {
		if got := ClassifyAuditAction(tc.action); got != tc.want {
			t.Fatalf("ClassifyAuditAction(%q) = %s, want %s", tc.action, got, tc.want)
		}
	}
}

func TestClassifyDocumentAction(t *testing.T) {
	if got := ClassifyDocumentAction("version_created"); got != model.EventDocumentVersion {
		t.Fatalf("version action: %s", got)
	}
	if got := ClassifyDocumentAction("uploaded"); got != model.EventDocument {
		t.Fatalf("upload action: %s", got)
	}
}

func TestMapAgentActionStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want model.AgentActionStatus
	}{
		{"approved", model.AgentStatusApproved},
		{"Accepted", model.AgentStatusApproved},
		{"declined", model.AgentStatusRejected},
		{"reverted", model.AgentStatusRolledBack},
		{"expired", model.AgentStatusExpired},
		{"pending", model.AgentStatusPendingApproval},
		{"", model.AgentStatusPendingApproval},
		{"something-new", model.AgentStatusPendingApproval},
	}
	for _, tc := range cases {
		if got := MapAgentActionStatus(tc.raw); got != tc.want {
			t.Fatalf("MapAgentActionStatus(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestTerminalRawAgentStatuses(t *testing.T) {
	for _, raw := range TerminalRawAgentStatuses() {
		if MapAgentActionStatus(raw) == model.AgentStatusPendingApproval {
			t.Fatalf("pending label %q listed as terminal", raw)
		}
	}
}
