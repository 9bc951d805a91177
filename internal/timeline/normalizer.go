package timeline

import (
	"strings"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
)

// priorityTable is the fixed, case-insensitive mapping from source priority
// labels to the canonical vocabulary.
var priorityTable = map[string]model.Priority{
	"low":    model.PriorityLow,
	"medium": model.PriorityMedium,
	"high":   model.PriorityHigh,
	"urgent": model.PriorityUrgent,
}

// MapPriority maps a raw source priority label to the canonical enum.
// Empty labels map to nothing; unrecognized non-empty labels default to
// medium so a source with an exotic vocabulary still sorts sensibly.
func MapPriority(raw string) (model.Priority, bool) {
	if raw == "" {
		return "", false
	}
	if p, ok := priorityTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return p, true
	}
	return model.PriorityMedium, true
}

// auditRule classifies an audit action label by substring. Rules are ordered;
// the first match wins.
type auditRule struct {
	substr string
	typ    model.EventType
}

var auditRules = []auditRule{
	{"stage", model.EventStageChange},
	{"status", model.EventStatusChange},
}

// ClassifyAuditAction maps an audit action label to an event subtype using
// ordered case-insensitive substring rules, defaulting to the generic audit
// type. New patterns are added here without touching aggregation logic.
func ClassifyAuditAction(action string) model.EventType {
	lower := strings.ToLower(action)
	for _, r := range auditRules {
		if strings.Contains(lower, r.substr) {
			return r.typ
		}
	}
	return model.EventAudit
}

// ClassifyDocumentAction distinguishes version-related document audit rows
// from the rest of the document trail.
func ClassifyDocumentAction(action string) model.EventType {
	if strings.Contains(strings.ToLower(action), "version") {
		return model.EventDocumentVersion
	}
	return model.EventDocument
}

// agentStatusTable maps the free-text payload status of an agent-action
// event to its canonical lifecycle state.
var agentStatusTable = map[string]model.AgentActionStatus{
	"pending":          model.AgentStatusPendingApproval,
	"pending_approval": model.AgentStatusPendingApproval,
	"approved":         model.AgentStatusApproved,
	"accepted":         model.AgentStatusApproved,
	"rejected":         model.AgentStatusRejected,
	"declined":         model.AgentStatusRejected,
	"rolled_back":      model.AgentStatusRolledBack,
	"reverted":         model.AgentStatusRolledBack,
	"expired":          model.AgentStatusExpired,
}

// MapAgentActionStatus normalizes the payload status of an agent-action
// event. Absent or unrecognized values default to pending_approval: an
// action we cannot account for must wait for a human.
func MapAgentActionStatus(raw string) model.AgentActionStatus {
	if s, ok := agentStatusTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return model.AgentStatusPendingApproval
}

// TerminalRawAgentStatuses lists the raw payload labels that normalize to a
// non-pending state. Stores use it to count pending approvals without
// duplicating the mapping semantics in SQL.
func TerminalRawAgentStatuses() []string {
	out := make([]string, 0, len(agentStatusTable))
	for raw, canonical := range agentStatusTable {
		if canonical != model.AgentStatusPendingApproval {
			out = append(out, raw)
		}
	}
	return out
}
