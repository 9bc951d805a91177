package model

import (
	"encoding/json"
	"time"
)

// EventType identifies the canonical kind of a timeline event.
type EventType string

const (
	EventTask            EventType = "task"
	EventTaskCompleted   EventType = "task_completed"
	EventTaskOverdue     EventType = "task_overdue"
	EventAppointment     EventType = "appointment"
	EventDeadline        EventType = "deadline"
	EventStatusChange    EventType = "status_change"
	EventNote            EventType = "note"
	EventDocument        EventType = "document"
	EventDocumentVersion EventType = "document_version"
	EventCommunication   EventType = "communication"
	EventEmail           EventType = "email"
	EventCall            EventType = "call"
	EventAgentAction     EventType = "agent_action"
	EventReminder        EventType = "reminder"
	EventAudit           EventType = "audit"
	EventStageChange     EventType = "stage_change"
)

// Priority is the canonical priority vocabulary shared by all sources.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AgentActionStatus is the lifecycle of an AI-proposed change.
type AgentActionStatus string

const (
	AgentStatusPendingApproval AgentActionStatus = "pending_approval"
	AgentStatusApproved        AgentActionStatus = "approved"
	AgentStatusRejected        AgentActionStatus = "rejected"
	AgentStatusRolledBack      AgentActionStatus = "rolled_back"
	AgentStatusExpired         AgentActionStatus = "expired"
)

// SortOrder controls the direction of the global timestamp sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Actor is the human or agent identity responsible for an event.
type Actor struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	IsAgent   bool    `json:"isAgent"`
}

// EventDetail is the source-specific payload of a TimelineEvent. Exactly one
// variant is attached to an event, keyed by its Type.
type EventDetail interface {
	detailKey() string
}

// TaskDetail carries task-specific fields.
type TaskDetail struct {
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	AssigneeID  *string    `json:"assigneeId,omitempty"`
}

// AppointmentDetail carries appointment-specific fields.
type AppointmentDetail struct {
	Status     string     `json:"status"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	Location   *string    `json:"location,omitempty"`
	MeetingURL *string    `json:"meetingUrl,omitempty"`
}

// DocumentDetail carries document-audit fields.
type DocumentDetail struct {
	DocumentID string `json:"documentId"`
	FileName   string `json:"fileName"`
	Action     string `json:"action"`
	Version    *int   `json:"version,omitempty"`
}

// CommunicationDetail is shared by the email, chat and call sub-sources.
type CommunicationDetail struct {
	Channel         string  `json:"channel"` // email | chat | call
	Direction       string  `json:"direction"`
	Subject         *string `json:"subject,omitempty"`
	From            string  `json:"from,omitempty"`
	To              string  `json:"to,omitempty"`
	DurationSeconds *int    `json:"durationSeconds,omitempty"`
}

// AgentActionDetail carries the agent-action lifecycle fields.
type AgentActionDetail struct {
	ActionType string            `json:"actionType"`
	Status     AgentActionStatus `json:"status"`
	AgentID    string            `json:"agentId"`
	Payload    map[string]any    `json:"payload,omitempty"`
}

func (*TaskDetail) detailKey() string          { return "task" }
func (*AppointmentDetail) detailKey() string   { return "appointment" }
func (*DocumentDetail) detailKey() string      { return "document" }
func (*CommunicationDetail) detailKey() string { return "communication" }
func (*AgentActionDetail) detailKey() string   { return "agentAction" }

// TimelineEvent is the canonical, read-only projection every source adapter
// produces. IDs are derived from "{sourceKind}-{sourceRecordId}" so repeated
// queries against unchanged source data yield identical ids.
type TimelineEvent struct {
	ID          string         `json:"id"`
	Type        EventType      `json:"type"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	Priority    *Priority      `json:"priority,omitempty"`
	EntityType  string         `json:"entityType"`
	EntityID    string         `json:"entityId"`
	Actor       *Actor         `json:"actor,omitempty"`
	IsOverdue   bool           `json:"isOverdue"`
	Metadata    map[string]any `json:"metadata,omitempty"`

	// Detail is the single source-specific payload; serialized under its
	// variant key (task/appointment/document/communication/agentAction).
	Detail EventDetail `json:"-"`
}

// MarshalJSON places the detail payload under its variant key so the wire
// shape keeps one populated detail field per event.
func (e TimelineEvent) MarshalJSON() ([]byte, error) {
	type alias TimelineEvent
	out := struct {
		alias
		Task          *TaskDetail          `json:"task,omitempty"`
		Appointment   *AppointmentDetail   `json:"appointment,omitempty"`
		Document      *DocumentDetail      `json:"document,omitempty"`
		Communication *CommunicationDetail `json:"communication,omitempty"`
		AgentAction   *AgentActionDetail   `json:"agentAction,omitempty"`
	}{alias: alias(e)}
	switch d := e.Detail.(type) {
	case *TaskDetail:
		out.Task = d
	case *AppointmentDetail:
		out.Appointment = d
	case *DocumentDetail:
		out.Document = d
	case *CommunicationDetail:
		out.Communication = d
	case *AgentActionDetail:
		out.AgentAction = d
	}
	return json.Marshal(out)
}

// Scope is the tenant plus business-object linkage a timeline is requested
// for. OpportunityID, DealID, CaseID and AccountID alias the same entity
// linkage; resolution precedence is opportunity, then deal, then case, then
// account. RequestorID is the already-authenticated caller identity used for
// adapter-local access checks (appointments).
type Scope struct {
	TenantID    string
	RequestorID string

	OpportunityID string
	DealID        string
	CaseID        string
	AccountID     string
	ContactID     string
}

// EntityID resolves the effective entity-scope id. The four scope fields are
// synonyms for one linkage column, not independent filters.
func (s Scope) EntityID() string {
	for _, id := range []string{s.OpportunityID, s.DealID, s.CaseID, s.AccountID} {
		if id != "" {
			return id
		}
	}
	return ""
}

// TimelineQuery captures all caller-supplied filters for GetEvents.
type TimelineQuery struct {
	Scope

	EventTypes          []EventType
	ExcludeTypes        []EventType
	Priorities          []Priority
	AgentActionStatuses []AgentActionStatus

	FromDate *time.Time
	ToDate   *time.Time

	Page      int
	Limit     int
	SortOrder SortOrder

	// IncludeCompleted defaults to true when nil.
	IncludeCompleted *bool
	Search           string
}

// CompletedVisible reports the completion-visibility toggle with its default.
func (q *TimelineQuery) CompletedVisible() bool {
	return q.IncludeCompleted == nil || *q.IncludeCompleted
}

// Normalize applies paging/sort defaults and rejects out-of-bounds values.
func (q *TimelineQuery) Normalize() error {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 50
	}
	if q.SortOrder == "" {
		q.SortOrder = SortDesc
	}
	if q.Page < 1 {
		return InvalidQueryf("page must be >= 1, got %d", q.Page)
	}
	if q.Limit < 1 || q.Limit > 100 {
		return InvalidQueryf("limit must be within 1..100, got %d", q.Limit)
	}
	if q.SortOrder != SortAsc && q.SortOrder != SortDesc {
		return InvalidQueryf("sortOrder must be asc or desc, got %q", q.SortOrder)
	}
	if q.FromDate != nil && q.ToDate != nil && q.ToDate.Before(*q.FromDate) {
		return InvalidQueryf("toDate precedes fromDate")
	}
	return nil
}

// TimelineResult is one page of merged events plus paging metadata.
type TimelineResult struct {
	Events          []TimelineEvent `json:"events"`
	Total           int             `json:"total"`
	Page            int             `json:"page"`
	Limit           int             `json:"limit"`
	HasMore         bool            `json:"hasMore"`
	QueryDurationMs int64           `json:"queryDurationMs"`
}

// TaskStats are the aggregate task counters of the stats projection.
type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	Pending   int `json:"pending"`
}

// AppointmentStats are the aggregate appointment counters.
type AppointmentStats struct {
	Upcoming int `json:"upcoming"`
}

// AgentActionStats are the aggregate agent-action counters.
type AgentActionStats struct {
	PendingApproval int `json:"pendingApproval"`
}

// TimelineStats is the read-only stats projection over all sources.
type TimelineStats struct {
	Tasks        TaskStats        `json:"tasks"`
	Appointments AppointmentStats `json:"appointments"`
	AgentActions AgentActionStats `json:"agentActions"`
}

// Deadline is one entry of the upcoming-deadlines projection.
type Deadline struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"` // task | appointment
	Title      string    `json:"title"`
	DueAt      time.Time `json:"dueAt"`
	Priority   *Priority `json:"priority,omitempty"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
}

// AgentActionSummary is one row of the pending-approval projection.
type AgentActionSummary struct {
	EventID     string            `json:"eventId"`
	ActionType  string            `json:"actionType"`
	Status      AgentActionStatus `json:"status"`
	AgentID     string            `json:"agentId"`
	AggregateID string            `json:"aggregateId"`
	OccurredAt  time.Time         `json:"occurredAt"`
}
