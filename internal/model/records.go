package model

import "time"

// Source records as returned by the narrow read interfaces in internal/store.
// The timeline engine never mutates these; adapters project them into
// TimelineEvents.

// Task is a CRM task row.
type Task struct {
	TaskID          string         `json:"taskId"`
	TenantID        string         `json:"tenantId"`
	Title           string         `json:"title"`
	Description     *string        `json:"description,omitempty"`
	Status          string         `json:"status"` // PENDING, IN_PROGRESS, COMPLETED, CANCELLED
	Priority        string         `json:"priority"`
	DueDate         *time.Time     `json:"dueDate,omitempty"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	AssigneeID      *string        `json:"assigneeId,omitempty"`
	AssigneeName    *string        `json:"assigneeName,omitempty"`
	RelatedEntityID *string        `json:"relatedEntityId,omitempty"`
	ContactID       *string        `json:"contactId,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// Appointment is a calendar appointment row.
type Appointment struct {
	AppointmentID   string     `json:"appointmentId"`
	TenantID        string     `json:"tenantId"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	Status          string     `json:"status"` // scheduled, completed, cancelled
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	Location        *string    `json:"location,omitempty"`
	MeetingURL      *string    `json:"meetingUrl,omitempty"`
	OrganizerID     string     `json:"organizerId"`
	AttendeeIDs     []string   `json:"attendeeIds,omitempty"`
	RelatedEntityID *string    `json:"relatedEntityId,omitempty"`
}

// AuditEntry is one row of the generic audit log.
type AuditEntry struct {
	EntryID    string         `json:"entryId"`
	TenantID   string         `json:"tenantId"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityId"`
	Action     string         `json:"action"`
	ActorID    *string        `json:"actorId,omitempty"`
	ActorName  *string        `json:"actorName,omitempty"`
	Changes    map[string]any `json:"changes,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// DomainEvent is an asynchronous event emitted by the agent runtime.
// AgentAction events carry their lifecycle status inside the payload as
// free text; MapAgentActionStatus normalizes it.
type DomainEvent struct {
	EventID     string         `json:"eventId"`
	TenantID    string         `json:"tenantId"`
	EventType   string         `json:"eventType"` // e.g. "AgentAction.LeadScored"
	AggregateID string         `json:"aggregateId"`
	AgentID     string         `json:"agentId"`
	Payload     map[string]any `json:"payload,omitempty"`
	OccurredAt  time.Time      `json:"occurredAt"`
}

// EmailMessage is one logged email.
type EmailMessage struct {
	MessageID       string    `json:"messageId"`
	TenantID        string    `json:"tenantId"`
	Subject         string    `json:"subject"`
	Snippet         *string   `json:"snippet,omitempty"`
	FromAddress     string    `json:"fromAddress"`
	ToAddress       string    `json:"toAddress"`
	SenderUserID    *string   `json:"senderUserId,omitempty"` // set when a CRM user sent it
	SentAt          time.Time `json:"sentAt"`
	RelatedEntityID *string   `json:"relatedEntityId,omitempty"`
}

// ChatMessage is one instant message on a CRM conversation.
type ChatMessage struct {
	MessageID       string    `json:"messageId"`
	TenantID        string    `json:"tenantId"`
	Body            string    `json:"body"`
	AuthorID        string    `json:"authorId"`
	AuthorName      string    `json:"authorName"`
	AuthorUserID    *string   `json:"authorUserId,omitempty"` // set when authored by a CRM user
	SentAt          time.Time `json:"sentAt"`
	RelatedEntityID *string   `json:"relatedEntityId,omitempty"`
}

// PhoneCall is one logged call.
type PhoneCall struct {
	CallID          string    `json:"callId"`
	TenantID        string    `json:"tenantId"`
	FromNumber      string    `json:"fromNumber"`
	ToNumber        string    `json:"toNumber"`
	PlacedByUserID  *string   `json:"placedByUserId,omitempty"` // set for outbound calls
	DurationSeconds int       `json:"durationSeconds"`
	Notes           *string   `json:"notes,omitempty"`
	StartedAt       time.Time `json:"startedAt"`
	RelatedEntityID *string   `json:"relatedEntityId,omitempty"`
}

// Document is a stored file linked to a business entity.
type Document struct {
	DocumentID      string  `json:"documentId"`
	TenantID        string  `json:"tenantId"`
	FileName        string  `json:"fileName"`
	RelatedEntityID *string `json:"relatedEntityId,omitempty"`
}

// DocumentAuditEntry is one row of the document audit trail.
type DocumentAuditEntry struct {
	EntryID    string    `json:"entryId"`
	TenantID   string    `json:"tenantId"`
	DocumentID string    `json:"documentId"`
	Action     string    `json:"action"` // uploaded, viewed, version_created, ...
	ActorID    *string   `json:"actorId,omitempty"`
	ActorName  *string   `json:"actorName,omitempty"`
	Version    *int      `json:"version,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
