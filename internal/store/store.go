// Package store defines the narrow read interfaces the timeline engine
// consumes. Each source table is owned elsewhere; the engine only queries.
package store

import (
	"context"
	"time"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
)

// AuditRowCap bounds audit-log reads per call. It exists to bound worst-case
// latency, not correctness: the cap applies before the cross-source merge.
const AuditRowCap = 100

// Store exposes the read capabilities required by the timeline engine.
// Implementations live under internal/store/<driver>/.
type Store interface {
	Tasks() Tasks
	Appointments() Appointments
	AuditLogs() AuditLogs
	AgentActions() AgentActions
	Emails() Emails
	Chats() Chats
	Calls() Calls
	Documents() Documents
}

// TaskFilter narrows task reads. From/To bound the task's authoritative
// timestamp (completedAt, else dueDate, else createdAt); DueFrom/DueTo bound
// the due date specifically (deadline projections).
type TaskFilter struct {
	TenantID    string
	EntityID    string
	ContactID   string
	From        *time.Time
	To          *time.Time
	DueFrom     *time.Time
	DueTo       *time.Time
	DueBefore   *time.Time
	StatusIn    []string
	StatusNotIn []string
	PriorityIn  []string
	Search      string
	Limit       int
}

type Tasks interface {
	Find(ctx context.Context, f TaskFilter) ([]*model.Task, error)
	Count(ctx context.Context, f TaskFilter) (int, error)
}

// AppointmentFilter narrows appointment reads. ParticipantID restricts rows
// to those the caller organizes or attends; access control is adapter-local.
type AppointmentFilter struct {
	TenantID      string
	EntityID      string
	ParticipantID string
	From          *time.Time
	To            *time.Time
	StatusNotIn   []string
	Limit         int
}

type Appointments interface {
	Find(ctx context.Context, f AppointmentFilter) ([]*model.Appointment, error)
	CountUpcoming(ctx context.Context, f AppointmentFilter) (int, error)
}

// EntityRef addresses one audited business object.
type EntityRef struct {
	Type string
	ID   string
}

// AuditFilter narrows audit-log reads. Implementations cap results at
// AuditRowCap regardless of Limit.
type AuditFilter struct {
	TenantID string
	Entities []EntityRef
	From     *time.Time
	To       *time.Time
	Limit    int
}

type AuditLogs interface {
	Find(ctx context.Context, f AuditFilter) ([]*model.AuditEntry, error)
}

// DomainEventFilter narrows domain-event reads. RawStatusNotIn excludes rows
// whose payload status matches one of the given raw labels; rows without a
// status field are never excluded by it (they normalize to pending_approval).
type DomainEventFilter struct {
	TenantID        string
	EventTypePrefix string
	AggregateID     string
	From            *time.Time
	To              *time.Time
	RawStatusNotIn  []string
	Limit           int
}

type AgentActions interface {
	Find(ctx context.Context, f DomainEventFilter) ([]*model.DomainEvent, error)
	CountPending(ctx context.Context, f DomainEventFilter) (int, error)
}

// CommunicationFilter is shared by the email, chat and call stores.
type CommunicationFilter struct {
	TenantID string
	EntityID string
	From     *time.Time
	To       *time.Time
	Limit    int
}

type Emails interface {
	Find(ctx context.Context, f CommunicationFilter) ([]*model.EmailMessage, error)
}

type Chats interface {
	Find(ctx context.Context, f CommunicationFilter) ([]*model.ChatMessage, error)
}

type Calls interface {
	Find(ctx context.Context, f CommunicationFilter) ([]*model.PhoneCall, error)
}

// Documents resolves the document set for an entity and the audit trail for
// those documents. The two-step shape is deliberate: audit rows are keyed by
// document id, not by business entity.
type Documents interface {
	FindByEntity(ctx context.Context, tenantID, entityID string) ([]*model.Document, error)
	FindAuditEntries(ctx context.Context, tenantID string, documentIDs []string, from, to *time.Time, limit int) ([]*model.DocumentAuditEntry, error)
}
