// Package sqlite implements the timeline read interfaces over an embedded
// SQLite database for local development and tests.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
)

const taskTimestampExpr = "COALESCE(completed_at, due_date, created_at)"

// Open opens (and if necessary bootstraps) a SQLite database at path. The
// path may already be a file: DSN, e.g. "file::memory:?cache=shared".
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// The sqlite driver serializes writes; a single connection avoids
	// table-lock errors under concurrent access.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return db, nil
}

// NewWithDB constructs a SQLite store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &liteStore{db: db} }

type liteStore struct{ db *sql.DB }

func (s *liteStore) Tasks() store.Tasks               { return &tasks{db: s.db} }
func (s *liteStore) Appointments() store.Appointments { return &appointments{db: s.db} }
func (s *liteStore) AuditLogs() store.AuditLogs       { return &auditLogs{db: s.db} }
func (s *liteStore) AgentActions() store.AgentActions { return &agentActions{db: s.db} }
func (s *liteStore) Emails() store.Emails             { return &emails{db: s.db} }
func (s *liteStore) Chats() store.Chats               { return &chats{db: s.db} }
func (s *liteStore) Calls() store.Calls               { return &calls{db: s.db} }
func (s *liteStore) Documents() store.Documents       { return &documents{db: s.db} }

// HealthPing implements health.Pinger.
func (s *liteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// qb accumulates WHERE conditions with ? placeholders.
type qb struct {
	conds []string
	args  []any
}

func (b *qb) arg(v any) string {
	b.args = append(b.args, v)
	return "?"
}

func (b *qb) add(cond string) { b.conds = append(b.conds, cond) }

// in renders "col IN (?, ...)" and records the arguments.
func (b *qb) in(col string, vals []string) string {
	marks := make([]string, len(vals))
	for i, v := range vals {
		marks[i] = b.arg(v)
	}
	return col + " IN (" + strings.Join(marks, ",") + ")"
}

func (b *qb) notIn(col string, vals []string) string {
	marks := make([]string, len(vals))
	for i, v := range vals {
		marks[i] = b.arg(v)
	}
	return col + " NOT IN (" + strings.Join(marks, ",") + ")"
}

func (b *qb) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// --- Tasks ---

type tasks struct{ db *sql.DB }

func (t *tasks) filter(f store.TaskFilter) *qb {
	b := &qb{}
	if f.TenantID != "" {
		b.add("tenant_id=" + b.arg(f.TenantID))
	}
	switch {
	case f.EntityID != "" && f.ContactID != "":
		b.add("(related_entity_id=" + b.arg(f.EntityID) + " OR contact_id=" + b.arg(f.ContactID) + ")")
	case f.EntityID != "":
		b.add("related_entity_id=" + b.arg(f.EntityID))
	case f.ContactID != "":
		b.add("contact_id=" + b.arg(f.ContactID))
	}
	if f.From != nil {
		b.add(taskTimestampExpr + " >= " + b.arg(*f.From))
	}
	if f.To != nil {
		b.add(taskTimestampExpr + " <= " + b.arg(*f.To))
	}
	if f.DueFrom != nil {
		b.add("due_date IS NOT NULL AND due_date >= " + b.arg(*f.DueFrom))
	}
	if f.DueTo != nil {
		b.add("due_date <= " + b.arg(*f.DueTo))
	}
	if f.DueBefore != nil {
		b.add("due_date IS NOT NULL AND due_date < " + b.arg(*f.DueBefore))
	}
	if len(f.StatusIn) > 0 {
		b.add(b.in("status", f.StatusIn))
	}
	if len(f.StatusNotIn) > 0 {
		b.add(b.notIn("status", f.StatusNotIn))
	}
	if len(f.PriorityIn) > 0 {
		b.add(b.in("priority", f.PriorityIn))
	}
	if f.Search != "" {
		pat := "%" + strings.ToLower(f.Search) + "%"
		b.add("(LOWER(title) LIKE " + b.arg(pat) + " OR LOWER(COALESCE(description,'')) LIKE " + b.arg(pat) + ")")
	}
	return b
}

func (t *tasks) Find(ctx context.Context, f store.TaskFilter) ([]*model.Task, error) {
	b := t.filter(f)
	q := `
        SELECT task_id, tenant_id, title, description, status, priority,
               due_date, completed_at, created_at, assignee_id, assignee_name,
               related_entity_id, contact_id, metadata
        FROM tasks` + b.where() + " ORDER BY " + taskTimestampExpr + " DESC"
	if f.Limit > 0 {
		q += " LIMIT " + b.arg(f.Limit)
	}
	rows, err := t.db.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Task
	for rows.Next() {
		var m model.Task
		var meta []byte
		if err := rows.Scan(&m.TaskID, &m.TenantID, &m.Title, &m.Description, &m.Status, &m.Priority,
			&m.DueDate, &m.CompletedAt, &m.CreatedAt, &m.AssigneeID, &m.AssigneeName,
			&m.RelatedEntityID, &m.ContactID, &meta); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &m.Metadata); err != nil {
				return nil, fmt.Errorf("task %s: bad metadata: %w", m.TaskID, err)
			}
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (t *tasks) Count(ctx context.Context, f store.TaskFilter) (int, error) {
	b := t.filter(f)
	var n int
	err := t.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks"+b.where(), b.args...).Scan(&n)
	return n, err
}

// --- Appointments ---

type appointments struct{ db *sql.DB }

func (a *appointments) filter(f store.AppointmentFilter) *qb {
	b := &qb{}
	if f.TenantID != "" {
		b.add("tenant_id=" + b.arg(f.TenantID))
	}
	if f.EntityID != "" {
		b.add("related_entity_id=" + b.arg(f.EntityID))
	}
	if f.ParticipantID != "" {
		b.add("(organizer_id=" + b.arg(f.ParticipantID) +
			" OR EXISTS (SELECT 1 FROM json_each(COALESCE(attendees,'[]')) WHERE json_each.value=" + b.arg(f.ParticipantID) + "))")
	}
	if f.From != nil {
		b.add("start_time >= " + b.arg(*f.From))
	}
	if f.To != nil {
		b.add("start_time <= " + b.arg(*f.To))
	}
	if len(f.StatusNotIn) > 0 {
		b.add(b.notIn("LOWER(status)", lowered(f.StatusNotIn)))
	}
	return b
}

func (a *appointments) Find(ctx context.Context, f store.AppointmentFilter) ([]*model.Appointment, error) {
	b := a.filter(f)
	q := `
        SELECT appointment_id, tenant_id, title, description, status,
               start_time, end_time, location, meeting_url, organizer_id,
               attendees, related_entity_id
        FROM appointments` + b.where() + " ORDER BY start_time"
	if f.Limit > 0 {
		q += " LIMIT " + b.arg(f.Limit)
	}
	rows, err := a.db.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Appointment
	for rows.Next() {
		var m model.Appointment
		var attendees []byte
		if err := rows.Scan(&m.AppointmentID, &m.TenantID, &m.Title, &m.Description, &m.Status,
			&m.StartTime, &m.EndTime, &m.Location, &m.MeetingURL, &m.OrganizerID,
			&attendees, &m.RelatedEntityID); err != nil {
			return nil, err
		}
		if len(attendees) > 0 {
			if err := json.Unmarshal(attendees, &m.AttendeeIDs); err != nil {
				return nil, fmt.Errorf("appointment %s: bad attendees: %w", m.AppointmentID, err)
			}
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (a *appointments) CountUpcoming(ctx context.Context, f store.AppointmentFilter) (int, error) {
	b := a.filter(f)
	b.add("LOWER(status) = 'scheduled'")
	var n int
	err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM appointments"+b.where(), b.args...).Scan(&n)
	return n, err
}

// --- Audit log ---

type auditLogs struct{ db *sql.DB }

func (a *auditLogs) Find(ctx context.Context, f store.AuditFilter) ([]*model.AuditEntry, error) {
	if len(f.Entities) == 0 {
		return nil, nil
	}
	b := &qb{}
	if f.TenantID != "" {
		b.add("tenant_id=" + b.arg(f.TenantID))
	}
	pairs := make([]string, len(f.Entities))
	for i, e := range f.Entities {
		pairs[i] = "(entity_type=" + b.arg(e.Type) + " AND entity_id=" + b.arg(e.ID) + ")"
	}
	b.add("(" + strings.Join(pairs, " OR ") + ")")
	if f.From != nil {
		b.add("created_at >= " + b.arg(*f.From))
	}
	if f.To != nil {
		b.add("created_at <= " + b.arg(*f.To))
	}

	limit := f.Limit
	if limit <= 0 || limit > store.AuditRowCap {
		limit = store.AuditRowCap
	}
	q := `
        SELECT entry_id, tenant_id, entity_type, entity_id, action,
               actor_id, actor_name, changes, created_at
        FROM audit_log` + b.where() + " ORDER BY created_at DESC LIMIT " + b.arg(limit)

	rows, err := a.db.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.AuditEntry
	for rows.Next() {
		var m model.AuditEntry
		var changes []byte
		if err := rows.Scan(&m.EntryID, &m.TenantID, &m.EntityType, &m.EntityID, &m.Action,
			&m.ActorID, &m.ActorName, &changes, &m.CreatedAt); err != nil {
			return nil, err
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &m.Changes); err != nil {
				return nil, fmt.Errorf("audit entry %s: bad changes: %w", m.EntryID, err)
			}
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// --- Agent actions (domain events) ---

type agentActions struct{ db *sql.DB }

func (a *agentActions) filter(f store.DomainEventFilter) *qb {
	b := &qb{}
	if f.TenantID != "" {
		b.add("tenant_id=" + b.arg(f.TenantID))
	}
	if f.EventTypePrefix != "" {
		b.add("event_type LIKE " + b.arg(f.EventTypePrefix+"%"))
	}
	if f.AggregateID != "" {
		b.add("aggregate_id=" + b.arg(f.AggregateID))
	}
	if f.From != nil {
		b.add("occurred_at >= " + b.arg(*f.From))
	}
	if f.To != nil {
		b.add("occurred_at <= " + b.arg(*f.To))
	}
	return b
}

func (a *agentActions) Find(ctx context.Context, f store.DomainEventFilter) ([]*model.DomainEvent, error) {
	b := a.filter(f)
	q := `
        SELECT event_id, tenant_id, event_type, aggregate_id, agent_id, payload, occurred_at
        FROM domain_events` + b.where() + " ORDER BY occurred_at DESC"
	if f.Limit > 0 {
		q += " LIMIT " + b.arg(f.Limit)
	}
	rows, err := a.db.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.DomainEvent
	for rows.Next() {
		var m model.DomainEvent
		var payload []byte
		if err := rows.Scan(&m.EventID, &m.TenantID, &m.EventType, &m.AggregateID, &m.AgentID,
			&payload, &m.OccurredAt); err != nil {
			return nil, err
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &m.Payload); err != nil {
				return nil, fmt.Errorf("domain event %s: bad payload: %w", m.EventID, err)
			}
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (a *agentActions) CountPending(ctx context.Context, f store.DomainEventFilter) (int, error) {
	b := a.filter(f)
	if len(f.RawStatusNotIn) > 0 {
		b.add("(json_extract(payload,'$.status') IS NULL OR " +
			b.notIn("LOWER(json_extract(payload,'$.status'))", lowered(f.RawStatusNotIn)) + ")")
	}
	var n int
	err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM domain_events"+b.where(), b.args...).Scan(&n)
	return n, err
}

// --- Communications ---

type emails struct{ db *sql.DB }

func (e *emails) Find(ctx context.Context, f store.CommunicationFilter) ([]*model.EmailMessage, error) {
	b := commFilter(f, "sent_at")
	q := `
        SELECT message_id, tenant_id, subject, snippet, from_address, to_address,
               sender_user_id, sent_at, related_entity_id
        FROM emails` + b.where() + " ORDER BY sent_at DESC" + commLimit(b, f)
	rows, err := e.db.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.EmailMessage
	for rows.Next() {
		var m model.EmailMessage
		if err := rows.Scan(&m.MessageID, &m.TenantID, &m.Subject, &m.Snippet, &m.FromAddress,
			&m.ToAddress, &m.SenderUserID, &m.SentAt, &m.RelatedEntityID); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

type chats struct{ db *sql.DB }

func (c *chats) Find(ctx context.Context, f store.CommunicationFilter) ([]*model.ChatMessage, error) {
	b := commFilter(f, "sent_at")
	q := `
        SELECT message_id, tenant_id, body, author_id, author_name, author_user_id,
               sent_at, related_entity_id
        FROM chat_messages` + b.where() + " ORDER BY sent_at DESC" + commLimit(b, f)
	rows, err := c.db.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.MessageID, &m.TenantID, &m.Body, &m.AuthorID, &m.AuthorName,
			&m.AuthorUserID, &m.SentAt, &m.RelatedEntityID); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

type calls struct{ db *sql.DB }

func (c *calls) Find(ctx context.Context, f store.CommunicationFilter) ([]*model.PhoneCall, error) {
	b := commFilter(f, "started_at")
	q := `
        SELECT call_id, tenant_id, from_number, to_number, placed_by_user_id,
               duration_seconds, notes, started_at, related_entity_id
        FROM phone_calls` + b.where() + " ORDER BY started_at DESC" + commLimit(b, f)
	rows, err := c.db.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.PhoneCall
	for rows.Next() {
		var m model.PhoneCall
		if err := rows.Scan(&m.CallID, &m.TenantID, &m.FromNumber, &m.ToNumber, &m.PlacedByUserID,
			&m.DurationSeconds, &m.Notes, &m.StartedAt, &m.RelatedEntityID); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func commFilter(f store.CommunicationFilter, tsCol string) *qb {
	b := &qb{}
	if f.TenantID != "" {
		b.add("tenant_id=" + b.arg(f.TenantID))
	}
	if f.EntityID != "" {
		b.add("related_entity_id=" + b.arg(f.EntityID))
	}
	if f.From != nil {
		b.add(tsCol + " >= " + b.arg(*f.From))
	}
	if f.To != nil {
		b.add(tsCol + " <= " + b.arg(*f.To))
	}
	return b
}

func commLimit(b *qb, f store.CommunicationFilter) string {
	if f.Limit > 0 {
		return " LIMIT " + b.arg(f.Limit)
	}
	return ""
}

// --- Documents ---

type documents struct{ db *sql.DB }

func (d *documents) FindByEntity(ctx context.Context, tenantID, entityID string) ([]*model.Document, error) {
	rows, err := d.db.QueryContext(ctx, `
        SELECT document_id, tenant_id, file_name, related_entity_id
        FROM documents WHERE tenant_id=? AND related_entity_id=?
    `, tenantID, entityID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Document
	for rows.Next() {
		var m model.Document
		if err := rows.Scan(&m.DocumentID, &m.TenantID, &m.FileName, &m.RelatedEntityID); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (d *documents) FindAuditEntries(ctx context.Context, tenantID string, documentIDs []string, from, to *time.Time, limit int) ([]*model.DocumentAuditEntry, error) {
	if len(documentIDs) == 0 {
		return nil, nil
	}
	b := &qb{}
	if tenantID != "" {
		b.add("tenant_id=" + b.arg(tenantID))
	}
	b.add(b.in("document_id", documentIDs))
	if from != nil {
		b.add("created_at >= " + b.arg(*from))
	}
	if to != nil {
		b.add("created_at <= " + b.arg(*to))
	}
	if limit <= 0 || limit > store.AuditRowCap {
		limit = store.AuditRowCap
	}
	q := `
        SELECT entry_id, tenant_id, document_id, action, actor_id, actor_name, version, created_at
        FROM document_audit` + b.where() + " ORDER BY created_at DESC LIMIT " + b.arg(limit)

	rows, err := d.db.QueryContext(ctx, q, b.args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.DocumentAuditEntry
	for rows.Next() {
		var m model.DocumentAuditEntry
		if err := rows.Scan(&m.EntryID, &m.TenantID, &m.DocumentID, &m.Action,
			&m.ActorID, &m.ActorName, &m.Version, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func lowered(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
