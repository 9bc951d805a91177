// Package storetest holds a driver-agnostic compliance suite for the read
// interfaces in internal/store.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
)

// ExecFunc runs one INSERT against the backing database. Queries use ?
// placeholders; drivers with positional syntax rebind before executing.
type ExecFunc func(query string, args ...any) error

// Run exercises a compliance suite against a store.Store implementation.
// Implementations provide a clean, isolated store plus an exec hook used to
// seed source rows.
func Run(t *testing.T, makeStore func(t *testing.T) (store.Store, ExecFunc)) {
	t.Helper()

	s, exec := makeStore(t)
	ctx := context.Background()

	tenant := "tenant-" + uuid.New().String()
	otherTenant := "tenant-" + uuid.New().String()
	entity := "opp-" + uuid.New().String()
	user := "user-" + uuid.New().String()

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	seed := func(q string, args ...any) {
		t.Helper()
		if err := exec(q, args...); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// Tasks: one open, one completed, one for another tenant.
	seed(`INSERT INTO tasks (task_id, tenant_id, title, description, status, priority, due_date, completed_at, created_at, assignee_id, assignee_name, related_entity_id, contact_id, metadata)
          VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		"task-1", tenant, "Call the buyer", "Discuss renewal terms", "PENDING", "HIGH", at(24), nil, at(0), user, "Dana", entity, nil, nil)
	seed(`INSERT INTO tasks (task_id, tenant_id, title, description, status, priority, due_date, completed_at, created_at, assignee_id, assignee_name, related_entity_id, contact_id, metadata)
          VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		"task-2", tenant, "Send contract", nil, "COMPLETED", "MEDIUM", at(-24), at(-2), at(-48), user, "Dana", entity, nil, nil)
	seed(`INSERT INTO tasks (task_id, tenant_id, title, description, status, priority, due_date, completed_at, created_at, assignee_id, assignee_name, related_entity_id, contact_id, metadata)
          VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		"task-3", otherTenant, "Other tenant task", nil, "PENDING", "LOW", at(24), nil, at(0), nil, nil, entity, nil, nil)

	tasks, err := s.Tasks().Find(ctx, store.TaskFilter{TenantID: tenant, EntityID: entity})
	if err != nil {
		t.Fatalf("Tasks.Find: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("Tasks.Find: got %d tasks, want 2", len(tasks))
	}

	open, err := s.Tasks().Find(ctx, store.TaskFilter{TenantID: tenant, EntityID: entity, StatusNotIn: []string{"COMPLETED", "CANCELLED"}})
	if err != nil || len(open) != 1 || open[0].TaskID != "task-1" {
		t.Fatalf("Tasks.Find open: got=%v err=%v", open, err)
	}

	found, err := s.Tasks().Find(ctx, store.TaskFilter{TenantID: tenant, EntityID: entity, Search: "contract"})
	if err != nil || len(found) != 1 || found[0].TaskID != "task-2" {
		t.Fatalf("Tasks.Find search: got=%v err=%v", found, err)
	}

	// Range filter binds the authoritative timestamp, so the completed task
	// sits at its completion time, not its due date.
	from := at(-3)
	ranged, err := s.Tasks().Find(ctx, store.TaskFilter{TenantID: tenant, EntityID: entity, From: &from})
	if err != nil || len(ranged) != 2 {
		t.Fatalf("Tasks.Find range: n=%d err=%v", len(ranged), err)
	}

	dueBefore := at(0)
	if n, err := s.Tasks().Count(ctx, store.TaskFilter{TenantID: tenant, EntityID: entity, DueBefore: &dueBefore, StatusNotIn: []string{"COMPLETED", "CANCELLED"}}); err != nil || n != 0 {
		t.Fatalf("Tasks.Count overdue: n=%d err=%v", n, err)
	}
	if n, err := s.Tasks().Count(ctx, store.TaskFilter{TenantID: tenant, EntityID: entity, StatusIn: []string{"COMPLETED"}}); err != nil || n != 1 {
		t.Fatalf("Tasks.Count completed: n=%d err=%v", n, err)
	}

	// Appointments: caller organizes one and attends another; a third is
	// someone else's.
	seed(`INSERT INTO appointments (appointment_id, tenant_id, title, description, status, start_time, end_time, location, meeting_url, organizer_id, attendees, related_entity_id)
          VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		"appt-1", tenant, "Demo call", nil, "scheduled", at(48), at(49), nil, nil, user, `[]`, entity)
	seed(`INSERT INTO appointments (appointment_id, tenant_id, title, description, status, start_time, end_time, location, meeting_url, organizer_id, attendees, related_entity_id)
          VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		"appt-2", tenant, "Kickoff", nil, "scheduled", at(72), at(73), nil, nil, "someone-else", `["`+user+`"]`, entity)
	seed(`INSERT INTO appointments (appointment_id, tenant_id, title, description, status, start_time, end_time, location, meeting_url, organizer_id, attendees, related_entity_id)
          VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		"appt-3", tenant, "Private sync", nil, "scheduled", at(96), nil, nil, nil, "someone-else", `[]`, entity)

	appts, err := s.Appointments().Find(ctx, store.AppointmentFilter{TenantID: tenant, EntityID: entity, ParticipantID: user})
	if err != nil {
		t.Fatalf("Appointments.Find: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("Appointments.Find participant: got %d, want 2", len(appts))
	}
	if appts[0].AppointmentID != "appt-1" {
		t.Fatalf("Appointments.Find order: first=%s", appts[0].AppointmentID)
	}

	upFrom := at(60)
	if n, err := s.Appointments().CountUpcoming(ctx, store.AppointmentFilter{TenantID: tenant, EntityID: entity, ParticipantID: user, From: &upFrom}); err != nil || n != 1 {
		t.Fatalf("Appointments.CountUpcoming: n=%d err=%v", n, err)
	}

	// Audit log: entries for the entity plus an unrelated one.
	seed(`INSERT INTO audit_log (entry_id, tenant_id, entity_type, entity_id, action, actor_id, actor_name, changes, created_at)
          VALUES (?,?,?,?,?,?,?,?,?)`,
		"audit-1", tenant, "opportunity", entity, "stage_changed", user, "Dana", `{"stage":["qualify","propose"]}`, at(-1))
	seed(`INSERT INTO audit_log (entry_id, tenant_id, entity_type, entity_id, action, actor_id, actor_name, changes, created_at)
          VALUES (?,?,?,?,?,?,?,?,?)`,
		"audit-2", tenant, "opportunity", "other-entity", "updated", nil, nil, nil, at(-1))

	audits, err := s.AuditLogs().Find(ctx, store.AuditFilter{TenantID: tenant, Entities: []store.EntityRef{{Type: "opportunity", ID: entity}}})
	if err != nil || len(audits) != 1 || audits[0].EntryID != "audit-1" {
		t.Fatalf("AuditLogs.Find: got=%v err=%v", audits, err)
	}
	if audits[0].Changes["stage"] == nil {
		t.Fatalf("AuditLogs.Find: changes not decoded")
	}
	if more, err := s.AuditLogs().Find(ctx, store.AuditFilter{TenantID: tenant}); err != nil || more != nil {
		t.Fatalf("AuditLogs.Find without refs: got=%v err=%v", more, err)
	}

	// Domain events: one pending (no status), one approved, one non-agent.
	seed(`INSERT INTO domain_events (event_id, tenant_id, event_type, aggregate_id, agent_id, payload, occurred_at)
          VALUES (?,?,?,?,?,?,?)`,
		"evt-1", tenant, "AgentAction.LeadScored", entity, "agent-1", `{"title":"Scored lead"}`, at(-4))
	seed(`INSERT INTO domain_events (event_id, tenant_id, event_type, aggregate_id, agent_id, payload, occurred_at)
          VALUES (?,?,?,?,?,?,?)`,
		"evt-2", tenant, "AgentAction.DraftEmail", entity, "agent-1", `{"status":"approved"}`, at(-3))
	seed(`INSERT INTO domain_events (event_id, tenant_id, event_type, aggregate_id, agent_id, payload, occurred_at)
          VALUES (?,?,?,?,?,?,?)`,
		"evt-3", tenant, "Billing.InvoiceIssued", entity, "", nil, at(-2))

	evts, err := s.AgentActions().Find(ctx, store.DomainEventFilter{TenantID: tenant, EventTypePrefix: "AgentAction", AggregateID: entity})
	if err != nil || len(evts) != 2 {
		t.Fatalf("AgentActions.Find: n=%d err=%v", len(evts), err)
	}

	// Rows without a payload status count as pending.
	if n, err := s.AgentActions().CountPending(ctx, store.DomainEventFilter{
		TenantID: tenant, EventTypePrefix: "AgentAction", AggregateID: entity,
		RawStatusNotIn: []string{"approved", "rejected", "rolled_back", "expired"},
	}); err != nil || n != 1 {
		t.Fatalf("AgentActions.CountPending: n=%d err=%v", n, err)
	}

	// Communications.
	seed(`INSERT INTO emails (message_id, tenant_id, subject, snippet, from_address, to_address, sender_user_id, sent_at, related_entity_id)
          VALUES (?,?,?,?,?,?,?,?,?)`,
		"mail-1", tenant, "Renewal quote", "Attached is the quote", "dana@crm.test", "buyer@acme.test", user, at(-6), entity)
	seed(`INSERT INTO chat_messages (message_id, tenant_id, body, author_id, author_name, author_user_id, sent_at, related_entity_id)
          VALUES (?,?,?,?,?,?,?,?)`,
		"chat-1", tenant, "Sounds good", "contact-1", "Buyer", nil, at(-5), entity)
	seed(`INSERT INTO phone_calls (call_id, tenant_id, from_number, to_number, placed_by_user_id, duration_seconds, notes, started_at, related_entity_id)
          VALUES (?,?,?,?,?,?,?,?,?)`,
		"call-1", tenant, "+1555000", "+1555111", user, 300, nil, at(-7), entity)

	mails, err := s.Emails().Find(ctx, store.CommunicationFilter{TenantID: tenant, EntityID: entity})
	if err != nil || len(mails) != 1 || mails[0].SenderUserID == nil {
		t.Fatalf("Emails.Find: got=%v err=%v", mails, err)
	}
	msgs, err := s.Chats().Find(ctx, store.CommunicationFilter{TenantID: tenant, EntityID: entity})
	if err != nil || len(msgs) != 1 || msgs[0].AuthorUserID != nil {
		t.Fatalf("Chats.Find: got=%v err=%v", msgs, err)
	}
	callFrom := at(-8)
	callTo := at(-6)
	phone, err := s.Calls().Find(ctx, store.CommunicationFilter{TenantID: tenant, EntityID: entity, From: &callFrom, To: &callTo})
	if err != nil || len(phone) != 1 || phone[0].DurationSeconds != 300 {
		t.Fatalf("Calls.Find: got=%v err=%v", phone, err)
	}

	// Documents: resolve by entity, then fetch the audit trail by document id.
	seed(`INSERT INTO documents (document_id, tenant_id, file_name, related_entity_id) VALUES (?,?,?,?)`,
		"doc-1", tenant, "proposal.pdf", entity)
	seed(`INSERT INTO document_audit (entry_id, tenant_id, document_id, action, actor_id, actor_name, version, created_at)
          VALUES (?,?,?,?,?,?,?,?)`,
		"dae-1", tenant, "doc-1", "uploaded", user, "Dana", 1, at(-10))
	seed(`INSERT INTO document_audit (entry_id, tenant_id, document_id, action, actor_id, actor_name, version, created_at)
          VALUES (?,?,?,?,?,?,?,?)`,
		"dae-2", tenant, "doc-1", "version_created", user, "Dana", 2, at(-9))

	docs, err := s.Documents().FindByEntity(ctx, tenant, entity)
	if err != nil || len(docs) != 1 || docs[0].FileName != "proposal.pdf" {
		t.Fatalf("Documents.FindByEntity: got=%v err=%v", docs, err)
	}
	trail, err := s.Documents().FindAuditEntries(ctx, tenant, []string{"doc-1"}, nil, nil, 0)
	if err != nil || len(trail) != 2 {
		t.Fatalf("Documents.FindAuditEntries: n=%d err=%v", len(trail), err)
	}
	if trail[0].EntryID != "dae-2" {
		t.Fatalf("Documents.FindAuditEntries order: first=%s", trail[0].EntryID)
	}
	if empty, err := s.Documents().FindAuditEntries(ctx, tenant, nil, nil, nil, 0); err != nil || empty != nil {
		t.Fatalf("Documents.FindAuditEntries without ids: got=%v err=%v", empty, err)
	}
}
