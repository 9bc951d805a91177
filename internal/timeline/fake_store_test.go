package timeline

import (
	"context"
	"strings"
	"time"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
)

// fakeStore is an in-memory store.Store that applies the same filter
// semantics as the SQL drivers, plus per-source error injection.
type fakeStore struct {
	tasks    []*model.Task
	appts    []*model.Appointment
	audits   []*model.AuditEntry
	events   []*model.DomainEvent
	emails   []*model.EmailMessage
	chats    []*model.ChatMessage
	calls    []*model.PhoneCall
	docs     []*model.Document
	docTrail []*model.DocumentAuditEntry

	failing map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{failing: map[string]error{}}
}

func (f *fakeStore) Tasks() store.Tasks               { return &fakeTasks{f} }
func (f *fakeStore) Appointments() store.Appointments { return &fakeAppointments{f} }
func (f *fakeStore) AuditLogs() store.AuditLogs       { return &fakeAuditLogs{f} }
func (f *fakeStore) AgentActions() store.AgentActions { return &fakeAgentActions{f} }
func (f *fakeStore) Emails() store.Emails             { return &fakeEmails{f} }
func (f *fakeStore) Chats() store.Chats               { return &fakeChats{f} }
func (f *fakeStore) Calls() store.Calls               { return &fakeCalls{f} }
func (f *fakeStore) Documents() store.Documents       { return &fakeDocuments{f} }

func inList(v string, list []string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

type fakeTasks struct{ s *fakeStore }

func taskTimestamp(t *model.Task) time.Time {
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	if t.DueDate != nil {
		return *t.DueDate
	}
	return t.CreatedAt
}

func (f *fakeTasks) match(t *model.Task, fl store.TaskFilter) bool {
	if fl.TenantID != "" && t.TenantID != fl.TenantID {
		return false
	}
	if fl.EntityID != "" || fl.ContactID != "" {
		linked := false
		if fl.EntityID != "" && t.RelatedEntityID != nil && *t.RelatedEntityID == fl.EntityID {
			linked = true
		}
		if fl.ContactID != "" && t.ContactID != nil && *t.ContactID == fl.ContactID {
			linked = true
		}
		if !linked {
			return false
		}
	}
	ts := taskTimestamp(t)
	if fl.From != nil && ts.Before(*fl.From) {
		return false
	}
	if fl.To != nil && ts.After(*fl.To) {
		return false
	}
	if fl.DueFrom != nil && (t.DueDate == nil || t.DueDate.Before(*fl.DueFrom)) {
		return false
	}
	if fl.DueTo != nil && (t.DueDate == nil || t.DueDate.After(*fl.DueTo)) {
		return false
	}
	if fl.DueBefore != nil && (t.DueDate == nil || !t.DueDate.Before(*fl.DueBefore)) {
		return false
	}
	if len(fl.StatusIn) > 0 && !inList(t.Status, fl.StatusIn) {
		return false
	}
	if len(fl.StatusNotIn) > 0 && inList(t.Status, fl.StatusNotIn) {
		return false
	}
	if len(fl.PriorityIn) > 0 && !inList(t.Priority, fl.PriorityIn) {
		return false
	}
	if fl.Search != "" {
		hay := strings.ToLower(t.Title)
		if t.Description != nil {
			hay += " " + strings.ToLower(*t.Description)
		}
		if !strings.Contains(hay, strings.ToLower(fl.Search)) {
			return false
		}
	}
	return true
}

func (f *fakeTasks) Find(_ context.Context, fl store.TaskFilter) ([]*model.Task, error) {
	if err := f.s.failing["tasks"]; err != nil {
		return nil, err
	}
	var out []*model.Task
	for _, t := range f.s.tasks {
		if f.match(t, fl) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTasks) Count(ctx context.Context, fl store.TaskFilter) (int, error) {
	rows, err := f.Find(ctx, fl)
	return len(rows), err
}

type fakeAppointments struct{ s *fakeStore }

func (f *fakeAppointments) match(a *model.Appointment, fl store.AppointmentFilter) bool {
	if fl.TenantID != "" && a.TenantID != fl.TenantID {
		return false
	}
	if fl.EntityID != "" && (a.RelatedEntityID == nil || *a.RelatedEntityID != fl.EntityID) {
		return false
	}
	if fl.ParticipantID != "" {
		ok := a.OrganizerID == fl.ParticipantID
		for _, id := range a.AttendeeIDs {
			if id == fl.ParticipantID {
				ok = true
			}
		}
		if !ok {
			return false
		}
	}
	if fl.From != nil && a.StartTime.Before(*fl.From) {
		return false
	}
	if fl.To != nil && a.StartTime.After(*fl.To) {
		return false
	}
	if len(fl.StatusNotIn) > 0 && inList(a.Status, fl.StatusNotIn) {
		return false
	}
	return true
}

func (f *fakeAppointments) Find(_ context.Context, fl store.AppointmentFilter) ([]*model.Appointment, error) {
	if err := f.s.failing["appointments"]; err != nil {
		return nil, err
	}
	var out []*model.Appointment
	for _, a := range f.s.appts {
		if f.match(a, fl) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) CountUpcoming(ctx context.Context, fl store.AppointmentFilter) (int, error) {
	rows, err := f.Find(ctx, fl)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range rows {
		if strings.EqualFold(a.Status, "scheduled") {
			n++
		}
	}
	return n, nil
}

type fakeAuditLogs struct{ s *fakeStore }

func (f *fakeAuditLogs) Find(_ context.Context, fl store.AuditFilter) ([]*model.AuditEntry, error) {
	if err := f.s.failing["audit"]; err != nil {
		return nil, err
	}
	if len(fl.Entities) == 0 {
		return nil, nil
	}
	limit := fl.Limit
	if limit <= 0 || limit > store.AuditRowCap {
		limit = store.AuditRowCap
	}
	var out []*model.AuditEntry
	for _, e := range f.s.audits {
		if fl.TenantID != "" && e.TenantID != fl.TenantID {
			continue
		}
		hit := false
		for _, ref := range fl.Entities {
			if ref.Type == e.EntityType && ref.ID == e.EntityID {
				hit = true
			}
		}
		if !hit {
			continue
		}
		if fl.From != nil && e.CreatedAt.Before(*fl.From) {
			continue
		}
		if fl.To != nil && e.CreatedAt.After(*fl.To) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeAgentActions struct{ s *fakeStore }

func (f *fakeAgentActions) match(e *model.DomainEvent, fl store.DomainEventFilter) bool {
	if fl.TenantID != "" && e.TenantID != fl.TenantID {
		return false
	}
	if fl.EventTypePrefix != "" && !strings.HasPrefix(e.EventType, fl.EventTypePrefix) {
		return false
	}
	if fl.AggregateID != "" && e.AggregateID != fl.AggregateID {
		return false
	}
	if fl.From != nil && e.OccurredAt.Before(*fl.From) {
		return false
	}
	if fl.To != nil && e.OccurredAt.After(*fl.To) {
		return false
	}
	return true
}

func (f *fakeAgentActions) Find(_ context.Context, fl store.DomainEventFilter) ([]*model.DomainEvent, error) {
	if err := f.s.failing["agent_actions"]; err != nil {
		return nil, err
	}
	var out []*model.DomainEvent
	for _, e := range f.s.events {
		if f.match(e, fl) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeAgentActions) CountPending(_ context.Context, fl store.DomainEventFilter) (int, error) {
	if err := f.s.failing["agent_actions"]; err != nil {
		return 0, err
	}
	n := 0
	for _, e := range f.s.events {
		if !f.match(e, fl) {
			continue
		}
		raw, _ := e.Payload["status"].(string)
		if raw != "" && inList(raw, fl.RawStatusNotIn) {
			continue
		}
		n++
	}
	return n, nil
}

type fakeEmails struct{ s *fakeStore }

func (f *fakeEmails) Find(_ context.Context, fl store.CommunicationFilter) ([]*model.EmailMessage, error) {
	if err := f.s.failing["emails"]; err != nil {
		return nil, err
	}
	var out []*model.EmailMessage
	for _, m := range f.s.emails {
		if fl.TenantID != "" && m.TenantID != fl.TenantID {
			continue
		}
		if fl.EntityID != "" && (m.RelatedEntityID == nil || *m.RelatedEntityID != fl.EntityID) {
			continue
		}
		if fl.From != nil && m.SentAt.Before(*fl.From) {
			continue
		}
		if fl.To != nil && m.SentAt.After(*fl.To) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type fakeChats struct{ s *fakeStore }

func (f *fakeChats) Find(_ context.Context, fl store.CommunicationFilter) ([]*model.ChatMessage, error) {
	if err := f.s.failing["chat"]; err != nil {
		return nil, err
	}
	var out []*model.ChatMessage
	for _, m := range f.s.chats {
		if fl.TenantID != "" && m.TenantID != fl.TenantID {
			continue
		}
		if fl.EntityID != "" && (m.RelatedEntityID == nil || *m.RelatedEntityID != fl.EntityID) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type fakeCalls struct{ s *fakeStore }

func (f *fakeCalls) Find(_ context.Context, fl store.CommunicationFilter) ([]*model.PhoneCall, error) {
	if err := f.s.failing["calls"]; err != nil {
		return nil, err
	}
	var out []*model.PhoneCall
	for _, c := range f.s.calls {
		if fl.TenantID != "" && c.TenantID != fl.TenantID {
			continue
		}
		if fl.EntityID != "" && (c.RelatedEntityID == nil || *c.RelatedEntityID != fl.EntityID) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type fakeDocuments struct{ s *fakeStore }

func (f *fakeDocuments) FindByEntity(_ context.Context, tenantID, entityID string) ([]*model.Document, error) {
	if err := f.s.failing["documents"]; err != nil {
		return nil, err
	}
	var out []*model.Document
	for _, d := range f.s.docs {
		if d.TenantID == tenantID && d.RelatedEntityID != nil && *d.RelatedEntityID == entityID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocuments) FindAuditEntries(_ context.Context, tenantID string, documentIDs []string, from, to *time.Time, limit int) ([]*model.DocumentAuditEntry, error) {
	if err := f.s.failing["documents"]; err != nil {
		return nil, err
	}
	if len(documentIDs) == 0 {
		return nil, nil
	}
	if limit <= 0 || limit > store.AuditRowCap {
		limit = store.AuditRowCap
	}
	var out []*model.DocumentAuditEntry
	for _, e := range f.s.docTrail {
		if e.TenantID != tenantID || !inList(e.DocumentID, documentIDs) {
			continue
		}
		if from != nil && e.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && e.CreatedAt.After(*to) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
