package timeline

import (
	"context"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
)

// The communication source is split into three sub-adapters sharing the
// CommunicationDetail shape. Direction is inferred per channel: a message is
// outbound when a CRM user produced it.

type emailAdapter struct {
	emails store.Emails
}

func (a *emailAdapter) source() string { return "emails" }

func (a *emailAdapter) eventTypes() []model.EventType {
	return []model.EventType{model.EventEmail}
}

func (a *emailAdapter) fetch(ctx context.Context, f fetchFilter) ([]model.TimelineEvent, error) {
	rows, err := a.emails.Find(ctx, store.CommunicationFilter{
		TenantID: f.scope.TenantID,
		EntityID: f.entityID,
		From:     f.from,
		To:       f.to,
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.TimelineEvent, 0, len(rows))
	for _, m := range rows {
		direction := "inbound"
		if m.SenderUserID != nil {
			direction = "outbound"
		}
		title := m.Subject
		if title == "" {
			title = "Email"
		}
		out = append(out, model.TimelineEvent{
			ID:          eventID("email", m.MessageID),
			Type:        model.EventEmail,
			Title:       title,
			Description: m.Snippet,
			Timestamp:   m.SentAt,
			EntityType:  "communication",
			EntityID:    m.MessageID,
			Detail: &model.CommunicationDetail{
				Channel:   "email",
				Direction: direction,
				Subject:   ptr(m.Subject),
				From:      m.FromAddress,
				To:        m.ToAddress,
			},
		})
	}
	return out, nil
}

type chatAdapter struct {
	chats store.Chats
}

func (a *chatAdapter) source() string { return "chat" }

func (a *chatAdapter) eventTypes() []model.EventType {
	return []model.EventType{model.EventCommunication}
}

func (a *chatAdapter) fetch(ctx context.Context, f fetchFilter) ([]model.TimelineEvent, error) {
	rows, err := a.chats.Find(ctx, store.CommunicationFilter{
		TenantID: f.scope.TenantID,
		EntityID: f.entityID,
		From:     f.from,
		To:       f.to,
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.TimelineEvent, 0, len(rows))
	for _, m := range rows {
		direction := "inbound"
		if m.AuthorUserID != nil {
			direction = "outbound"
		}
		out = append(out, model.TimelineEvent{
			ID:          eventID("chat", m.MessageID),
			Type:        model.EventCommunication,
			Title:       "Chat message",
			Description: ptr(m.Body),
			Timestamp:   m.SentAt,
			EntityType:  "communication",
			EntityID:    m.MessageID,
			Actor:       &model.Actor{ID: m.AuthorID, Name: m.AuthorName},
			Detail: &model.CommunicationDetail{
				Channel:   "chat",
				Direction: direction,
				From:      m.AuthorName,
			},
		})
	}
	return out, nil
}

type callAdapter struct {
	calls store.Calls
}

func (a *callAdapter) source() string { return "calls" }

func (a *callAdapter) eventTypes() []model.EventType {
	return []model.EventType{model.EventCall}
}

func (a *callAdapter) fetch(ctx context.Context, f fetchFilter) ([]model.TimelineEvent, error) {
	rows, err := a.calls.Find(ctx, store.CommunicationFilter{
		TenantID: f.scope.TenantID,
		EntityID: f.entityID,
		From:     f.from,
		To:       f.to,
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.TimelineEvent, 0, len(rows))
	for _, c := range rows {
		direction := "inbound"
		title := "Inbound call"
		if c.PlacedByUserID != nil {
			direction = "outbound"
			title = "Outbound call"
		}
		dur := c.DurationSeconds
		out = append(out, model.TimelineEvent{
			ID:          eventID("call", c.CallID),
			Type:        model.EventCall,
			Title:       title,
			Description: c.Notes,
			Timestamp:   c.StartedAt,
			EntityType:  "communication",
			EntityID:    c.CallID,
			Detail: &model.CommunicationDetail{
				Channel:         "call",
				Direction:       direction,
				From:            c.FromNumber,
				To:              c.ToNumber,
				DurationSeconds: &dur,
			},
		})
	}
	return out, nil
}
