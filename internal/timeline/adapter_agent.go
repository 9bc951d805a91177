package timeline

import (
	"context"
	"strings"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
)

// agentActionEventPrefix selects the domain events that represent AI-agent
// actions among the wider event stream.
const agentActionEventPrefix = "AgentAction"

// agentAdapter projects agent-action domain events. The canonical status
// filter is applied after normalization, never pushed down: events without a
// payload status default to pending_approval and a raw SQL filter would
// wrongly drop them.
type agentAdapter struct {
	events store.AgentActions
}

func (a *agentAdapter) source() string { return "agent_actions" }

func (a *agentAdapter) eventTypes() []model.EventType {
	return []model.EventType{model.EventAgentAction}
}

func (a *agentAdapter) fetch(ctx context.Context, f fetchFilter) ([]model.TimelineEvent, error) {
	rows, err := a.events.Find(ctx, store.DomainEventFilter{
		TenantID:        f.scope.TenantID,
		EventTypePrefix: agentActionEventPrefix,
		AggregateID:     f.entityID,
		From:            f.from,
		To:              f.to,
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.TimelineEvent, 0, len(rows))
	for _, de := range rows {
		ev := projectAgentAction(de)
		if len(f.agentStatuses) > 0 && !statusIn(ev, f.agentStatuses) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func statusIn(ev model.TimelineEvent, statuses []model.AgentActionStatus) bool {
	d, ok := ev.Detail.(*model.AgentActionDetail)
	if !ok {
		return false
	}
	for _, s := range statuses {
		if s == d.Status {
			return true
		}
	}
	return false
}

// projectAgentAction synthesizes the actor as an agent identity; these events
// are never attributed to a human.
func projectAgentAction(de *model.DomainEvent) model.TimelineEvent {
	actionType := strings.TrimPrefix(de.EventType, agentActionEventPrefix)
	actionType = strings.TrimPrefix(actionType, ".")

	var rawStatus string
	if s, ok := de.Payload["status"].(string); ok {
		rawStatus = s
	}

	title := actionType
	if t, ok := de.Payload["title"].(string); ok && t != "" {
		title = t
	}
	agentName := "AI Agent"
	if n, ok := de.Payload["agentName"].(string); ok && n != "" {
		agentName = n
	}

	return model.TimelineEvent{
		ID:         eventID("agent_action", de.EventID),
		Type:       model.EventAgentAction,
		Title:      title,
		Timestamp:  de.OccurredAt,
		EntityType: "agent_action",
		EntityID:   de.AggregateID,
		Actor:      &model.Actor{ID: de.AgentID, Name: agentName, IsAgent: true},
		Detail: &model.AgentActionDetail{
			ActionType: actionType,
			Status:     MapAgentActionStatus(rawStatus),
			AgentID:    de.AgentID,
			Payload:    de.Payload,
		},
	}
}
