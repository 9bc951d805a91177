package timeline

import (
	"context"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
)

// auditAdapter projects generic audit-log rows. Subtypes are classified from
// the action label; rows are capped at store.AuditRowCap per call.
type auditAdapter struct {
	audits store.AuditLogs
}

func (a *auditAdapter) source() string { return "audit" }

func (a *auditAdapter) eventTypes() []model.EventType {
	return []model.EventType{model.EventAudit, model.EventStatusChange, model.EventStageChange}
}

func (a *auditAdapter) fetch(ctx context.Context, f fetchFilter) ([]model.TimelineEvent, error) {
	refs := entityRefs(f.scope)
	if len(refs) == 0 {
		return nil, nil
	}
	rows, err := a.audits.Find(ctx, store.AuditFilter{
		TenantID: f.scope.TenantID,
		Entities: refs,
		From:     f.from,
		To:       f.to,
		Limit:    store.AuditRowCap,
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.TimelineEvent, 0, len(rows))
	for _, e := range rows {
		out = append(out, projectAuditEntry(e))
	}
	return out, nil
}

func projectAuditEntry(e *model.AuditEntry) model.TimelineEvent {
	ev := model.TimelineEvent{
		ID:         eventID("audit", e.EntryID),
		Type:       ClassifyAuditAction(e.Action),
		Title:      e.Action,
		Timestamp:  e.CreatedAt,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Metadata:   e.Changes,
	}
	if e.ActorID != nil {
		name := ""
		if e.ActorName != nil {
			name = *e.ActorName
		}
		ev.Actor = &model.Actor{ID: *e.ActorID, Name: name}
	}
	return ev
}
