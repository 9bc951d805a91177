package timeline

import (
	"context"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
)

// documentAdapter projects the document audit trail. The query is two-step:
// resolve the documents owned by the entity scope, then fetch audit rows for
// that document set. An entity with no documents short-circuits to empty
// rather than erroring.
type documentAdapter struct {
	docs store.Documents
}

func (a *documentAdapter) source() string { return "documents" }

func (a *documentAdapter) eventTypes() []model.EventType {
	return []model.EventType{model.EventDocument, model.EventDocumentVersion}
}

func (a *documentAdapter) fetch(ctx context.Context, f fetchFilter) ([]model.TimelineEvent, error) {
	if f.entityID == "" {
		return nil, nil
	}
	docs, err := a.docs.FindByEntity(ctx, f.scope.TenantID, f.entityID)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(docs))
	names := make(map[string]string, len(docs))
	for i, d := range docs {
		ids[i] = d.DocumentID
		names[d.DocumentID] = d.FileName
	}

	rows, err := a.docs.FindAuditEntries(ctx, f.scope.TenantID, ids, f.from, f.to, store.AuditRowCap)
	if err != nil {
		return nil, err
	}

	out := make([]model.TimelineEvent, 0, len(rows))
	for _, e := range rows {
		ev := model.TimelineEvent{
			ID:         eventID("document_audit", e.EntryID),
			Type:       ClassifyDocumentAction(e.Action),
			Title:      e.Action,
			Timestamp:  e.CreatedAt,
			EntityType: "document",
			EntityID:   e.DocumentID,
			Detail: &model.DocumentDetail{
				DocumentID: e.DocumentID,
				FileName:   names[e.DocumentID],
				Action:     e.Action,
				Version:    e.Version,
			},
		}
		if e.ActorID != nil {
			name := ""
			if e.ActorName != nil {
				name = *e.ActorName
			}
			ev.Actor = &model.Actor{ID: *e.ActorID, Name: name}
		}
		out = append(out, ev)
	}
	return out, nil
}
