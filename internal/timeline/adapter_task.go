package timeline

import (
	"context"
	"strings"
	"time"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
)

// taskAdapter projects CRM tasks. It is the only adapter with free-text
// search support; search matches title and description source-side.
type taskAdapter struct {
	tasks store.Tasks
}

func (a *taskAdapter) source() string { return "tasks" }

func (a *taskAdapter) eventTypes() []model.EventType {
	return []model.EventType{model.EventTask, model.EventTaskCompleted, model.EventTaskOverdue}
}

func (a *taskAdapter) fetch(ctx context.Context, f fetchFilter) ([]model.TimelineEvent, error) {
	filter := store.TaskFilter{
		TenantID:   f.scope.TenantID,
		EntityID:   f.entityID,
		ContactID:  f.scope.ContactID,
		From:       f.from,
		To:         f.to,
		Search:     f.search,
		PriorityIn: rawPriorities(f.priorities),
	}
	if !f.includeCompleted {
		filter.StatusNotIn = []string{"COMPLETED", "CANCELLED"}
	}
	rows, err := a.tasks.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]model.TimelineEvent, 0, len(rows))
	for _, t := range rows {
		out = append(out, projectTask(t, f.now))
	}
	return out, nil
}

// projectTask picks the authoritative timestamp (completedAt, else dueDate,
// else createdAt) and computes the task subtype. Completed takes precedence
// over overdue.
func projectTask(t *model.Task, now time.Time) model.TimelineEvent {
	ts := t.CreatedAt
	if t.DueDate != nil {
		ts = *t.DueDate
	}
	if t.CompletedAt != nil {
		ts = *t.CompletedAt
	}

	completed := strings.EqualFold(t.Status, "COMPLETED")
	cancelled := strings.EqualFold(t.Status, "CANCELLED")
	overdue := t.DueDate != nil && t.DueDate.Before(now) && !completed && !cancelled

	typ := model.EventTask
	switch {
	case completed:
		typ = model.EventTaskCompleted
	case overdue:
		typ = model.EventTaskOverdue
	}

	ev := model.TimelineEvent{
		ID:          eventID("task", t.TaskID),
		Type:        typ,
		Title:       t.Title,
		Description: t.Description,
		Timestamp:   ts,
		EntityType:  "task",
		EntityID:    t.TaskID,
		IsOverdue:   overdue,
		Metadata:    t.Metadata,
		Detail: &model.TaskDetail{
			Status:      t.Status,
			DueDate:     t.DueDate,
			CompletedAt: t.CompletedAt,
			AssigneeID:  t.AssigneeID,
		},
	}
	if p, ok := MapPriority(t.Priority); ok {
		ev.Priority = &p
	}
	if t.AssigneeID != nil {
		name := ""
		if t.AssigneeName != nil {
			name = *t.AssigneeName
		}
		ev.Actor = &model.Actor{ID: *t.AssigneeID, Name: name}
	}
	return ev
}
