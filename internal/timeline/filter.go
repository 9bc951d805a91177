package timeline

import (
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
)

// ShouldIncludeType evaluates the two-list type predicate. The exclude list
// is checked first and wins unconditionally; a present, non-empty include
// list then requires membership; otherwise the type is included. This
// precedence lets "show everything except X" and "show only X" compose
// predictably.
func ShouldIncludeType(t model.EventType, include, exclude []model.EventType) bool {
	for _, e := range exclude {
		if e == t {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, i := range include {
		if i == t {
			return true
		}
	}
	return false
}

// adapterSelected reports whether any of the adapter's emitted types survives
// the query's type filter; unselected adapters are never queried.
func adapterSelected(a sourceAdapter, q *model.TimelineQuery) bool {
	for _, t := range a.eventTypes() {
		if ShouldIncludeType(t, q.EventTypes, q.ExcludeTypes) {
			return true
		}
	}
	return false
}

// includeEvent is the post-fetch predicate. Adapters already prune
// source-side; this re-checks type, priority, date range and completion
// visibility on the materialized event before it can reach a response.
func includeEvent(ev *model.TimelineEvent, q *model.TimelineQuery) bool {
	if !ShouldIncludeType(ev.Type, q.EventTypes, q.ExcludeTypes) {
		return false
	}
	if len(q.Priorities) > 0 && ev.Priority != nil {
		found := false
		for _, p := range q.Priorities {
			if p == *ev.Priority {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.FromDate != nil && ev.Timestamp.Before(*q.FromDate) {
		return false
	}
	if q.ToDate != nil && ev.Timestamp.After(*q.ToDate) {
		return false
	}
	if !q.CompletedVisible() && ev.Type == model.EventTaskCompleted {
		return false
	}
	return true
}
