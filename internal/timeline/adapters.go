package timeline

import (
	"context"
	"strings"
	"time"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
)

// fetchFilter is the shared per-request filter handed to every adapter.
// now is captured once per request so every overdue computation within one
// call sees the same clock.
type fetchFilter struct {
	scope            model.Scope
	entityID         string
	from, to         *time.Time
	includeCompleted bool
	search           string
	priorities       []model.Priority
	agentStatuses    []model.AgentActionStatus
	now              time.Time
}

// sourceAdapter translates one origin's records into canonical events.
// Adapters only read; a fetch must never mutate source state.
type sourceAdapter interface {
	source() string
	eventTypes() []model.EventType
	fetch(ctx context.Context, f fetchFilter) ([]model.TimelineEvent, error)
}

// eventID derives the stable event id from source kind and record id.
// Repeated queries against unchanged data must produce identical ids.
func eventID(kind, recordID string) string {
	return kind + "-" + recordID
}

// rawPriorities maps canonical priorities to the upper-case labels the source
// tables use, for source-side pushdown.
func rawPriorities(ps []model.Priority) []string {
	if len(ps) == 0 {
		return nil
	}
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = strings.ToUpper(string(p))
	}
	return out
}

// entityRefs expands the populated scope aliases into typed audit-log
// references.
func entityRefs(s model.Scope) []store.EntityRef {
	var refs []store.EntityRef
	add := func(typ, id string) {
		if id != "" {
			refs = append(refs, store.EntityRef{Type: typ, ID: id})
		}
	}
	add("opportunity", s.OpportunityID)
	add("deal", s.DealID)
	add("case", s.CaseID)
	add("account", s.AccountID)
	add("contact", s.ContactID)
	return refs
}

func ptr[T any](v T) *T { return &v }
