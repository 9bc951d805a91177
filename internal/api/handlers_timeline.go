// Package api exposes the timeline engine over HTTP.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/api/respond"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/timeline"
)

const (
	headerTenantID = "X-Tenant-ID"
	headerUserID   = "X-User-ID"
)

// TimelineHandler serves the timeline read endpoints.
type TimelineHandler struct {
	svc *timeline.Service
	log zerolog.Logger
}

func NewTimelineHandler(svc *timeline.Service, log zerolog.Logger) *TimelineHandler {
	return &TimelineHandler{svc: svc, log: log}
}

// GetEvents handles GET /api/timeline/events.
func (h *TimelineHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}

	q := &model.TimelineQuery{Scope: scope}
	p := r.URL.Query()

	for _, t := range csv(p.Get("types")) {
		q.EventTypes = append(q.EventTypes, model.EventType(t))
	}
	for _, t := range csv(p.Get("excludeTypes")) {
		q.ExcludeTypes = append(q.ExcludeTypes, model.EventType(t))
	}
	for _, pr := range csv(p.Get("priorities")) {
		q.Priorities = append(q.Priorities, model.Priority(strings.ToLower(pr)))
	}
	for _, st := range csv(p.Get("agentActionStatuses")) {
		q.AgentActionStatuses = append(q.AgentActionStatuses, model.AgentActionStatus(strings.ToLower(st)))
	}
	q.Search = p.Get("search")
	q.SortOrder = model.SortOrder(p.Get("sortOrder"))

	var err error
	if q.FromDate, err = parseTime(p.Get("fromDate")); err != nil {
		respond.WriteBadRequest(w, "fromDate must be RFC 3339")
		return
	}
	if q.ToDate, err = parseTime(p.Get("toDate")); err != nil {
		respond.WriteBadRequest(w, "toDate must be RFC 3339")
		return
	}
	if q.Page, err = parseInt(p.Get("page")); err != nil {
		respond.WriteBadRequest(w, "page must be an integer")
		return
	}
	if q.Limit, err = parseInt(p.Get("limit")); err != nil {
		respond.WriteBadRequest(w, "limit must be an integer")
		return
	}
	if v := p.Get("includeCompleted"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respond.WriteBadRequest(w, "includeCompleted must be a boolean")
			return
		}
		q.IncludeCompleted = &b
	}

	res, err := h.svc.GetEvents(r.Context(), q)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

// GetStats handles GET /api/timeline/stats.
func (h *TimelineHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	p := r.URL.Query()
	from, err := parseTime(p.Get("fromDate"))
	if err != nil {
		respond.WriteBadRequest(w, "fromDate must be RFC 3339")
		return
	}
	to, err := parseTime(p.Get("toDate"))
	if err != nil {
		respond.WriteBadRequest(w, "toDate must be RFC 3339")
		return
	}

	stats, err := h.svc.GetStats(r.Context(), scope, from, to)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, stats)
}

// GetDeadlines handles GET /api/timeline/deadlines.
func (h *TimelineHandler) GetDeadlines(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	p := r.URL.Query()
	daysAhead, err := parseInt(p.Get("daysAhead"))
	if err != nil {
		respond.WriteBadRequest(w, "daysAhead must be an integer")
		return
	}
	limit, err := parseInt(p.Get("limit"))
	if err != nil {
		respond.WriteBadRequest(w, "limit must be an integer")
		return
	}

	deadlines, err := h.svc.GetUpcomingDeadlines(r.Context(), scope, daysAhead, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"deadlines": deadlines})
}

// GetPendingAgentActions handles GET /api/timeline/agent-actions/pending.
func (h *TimelineHandler) GetPendingAgentActions(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	limit, err := parseInt(r.URL.Query().Get("limit"))
	if err != nil {
		respond.WriteBadRequest(w, "limit must be an integer")
		return
	}

	actions, err := h.svc.GetPendingAgentActions(r.Context(), scope, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"actions": actions})
}

// scope extracts tenant, caller and entity linkage. Tenancy is mandatory;
// entity aliases stay separate here and resolve by precedence downstream.
func (h *TimelineHandler) scope(w http.ResponseWriter, r *http.Request) (model.Scope, bool) {
	tenant := r.Header.Get(headerTenantID)
	if tenant == "" {
		respond.WriteBadRequest(w, headerTenantID+" header is required")
		return model.Scope{}, false
	}
	p := r.URL.Query()
	return model.Scope{
		TenantID:      tenant,
		RequestorID:   r.Header.Get(headerUserID),
		OpportunityID: p.Get("opportunityId"),
		DealID:        p.Get("dealId"),
		CaseID:        p.Get("caseId"),
		AccountID:     p.Get("accountId"),
		ContactID:     p.Get("contactId"),
	}, true
}

func (h *TimelineHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidQuery):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, err.Error())
	default:
		if se, ok := model.AsSourceError(err); ok {
			h.log.Error().Err(err).Str("source", se.Source).Msg("timeline source failed")
			respond.WriteSourceError(w, se.Source, "timeline source unavailable")
			return
		}
		h.log.Error().Err(err).Msg("timeline request failed")
		respond.WriteInternalError(w, "internal error")
	}
}

func csv(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
