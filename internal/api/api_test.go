package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/model"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store/sqlite"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/timeline"
)

const (
	testTenant = "tenant-1"
	testEntity = "opp-1"
)

func newTestRouter(t *testing.T) (*mux.Router, *sql.DB) {
	t.Helper()
	db, err := sqlite.Open("file:" + uuid.New().String() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := timeline.NewService(sqlite.NewWithDB(db), zerolog.Nop())
	return NewRouter(svc, zerolog.Nop(), RouterOptions{}), db
}

func seedTask(t *testing.T, db *sql.DB, id string, due time.Time) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO tasks (task_id, tenant_id, title, status, priority, due_date, created_at, related_entity_id)
        VALUES (?,?,?,?,?,?,?,?)`,
		id, testTenant, "Call the buyer", "PENDING", "HIGH", due, due.Add(-24*time.Hour), testEntity)
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
}

func doRequest(router *mux.Router, method, target string, tenant string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if tenant != "" {
		req.Header.Set("X-Tenant-ID", tenant)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetEventsEndpoint(t *testing.T) {
	router, db := newTestRouter(t)
	seedTask(t, db, "task-1", time.Now().UTC().Add(48*time.Hour))

	rec := doRequest(router, "GET", "/api/timeline/events?opportunityId="+testEntity, testTenant)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", rec.Code, rec.Body.String())
	}

	var res model.TimelineResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Total != 1 || len(res.Events) != 1 {
		t.Fatalf("result: %+v", res)
	}
	if res.Events[0].ID != "task-task-1" || res.Events[0].Type != model.EventTask {
		t.Fatalf("event: %+v", res.Events[0])
	}
	if res.Page != 1 || res.Limit != 50 {
		t.Fatalf("defaults: page=%d limit=%d", res.Page, res.Limit)
	}
}

func TestGetEventsRequiresTenant(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doRequest(router, "GET", "/api/timeline/events", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestGetEventsRejectsBadParams(t *testing.T) {
	router, _ := newTestRouter(t)
	for _, target := range []string{
		"/api/timeline/events?page=abc",
		"/api/timeline/events?limit=101",
		"/api/timeline/events?fromDate=yesterday",
		"/api/timeline/events?includeCompleted=perhaps",
		"/api/timeline/events?sortOrder=sideways",
	} {
		rec := doRequest(router, "GET", target, testTenant)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d", target, rec.Code)
		}
	}
}

func TestGetEventsTypeFilter(t *testing.T) {
	router, db := newTestRouter(t)
	seedTask(t, db, "task-1", time.Now().UTC().Add(48*time.Hour))

	rec := doRequest(router, "GET", "/api/timeline/events?opportunityId="+testEntity+"&excludeTypes=task,task_overdue", testTenant)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var res model.TimelineResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Total != 0 {
		t.Fatalf("excluded type leaked: %+v", res)
	}
}

func TestStatsEndpoint(t *testing.T) {
	router, db := newTestRouter(t)
	seedTask(t, db, "task-1", time.Now().UTC().Add(48*time.Hour))

	rec := doRequest(router, "GET", "/api/timeline/stats?opportunityId="+testEntity, testTenant)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", rec.Code, rec.Body.String())
	}
	var stats model.TimelineStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Tasks.Total != 1 || stats.Tasks.Pending != 1 {
		t.Fatalf("stats: %+v", stats)
	}
}

func TestDeadlinesEndpoint(t *testing.T) {
	router, db := newTestRouter(t)
	seedTask(t, db, "task-1", time.Now().UTC().Add(48*time.Hour))

	rec := doRequest(router, "GET", "/api/timeline/deadlines?opportunityId="+testEntity, testTenant)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		Deadlines []model.Deadline `json:"deadlines"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Deadlines) != 1 || out.Deadlines[0].ID != "task-task-1" {
		t.Fatalf("deadlines: %+v", out.Deadlines)
	}

	rec = doRequest(router, "GET", "/api/timeline/deadlines?daysAhead=91", testTenant)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bound: %d", rec.Code)
	}
}

func TestPendingAgentActionsEndpoint(t *testing.T) {
	router, db := newTestRouter(t)
	_, err := db.Exec(`INSERT INTO domain_events (event_id, tenant_id, event_type, aggregate_id, agent_id, payload, occurred_at)
        VALUES (?,?,?,?,?,?,?)`,
		"ev-1", testTenant, "AgentAction.LeadScored", testEntity, "agent-1", `{"title":"Scored"}`, time.Now().UTC())
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}

	rec := doRequest(router, "GET", "/api/timeline/agent-actions/pending?opportunityId="+testEntity, testTenant)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		Actions []model.AgentActionSummary `json:"actions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Actions) != 1 || out.Actions[0].Status != model.AgentStatusPendingApproval {
		t.Fatalf("actions: %+v", out.Actions)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doRequest(router, "GET", "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Fatalf("request id: %q", got)
	}

	rec = doRequest(router, "GET", "/api/health", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("request id not minted")
	}
}
