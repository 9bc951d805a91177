package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/api/recovery"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/api/requestid"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/health"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/timeline"
)

// RouterOptions carries the optional router dependencies.
type RouterOptions struct {
	HealthChecker  *health.Checker
	MetricsEnabled bool
}

// NewRouter wires the HTTP surface: timeline reads, health and metrics.
func NewRouter(svc *timeline.Service, log zerolog.Logger, opts RouterOptions) *mux.Router {
	router := mux.NewRouter()

	router.Use(recovery.Middleware)
	router.Use(requestid.Middleware(log))

	timelineHandler := NewTimelineHandler(svc, log)
	healthHandler := NewHealthHandler(opts.HealthChecker)

	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	router.HandleFunc("/api/timeline/events", timelineHandler.GetEvents).Methods("GET")
	router.HandleFunc("/api/timeline/stats", timelineHandler.GetStats).Methods("GET")
	router.HandleFunc("/api/timeline/deadlines", timelineHandler.GetDeadlines).Methods("GET")
	router.HandleFunc("/api/timeline/agent-actions/pending", timelineHandler.GetPendingAgentActions).Methods("GET")

	if opts.MetricsEnabled {
		router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	return router
}
