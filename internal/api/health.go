package api

import (
	"net/http"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/api/respond"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/health"
)

// HealthHandler reports cached service health.
type HealthHandler struct {
	checker *health.Checker
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// CheckHealth handles GET /api/health.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	if h.checker != nil && !h.checker.IsHealthy() {
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
