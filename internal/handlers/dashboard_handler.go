package handlers

import (
	"net/http"

	"skillsprint/internal/logger"
	"skillsprint/internal/service"
)

// DashboardHandler serves the cached stats and analytics views
type DashboardHandler struct {
	analytics *service.AnalyticsService
	log       *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(analytics *service.AnalyticsService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{analytics: analytics, log: log}
}

// Stats returns streaks, heatmap and the last seven days
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}

	stats, err := h.analytics.Dashboard(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Summary returns the 30-day analytics summary
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}

	summary, err := h.analytics.Summary(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
