package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-cms-backend/services"
)

type dashboardHandler struct {
	responder Responder
	dashboard *services.DashboardClient
}

func newDashboardHandler(dashboard *services.DashboardClient) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()
	return dashboardHandler{responder: NewResponder(logger), dashboard: dashboard}
}

// getStats
// @Summary Dashboard statistics
// @Description featuredContent counts featured projects and featured blogs together.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Failure 500 {object} ErrorResponse
// @Router /api/dashboard/stats [get]
func (h dashboardHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.dashboard.GetStats(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("fetch", "dashboard stats", err))
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, stats)
	}
}

type healthHandler struct {
	responder   Responder
	startupTime time.Time
}

func newHealthHandler(startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{responder: NewResponder(logger), startupTime: startupTime}
}

// @Router /healthz [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, http.StatusOK, HealthResponse{
			Status: "ok",
			Uptime: time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
