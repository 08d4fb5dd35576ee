package api

import (
	"net/http"
	"time"

	"aerocost/api/internal/common"

	"github.com/go-chi/chi/v5"
)

// DashboardHandler handles GET /api/v1/dashboard/{aircraftId}. Stale flight
// costs are healed as part of the read.
func DashboardHandler(svc DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		dashboard, err := svc.GetDashboard(r.Context(), chi.URLParam(r, "aircraftId"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Dashboard fetched successfully", dashboard)
	}
}

func (h *Handlers) Dashboard() http.HandlerFunc {
	return DashboardHandler(h.deps.Services.Dashboard)
}
