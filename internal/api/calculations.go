package api

import (
	"net/http"
	"time"

	"aerocost/api/internal/common"
	"aerocost/api/internal/constants"
	"aerocost/api/internal/models/dtos"
	"aerocost/api/internal/services"

	"github.com/go-chi/chi/v5"
)

// BaseCostHandler handles GET /api/v1/calculations/{aircraftId}/base-cost
func BaseCostHandler(svc CalculationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		result, err := svc.CalculateBaseCost(r.Context(), chi.URLParam(r, "aircraftId"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Base cost calculated", result)
	}
}

// LegCostHandler handles GET /api/v1/calculations/{aircraftId}/leg-cost.
// legTime defaults to the aircraft's average leg time; routeId adds the
// route's DECEA fee.
func LegCostHandler(svc CalculationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		legTime, err := queryFloat(r, "legTime")
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		result, err := svc.CalculateLegCost(r.Context(), chi.URLParam(r, "aircraftId"), legTime, queryString(r, "routeId"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Leg cost calculated", result)
	}
}

// RouteCostHandler handles GET /api/v1/calculations/{aircraftId}/route-cost?routeId=
func RouteCostHandler(svc CalculationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		routeID := queryString(r, "routeId")
		if routeID == nil {
			respondServiceError(w, r, initTime, services.NewValidationError(constants.MsgRouteIDRequired, dtos.FieldError{
				Field:   "routeId",
				Message: "is required",
			}))
			return
		}

		result, err := svc.CalculateRouteCost(r.Context(), chi.URLParam(r, "aircraftId"), *routeID)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Route cost calculated", result)
	}
}

func MonthlyProjectionHandler(svc CalculationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		result, err := svc.CalculateMonthlyProjection(r.Context(), chi.URLParam(r, "aircraftId"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Monthly projection calculated", result)
	}
}

// CompleteCalculationHandler handles GET /api/v1/calculations/{aircraftId}/complete:
// base cost, monthly projection and every route's leg cost in one response.
func CompleteCalculationHandler(svc CalculationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		result, err := svc.CalculateComplete(r.Context(), chi.URLParam(r, "aircraftId"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Complete calculation finished", result)
	}
}

func (h *Handlers) BaseCost() http.HandlerFunc {
	return BaseCostHandler(h.deps.Services.Calculations)
}

func (h *Handlers) LegCost() http.HandlerFunc {
	return LegCostHandler(h.deps.Services.Calculations)
}

func (h *Handlers) RouteCost() http.HandlerFunc {
	return RouteCostHandler(h.deps.Services.Calculations)
}

func (h *Handlers) MonthlyProjection() http.HandlerFunc {
	return MonthlyProjectionHandler(h.deps.Services.Calculations)
}

func (h *Handlers) CompleteCalculation() http.HandlerFunc {
	return CompleteCalculationHandler(h.deps.Services.Calculations)
}
