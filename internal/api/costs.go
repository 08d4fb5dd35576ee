package api

import (
	"net/http"
	"time"

	"aerocost/api/internal/common"
	"aerocost/api/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// Fixed and variable cost records are keyed by aircraft; POST and PUT both
// upsert.

func GetFixedCostHandler(svc CostProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		cost, err := svc.GetFixedCost(r.Context(), chi.URLParam(r, "aircraftId"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Fixed costs fetched successfully", cost)
	}
}

func UpsertFixedCostHandler(svc CostProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FixedCostRequest
		if err := decodeBody(r, &req); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		cost, err := svc.UpsertFixedCost(r.Context(), chi.URLParam(r, "aircraftId"), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Fixed costs saved", cost)
	}
}

func DeleteFixedCostHandler(svc CostProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		aircraftID := chi.URLParam(r, "aircraftId")

		if err := svc.DeleteFixedCost(r.Context(), aircraftID); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Fixed costs deleted", dtos.DeleteResponse{ID: aircraftID, Deleted: true})
	}
}

func GetVariableCostHandler(svc CostProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		cost, err := svc.GetVariableCost(r.Context(), chi.URLParam(r, "aircraftId"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Variable costs fetched successfully", cost)
	}
}

func UpsertVariableCostHandler(svc CostProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.VariableCostRequest
		if err := decodeBody(r, &req); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		cost, err := svc.UpsertVariableCost(r.Context(), chi.URLParam(r, "aircraftId"), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Variable costs saved", cost)
	}
}

func DeleteVariableCostHandler(svc CostProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		aircraftID := chi.URLParam(r, "aircraftId")

		if err := svc.DeleteVariableCost(r.Context(), aircraftID); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Variable costs deleted", dtos.DeleteResponse{ID: aircraftID, Deleted: true})
	}
}

func (h *Handlers) GetFixedCost() http.HandlerFunc {
	return GetFixedCostHandler(h.deps.Services.Costs)
}

func (h *Handlers) UpsertFixedCost() http.HandlerFunc {
	return UpsertFixedCostHandler(h.deps.Services.Costs)
}

func (h *Handlers) DeleteFixedCost() http.HandlerFunc {
	return DeleteFixedCostHandler(h.deps.Services.Costs)
}

func (h *Handlers) GetVariableCost() http.HandlerFunc {
	return GetVariableCostHandler(h.deps.Services.Costs)
}

func (h *Handlers) UpsertVariableCost() http.HandlerFunc {
	return UpsertVariableCostHandler(h.deps.Services.Costs)
}

func (h *Handlers) DeleteVariableCost() http.HandlerFunc {
	return DeleteVariableCostHandler(h.deps.Services.Costs)
}
