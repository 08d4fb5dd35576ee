package api

import (
	"net/http"
	"time"

	"aerocost/api/internal/common"
	"aerocost/api/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

func ListFxRatesHandler(svc FxRateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		limit, err := queryInt(r, "limit")
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		rates, err := svc.List(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Exchange rates fetched successfully", rates)
	}
}

// CurrentFxRateHandler handles GET /api/v1/fx-rates/current: the rate with
// the latest effective date, most recently created on ties.
func CurrentFxRateHandler(svc FxRateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		rate, err := svc.Current(r.Context())
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Current exchange rate fetched successfully", rate)
	}
}

func CreateFxRateHandler(svc FxRateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FxRateRequest
		if err := decodeBody(r, &req); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		rate, err := svc.Create(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Exchange rate created", rate, http.StatusCreated)
	}
}

func DeleteFxRateHandler(svc FxRateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		id := chi.URLParam(r, "id")

		if err := svc.Delete(r.Context(), id); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Exchange rate deleted", dtos.DeleteResponse{ID: id, Deleted: true})
	}
}

func (h *Handlers) ListFxRates() http.HandlerFunc {
	return ListFxRatesHandler(h.deps.Services.FxRates)
}

func (h *Handlers) CurrentFxRate() http.HandlerFunc {
	return CurrentFxRateHandler(h.deps.Services.FxRates)
}

func (h *Handlers) CreateFxRate() http.HandlerFunc {
	return CreateFxRateHandler(h.deps.Services.FxRates)
}

func (h *Handlers) DeleteFxRate() http.HandlerFunc {
	return DeleteFxRateHandler(h.deps.Services.FxRates)
}
