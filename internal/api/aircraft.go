package api

import (
	"net/http"
	"time"

	"aerocost/api/internal/common"
	"aerocost/api/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// ListAircraftHandler handles GET /api/v1/aircraft
func ListAircraftHandler(svc AircraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		aircraft, err := svc.List(r.Context())
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft fetched successfully", aircraft)
	}
}

// GetAircraftHandler handles GET /api/v1/aircraft/{id}
func GetAircraftHandler(svc AircraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		aircraft, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft fetched successfully", aircraft)
	}
}

// CreateAircraftHandler handles POST /api/v1/aircraft
func CreateAircraftHandler(svc AircraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AircraftRequest
		if err := decodeBody(r, &req); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		aircraft, err := svc.Create(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft created", aircraft, http.StatusCreated)
	}
}

// UpdateAircraftHandler handles PUT /api/v1/aircraft/{id}
func UpdateAircraftHandler(svc AircraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AircraftRequest
		if err := decodeBody(r, &req); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		aircraft, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft updated", aircraft)
	}
}

// DeleteAircraftHandler handles DELETE /api/v1/aircraft/{id}. The aircraft's
// cost records, routes and flights go with it.
func DeleteAircraftHandler(svc AircraftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		id := chi.URLParam(r, "id")

		if err := svc.Delete(r.Context(), id); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft deleted", dtos.DeleteResponse{ID: id, Deleted: true})
	}
}

func (h *Handlers) ListAircraft() http.HandlerFunc {
	return ListAircraftHandler(h.deps.Services.Aircraft)
}

func (h *Handlers) GetAircraft() http.HandlerFunc {
	return GetAircraftHandler(h.deps.Services.Aircraft)
}

func (h *Handlers) CreateAircraft() http.HandlerFunc {
	return CreateAircraftHandler(h.deps.Services.Aircraft)
}

func (h *Handlers) UpdateAircraft() http.HandlerFunc {
	return UpdateAircraftHandler(h.deps.Services.Aircraft)
}

func (h *Handlers) DeleteAircraft() http.HandlerFunc {
	return DeleteAircraftHandler(h.deps.Services.Aircraft)
}
