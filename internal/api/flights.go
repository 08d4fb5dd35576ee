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

// ListFlightsHandler handles GET /api/v1/flights
//
// Query: aircraft_id, flight_type (planned|completed), limit (default 100,
// capped at 500). Newest scheduled date first.
func ListFlightsHandler(svc FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		flightType := constants.FlightType(q.Get("flight_type"))
		if flightType != "" && !flightType.IsValid() {
			respondServiceError(w, r, initTime, services.NewValidationError(constants.MsgInvalidQueryParam, dtos.FieldError{
				Field:   "flight_type",
				Message: "must be one of: planned completed",
			}))
			return
		}

		limit, err := queryInt(r, "limit")
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		flights, err := svc.List(r.Context(), services.FlightListParams{
			AircraftID: q.Get("aircraft_id"),
			FlightType: flightType,
			Limit:      limit,
		})
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flights fetched successfully", flights)
	}
}

func GetFlightHandler(svc FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flight, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flight fetched successfully", flight)
	}
}

func CreateFlightHandler(svc FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FlightRequest
		if err := decodeBody(r, &req); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		flight, err := svc.Create(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flight created", flight, http.StatusCreated)
	}
}

func UpdateFlightHandler(svc FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FlightRequest
		if err := decodeBody(r, &req); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		flight, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flight updated", flight)
	}
}

// CompleteFlightHandler handles POST /api/v1/flights/{id}/complete. The body
// is optional; without actual_leg_time the planned leg time is used.
func CompleteFlightHandler(svc FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CompleteFlightRequest
		if err := decodeOptionalBody(r, &req); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		flight, err := svc.Complete(r.Context(), chi.URLParam(r, "id"), req.ActualLegTime)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flight completed", flight)
	}
}

func DeleteFlightHandler(svc FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		id := chi.URLParam(r, "id")

		if err := svc.Delete(r.Context(), id); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flight deleted", dtos.DeleteResponse{ID: id, Deleted: true})
	}
}

// RecalculateCostsHandler handles POST /api/v1/flights/aircraft/{id}/recalculate-costs
//
// Default scope is flights without a cost; force=true covers every completed
// flight and all=true every flight. Per-flight failures are reported in the
// body with a 200.
func RecalculateCostsHandler(svc FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		force, err := queryBool(r, "force")
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		all, err := queryBool(r, "all")
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		result, err := svc.RecalculateCosts(r.Context(), chi.URLParam(r, "id"), services.RecalculateOptions{
			Force: force,
			All:   all,
		})
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flight costs recalculated", result)
	}
}

func (h *Handlers) ListFlights() http.HandlerFunc {
	return ListFlightsHandler(h.deps.Services.Flights)
}

func (h *Handlers) GetFlight() http.HandlerFunc {
	return GetFlightHandler(h.deps.Services.Flights)
}

func (h *Handlers) CreateFlight() http.HandlerFunc {
	return CreateFlightHandler(h.deps.Services.Flights)
}

func (h *Handlers) UpdateFlight() http.HandlerFunc {
	return UpdateFlightHandler(h.deps.Services.Flights)
}

func (h *Handlers) CompleteFlight() http.HandlerFunc {
	return CompleteFlightHandler(h.deps.Services.Flights)
}

func (h *Handlers) DeleteFlight() http.HandlerFunc {
	return DeleteFlightHandler(h.deps.Services.Flights)
}

func (h *Handlers) RecalculateCosts() http.HandlerFunc {
	return RecalculateCostsHandler(h.deps.Services.Flights)
}
