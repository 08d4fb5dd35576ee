package api

import (
	"net/http"
	"time"

	"aerocost/api/internal/common"
	"aerocost/api/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// ListRoutesHandler handles GET /api/v1/routes, optionally filtered by
// ?aircraft_id=.
func ListRoutesHandler(svc RouteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		routes, err := svc.List(r.Context(), r.URL.Query().Get("aircraft_id"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Routes fetched successfully", routes)
	}
}

func GetRouteHandler(svc RouteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		route, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Route fetched successfully", route)
	}
}

func CreateRouteHandler(svc RouteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RouteRequest
		if err := decodeBody(r, &req); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		route, err := svc.Create(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Route created", route, http.StatusCreated)
	}
}

func UpdateRouteHandler(svc RouteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RouteRequest
		if err := decodeBody(r, &req); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}

		route, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Route updated", route)
	}
}

// DeleteRouteHandler handles DELETE /api/v1/routes/{id}. Flights on the route
// keep existing with no route.
func DeleteRouteHandler(svc RouteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		id := chi.URLParam(r, "id")

		if err := svc.Delete(r.Context(), id); err != nil {
			respondServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Route deleted", dtos.DeleteResponse{ID: id, Deleted: true})
	}
}

func (h *Handlers) ListRoutes() http.HandlerFunc {
	return ListRoutesHandler(h.deps.Services.Routes)
}

func (h *Handlers) GetRoute() http.HandlerFunc {
	return GetRouteHandler(h.deps.Services.Routes)
}

func (h *Handlers) CreateRoute() http.HandlerFunc {
	return CreateRouteHandler(h.deps.Services.Routes)
}

func (h *Handlers) UpdateRoute() http.HandlerFunc {
	return UpdateRouteHandler(h.deps.Services.Routes)
}

func (h *Handlers) DeleteRoute() http.HandlerFunc {
	return DeleteRouteHandler(h.deps.Services.Routes)
}
