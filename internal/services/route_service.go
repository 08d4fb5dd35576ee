package services

import (
	"context"
	"strings"

	"aerocost/api/internal/constants"
	"aerocost/api/internal/models/dtos"
	gormModels "aerocost/api/internal/models/gorm"
)

type RouteService struct {
	routes   RouteRepository
	aircraft AircraftRepository
}

func NewRouteService(routes RouteRepository, aircraft AircraftRepository) *RouteService {
	return &RouteService{routes: routes, aircraft: aircraft}
}

// List returns all routes, or those owned by aircraftID when given.
func (s *RouteService) List(ctx context.Context, aircraftID string) ([]gormModels.Route, error) {
	routes, err := s.routes.List(ctx, aircraftID)
	if err != nil {
		return nil, NewInternalError("failed to list routes", err)
	}
	return routes, nil
}

func (s *RouteService) Get(ctx context.Context, id string) (*gormModels.Route, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load route", err)
	}
	if route == nil {
		return nil, NewNotFoundError(constants.MsgRouteNotFound)
	}
	return route, nil
}

func (s *RouteService) Create(ctx context.Context, req dtos.RouteRequest) (*gormModels.Route, error) {
	route := &gormModels.Route{}
	if err := s.apply(ctx, route, req); err != nil {
		return nil, err
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, NewInternalError("failed to create route", err)
	}
	return route, nil
}

func (s *RouteService) Update(ctx context.Context, id string, req dtos.RouteRequest) (*gormModels.Route, error) {
	route, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, route, req); err != nil {
		return nil, err
	}
	if err := s.routes.Update(ctx, route); err != nil {
		return nil, NewInternalError("failed to update route", err)
	}
	return route, nil
}

// Delete removes a route; flights that used it keep existing without one.
func (s *RouteService) Delete(ctx context.Context, id string) error {
	deleted, err := s.routes.Delete(ctx, id)
	if err != nil {
		return NewInternalError("failed to delete route", err)
	}
	if !deleted {
		return NewNotFoundError(constants.MsgRouteNotFound)
	}
	return nil
}

func (s *RouteService) apply(ctx context.Context, route *gormModels.Route, req dtos.RouteRequest) error {
	aircraftID := normalizeID(req.AircraftID)
	if aircraftID != nil {
		aircraft, err := s.aircraft.GetByID(ctx, *aircraftID)
		if err != nil {
			return NewInternalError("failed to load aircraft", err)
		}
		if aircraft == nil {
			return NewValidationError(constants.MsgValidationFailed, dtos.FieldError{
				Field:   "aircraft_id",
				Message: constants.MsgAircraftNotFound,
			})
		}
	}

	route.AircraftID = aircraftID
	route.Origin = strings.ToUpper(strings.TrimSpace(req.Origin))
	route.Destination = strings.ToUpper(strings.TrimSpace(req.Destination))
	if req.DECEAPerHour != nil {
		route.DECEAPerHour = *req.DECEAPerHour
	}
	return nil
}
