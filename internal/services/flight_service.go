package services

import (
	"context"

	"aerocost/api/internal/constants"
	"aerocost/api/internal/db/repositories"
	"aerocost/api/internal/logging"
	"aerocost/api/internal/models/dtos"
	gormModels "aerocost/api/internal/models/gorm"
)

type FlightListParams struct {
	AircraftID string
	FlightType constants.FlightType
	Limit      int
}

// FlightService manages flights and their planned to completed lifecycle.
type FlightService struct {
	flights    FlightRepository
	aircraft   AircraftRepository
	routes     RouteRepository
	flightCost *FlightCostService
}

func NewFlightService(
	flights FlightRepository,
	aircraft AircraftRepository,
	routes RouteRepository,
	flightCost *FlightCostService,
) *FlightService {
	return &FlightService{
		flights:    flights,
		aircraft:   aircraft,
		routes:     routes,
		flightCost: flightCost,
	}
}

func (s *FlightService) List(ctx context.Context, params FlightListParams) ([]gormModels.Flight, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = constants.DefaultFlightListLimit
	}
	if limit > constants.MaxFlightListLimit {
		limit = constants.MaxFlightListLimit
	}

	flights, err := s.flights.List(ctx, repositories.FlightFilter{
		AircraftID: params.AircraftID,
		FlightType: params.FlightType,
		Limit:      limit,
	})
	if err != nil {
		return nil, NewInternalError("failed to list flights", err)
	}
	return flights, nil
}

func (s *FlightService) Get(ctx context.Context, id string) (*gormModels.Flight, error) {
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load flight", err)
	}
	if flight == nil {
		return nil, NewNotFoundError(constants.MsgFlightNotFound)
	}
	return flight, nil
}

// Create stores a new flight with its cost computed from current inputs. A
// cost that cannot be computed is left null for a later recalculation.
func (s *FlightService) Create(ctx context.Context, req dtos.FlightRequest) (*gormModels.Flight, error) {
	aircraft, err := s.requireAircraft(ctx, req.AircraftID)
	if err != nil {
		return nil, err
	}
	if err := s.checkRoute(ctx, req.RouteID); err != nil {
		return nil, err
	}

	flight := &gormModels.Flight{
		AircraftID:    aircraft.ID,
		RouteID:       normalizeID(req.RouteID),
		FlightType:    constants.FlightTypePlanned,
		ScheduledDate: req.ScheduledDate.Time,
		LegTime:       aircraft.AvgLegTime,
		ActualLegTime: req.ActualLegTime,
		Notes:         req.Notes,
	}
	if req.FlightType != "" {
		flight.FlightType = constants.FlightType(req.FlightType)
	}
	if req.LegTime != nil {
		flight.LegTime = *req.LegTime
	}
	if flight.FlightType == constants.FlightTypeCompleted && flight.ActualLegTime == nil {
		actual := flight.LegTime
		flight.ActualLegTime = &actual
	}

	flight.CostCalculated = s.computeCost(ctx, flight)

	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, NewInternalError("failed to create flight", err)
	}
	return s.Get(ctx, flight.ID)
}

// Update replaces the editable fields of a flight. A completed flight can
// not be moved back to planned.
func (s *FlightService) Update(ctx context.Context, id string, req dtos.FlightRequest) (*gormModels.Flight, error) {
	flight, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	newType := flight.FlightType
	if req.FlightType != "" {
		newType = constants.FlightType(req.FlightType)
	}
	if flight.FlightType == constants.FlightTypeCompleted && newType == constants.FlightTypePlanned {
		return nil, NewConflictError(constants.MsgFlightCannotRevert)
	}

	if req.AircraftID != flight.AircraftID {
		if _, err := s.requireAircraft(ctx, req.AircraftID); err != nil {
			return nil, err
		}
	}
	if err := s.checkRoute(ctx, req.RouteID); err != nil {
		return nil, err
	}

	before := *flight
	flight.AircraftID = req.AircraftID
	flight.RouteID = normalizeID(req.RouteID)
	flight.FlightType = newType
	flight.ScheduledDate = req.ScheduledDate.Time
	flight.Notes = req.Notes
	if req.LegTime != nil {
		flight.LegTime = *req.LegTime
	}
	if req.ActualLegTime != nil {
		flight.ActualLegTime = req.ActualLegTime
	}
	if flight.FlightType == constants.FlightTypeCompleted && flight.ActualLegTime == nil {
		actual := flight.LegTime
		flight.ActualLegTime = &actual
	}
	flight.Route = nil

	if costInputsChanged(&before, flight) {
		flight.CostCalculated = s.computeCost(ctx, flight)
		if flight.CostCalculated != nil && CostDriftExceedsThreshold(before.CostCalculated, *flight.CostCalculated) {
			s.flightCost.publishChange(ctx, &before, *flight.CostCalculated, constants.CostChangeUpdate)
		}
	}

	if err := s.flights.Update(ctx, flight); err != nil {
		return nil, NewInternalError("failed to update flight", err)
	}
	return s.Get(ctx, flight.ID)
}

// Complete moves a planned flight to completed. Without an actual leg time
// the planned one is recorded as actual.
func (s *FlightService) Complete(ctx context.Context, id string, actualLegTime *float64) (*gormModels.Flight, error) {
	flight, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if flight.FlightType == constants.FlightTypeCompleted {
		return nil, NewConflictError(constants.MsgFlightAlreadyCompleted)
	}

	before := *flight
	actual := flight.LegTime
	if actualLegTime != nil && *actualLegTime > 0 {
		actual = *actualLegTime
	}
	flight.FlightType = constants.FlightTypeCompleted
	flight.ActualLegTime = &actual
	flight.Route = nil

	flight.CostCalculated = s.computeCost(ctx, flight)
	if flight.CostCalculated != nil && CostDriftExceedsThreshold(before.CostCalculated, *flight.CostCalculated) {
		s.flightCost.publishChange(ctx, &before, *flight.CostCalculated, constants.CostChangeComplete)
	}

	if err := s.flights.Update(ctx, flight); err != nil {
		return nil, NewInternalError("failed to complete flight", err)
	}
	return s.Get(ctx, flight.ID)
}

func (s *FlightService) Delete(ctx context.Context, id string) error {
	deleted, err := s.flights.Delete(ctx, id)
	if err != nil {
		return NewInternalError("failed to delete flight", err)
	}
	if !deleted {
		return NewNotFoundError(constants.MsgFlightNotFound)
	}
	return nil
}

// RecalculateCosts runs a bulk recalculation for one aircraft.
func (s *FlightService) RecalculateCosts(ctx context.Context, aircraftID string, opts RecalculateOptions) (*RecalculationResult, error) {
	return s.flightCost.RecalculateCosts(ctx, aircraftID, opts)
}

func (s *FlightService) computeCost(ctx context.Context, flight *gormModels.Flight) *float64 {
	cost, err := s.flightCost.CostFor(ctx, flight)
	if err != nil {
		logging.Warn("[Flights] Could not compute flight cost, saving without it",
			"flight_id", flight.ID,
			"aircraft_id", flight.AircraftID,
			"error", err,
		)
		return nil
	}
	return &cost
}

func (s *FlightService) requireAircraft(ctx context.Context, aircraftID string) (*gormModels.Aircraft, error) {
	aircraft, err := s.aircraft.GetByID(ctx, aircraftID)
	if err != nil {
		return nil, NewInternalError("failed to load aircraft", err)
	}
	if aircraft == nil {
		return nil, NewValidationError(constants.MsgValidationFailed, dtos.FieldError{
			Field:   "aircraft_id",
			Message: constants.MsgAircraftNotFound,
		})
	}
	return aircraft, nil
}

func (s *FlightService) checkRoute(ctx context.Context, routeID *string) error {
	id := normalizeID(routeID)
	if id == nil {
		return nil
	}
	route, err := s.routes.GetByID(ctx, *id)
	if err != nil {
		return NewInternalError("failed to load route", err)
	}
	if route == nil {
		return NewValidationError(constants.MsgValidationFailed, dtos.FieldError{
			Field:   "route_id",
			Message: constants.MsgRouteNotFound,
		})
	}
	return nil
}

func costInputsChanged(before, after *gormModels.Flight) bool {
	return before.AircraftID != after.AircraftID ||
		before.FlightType != after.FlightType ||
		before.LegTime != after.LegTime ||
		!sameFloatPtr(before.ActualLegTime, after.ActualLegTime) ||
		!sameStringPtr(before.RouteID, after.RouteID) ||
		before.CostCalculated == nil
}

func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	v := *id
	return &v
}

func sameFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
