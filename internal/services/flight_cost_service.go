package services

import (
	"context"
	"time"

	"aerocost/api/internal/constants"
	"aerocost/api/internal/db/repositories"
	"aerocost/api/internal/events"
	"aerocost/api/internal/logging"
	"aerocost/api/internal/metrics"
	gormModels "aerocost/api/internal/models/gorm"
)

// RecalculateOptions selects which flights a bulk recalculation touches.
// The default covers flights with no cost yet (null or zero).
type RecalculateOptions struct {
	Force bool // every completed flight
	All   bool // every flight, takes precedence over Force
}

type RecalculationFailure struct {
	FlightID string `json:"flight_id"`
	Route    string `json:"route"`
	Error    string `json:"error"`
}

type RecalculationResult struct {
	Total        int                    `json:"total"`
	Updated      int                    `json:"updated"`
	Errors       int                    `json:"errors"`
	ErrorDetails []RecalculationFailure `json:"error_details"`
}

// ReconcileSummary reports one pass of the flight cost reconciler.
type ReconcileSummary struct {
	AircraftID string `json:"aircraft_id"`
	Checked    int    `json:"checked"`
	Healed     int    `json:"healed"`
	Failed     int    `json:"failed"`
}

// FlightCostService keeps the cached cost on flights in line with the
// current cost inputs.
type FlightCostService struct {
	calc      *CalculationService
	flights   FlightRepository
	publisher events.Publisher
	metrics   *metrics.MetricsRegistry
	now       func() time.Time
}

func NewFlightCostService(
	calc *CalculationService,
	flights FlightRepository,
	publisher events.Publisher,
	metricsReg *metrics.MetricsRegistry,
) *FlightCostService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &FlightCostService{
		calc:      calc,
		flights:   flights,
		publisher: publisher,
		metrics:   metricsReg,
		now:       time.Now,
	}
}

// CostFor computes a flight's cost with fresh inputs.
func (s *FlightCostService) CostFor(ctx context.Context, flight *gormModels.Flight) (float64, error) {
	base, err := s.calc.baseCost(ctx, flight.AircraftID)
	if err != nil {
		return 0, err
	}
	return s.costFromBase(ctx, base, flight)
}

func (s *FlightCostService) costFromBase(ctx context.Context, base *BaseCostBreakdown, flight *gormModels.Flight) (float64, error) {
	leg, err := s.calc.legCostFromBase(ctx, base, flight.EffectiveLegTime(), flight.RouteID)
	if err != nil {
		return 0, err
	}
	return leg.TotalLegCost, nil
}

// ReconcileFlightCosts recomputes every given flight of one aircraft and
// rewrites cached costs that drifted by more than the healing threshold.
// flights are updated in place. Per-flight failures are logged and counted.
func (s *FlightCostService) ReconcileFlightCosts(ctx context.Context, aircraftID string, flights []gormModels.Flight) (*ReconcileSummary, error) {
	summary := &ReconcileSummary{AircraftID: aircraftID}
	if len(flights) == 0 {
		return summary, nil
	}

	base, err := s.calc.baseCost(ctx, aircraftID)
	if err != nil {
		return summary, err
	}

	for i := range flights {
		flight := &flights[i]
		summary.Checked++

		fresh, err := s.costFromBase(ctx, base, flight)
		if err != nil {
			summary.Failed++
			logging.Warn("[FlightCost] Skipping flight during reconciliation",
				"flight_id", flight.ID,
				"aircraft_id", aircraftID,
				"error", err,
			)
			continue
		}

		if !CostDriftExceedsThreshold(flight.CostCalculated, fresh) {
			continue
		}

		if err := s.flights.UpdateCost(ctx, flight.ID, fresh); err != nil {
			summary.Failed++
			logging.Error("[FlightCost] Failed to heal flight cost",
				"flight_id", flight.ID,
				"error", err,
			)
			continue
		}

		s.publishChange(ctx, flight, fresh, constants.CostChangeReconcile)
		flight.CostCalculated = &fresh
		summary.Healed++
		if s.metrics != nil {
			s.metrics.FlightCostsHealedTotal.Inc()
		}
	}

	if summary.Healed > 0 || summary.Failed > 0 {
		logging.Info("[FlightCost] Reconciled flight costs",
			"aircraft_id", aircraftID,
			"checked", summary.Checked,
			"healed", summary.Healed,
			"failed", summary.Failed,
		)
	}
	return summary, nil
}

// ReconcileAircraft runs the reconciler over every flight of an aircraft.
func (s *FlightCostService) ReconcileAircraft(ctx context.Context, aircraftID string) (*ReconcileSummary, error) {
	flights, err := s.flights.List(ctx, repositories.FlightFilter{AircraftID: aircraftID})
	if err != nil {
		return nil, NewInternalError("failed to load flights", err)
	}
	return s.ReconcileFlightCosts(ctx, aircraftID, flights)
}

// RecalculateCosts recomputes and writes the cost of every flight in scope,
// independently per flight. Failures are collected, never aborting the batch.
func (s *FlightCostService) RecalculateCosts(ctx context.Context, aircraftID string, opts RecalculateOptions) (*RecalculationResult, error) {
	aircraft, err := s.calc.aircraft.GetByID(ctx, aircraftID)
	if err != nil {
		return nil, NewInternalError("failed to load aircraft", err)
	}
	if aircraft == nil {
		return nil, NewNotFoundError(constants.MsgAircraftNotFound)
	}

	filter := repositories.FlightFilter{AircraftID: aircraftID}
	switch {
	case opts.All:
	case opts.Force:
		filter.FlightType = constants.FlightTypeCompleted
	default:
		filter.MissingCostOnly = true
	}

	flights, err := s.flights.List(ctx, filter)
	if err != nil {
		return nil, NewInternalError("failed to load flights", err)
	}

	result := &RecalculationResult{
		Total:        len(flights),
		ErrorDetails: []RecalculationFailure{},
	}
	if len(flights) == 0 {
		return result, nil
	}

	// the base breakdown does not depend on the flight; an error here fails
	// every flight with the same message
	base, baseErr := s.calc.baseCost(ctx, aircraftID)

	for i := range flights {
		flight := &flights[i]

		cost, err := func() (float64, error) {
			if baseErr != nil {
				return 0, baseErr
			}
			return s.costFromBase(ctx, base, flight)
		}()
		if err == nil {
			err = s.flights.UpdateCost(ctx, flight.ID, cost)
		}

		if err != nil {
			result.Errors++
			result.ErrorDetails = append(result.ErrorDetails, RecalculationFailure{
				FlightID: flight.ID,
				Route:    routeLabel(flight),
				Error:    ClientMessage(err),
			})
			s.countRecalculated("error")
			continue
		}

		if CostDriftExceedsThreshold(flight.CostCalculated, cost) {
			s.publishChange(ctx, flight, cost, constants.CostChangeRecalculate)
		}
		result.Updated++
		s.countRecalculated("updated")
	}

	logging.Info("[FlightCost] Bulk recalculation finished",
		"aircraft_id", aircraftID,
		"total", result.Total,
		"updated", result.Updated,
		"errors", result.Errors,
	)
	return result, nil
}

func (s *FlightCostService) publishChange(ctx context.Context, flight *gormModels.Flight, newCost float64, reason string) {
	event := events.FlightCostChanged{
		FlightID:     flight.ID,
		AircraftID:   flight.AircraftID,
		PreviousCost: flight.CostCalculated,
		NewCost:      newCost,
		Reason:       reason,
		OccurredAt:   s.now().UTC(),
	}
	if err := s.publisher.PublishFlightCostChanged(ctx, event); err != nil {
		logging.Warn("[FlightCost] Failed to publish cost change", "flight_id", flight.ID, "error", err)
	}
}

func (s *FlightCostService) countRecalculated(outcome string) {
	if s.metrics != nil {
		s.metrics.RecalculatedFlights.WithLabelValues(outcome).Inc()
	}
}

func routeLabel(flight *gormModels.Flight) string {
	if flight.Route == nil {
		return ""
	}
	return flight.Route.Label()
}
