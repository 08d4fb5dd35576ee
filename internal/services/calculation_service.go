package services

import (
	"context"
	"encoding/json"

	"aerocost/api/internal/constants"
	"aerocost/api/internal/logging"
	"aerocost/api/internal/metrics"
	gormModels "aerocost/api/internal/models/gorm"

	"gorm.io/datatypes"
)

// AircraftProfile is everything the engine reads about one aircraft.
type AircraftProfile struct {
	Aircraft *gormModels.Aircraft
	Fixed    *gormModels.FixedCost
	Variable *gormModels.VariableCost
}

type CompleteCalculation struct {
	BaseCost          *BaseCostBreakdown `json:"base_cost"`
	MonthlyProjection *MonthlyProjection `json:"monthly_projection"`
	RouteCosts        []RouteCostEntry   `json:"route_costs"`
}

// CalculationService is the cost calculation engine. It keeps no state
// between calls; every calculation re-reads its inputs.
type CalculationService struct {
	aircraft AircraftRepository
	costs    CostRepository
	routes   RouteRepository
	fxRates  FxRateRepository
	logs     CalculationLogStore
	metrics  *metrics.MetricsRegistry
}

// NewCalculationService wires the engine. logs and metricsReg may be nil.
func NewCalculationService(
	aircraft AircraftRepository,
	costs CostRepository,
	routes RouteRepository,
	fxRates FxRateRepository,
	logs CalculationLogStore,
	metricsReg *metrics.MetricsRegistry,
) *CalculationService {
	return &CalculationService{
		aircraft: aircraft,
		costs:    costs,
		routes:   routes,
		fxRates:  fxRates,
		logs:     logs,
		metrics:  metricsReg,
	}
}

// LoadProfile reads the aircraft and its cost records.
func (s *CalculationService) LoadProfile(ctx context.Context, aircraftID string) (*AircraftProfile, error) {
	aircraft, err := s.aircraft.GetByID(ctx, aircraftID)
	if err != nil {
		return nil, NewInternalError("failed to load aircraft", err)
	}
	if aircraft == nil {
		return nil, NewNotFoundError(constants.MsgAircraftNotFound)
	}

	fixed, err := s.costs.GetFixedCost(ctx, aircraftID)
	if err != nil {
		return nil, NewInternalError("failed to load fixed cost", err)
	}
	variable, err := s.costs.GetVariableCost(ctx, aircraftID)
	if err != nil {
		return nil, NewInternalError("failed to load variable cost", err)
	}

	return &AircraftProfile{Aircraft: aircraft, Fixed: fixed, Variable: variable}, nil
}

// CurrentFxRate returns the USD to BRL rate with the latest effective date.
func (s *CalculationService) CurrentFxRate(ctx context.Context) (*gormModels.FxRate, error) {
	rate, err := s.fxRates.GetCurrent(ctx)
	if err != nil {
		return nil, NewInternalError("failed to load exchange rate", err)
	}
	if rate == nil {
		return nil, NewPreconditionError(constants.MsgFxRateNotFound)
	}
	return rate, nil
}

func (s *CalculationService) CalculateBaseCost(ctx context.Context, aircraftID string) (*BaseCostBreakdown, error) {
	base, err := s.baseCost(ctx, aircraftID)
	s.observe(constants.CalculationBaseCost, err)
	if err != nil {
		return nil, err
	}

	s.record(ctx, aircraftID, constants.CalculationBaseCost, base.TotalBaseCostPerHour, base)
	return base, nil
}

// CalculateLegCost prices one leg. A nil or non-positive legTime uses the
// aircraft's average; an unknown routeID is priced without DECEA fee.
func (s *CalculationService) CalculateLegCost(ctx context.Context, aircraftID string, legTime *float64, routeID *string) (*LegCostBreakdown, error) {
	leg, err := s.legCost(ctx, aircraftID, legTime, routeID)
	s.observe(constants.CalculationLegCost, err)
	if err != nil {
		return nil, err
	}

	s.record(ctx, aircraftID, constants.CalculationLegCost, leg.TotalLegCost, leg)
	return leg, nil
}

// CalculateRouteCost prices the aircraft's average leg on routeID. Unlike
// leg cost, the route must exist.
func (s *CalculationService) CalculateRouteCost(ctx context.Context, aircraftID, routeID string) (*LegCostBreakdown, error) {
	leg, err := s.routeCost(ctx, aircraftID, routeID)
	s.observe(constants.CalculationRouteCost, err)
	if err != nil {
		return nil, err
	}

	s.record(ctx, aircraftID, constants.CalculationRouteCost, leg.TotalLegCost, leg)
	return leg, nil
}

func (s *CalculationService) CalculateMonthlyProjection(ctx context.Context, aircraftID string) (*MonthlyProjection, error) {
	projection, err := s.monthlyProjection(ctx, aircraftID)
	s.observe(constants.CalculationMonthlyProjection, err)
	if err != nil {
		return nil, err
	}

	s.record(ctx, aircraftID, constants.CalculationMonthlyProjection, projection.MonthlyProjection, projection)
	return projection, nil
}

// CalculateComplete returns the base cost, monthly projection and per-route
// costs computed from a single base breakdown.
func (s *CalculationService) CalculateComplete(ctx context.Context, aircraftID string) (*CompleteCalculation, error) {
	complete, err := s.complete(ctx, aircraftID)
	s.observe(constants.CalculationComplete, err)
	if err != nil {
		return nil, err
	}

	s.record(ctx, aircraftID, constants.CalculationComplete, complete.MonthlyProjection.MonthlyProjection, complete)
	return complete, nil
}

func (s *CalculationService) baseCost(ctx context.Context, aircraftID string) (*BaseCostBreakdown, error) {
	profile, err := s.LoadProfile(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	rate, err := s.CurrentFxRate(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeBaseCost(profile.Aircraft, profile.Fixed, profile.Variable, rate)
}

func (s *CalculationService) legCost(ctx context.Context, aircraftID string, legTime *float64, routeID *string) (*LegCostBreakdown, error) {
	base, err := s.baseCost(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	return s.legCostFromBase(ctx, base, valueOrZero(legTime), routeID)
}

// legCostFromBase prices a leg against an already computed base breakdown.
func (s *CalculationService) legCostFromBase(ctx context.Context, base *BaseCostBreakdown, legTime float64, routeID *string) (*LegCostBreakdown, error) {
	var route *gormModels.Route
	if routeID != nil && *routeID != "" {
		found, err := s.routes.GetByID(ctx, *routeID)
		if err != nil {
			return nil, NewInternalError("failed to load route", err)
		}
		if found == nil {
			logging.Warn("[CostEngine] Route not found, pricing leg without DECEA fee",
				"aircraft_id", base.AircraftID,
				"route_id", *routeID,
			)
		}
		route = found
	} else {
		routeID = nil
	}

	return ComputeLegCost(base, legTime, routeID, route)
}

func (s *CalculationService) routeCost(ctx context.Context, aircraftID, routeID string) (*LegCostBreakdown, error) {
	base, err := s.baseCost(ctx, aircraftID)
	if err != nil {
		return nil, err
	}

	route, err := s.routes.GetByID(ctx, routeID)
	if err != nil {
		return nil, NewInternalError("failed to load route", err)
	}
	if route == nil {
		return nil, NewNotFoundError(constants.MsgRouteNotFound)
	}

	return ComputeLegCost(base, 0, &route.ID, route)
}

func (s *CalculationService) monthlyProjection(ctx context.Context, aircraftID string) (*MonthlyProjection, error) {
	base, err := s.baseCost(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	routes, err := s.aircraftRoutes(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	return ComputeMonthlyProjection(base, routes), nil
}

func (s *CalculationService) complete(ctx context.Context, aircraftID string) (*CompleteCalculation, error) {
	base, err := s.baseCost(ctx, aircraftID)
	if err != nil {
		return nil, err
	}
	routes, err := s.aircraftRoutes(ctx, aircraftID)
	if err != nil {
		return nil, err
	}

	return &CompleteCalculation{
		BaseCost:          base,
		MonthlyProjection: ComputeMonthlyProjection(base, routes),
		RouteCosts:        ComputeRouteCosts(base, routes),
	}, nil
}

func (s *CalculationService) aircraftRoutes(ctx context.Context, aircraftID string) ([]gormModels.Route, error) {
	routes, err := s.routes.List(ctx, aircraftID)
	if err != nil {
		return nil, NewInternalError("failed to load routes", err)
	}
	return routes, nil
}

// record appends to the calculation log. Failures are logged only; the
// caller already has a valid result.
func (s *CalculationService) record(ctx context.Context, aircraftID string, kind constants.CalculationKind, value float64, details interface{}) {
	if s.logs == nil {
		return
	}

	payload, err := json.Marshal(details)
	if err != nil {
		logging.Warn("[CostEngine] Failed to encode calculation log", "kind", kind, "error", err)
		return
	}

	entry := &gormModels.CalculationLog{
		AircraftID:  aircraftID,
		Kind:        kind,
		ResultValue: value,
		Details:     datatypes.JSON(payload),
	}
	if err := s.logs.Record(ctx, entry); err != nil {
		logging.Warn("[CostEngine] Failed to record calculation", "kind", kind, "aircraft_id", aircraftID, "error", err)
	}
}

func (s *CalculationService) observe(kind constants.CalculationKind, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = string(KindOf(err))
	}
	s.metrics.CalculationsTotal.WithLabelValues(string(kind), outcome).Inc()
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
