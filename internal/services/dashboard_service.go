package services

import (
	"context"
	"time"

	"aerocost/api/internal/common"
	"aerocost/api/internal/constants"
	"aerocost/api/internal/db/repositories"
	"aerocost/api/internal/logging"
	"aerocost/api/internal/models/entities"
	gormModels "aerocost/api/internal/models/gorm"
)

// Dashboard is the aggregated per-aircraft view. Cost sections are nil and
// CostError is set when the base cost cannot be computed.
type Dashboard struct {
	Aircraft           *gormModels.Aircraft        `json:"aircraft"`
	BaseCost           *BaseCostBreakdown          `json:"base_cost"`
	RouteCosts         []RouteCostEntry            `json:"route_costs"`
	MonthlyProjection  *MonthlyProjection          `json:"monthly_projection"`
	CostError          string                      `json:"cost_error,omitempty"`
	Flights            []gormModels.Flight         `json:"flights"`
	MonthStats         *entities.FlightMonthStats  `json:"month_stats"`
	RecentCalculations []gormModels.CalculationLog `json:"recent_calculations"`
	Reconciliation     *ReconcileSummary           `json:"reconciliation"`
	GeneratedAt        time.Time                   `json:"generated_at"`
}

type DashboardService struct {
	calc       *CalculationService
	flightCost *FlightCostService
	flights    FlightRepository
	stats      FlightStatsRepository
	now        func() time.Time
}

func NewDashboardService(
	calc *CalculationService,
	flightCost *FlightCostService,
	flights FlightRepository,
	stats FlightStatsRepository,
) *DashboardService {
	return &DashboardService{
		calc:       calc,
		flightCost: flightCost,
		flights:    flights,
		stats:      stats,
		now:        time.Now,
	}
}

// GetDashboard assembles the dashboard. Reading it reconciles the cached
// cost of the listed flights first, so the flights returned carry current
// costs.
func (s *DashboardService) GetDashboard(ctx context.Context, aircraftID string) (*Dashboard, error) {
	profile, err := s.calc.LoadProfile(ctx, aircraftID)
	if err != nil {
		return nil, err
	}

	flights, err := s.flights.List(ctx, repositories.FlightFilter{
		AircraftID: aircraftID,
		Limit:      constants.DashboardFlightLimit,
	})
	if err != nil {
		return nil, NewInternalError("failed to load flights", err)
	}

	dashboard := &Dashboard{
		Aircraft:    profile.Aircraft,
		Flights:     flights,
		RouteCosts:  []RouteCostEntry{},
		GeneratedAt: s.now().UTC(),
	}

	base, err := s.calc.baseCost(ctx, aircraftID)
	if err != nil {
		if KindOf(err) == KindInternal {
			return nil, err
		}
		dashboard.CostError = ClientMessage(err)
	} else {
		routes, err := s.calc.aircraftRoutes(ctx, aircraftID)
		if err != nil {
			return nil, err
		}
		dashboard.BaseCost = base
		dashboard.RouteCosts = ComputeRouteCosts(base, routes)
		dashboard.MonthlyProjection = ComputeMonthlyProjection(base, routes)

		summary, err := s.flightCost.ReconcileFlightCosts(ctx, aircraftID, dashboard.Flights)
		if err != nil {
			logging.Warn("[Dashboard] Flight cost reconciliation failed", "aircraft_id", aircraftID, "error", err)
		}
		dashboard.Reconciliation = summary
	}

	monthStart := common.StartOfMonthUTC(s.now())
	stats, err := s.stats.MonthlyStats(ctx, aircraftID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, NewInternalError("failed to load flight statistics", err)
	}
	dashboard.MonthStats = stats

	dashboard.RecentCalculations = []gormModels.CalculationLog{}
	if s.calc.logs != nil {
		recent, err := s.calc.logs.ListRecent(ctx, aircraftID, constants.RecentCalculationsLimit)
		if err != nil {
			logging.Warn("[Dashboard] Failed to load recent calculations", "aircraft_id", aircraftID, "error", err)
		} else {
			dashboard.RecentCalculations = recent
		}
	}

	return dashboard, nil
}
