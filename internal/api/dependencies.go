package api

import (
	"context"
	"time"

	"aerocost/api/internal/auth"
	"aerocost/api/internal/common"
	"aerocost/api/internal/config"
	"aerocost/api/internal/db/repositories"
	"aerocost/api/internal/events"
	"aerocost/api/internal/metrics"
	"aerocost/api/internal/models/dtos"
	gormModels "aerocost/api/internal/models/gorm"
	"aerocost/api/internal/services"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Service contracts the handlers depend on. The concrete implementations
// live in internal/services; handler tests substitute mocks.

type AircraftService interface {
	List(ctx context.Context) ([]gormModels.Aircraft, error)
	Get(ctx context.Context, id string) (*gormModels.Aircraft, error)
	Create(ctx context.Context, req dtos.AircraftRequest) (*gormModels.Aircraft, error)
	Update(ctx context.Context, id string, req dtos.AircraftRequest) (*gormModels.Aircraft, error)
	Delete(ctx context.Context, id string) error
}

type CostProfileService interface {
	GetFixedCost(ctx context.Context, aircraftID string) (*gormModels.FixedCost, error)
	UpsertFixedCost(ctx context.Context, aircraftID string, req dtos.FixedCostRequest) (*gormModels.FixedCost, error)
	DeleteFixedCost(ctx context.Context, aircraftID string) error
	GetVariableCost(ctx context.Context, aircraftID string) (*gormModels.VariableCost, error)
	UpsertVariableCost(ctx context.Context, aircraftID string, req dtos.VariableCostRequest) (*gormModels.VariableCost, error)
	DeleteVariableCost(ctx context.Context, aircraftID string) error
}

type RouteService interface {
	List(ctx context.Context, aircraftID string) ([]gormModels.Route, error)
	Get(ctx context.Context, id string) (*gormModels.Route, error)
	Create(ctx context.Context, req dtos.RouteRequest) (*gormModels.Route, error)
	Update(ctx context.Context, id string, req dtos.RouteRequest) (*gormModels.Route, error)
	Delete(ctx context.Context, id string) error
}

type FxRateService interface {
	List(ctx context.Context, limit int) ([]gormModels.FxRate, error)
	Current(ctx context.Context) (*gormModels.FxRate, error)
	Create(ctx context.Context, req dtos.FxRateRequest) (*gormModels.FxRate, error)
	Delete(ctx context.Context, id string) error
}

type CalculationService interface {
	CalculateBaseCost(ctx context.Context, aircraftID string) (*services.BaseCostBreakdown, error)
	CalculateLegCost(ctx context.Context, aircraftID string, legTime *float64, routeID *string) (*services.LegCostBreakdown, error)
	CalculateRouteCost(ctx context.Context, aircraftID, routeID string) (*services.LegCostBreakdown, error)
	CalculateMonthlyProjection(ctx context.Context, aircraftID string) (*services.MonthlyProjection, error)
	CalculateComplete(ctx context.Context, aircraftID string) (*services.CompleteCalculation, error)
}

type DashboardService interface {
	GetDashboard(ctx context.Context, aircraftID string) (*services.Dashboard, error)
}

type FlightService interface {
	List(ctx context.Context, params services.FlightListParams) ([]gormModels.Flight, error)
	Get(ctx context.Context, id string) (*gormModels.Flight, error)
	Create(ctx context.Context, req dtos.FlightRequest) (*gormModels.Flight, error)
	Update(ctx context.Context, id string, req dtos.FlightRequest) (*gormModels.Flight, error)
	Complete(ctx context.Context, id string, actualLegTime *float64) (*gormModels.Flight, error)
	Delete(ctx context.Context, id string) error
	RecalculateCosts(ctx context.Context, aircraftID string, opts services.RecalculateOptions) (*services.RecalculationResult, error)
}

type UserService interface {
	Login(ctx context.Context, req dtos.LoginRequest) (*dtos.LoginResponse, error)
	Logout(claims *auth.JWTClaims)
	List(ctx context.Context) ([]dtos.UserSummary, error)
	Get(ctx context.Context, actor auth.UserClaims, id string) (*dtos.UserSummary, error)
	Create(ctx context.Context, req dtos.CreateUserRequest) (*dtos.UserSummary, error)
	Update(ctx context.Context, actor auth.UserClaims, id string, req dtos.UpdateUserRequest) (*dtos.UserSummary, error)
	Delete(ctx context.Context, actor auth.UserClaims, id string) error
}

type Repositories struct {
	Aircraft        *repositories.AircraftRepo
	Costs           *repositories.CostRepo
	Routes          *repositories.RouteRepo
	FxRates         *repositories.FxRateRepo
	Flights         *repositories.FlightRepo
	FlightStats     *repositories.FlightStatsRepo
	Users           *repositories.UserRepositoryGORM
	CalculationLogs services.CalculationLogStore
}

type Services struct {
	Cache        common.CacheInterface
	Tokens       *auth.TokenService
	Aircraft     AircraftService
	Costs        CostProfileService
	Routes       RouteService
	FxRates      FxRateService
	Calculations CalculationService
	FlightCosts  *services.FlightCostService
	Dashboard    DashboardService
	Flights      FlightService
	Users        UserService
}

type Dependencies struct {
	Config    *config.Config
	SQLX      *sqlx.DB
	Metrics   *metrics.MetricsRegistry
	Publisher events.Publisher
	Repo      *Repositories
	Services  *Services
	UpSince   time.Time
}

// Infra bundles the already-connected backends the dependency graph is
// built on.
type Infra struct {
	ORM       *gorm.DB
	SQLX      *sqlx.DB
	Cache     common.CacheInterface
	Publisher events.Publisher
	// LogStore overrides the SQL calculation log, e.g. with DynamoDB.
	LogStore services.CalculationLogStore
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(cfg *config.Config, infra Infra) (*Dependencies, error) {
	repos := &Repositories{
		Aircraft:        repositories.NewAircraftRepo(infra.ORM),
		Costs:           repositories.NewCostRepo(infra.ORM),
		Routes:          repositories.NewRouteRepo(infra.ORM),
		FxRates:         repositories.NewFxRateRepo(infra.ORM),
		Flights:         repositories.NewFlightRepo(infra.ORM),
		FlightStats:     repositories.NewFlightStatsRepo(infra.SQLX),
		Users:           repositories.NewUserRepositoryGORM(infra.ORM),
		CalculationLogs: infra.LogStore,
	}
	if repos.CalculationLogs == nil {
		repos.CalculationLogs = repositories.NewCalculationLogRepo(infra.ORM)
	}

	publisher := infra.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	tokenSvc := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL(), infra.Cache)
	calcSvc := services.NewCalculationService(
		repos.Aircraft,
		repos.Costs,
		repos.Routes,
		repos.FxRates,
		repos.CalculationLogs,
		infra.Metrics,
	)
	flightCostSvc := services.NewFlightCostService(calcSvc, repos.Flights, publisher, infra.Metrics)

	svcs := &Services{
		Cache:        infra.Cache,
		Tokens:       tokenSvc,
		Aircraft:     services.NewAircraftService(repos.Aircraft, repos.CalculationLogs),
		Costs:        services.NewCostProfileService(repos.Aircraft, repos.Costs),
		Routes:       services.NewRouteService(repos.Routes, repos.Aircraft),
		FxRates:      services.NewFxRateService(repos.FxRates),
		Calculations: calcSvc,
		FlightCosts:  flightCostSvc,
		Dashboard:    services.NewDashboardService(calcSvc, flightCostSvc, repos.Flights, repos.FlightStats),
		Flights:      services.NewFlightService(repos.Flights, repos.Aircraft, repos.Routes, flightCostSvc),
		Users:        services.NewUserService(repos.Users, tokenSvc),
	}

	return &Dependencies{
		Config:    cfg,
		SQLX:      infra.SQLX,
		Metrics:   infra.Metrics,
		Publisher: publisher,
		Repo:      repos,
		Services:  svcs,
		UpSince:   time.Now(),
	}, nil
}
