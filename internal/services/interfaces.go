package services

import (
	"context"
	"time"

	"aerocost/api/internal/db/repositories"
	"aerocost/api/internal/models/entities"
	gormModels "aerocost/api/internal/models/gorm"
)

// Lookups return nil, nil when the record does not exist; the services
// decide what a missing record means.

type AircraftRepository interface {
	GetByID(ctx context.Context, id string) (*gormModels.Aircraft, error)
	List(ctx context.Context) ([]gormModels.Aircraft, error)
	Create(ctx context.Context, aircraft *gormModels.Aircraft) error
	Update(ctx context.Context, aircraft *gormModels.Aircraft) error
	DeleteCascade(ctx context.Context, id string) (bool, error)
}

type CostRepository interface {
	GetFixedCost(ctx context.Context, aircraftID string) (*gormModels.FixedCost, error)
	GetVariableCost(ctx context.Context, aircraftID string) (*gormModels.VariableCost, error)
	UpsertFixedCost(ctx context.Context, cost *gormModels.FixedCost) error
	UpsertVariableCost(ctx context.Context, cost *gormModels.VariableCost) error
	DeleteFixedCost(ctx context.Context, aircraftID string) (bool, error)
	DeleteVariableCost(ctx context.Context, aircraftID string) (bool, error)
}

type RouteRepository interface {
	GetByID(ctx context.Context, id string) (*gormModels.Route, error)
	List(ctx context.Context, aircraftID string) ([]gormModels.Route, error)
	Create(ctx context.Context, route *gormModels.Route) error
	Update(ctx context.Context, route *gormModels.Route) error
	Delete(ctx context.Context, id string) (bool, error)
}

type FxRateRepository interface {
	GetCurrent(ctx context.Context) (*gormModels.FxRate, error)
	List(ctx context.Context, limit int) ([]gormModels.FxRate, error)
	Create(ctx context.Context, rate *gormModels.FxRate) error
	Delete(ctx context.Context, id string) (bool, error)
}

type FlightRepository interface {
	GetByID(ctx context.Context, id string) (*gormModels.Flight, error)
	List(ctx context.Context, filter repositories.FlightFilter) ([]gormModels.Flight, error)
	Create(ctx context.Context, flight *gormModels.Flight) error
	Update(ctx context.Context, flight *gormModels.Flight) error
	UpdateCost(ctx context.Context, id string, cost float64) error
	Delete(ctx context.Context, id string) (bool, error)
}

type FlightStatsRepository interface {
	MonthlyStats(ctx context.Context, aircraftID string, from, to time.Time) (*entities.FlightMonthStats, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*gormModels.User, error)
	GetByEmail(ctx context.Context, email string) (*gormModels.User, error)
	List(ctx context.Context) ([]gormModels.User, error)
	Create(ctx context.Context, user *gormModels.User) error
	Update(ctx context.Context, user *gormModels.User) error
	Delete(ctx context.Context, id string) (bool, error)
}

// CalculationLogStore is backed by the SQL database or DynamoDB.
type CalculationLogStore interface {
	Record(ctx context.Context, entry *gormModels.CalculationLog) error
	ListRecent(ctx context.Context, aircraftID string, limit int) ([]gormModels.CalculationLog, error)
	DeleteByAircraft(ctx context.Context, aircraftID string) error
}
