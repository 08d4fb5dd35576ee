package services

import (
	"context"
	"testing"
	"time"

	"aerocost/api/internal/db/repositories"
	gormModels "aerocost/api/internal/models/gorm"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	// one connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&gormModels.User{},
		&gormModels.Aircraft{},
		&gormModels.FixedCost{},
		&gormModels.VariableCost{},
		&gormModels.Route{},
		&gormModels.FxRate{},
		&gormModels.Flight{},
		&gormModels.CalculationLog{},
	))
	return db
}

type testRepos struct {
	aircraft *repositories.AircraftRepo
	costs    *repositories.CostRepo
	routes   *repositories.RouteRepo
	fxRates  *repositories.FxRateRepo
	flights  *repositories.FlightRepo
	logs     *repositories.CalculationLogRepo
	users    *repositories.UserRepositoryGORM
}

func newTestRepos(db *gorm.DB) testRepos {
	return testRepos{
		aircraft: repositories.NewAircraftRepo(db),
		costs:    repositories.NewCostRepo(db),
		routes:   repositories.NewRouteRepo(db),
		fxRates:  repositories.NewFxRateRepo(db),
		flights:  repositories.NewFlightRepo(db),
		logs:     repositories.NewCalculationLogRepo(db),
		users:    repositories.NewUserRepositoryGORM(db),
	}
}

func (r testRepos) calculationService() *CalculationService {
	return NewCalculationService(r.aircraft, r.costs, r.routes, r.fxRates, r.logs, nil)
}

func ptr[T any](v T) *T { return &v }

// scenario is the reference aircraft used across the engine tests:
// fixed 133.00/h, variable 1525.00/h, route DECEA 40.00/h, so a 3h leg on
// the route costs 5094.00.
type scenario struct {
	aircraft *gormModels.Aircraft
	route    *gormModels.Route
}

func seedScenario(t *testing.T, r testRepos) scenario {
	t.Helper()
	ctx := context.Background()

	aircraft := &gormModels.Aircraft{
		Name:         "Citation CJ3",
		Registration: "PR-ABC",
		MonthlyHours: 100,
		AvgLegTime:   2,
	}
	require.NoError(t, r.aircraft.Create(ctx, aircraft))

	require.NoError(t, r.costs.UpsertFixedCost(ctx, &gormModels.FixedCost{
		AircraftID:     aircraft.ID,
		CrewMonthly:    10000,
		HangarMonthly:  2000,
		ECFixedUSD:     100,
		Insurance:      500,
		Administration: 300,
	}))
	require.NoError(t, r.costs.UpsertVariableCost(ctx, &gormModels.VariableCost{
		AircraftID:        aircraft.ID,
		FuelLitersPerHour: ptr(200.0),
		FuelPricePerLiter: 6,
		ECVariableUSD:     50,
		RUPerLeg:          100,
		CCRPerLeg:         50,
	}))
	require.NoError(t, r.fxRates.Create(ctx, &gormModels.FxRate{
		USDToBRL:      5,
		EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	route := &gormModels.Route{
		AircraftID:   ptr(aircraft.ID),
		Origin:       "GRU",
		Destination:  "SDU",
		DECEAPerHour: 40,
	}
	require.NoError(t, r.routes.Create(ctx, route))

	return scenario{aircraft: aircraft, route: route}
}
