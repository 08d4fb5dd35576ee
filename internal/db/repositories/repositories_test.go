package repositories

import (
	"context"
	"testing"
	"time"

	"aerocost/api/internal/constants"
	gormModels "aerocost/api/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*gorm.DB, *sqlx.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

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
	return db, sqlx.NewDb(sqlDB, "sqlite3")
}

func createAircraft(t *testing.T, db *gorm.DB, registration string) *gormModels.Aircraft {
	t.Helper()
	aircraft := &gormModels.Aircraft{Name: "King Air", Registration: registration, MonthlyHours: 50}
	require.NoError(t, NewAircraftRepo(db).Create(context.Background(), aircraft))
	return aircraft
}

func TestAircraftRepo_DuplicateRegistration(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewAircraftRepo(db)
	createAircraft(t, db, "PT-AAA")

	err := repo.Create(context.Background(), &gormModels.Aircraft{Name: "Other", Registration: "PT-AAA"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestAircraftRepo_GetByIDMissing(t *testing.T) {
	db, _ := setupTestDB(t)

	aircraft, err := NewAircraftRepo(db).GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, aircraft)
}

func TestFxRateRepo_GetCurrent(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewFxRateRepo(db)
	ctx := context.Background()

	current, err := repo.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, repo.Create(ctx, &gormModels.FxRate{USDToBRL: 5.10, EffectiveDate: day(10)}))
	require.NoError(t, repo.Create(ctx, &gormModels.FxRate{USDToBRL: 4.90, EffectiveDate: day(20)}))
	require.NoError(t, repo.Create(ctx, &gormModels.FxRate{USDToBRL: 5.00, EffectiveDate: day(5)}))

	current, err = repo.GetCurrent(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, 4.90, current.USDToBRL, "latest effective date wins over insertion order")

	rates, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, 4.90, rates[0].USDToBRL)
	assert.Equal(t, 5.10, rates[1].USDToBRL)
}

func TestCostRepo_UpsertKeepsIdentity(t *testing.T) {
	db, _ := setupTestDB(t)
	aircraft := createAircraft(t, db, "PT-BBB")
	repo := NewCostRepo(db)
	ctx := context.Background()

	first := &gormModels.FixedCost{AircraftID: aircraft.ID, CrewMonthly: 1000}
	require.NoError(t, repo.UpsertFixedCost(ctx, first))

	second := &gormModels.FixedCost{AircraftID: aircraft.ID, CrewMonthly: 2000}
	require.NoError(t, repo.UpsertFixedCost(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	stored, err := repo.GetFixedCost(ctx, aircraft.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 2000.0, stored.CrewMonthly)

	var count int64
	require.NoError(t, db.Model(&gormModels.FixedCost{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFlightRepo_ListFilters(t *testing.T) {
	db, _ := setupTestDB(t)
	aircraft := createAircraft(t, db, "PT-CCC")
	repo := NewFlightRepo(db)
	ctx := context.Background()

	cost := 100.0
	zero := 0.0
	flights := []*gormModels.Flight{
		{AircraftID: aircraft.ID, FlightType: constants.FlightTypePlanned, ScheduledDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{AircraftID: aircraft.ID, FlightType: constants.FlightTypePlanned, ScheduledDate: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), CostCalculated: &zero},
		{AircraftID: aircraft.ID, FlightType: constants.FlightTypeCompleted, ScheduledDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), CostCalculated: &cost},
	}
	for _, f := range flights {
		require.NoError(t, repo.Create(ctx, f))
	}

	all, err := repo.List(ctx, FlightFilter{AircraftID: aircraft.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, flights[1].ID, all[0].ID, "newest scheduled first")

	missing, err := repo.List(ctx, FlightFilter{AircraftID: aircraft.ID, MissingCostOnly: true})
	require.NoError(t, err)
	assert.Len(t, missing, 2)

	completed, err := repo.List(ctx, FlightFilter{FlightType: constants.FlightTypeCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, flights[2].ID, completed[0].ID)

	require.NoError(t, repo.UpdateCost(ctx, flights[0].ID, 42.5))
	got, err := repo.GetByID(ctx, flights[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got.CostCalculated)
	assert.Equal(t, 42.5, *got.CostCalculated)
}

func TestFlightStatsRepo_MonthlyStats(t *testing.T) {
	db, sqlxDB := setupTestDB(t)
	aircraft := createAircraft(t, db, "PT-DDD")
	other := createAircraft(t, db, "PT-EEE")
	flights := NewFlightRepo(db)
	ctx := context.Background()

	march := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }
	cost := 1000.0
	actual := 2.5
	rows := []*gormModels.Flight{
		{AircraftID: aircraft.ID, FlightType: constants.FlightTypePlanned, ScheduledDate: march(1), LegTime: 2},
		{AircraftID: aircraft.ID, FlightType: constants.FlightTypeCompleted, ScheduledDate: march(5), LegTime: 2, ActualLegTime: &actual, CostCalculated: &cost},
		{AircraftID: aircraft.ID, FlightType: constants.FlightTypeCompleted, ScheduledDate: march(31), LegTime: 1},
		{AircraftID: aircraft.ID, FlightType: constants.FlightTypeCompleted, ScheduledDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), LegTime: 9},
		{AircraftID: other.ID, FlightType: constants.FlightTypeCompleted, ScheduledDate: march(5), LegTime: 9},
	}
	for _, f := range rows {
		require.NoError(t, flights.Create(ctx, f))
	}

	from := march(1)
	stats, err := NewFlightStatsRepo(sqlxDB).MonthlyStats(ctx, aircraft.ID, from, from.AddDate(0, 1, 0))
	require.NoError(t, err)

	assert.Equal(t, "2025-03", stats.Month)
	assert.Equal(t, 1, stats.PlannedCount)
	assert.Equal(t, 2, stats.CompletedCount)
	assert.Equal(t, 3.5, stats.CompletedHours)
	assert.Equal(t, 1000.0, stats.CompletedCost)
}

func TestUserRepository_EmailIsCaseInsensitive(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewUserRepositoryGORM(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &gormModels.User{Email: " Pilot@Example.COM ", Name: "P", PasswordHash: "x", Role: constants.RoleUser}))

	user, err := repo.GetByEmail(ctx, "PILOT@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "pilot@example.com", user.Email)

	err = repo.Create(ctx, &gormModels.User{Email: "pilot@example.com", Name: "Q", PasswordHash: "x", Role: constants.RoleUser})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestCalculationLogRepo_ListRecent(t *testing.T) {
	db, _ := setupTestDB(t)
	aircraft := createAircraft(t, db, "PT-FFF")
	repo := NewCalculationLogRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Record(ctx, &gormModels.CalculationLog{
			AircraftID:  aircraft.ID,
			Kind:        constants.CalculationBaseCost,
			ResultValue: float64(i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := repo.ListRecent(ctx, aircraft.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 2.0, recent[0].ResultValue)
	assert.Equal(t, 1.0, recent[1].ResultValue)
}

func TestCalculationLogRepo_DeleteByAircraft(t *testing.T) {
	db, _ := setupTestDB(t)
	target := createAircraft(t, db, "PT-GGG")
	other := createAircraft(t, db, "PT-HHH")
	repo := NewCalculationLogRepo(db)
	ctx := context.Background()

	for _, id := range []string{target.ID, target.ID, other.ID} {
		require.NoError(t, repo.Record(ctx, &gormModels.CalculationLog{
			AircraftID: id,
			Kind:       constants.CalculationBaseCost,
			CreatedAt:  time.Now().UTC(),
		}))
	}

	require.NoError(t, repo.DeleteByAircraft(ctx, target.ID))

	gone, err := repo.ListRecent(ctx, target.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, gone)
	kept, err := repo.ListRecent(ctx, other.ID, 10)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
