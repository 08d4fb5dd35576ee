package services

import (
	"context"
	"testing"
	"time"

	"aerocost/api/internal/constants"
	gormModels "aerocost/api/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculationService_CalculateLegCost_Scenario(t *testing.T) {
	repos := newTestRepos(setupTestDB(t))
	sc := seedScenario(t, repos)
	svc := repos.calculationService()
	ctx := context.Background()

	leg, err := svc.CalculateLegCost(ctx, sc.aircraft.ID, ptr(3.0), &sc.route.ID)
	require.NoError(t, err)
	assert.Equal(t, 133.00, leg.FixedCostPerHour)
	assert.Equal(t, 1525.00, leg.VariableCostPerHour)
	assert.Equal(t, 1698.00, leg.TotalCostPerHour)
	assert.Equal(t, 5094.00, leg.TotalLegCost)
	assert.Equal(t, "GRU", leg.Origin)

	// same inputs, same answer
	again, err := svc.CalculateLegCost(ctx, sc.aircraft.ID, ptr(3.0), &sc.route.ID)
	require.NoError(t, err)
	assert.Equal(t, leg.TotalLegCost, again.TotalLegCost)

	logs, err := repos.logs.ListRecent(ctx, sc.aircraft.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, constants.CalculationLegCost, logs[0].Kind)
	assert.Equal(t, 5094.00, logs[0].ResultValue)
}

func TestCalculationService_CalculateLegCost_UnknownRoute(t *testing.T) {
	repos := newTestRepos(setupTestDB(t))
	sc := seedScenario(t, repos)

	leg, err := repos.calculationService().CalculateLegCost(context.Background(), sc.aircraft.ID, ptr(3.0), ptr("no-such-route"))
	require.NoError(t, err)
	assert.False(t, leg.RouteFound)
	assert.Equal(t, 4974.00, leg.TotalLegCost)
}

func TestCalculationService_CalculateLegCost_DefaultsToAverageLegTime(t *testing.T) {
	repos := newTestRepos(setupTestDB(t))
	sc := seedScenario(t, repos)

	leg, err := repos.calculationService().CalculateLegCost(context.Background(), sc.aircraft.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, leg.LegTime)
	assert.Equal(t, LegTimeSourceAverage, leg.LegTimeSource)
}

func TestCalculationService_CalculateBaseCost_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("aircraft not found", func(t *testing.T) {
		repos := newTestRepos(setupTestDB(t))
		_, err := repos.calculationService().CalculateBaseCost(ctx, "missing")
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.Equal(t, constants.MsgAircraftNotFound, ClientMessage(err))
	})

	t.Run("no exchange rate", func(t *testing.T) {
		repos := newTestRepos(setupTestDB(t))
		aircraft := &gormModels.Aircraft{Name: "King Air", Registration: "PP-XYZ", MonthlyHours: 50}
		require.NoError(t, repos.aircraft.Create(ctx, aircraft))

		_, err := repos.calculationService().CalculateBaseCost(ctx, aircraft.ID)
		require.Error(t, err)
		assert.Equal(t, KindPrecondition, KindOf(err))
		assert.Equal(t, constants.MsgFxRateNotFound, ClientMessage(err))
	})

	t.Run("zero monthly hours", func(t *testing.T) {
		repos := newTestRepos(setupTestDB(t))
		sc := seedScenario(t, repos)
		sc.aircraft.MonthlyHours = 0
		require.NoError(t, repos.aircraft.Update(ctx, sc.aircraft))

		_, err := repos.calculationService().CalculateBaseCost(ctx, sc.aircraft.ID)
		require.Error(t, err)
		assert.Equal(t, constants.MsgMonthlyHoursZero, ClientMessage(err))
	})
}

func TestCalculationService_CalculateBaseCost_UsesLatestRate(t *testing.T) {
	repos := newTestRepos(setupTestDB(t))
	sc := seedScenario(t, repos)
	ctx := context.Background()

	// later effective date wins: ec_fixed 100 USD at 6.0 adds 1.00/h
	require.NoError(t, repos.fxRates.Create(ctx, &gormModels.FxRate{
		USDToBRL:      6,
		EffectiveDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	base, err := repos.calculationService().CalculateBaseCost(ctx, sc.aircraft.ID)
	require.NoError(t, err)
	assert.Equal(t, 6.0, base.FxRate)
	assert.Equal(t, 134.00, base.FixedCostPerHour)
	assert.Equal(t, 1575.00, base.VariableCostPerHour)
}

func TestCalculationService_CalculateRouteCost(t *testing.T) {
	repos := newTestRepos(setupTestDB(t))
	sc := seedScenario(t, repos)
	svc := repos.calculationService()
	ctx := context.Background()

	leg, err := svc.CalculateRouteCost(ctx, sc.aircraft.ID, sc.route.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, leg.LegTime)
	assert.Equal(t, 3396.00, leg.TotalLegCost)

	_, err = svc.CalculateRouteCost(ctx, sc.aircraft.ID, "missing")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, constants.MsgRouteNotFound, ClientMessage(err))
}

func TestCalculationService_CalculateComplete(t *testing.T) {
	repos := newTestRepos(setupTestDB(t))
	sc := seedScenario(t, repos)

	complete, err := repos.calculationService().CalculateComplete(context.Background(), sc.aircraft.ID)
	require.NoError(t, err)

	assert.Equal(t, 1658.00, complete.BaseCost.TotalBaseCostPerHour)
	assert.Equal(t, 1, complete.MonthlyProjection.RouteCount)
	assert.Equal(t, 169800.00, complete.MonthlyProjection.MonthlyProjection)
	require.Len(t, complete.RouteCosts, 1)
	require.NotNil(t, complete.RouteCosts[0].TotalLegCost)
	assert.Equal(t, 3396.00, *complete.RouteCosts[0].TotalLegCost)
}
