package repositories

import (
	"context"
	"fmt"
	"time"

	"aerocost/api/internal/constants"
	"aerocost/api/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

const flightMonthStatsQuery = `
	SELECT
		COALESCE(SUM(CASE WHEN flight_type = ? THEN 1 ELSE 0 END), 0) AS planned_count,
		COALESCE(SUM(CASE WHEN flight_type = ? THEN 1 ELSE 0 END), 0) AS completed_count,
		COALESCE(SUM(CASE WHEN flight_type = ?
			THEN COALESCE(actual_leg_time, leg_time) ELSE 0 END), 0) AS completed_hours,
		COALESCE(SUM(CASE WHEN flight_type = ?
			THEN COALESCE(cost_calculated, 0) ELSE 0 END), 0) AS completed_cost
	FROM flights
	WHERE aircraft_id = ?
	  AND scheduled_date >= ?
	  AND scheduled_date < ?
`

// FlightStatsRepo serves aggregate read queries over flights with sqlx.
type FlightStatsRepo struct {
	db *sqlx.DB
}

func NewFlightStatsRepo(db *sqlx.DB) *FlightStatsRepo {
	return &FlightStatsRepo{db: db}
}

// MonthlyStats aggregates flights scheduled in [from, to).
func (r *FlightStatsRepo) MonthlyStats(ctx context.Context, aircraftID string, from, to time.Time) (*entities.FlightMonthStats, error) {
	var stats entities.FlightMonthStats

	query := r.db.Rebind(flightMonthStatsQuery)
	err := r.db.GetContext(ctx, &stats, query,
		string(constants.FlightTypePlanned),
		string(constants.FlightTypeCompleted),
		string(constants.FlightTypeCompleted),
		string(constants.FlightTypeCompleted),
		aircraftID,
		from.UTC(),
		to.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly flight stats: %w", err)
	}

	stats.Month = from.UTC().Format("2006-01")
	return &stats, nil
}
