package entities

// FlightMonthStats aggregates an aircraft's flights scheduled within one
// calendar month. Scanned by sqlx from the flight stats query.
type FlightMonthStats struct {
	Month          string  `db:"-" json:"month"`
	PlannedCount   int     `db:"planned_count" json:"planned_count"`
	CompletedCount int     `db:"completed_count" json:"completed_count"`
	CompletedHours float64 `db:"completed_hours" json:"completed_hours"`
	CompletedCost  float64 `db:"completed_cost" json:"completed_cost"`
}
