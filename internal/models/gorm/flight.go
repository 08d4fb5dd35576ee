package gorm

import (
	"aerocost/api/internal/constants"
	"time"
)

type Flight struct {
	ID             string               `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	AircraftID     string               `gorm:"column:aircraft_id;type:varchar(36);index;not null" json:"aircraft_id"`
	RouteID        *string              `gorm:"column:route_id;type:varchar(36);index" json:"route_id"`
	FlightType     constants.FlightType `gorm:"column:flight_type;type:varchar(16);not null" json:"flight_type"`
	ScheduledDate  time.Time            `gorm:"column:scheduled_date;index;not null" json:"scheduled_date"`
	LegTime        float64              `gorm:"column:leg_time;not null;default:0" json:"leg_time"`
	ActualLegTime  *float64             `gorm:"column:actual_leg_time" json:"actual_leg_time"`
	CostCalculated *float64             `gorm:"column:cost_calculated" json:"cost_calculated"`
	Notes          string               `gorm:"column:notes" json:"notes"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Route *Route `gorm:"foreignKey:RouteID" json:"route,omitempty"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}

// EffectiveLegTime is the duration a flight is costed with: the actual leg
// time once completed, the planned one otherwise.
func (f Flight) EffectiveLegTime() float64 {
	if f.FlightType == constants.FlightTypeCompleted && f.ActualLegTime != nil && *f.ActualLegTime > 0 {
		return *f.ActualLegTime
	}
	return f.LegTime
}
