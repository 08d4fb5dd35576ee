package gorm

import "time"

// FixedCost holds the monthly fixed expenses of one aircraft. EC amounts are
// stored in USD, everything else in BRL.
type FixedCost struct {
	ID              string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	AircraftID      string    `gorm:"column:aircraft_id;type:varchar(36);uniqueIndex;not null" json:"aircraft_id"`
	CrewMonthly     float64   `gorm:"column:crew_monthly;not null;default:0" json:"crew_monthly"`
	HangarMonthly   float64   `gorm:"column:hangar_monthly;not null;default:0" json:"hangar_monthly"`
	ECFixedUSD      float64   `gorm:"column:ec_fixed_usd;not null;default:0" json:"ec_fixed_usd"`
	Insurance       float64   `gorm:"column:insurance;not null;default:0" json:"insurance"`
	Administration  float64   `gorm:"column:administration;not null;default:0" json:"administration"`
	PilotHourlyRate *float64  `gorm:"column:pilot_hourly_rate" json:"pilot_hourly_rate"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (FixedCost) TableName() string {
	return "fixed_costs"
}

type VariableCost struct {
	ID                    string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	AircraftID            string    `gorm:"column:aircraft_id;type:varchar(36);uniqueIndex;not null" json:"aircraft_id"`
	FuelLitersPerHour     *float64  `gorm:"column:fuel_liters_per_hour" json:"fuel_liters_per_hour"`
	FuelConsumptionKmPerL *float64  `gorm:"column:fuel_consumption_km_per_l" json:"fuel_consumption_km_per_l"`
	FuelPricePerLiter     float64   `gorm:"column:fuel_price_per_liter;not null;default:0" json:"fuel_price_per_liter"`
	ECVariableUSD         float64   `gorm:"column:ec_variable_usd;not null;default:0" json:"ec_variable_usd"`
	RUPerLeg              float64   `gorm:"column:ru_per_leg;not null;default:0" json:"ru_per_leg"`
	CCRPerLeg             float64   `gorm:"column:ccr_per_leg;not null;default:0" json:"ccr_per_leg"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (VariableCost) TableName() string {
	return "variable_costs"
}
