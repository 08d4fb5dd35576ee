package dtos

type AircraftRequest struct {
	Name         string   `json:"name" validate:"required,max=120"`
	Registration string   `json:"registration" validate:"required,max=20"`
	Model        string   `json:"model" validate:"max=120"`
	MonthlyHours *float64 `json:"monthly_hours" validate:"required,gte=0"`
	AvgLegTime   *float64 `json:"avg_leg_time" validate:"omitempty,gte=0"`
}

type FixedCostRequest struct {
	CrewMonthly     float64  `json:"crew_monthly" validate:"gte=0"`
	HangarMonthly   float64  `json:"hangar_monthly" validate:"gte=0"`
	ECFixedUSD      float64  `json:"ec_fixed_usd" validate:"gte=0"`
	Insurance       float64  `json:"insurance" validate:"gte=0"`
	Administration  float64  `json:"administration" validate:"gte=0"`
	PilotHourlyRate *float64 `json:"pilot_hourly_rate" validate:"omitempty,gte=0"`
}

type VariableCostRequest struct {
	FuelLitersPerHour     *float64 `json:"fuel_liters_per_hour" validate:"omitempty,gte=0"`
	FuelConsumptionKmPerL *float64 `json:"fuel_consumption_km_per_l" validate:"omitempty,gte=0"`
	FuelPricePerLiter     float64  `json:"fuel_price_per_liter" validate:"gte=0"`
	ECVariableUSD         float64  `json:"ec_variable_usd" validate:"gte=0"`
	RUPerLeg              float64  `json:"ru_per_leg" validate:"gte=0"`
	CCRPerLeg             float64  `json:"ccr_per_leg" validate:"gte=0"`
}

type RouteRequest struct {
	AircraftID   *string  `json:"aircraft_id"`
	Origin       string   `json:"origin" validate:"required,max=64"`
	Destination  string   `json:"destination" validate:"required,max=64"`
	DECEAPerHour *float64 `json:"decea_per_hour" validate:"required,gte=0"`
}

type FxRateRequest struct {
	USDToBRL      float64       `json:"usd_to_brl" validate:"required,gt=0"`
	EffectiveDate *FlexibleDate `json:"effective_date"`
}

type FlightRequest struct {
	AircraftID    string        `json:"aircraft_id" validate:"required"`
	RouteID       *string       `json:"route_id"`
	FlightType    string        `json:"flight_type" validate:"omitempty,oneof=planned completed"`
	ScheduledDate *FlexibleDate `json:"scheduled_date" validate:"required"`
	LegTime       *float64      `json:"leg_time" validate:"omitempty,gte=0"`
	ActualLegTime *float64      `json:"actual_leg_time" validate:"omitempty,gt=0"`
	Notes         string        `json:"notes" validate:"max=2000"`
}

type CompleteFlightRequest struct {
	ActualLegTime *float64 `json:"actual_leg_time" validate:"omitempty,gt=0"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=120"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=120"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin user"`
	IsActive *bool   `json:"is_active"`
}
