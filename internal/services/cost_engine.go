package services

import (
	"math"
	"time"

	"aerocost/api/internal/constants"
	gormModels "aerocost/api/internal/models/gorm"

	"github.com/shopspring/decimal"
)

const (
	LegTimeSourceExplicit = "explicit"
	LegTimeSourceAverage  = "aircraft_average"
)

var cruiseSpeedKmh = decimal.NewFromInt(constants.AssumedCruiseSpeedKmh)

type FixedCostBreakdown struct {
	Configured      bool     `json:"configured"`
	CrewMonthly     float64  `json:"crew_monthly"`
	HangarMonthly   float64  `json:"hangar_monthly"`
	ECFixedUSD      float64  `json:"ec_fixed_usd"`
	ECFixedBRL      float64  `json:"ec_fixed_brl"`
	Insurance       float64  `json:"insurance"`
	Administration  float64  `json:"administration"`
	TotalMonthly    float64  `json:"total_fixed_monthly"`
	PerHour         float64  `json:"fixed_cost_per_hour"`
	PilotHourlyRate *float64 `json:"pilot_hourly_rate"`
}

type VariableCostBreakdown struct {
	Configured            bool     `json:"configured"`
	FuelLitersPerHour     float64  `json:"fuel_liters_per_hour"`
	FuelLitersEstimated   bool     `json:"fuel_liters_estimated"`
	FuelConsumptionKmPerL *float64 `json:"fuel_consumption_km_per_l"`
	FuelPricePerLiter     float64  `json:"fuel_price_per_liter"`
	FuelCostPerHour       float64  `json:"fuel_cost_per_hour"`
	ECVariableUSD         float64  `json:"ec_variable_usd"`
	ECVariableBRL         float64  `json:"ec_variable_brl"`
	RUPerLeg              float64  `json:"ru_per_leg"`
	RUPerHour             float64  `json:"ru_per_hour"`
	CCRPerLeg             float64  `json:"ccr_per_leg"`
	CCRPerHour            float64  `json:"ccr_per_hour"`
	PerHour               float64  `json:"variable_cost_per_hour"`
}

// BaseCostBreakdown is the blended hourly cost of an aircraft with every
// line item that produced it.
type BaseCostBreakdown struct {
	AircraftID           string                `json:"aircraft_id"`
	AircraftName         string                `json:"aircraft_name"`
	Registration         string                `json:"registration"`
	FxRate               float64               `json:"fx_rate"`
	FxEffectiveDate      time.Time             `json:"fx_effective_date"`
	MonthlyHours         float64               `json:"monthly_hours"`
	AvgLegTime           float64               `json:"avg_leg_time"`
	Fixed                FixedCostBreakdown    `json:"fixed"`
	Variable             VariableCostBreakdown `json:"variable"`
	FixedCostPerHour     float64               `json:"fixed_cost_per_hour"`
	VariableCostPerHour  float64               `json:"variable_cost_per_hour"`
	TotalBaseCostPerHour float64               `json:"total_base_cost_per_hour"`
}

type LegCostBreakdown struct {
	AircraftID          string  `json:"aircraft_id"`
	LegTime             float64 `json:"leg_time"`
	LegTimeSource       string  `json:"leg_time_source"`
	RouteID             *string `json:"route_id"`
	RouteFound          bool    `json:"route_found"`
	Origin              string  `json:"origin,omitempty"`
	Destination         string  `json:"destination,omitempty"`
	FixedCostPerHour    float64 `json:"fixed_cost_per_hour"`
	VariableCostPerHour float64 `json:"variable_cost_per_hour"`
	BaseCostPerHour     float64 `json:"base_cost_per_hour"`
	DECEAPerHour        float64 `json:"decea_per_hour"`
	TotalCostPerHour    float64 `json:"total_cost_per_hour"`
	FixedLegCost        float64 `json:"fixed_leg_cost"`
	VariableLegCost     float64 `json:"variable_leg_cost"`
	DECEALegCost        float64 `json:"decea_leg_cost"`
	TotalLegCost        float64 `json:"total_leg_cost"`
}

type MonthlyProjection struct {
	AircraftID         string  `json:"aircraft_id"`
	MonthlyHours       float64 `json:"monthly_hours"`
	AvgLegTime         float64 `json:"avg_leg_time"`
	RouteCount         int     `json:"route_count"`
	AvgDECEAPerHour    float64 `json:"avg_decea_per_hour"`
	BaseCostPerHour    float64 `json:"base_cost_per_hour"`
	AvgCostPerHour     float64 `json:"avg_cost_per_hour"`
	FixedMonthly       float64 `json:"fixed_monthly"`
	VariableMonthly    float64 `json:"variable_monthly"`
	DECEAMonthly       float64 `json:"decea_monthly"`
	MonthlyProjection  float64 `json:"monthly_projection"`
	FixedPercentage    float64 `json:"fixed_percentage"`
	VariablePercentage float64 `json:"variable_percentage"`
	DECEAPercentage    float64 `json:"decea_percentage"`
	EstimatedLegs      int64   `json:"estimated_legs"`
}

// RouteCostEntry is the per-route line of the complete calculation and the
// dashboard. Leg amounts are absent when the aircraft has no average leg time.
type RouteCostEntry struct {
	RouteID          string   `json:"route_id"`
	Origin           string   `json:"origin"`
	Destination      string   `json:"destination"`
	DECEAPerHour     float64  `json:"decea_per_hour"`
	TotalCostPerHour float64  `json:"total_cost_per_hour"`
	LegTime          float64  `json:"leg_time"`
	TotalLegCost     *float64 `json:"total_leg_cost"`
	Error            string   `json:"error,omitempty"`
}

// ComputeBaseCost derives the blended hourly cost from an aircraft, its
// optional cost records and the exchange rate. Missing cost records
// contribute zero.
func ComputeBaseCost(
	aircraft *gormModels.Aircraft,
	fixed *gormModels.FixedCost,
	variable *gormModels.VariableCost,
	fx *gormModels.FxRate,
) (*BaseCostBreakdown, error) {
	if aircraft.MonthlyHours <= 0 {
		return nil, NewPreconditionError(constants.MsgMonthlyHoursZero)
	}

	rate := dec(fx.USDToBRL)
	monthlyHours := dec(aircraft.MonthlyHours)
	avgLegTime := dec(aircraft.AvgLegTime)

	fixedBreakdown := FixedCostBreakdown{}
	fixedPerHour := decimal.Zero
	if fixed != nil {
		ecFixedBRL := dec(fixed.ECFixedUSD).Mul(rate)
		totalMonthly := dec(fixed.CrewMonthly).
			Add(dec(fixed.HangarMonthly)).
			Add(ecFixedBRL).
			Add(dec(fixed.Insurance)).
			Add(dec(fixed.Administration))
		fixedPerHour = totalMonthly.Div(monthlyHours)

		fixedBreakdown = FixedCostBreakdown{
			Configured:      true,
			CrewMonthly:     round2(dec(fixed.CrewMonthly)),
			HangarMonthly:   round2(dec(fixed.HangarMonthly)),
			ECFixedUSD:      round2(dec(fixed.ECFixedUSD)),
			ECFixedBRL:      round2(ecFixedBRL),
			Insurance:       round2(dec(fixed.Insurance)),
			Administration:  round2(dec(fixed.Administration)),
			TotalMonthly:    round2(totalMonthly),
			PerHour:         round2(fixedPerHour),
			PilotHourlyRate: fixed.PilotHourlyRate,
		}
	}

	variableBreakdown := VariableCostBreakdown{}
	variablePerHour := decimal.Zero
	if variable != nil {
		litersPerHour, estimated := fuelLitersPerHour(variable)
		fuelCost := litersPerHour.Mul(dec(variable.FuelPricePerLiter))
		ecVariableBRL := dec(variable.ECVariableUSD).Mul(rate)
		ruPerHour := perHourOfLeg(dec(variable.RUPerLeg), avgLegTime)
		ccrPerHour := perHourOfLeg(dec(variable.CCRPerLeg), avgLegTime)
		variablePerHour = fuelCost.Add(ecVariableBRL).Add(ruPerHour).Add(ccrPerHour)

		variableBreakdown = VariableCostBreakdown{
			Configured:            true,
			FuelLitersPerHour:     round2(litersPerHour),
			FuelLitersEstimated:   estimated,
			FuelConsumptionKmPerL: variable.FuelConsumptionKmPerL,
			FuelPricePerLiter:     round2(dec(variable.FuelPricePerLiter)),
			FuelCostPerHour:       round2(fuelCost),
			ECVariableUSD:         round2(dec(variable.ECVariableUSD)),
			ECVariableBRL:         round2(ecVariableBRL),
			RUPerLeg:              round2(dec(variable.RUPerLeg)),
			RUPerHour:             round2(ruPerHour),
			CCRPerLeg:             round2(dec(variable.CCRPerLeg)),
			CCRPerHour:            round2(ccrPerHour),
			PerHour:               round2(variablePerHour),
		}
	}

	// the total is the sum of the rounded parts so the breakdown always adds up
	fixedRounded := fixedPerHour.Round(2)
	variableRounded := variablePerHour.Round(2)

	return &BaseCostBreakdown{
		AircraftID:           aircraft.ID,
		AircraftName:         aircraft.Name,
		Registration:         aircraft.Registration,
		FxRate:               fx.USDToBRL,
		FxEffectiveDate:      fx.EffectiveDate,
		MonthlyHours:         aircraft.MonthlyHours,
		AvgLegTime:           aircraft.AvgLegTime,
		Fixed:                fixedBreakdown,
		Variable:             variableBreakdown,
		FixedCostPerHour:     fixedRounded.InexactFloat64(),
		VariableCostPerHour:  variableRounded.InexactFloat64(),
		TotalBaseCostPerHour: fixedRounded.Add(variableRounded).InexactFloat64(),
	}, nil
}

// ComputeLegCost prices one leg. legTime <= 0 falls back to the aircraft's
// average leg time; NaN or infinite is a validation error. A requested route that could not be resolved (route nil
// with routeID set) contributes no DECEA fee and is flagged in the result.
func ComputeLegCost(base *BaseCostBreakdown, legTime float64, routeID *string, route *gormModels.Route) (*LegCostBreakdown, error) {
	resolved, source, err := resolveLegTime(legTime, base.AvgLegTime)
	if err != nil {
		return nil, err
	}

	result := &LegCostBreakdown{
		AircraftID:          base.AircraftID,
		LegTime:             resolved.InexactFloat64(),
		LegTimeSource:       source,
		RouteID:             routeID,
		FixedCostPerHour:    base.FixedCostPerHour,
		VariableCostPerHour: base.VariableCostPerHour,
		BaseCostPerHour:     base.TotalBaseCostPerHour,
	}

	deceaPerHour := decimal.Zero
	if route != nil {
		deceaPerHour = dec(route.DECEAPerHour)
		result.RouteFound = true
		result.Origin = route.Origin
		result.Destination = route.Destination
	}

	totalPerHour := dec(base.TotalBaseCostPerHour).Add(deceaPerHour).Round(2)

	result.DECEAPerHour = round2(deceaPerHour)
	result.TotalCostPerHour = totalPerHour.InexactFloat64()
	result.FixedLegCost = round2(dec(base.FixedCostPerHour).Mul(resolved))
	result.VariableLegCost = round2(dec(base.VariableCostPerHour).Mul(resolved))
	result.DECEALegCost = round2(deceaPerHour.Mul(resolved))
	result.TotalLegCost = round2(totalPerHour.Mul(resolved))

	return result, nil
}

// ComputeMonthlyProjection projects a month of operation using the average
// DECEA fee of the aircraft's own routes.
func ComputeMonthlyProjection(base *BaseCostBreakdown, routes []gormModels.Route) *MonthlyProjection {
	monthlyHours := dec(base.MonthlyHours)

	avgDECEA := decimal.Zero
	if len(routes) > 0 {
		sum := decimal.Zero
		for _, r := range routes {
			sum = sum.Add(dec(r.DECEAPerHour))
		}
		avgDECEA = sum.Div(decimal.NewFromInt(int64(len(routes)))).Round(2)
	}

	avgCostPerHour := dec(base.TotalBaseCostPerHour).Add(avgDECEA).Round(2)
	projection := avgCostPerHour.Mul(monthlyHours).Round(2)
	fixedMonthly := dec(base.FixedCostPerHour).Mul(monthlyHours).Round(2)
	variableMonthly := dec(base.VariableCostPerHour).Mul(monthlyHours).Round(2)
	deceaMonthly := avgDECEA.Mul(monthlyHours).Round(2)

	result := &MonthlyProjection{
		AircraftID:        base.AircraftID,
		MonthlyHours:      base.MonthlyHours,
		AvgLegTime:        base.AvgLegTime,
		RouteCount:        len(routes),
		AvgDECEAPerHour:   avgDECEA.InexactFloat64(),
		BaseCostPerHour:   base.TotalBaseCostPerHour,
		AvgCostPerHour:    avgCostPerHour.InexactFloat64(),
		FixedMonthly:      fixedMonthly.InexactFloat64(),
		VariableMonthly:   variableMonthly.InexactFloat64(),
		DECEAMonthly:      deceaMonthly.InexactFloat64(),
		MonthlyProjection: projection.InexactFloat64(),
	}

	if projection.IsPositive() {
		hundred := decimal.NewFromInt(100)
		result.FixedPercentage = round2(fixedMonthly.Div(projection).Mul(hundred))
		result.VariablePercentage = round2(variableMonthly.Div(projection).Mul(hundred))
		result.DECEAPercentage = round2(deceaMonthly.Div(projection).Mul(hundred))
	}

	avgLegTime := dec(base.AvgLegTime)
	if avgLegTime.IsPositive() {
		result.EstimatedLegs = monthlyHours.Div(avgLegTime).Round(0).IntPart()
	}

	return result
}

// ComputeRouteCosts prices one average leg on each route.
func ComputeRouteCosts(base *BaseCostBreakdown, routes []gormModels.Route) []RouteCostEntry {
	entries := make([]RouteCostEntry, 0, len(routes))
	for i := range routes {
		route := routes[i]
		entry := RouteCostEntry{
			RouteID:          route.ID,
			Origin:           route.Origin,
			Destination:      route.Destination,
			DECEAPerHour:     round2(dec(route.DECEAPerHour)),
			TotalCostPerHour: round2(dec(base.TotalBaseCostPerHour).Add(dec(route.DECEAPerHour))),
		}

		leg, err := ComputeLegCost(base, 0, &route.ID, &route)
		if err != nil {
			entry.Error = ClientMessage(err)
		} else {
			total := leg.TotalLegCost
			entry.LegTime = leg.LegTime
			entry.TotalLegCost = &total
		}
		entries = append(entries, entry)
	}
	return entries
}

// CostDriftExceedsThreshold reports whether a stored flight cost should be
// replaced by fresh. A missing stored cost always drifts.
func CostDriftExceedsThreshold(stored *float64, fresh float64) bool {
	if stored == nil {
		return true
	}
	diff := dec(fresh).Sub(dec(*stored)).Abs()
	return diff.GreaterThan(healingThreshold)
}

var healingThreshold = decimal.RequireFromString(constants.HealingThreshold)

func fuelLitersPerHour(v *gormModels.VariableCost) (decimal.Decimal, bool) {
	if v.FuelLitersPerHour != nil && *v.FuelLitersPerHour > 0 {
		return dec(*v.FuelLitersPerHour), false
	}
	if v.FuelConsumptionKmPerL != nil && *v.FuelConsumptionKmPerL > 0 {
		return cruiseSpeedKmh.Div(dec(*v.FuelConsumptionKmPerL)), true
	}
	return decimal.Zero, false
}

func perHourOfLeg(perLeg, avgLegTime decimal.Decimal) decimal.Decimal {
	if !avgLegTime.IsPositive() {
		return decimal.Zero
	}
	return perLeg.Div(avgLegTime)
}

func resolveLegTime(explicit, average float64) (decimal.Decimal, string, error) {
	if math.IsNaN(explicit) || math.IsInf(explicit, 0) {
		return decimal.Zero, "", NewValidationError(constants.MsgInvalidLegTime)
	}
	if explicit > 0 {
		return dec(explicit), LegTimeSourceExplicit, nil
	}
	if average > 0 {
		return dec(average), LegTimeSourceAverage, nil
	}
	return decimal.Zero, "", NewPreconditionError(constants.MsgLegTimeMissing)
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
