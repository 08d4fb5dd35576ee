package constants

type (
	APIStatus       string
	CachePrefix     string
	FlightType      string
	CalculationKind string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixRevokedToken CachePrefix = "REVOKED_JTI_"
)

const (
	FlightTypePlanned   FlightType = "planned"
	FlightTypeCompleted FlightType = "completed"
)

func (t FlightType) IsValid() bool {
	return t == FlightTypePlanned || t == FlightTypeCompleted
}

const (
	CalculationBaseCost          CalculationKind = "base_cost"
	CalculationRouteCost         CalculationKind = "route_cost"
	CalculationLegCost           CalculationKind = "leg_cost"
	CalculationMonthlyProjection CalculationKind = "monthly_projection"
	CalculationComplete          CalculationKind = "complete"
)

// AssumedCruiseSpeedKmh converts fuel efficiency (km/l) into hourly burn.
// It is a fixed approximation and not configurable per aircraft.
const AssumedCruiseSpeedKmh = 450

// HealingThreshold is the minimum drift between a stored and a freshly
// computed flight cost that triggers a write.
const HealingThreshold = "0.01"

const (
	DefaultFlightListLimit  = 100
	MaxFlightListLimit      = 500
	DashboardFlightLimit    = 100
	RecentCalculationsLimit = 10
	DefaultFxRateListLimit  = 50
)

// Reasons attached to flight cost change events.
const (
	CostChangeReconcile   = "reconcile"
	CostChangeRecalculate = "recalculate"
	CostChangeComplete    = "complete"
	CostChangeUpdate      = "update"
	CostChangeCreate      = "create"
)
