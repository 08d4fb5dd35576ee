package events

import (
	"context"
	"time"
)

// FlightCostChanged is emitted whenever a flight's cached cost is written
// with a new value.
type FlightCostChanged struct {
	FlightID     string    `json:"flight_id"`
	AircraftID   string    `json:"aircraft_id"`
	PreviousCost *float64  `json:"previous_cost"`
	NewCost      float64   `json:"new_cost"`
	Reason       string    `json:"reason"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishFlightCostChanged(ctx context.Context, event FlightCostChanged) error
	Close() error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) PublishFlightCostChanged(context.Context, FlightCostChanged) error { return nil }

func (NoopPublisher) Close() error { return nil }
