package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_KeysByAircraft(t *testing.T) {
	writer := &recordingWriter{}
	pub := NewKafkaPublisherWithWriter(writer)

	prev := 100.0
	event := FlightCostChanged{
		FlightID:     "flight-1",
		AircraftID:   "aircraft-1",
		PreviousCost: &prev,
		NewCost:      120.5,
		Reason:       "reconcile",
		OccurredAt:   time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, pub.PublishFlightCostChanged(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "aircraft-1", string(msg.Key))

	var decoded FlightCostChanged
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.FlightID, decoded.FlightID)
	assert.Equal(t, 120.5, decoded.NewCost)
	require.NotNil(t, decoded.PreviousCost)
	assert.Equal(t, 100.0, *decoded.PreviousCost)

	require.NoError(t, pub.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_WrapsWriteError(t *testing.T) {
	pub := NewKafkaPublisherWithWriter(&recordingWriter{err: errors.New("broker down")})

	err := pub.PublishFlightCostChanged(context.Background(), FlightCostChanged{AircraftID: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}
