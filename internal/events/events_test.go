package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishJSON(t *testing.T) {
	bus := NewEventBus()

	var received []BookingEventPayload
	bus.Subscribe(EventBookingCreated, func(event *Event) error {
		var p BookingEventPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return err
		}
		received = append(received, p)
		return nil
	})

	err := bus.PublishJSON(EventBookingCreated, BookingEventPayload{
		Reference: "RV-1001",
		Status:    "pending",
	})
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, "RV-1001", received[0].Reference)
}

func TestEventBus_OnlyMatchingTypeFires(t *testing.T) {
	bus := NewEventBus()

	fired := 0
	bus.Subscribe(EventBookingCanceled, func(event *Event) error {
		fired++
		return nil
	})

	require.NoError(t, bus.PublishJSON(EventBookingConfirmed, struct{}{}))
	assert.Zero(t, fired)

	require.NoError(t, bus.PublishJSON(EventBookingCanceled, struct{}{}))
	assert.Equal(t, 1, fired)
}

func TestEventBus_NilBusIsSafe(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventBookingCreated, struct{}{}))
}

func TestEventBus_MultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	first, second := false, false
	bus.Subscribe(EventReviewReceived, func(event *Event) error { first = true; return nil })
	bus.Subscribe(EventReviewReceived, func(event *Event) error { second = true; return nil })

	require.NoError(t, bus.PublishJSON(EventReviewReceived, struct{}{}))
	assert.True(t, first)
	assert.True(t, second)
}
