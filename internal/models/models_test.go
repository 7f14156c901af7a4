package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingOverlaps(t *testing.T) {
	b := &Booking{
		ScheduledAt:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 180,
	}

	assert.Equal(t, time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC), b.EndsAt())

	t.Run("InsideInterval", func(t *testing.T) {
		assert.True(t, b.Overlaps(
			time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		))
	})

	t.Run("TouchingEndIsNotOverlap", func(t *testing.T) {
		assert.False(t, b.Overlaps(
			time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC),
		))
	})

	t.Run("BeforeStart", func(t *testing.T) {
		assert.False(t, b.Overlaps(
			time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		))
	})
}

func TestConsumesCapacity(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).ConsumesCapacity())
	assert.True(t, (&Booking{Status: StatusConfirmed}).ConsumesCapacity())
	assert.False(t, (&Booking{Status: StatusCanceled}).ConsumesCapacity())
	assert.False(t, (&Booking{Status: StatusCompleted}).ConsumesCapacity())
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{PaymentCard, PaymentInvoice, PaymentMobilePay} {
		assert.True(t, ValidPaymentMethod(m), m)
	}
	assert.False(t, ValidPaymentMethod("cash"))
	assert.False(t, ValidPaymentMethod(""))
}

func TestSessionCompletionChecks(t *testing.T) {
	s := &BookingSession{}
	assert.False(t, s.HasService())
	assert.False(t, s.HasDateTime())

	s.ServiceID = "standard"
	assert.True(t, s.HasService())

	s.Date = "2026-03-02"
	assert.False(t, s.HasDateTime(), "date without a slot is not enough")

	s.StartTime = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	assert.True(t, s.HasDateTime())
}
