package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"renvask/internal/database"
	"renvask/internal/events"
	"renvask/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *flowFixture) newBooking(reference string, start time.Time) *models.Booking {
	return &models.Booking{
		Reference:       reference,
		ServiceID:       "standard",
		ServiceName:     "Standard rengøring",
		Frequency:       "one_time",
		TotalPrice:      800,
		DurationMinutes: 180,
		ScheduledAt:     start,
		CustomerName:    "Mette Jensen",
		Email:           "mette@example.dk",
		Phone:           "+45 12 34 56 78",
		Street:          "Nørrebrogade 12",
		City:            "København",
		PostalCode:      "2200",
		PaymentMethod:   models.PaymentCard,
		Status:          models.StatusPending,
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	var published []string
	for _, event := range []string{events.EventBookingCreated, events.EventBookingConfirmed, events.EventBookingCanceled} {
		event := event
		f.bus.Subscribe(event, func(e *events.Event) error {
			published = append(published, event)
			return nil
		})
	}

	b := f.newBooking("RV-100", f.nextWorkday(10))
	require.NoError(t, f.bookings.CreateBooking(ctx, b))
	require.NotZero(t, b.ID)

	assert.Equal(t, []string{events.EventBookingCreated}, published)
	assert.Equal(t, []string{"upsert"}, f.sync.tasks)

	t.Run("PastDateRejected", func(t *testing.T) {
		past := f.newBooking("RV-101", time.Now().Add(-time.Hour))
		err := f.bookings.CreateBooking(ctx, past)
		assert.ErrorIs(t, err, database.ErrPastDate)
	})

	t.Run("TooFarRejected", func(t *testing.T) {
		far := f.newBooking("RV-102", time.Now().AddDate(0, 0, 120))
		err := f.bookings.CreateBooking(ctx, far)
		assert.ErrorIs(t, err, database.ErrDateTooFar)
	})
}

func TestBookingService_CapacityExhausted(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()
	start := f.nextWorkday(10)

	// Fixture has two teams.
	require.NoError(t, f.bookings.CreateBooking(ctx, f.newBooking("RV-1", start)))
	require.NoError(t, f.bookings.CreateBooking(ctx, f.newBooking("RV-2", start)))

	err := f.bookings.CreateBooking(ctx, f.newBooking("RV-3", start))
	assert.ErrorIs(t, err, database.ErrNotAvailable)
}

func TestBookingService_StatusLifecycle(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	var statuses []string
	handler := func(e *events.Event) error {
		var p events.BookingEventPayload
		require.NoError(t, json.Unmarshal(e.Payload, &p))
		statuses = append(statuses, p.Status)
		return nil
	}
	f.bus.Subscribe(events.EventBookingConfirmed, handler)
	f.bus.Subscribe(events.EventBookingCompleted, handler)

	b := f.newBooking("RV-10", f.nextWorkday(9))
	require.NoError(t, f.bookings.CreateBooking(ctx, b))

	require.NoError(t, f.bookings.ConfirmBooking(ctx, b.ID, 1))
	require.NoError(t, f.bookings.CompleteBooking(ctx, b.ID, 2))

	got, err := f.bookings.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, []string{models.StatusConfirmed, models.StatusCompleted}, statuses)

	// Status changes enqueue sheet updates after the initial upsert.
	assert.Equal(t, []string{"upsert", "update_status", "update_status"}, f.sync.tasks)

	t.Run("StaleVersion", func(t *testing.T) {
		err := f.bookings.CancelBooking(ctx, b.ID, 1)
		assert.ErrorIs(t, err, database.ErrVersionConflict)
	})
}

func TestBookingService_Quote(t *testing.T) {
	f := newFlowFixture(t)

	q, err := f.bookings.Quote("standard", []string{"windows-external"}, "weekly")
	require.NoError(t, err)
	assert.Equal(t, int64(850), q.TotalPrice)
	assert.Equal(t, 240, q.DurationMinutes)

	_, err = f.bookings.Quote("standard", []string{"sauna"}, "weekly")
	assert.Error(t, err)

	_, err = f.bookings.Quote("missing", nil, "weekly")
	assert.Error(t, err)
}

func TestBookingService_CustomerBookings(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	require.NoError(t, f.bookings.CreateBooking(ctx, f.newBooking("RV-20", f.nextWorkday(8))))

	other := f.newBooking("RV-21", f.nextWorkday(14))
	other.Email = "anders@example.dk"
	require.NoError(t, f.bookings.CreateBooking(ctx, other))

	mine, err := f.bookings.CustomerBookings(ctx, "mette@example.dk")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "RV-20", mine[0].Reference)
}
