package service

import (
	"context"
	"testing"

	"renvask/internal/events"
	"renvask/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService_SubmitReview(t *testing.T) {
	f := newFlowFixture(t)
	logger := zerolog.Nop()
	svc := NewReviewService(f.db, f.bus, &logger)
	ctx := context.Background()

	fired := false
	f.bus.Subscribe(events.EventReviewReceived, func(e *events.Event) error {
		fired = true
		return nil
	})

	require.NoError(t, svc.SubmitReview(ctx, &models.Review{CustomerName: "Anders", ServiceID: "standard", Rating: 5, Comment: "Flot arbejde"}))
	assert.True(t, fired)

	reviews, err := svc.ListReviews(ctx, 0)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	t.Run("RatingOutOfRange", func(t *testing.T) {
		assert.ErrorIs(t, svc.SubmitReview(ctx, &models.Review{CustomerName: "Anders", Rating: 0}), ErrInvalidRating)
		assert.ErrorIs(t, svc.SubmitReview(ctx, &models.Review{CustomerName: "Anders", Rating: 6}), ErrInvalidRating)
	})

	t.Run("NameRequired", func(t *testing.T) {
		err := svc.SubmitReview(ctx, &models.Review{Rating: 4})
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestReviewService_SubmitMessage(t *testing.T) {
	f := newFlowFixture(t)
	logger := zerolog.Nop()
	svc := NewReviewService(f.db, f.bus, &logger)
	ctx := context.Background()

	require.NoError(t, svc.SubmitMessage(ctx, &models.Message{
		Name:  "Anders",
		Email: "anders@example.dk",
		Body:  "Kan I komme tidligere?",
	}))

	messages, err := svc.ListMessages(ctx, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	t.Run("InvalidEmail", func(t *testing.T) {
		err := svc.SubmitMessage(ctx, &models.Message{Name: "Anders", Email: "nope", Body: "hej"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "email")
	})
}

func TestCustomerService_CRUD(t *testing.T) {
	f := newFlowFixture(t)
	logger := zerolog.Nop()
	svc := NewCustomerService(f.db, &logger)
	ctx := context.Background()

	c := &models.Customer{Name: "Mette Jensen", Email: "mette@example.dk"}
	require.NoError(t, svc.CreateCustomer(ctx, c))

	got, err := svc.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mette Jensen", got.Name)

	got.Phone = "+45 11 22 33 44"
	require.NoError(t, svc.UpdateCustomer(ctx, got))

	list, err := svc.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "+45 11 22 33 44", list[0].Phone)

	require.NoError(t, svc.DeleteCustomer(ctx, c.ID))
}
