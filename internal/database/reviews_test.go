package database

import (
	"context"
	"testing"

	"renvask/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviews(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateReview(ctx, &models.Review{CustomerName: "Anders", ServiceID: "standard", Rating: 5, Comment: "Flot arbejde"}))
	require.NoError(t, db.CreateReview(ctx, &models.Review{CustomerName: "Mette", Rating: 4}))

	reviews, err := db.ListReviews(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	limited, err := db.ListReviews(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestReviews_AverageRating(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateReview(ctx, &models.Review{CustomerName: "Anders", ServiceID: "standard", Rating: 5}))
	require.NoError(t, db.CreateReview(ctx, &models.Review{CustomerName: "Mette", ServiceID: "standard", Rating: 4}))
	require.NoError(t, db.CreateReview(ctx, &models.Review{CustomerName: "Lars", ServiceID: "deep", Rating: 1}))

	avg, count, err := db.AverageRating(ctx, "standard")
	require.NoError(t, err)
	assert.InDelta(t, 4.5, avg, 0.0001)
	assert.Equal(t, 2, count)

	avg, count, err = db.AverageRating(ctx, "office")
	require.NoError(t, err)
	assert.Zero(t, avg)
	assert.Zero(t, count)
}

func TestReviews_RatingConstraint(t *testing.T) {
	db := newTestDB(t)

	err := db.CreateReview(context.Background(), &models.Review{CustomerName: "Anders", Rating: 6})
	assert.Error(t, err)
}

func TestMessages(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	m := &models.Message{Reference: "RV-1001", Name: "Anders", Email: "anders@example.dk", Body: "Kan I komme tidligere?"}
	require.NoError(t, db.CreateMessage(ctx, m))
	require.NotZero(t, m.ID)

	messages, err := db.ListMessages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "RV-1001", messages[0].Reference)
}
