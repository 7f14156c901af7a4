package repository

import (
	"context"
	"testing"
	"time"

	"renvask/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRepo(t *testing.T) (*RedisSessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSessionRepository(client, time.Hour), mr
}

func TestRedisSessionRepository_RoundTrip(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	session := &models.BookingSession{
		SessionID:   "abc-123",
		CurrentStep: models.StepDateTime,
		ServiceID:   "standard",
		AddOnIDs:    []string{"oven"},
		Frequency:   "weekly",
	}
	require.NoError(t, repo.SetSession(ctx, session))

	got, err := repo.GetSession(ctx, "abc-123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StepDateTime, got.CurrentStep)
	assert.Equal(t, []string{"oven"}, got.AddOnIDs)
}

func TestRedisSessionRepository_MissingIsNil(t *testing.T) {
	repo, _ := newRedisRepo(t)

	got, err := repo.GetSession(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSessionRepository_Clear(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSession(ctx, &models.BookingSession{SessionID: "gone"}))
	require.NoError(t, repo.ClearSession(ctx, "gone"))

	got, err := repo.GetSession(ctx, "gone")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSessionRepository_TTL(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSession(ctx, &models.BookingSession{SessionID: "exp"}))
	mr.FastForward(2 * time.Hour)

	got, err := repo.GetSession(ctx, "exp")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSessionRepository_RateLimit(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := repo.CheckRateLimit(ctx, "sess", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := repo.CheckRateLimit(ctx, "sess", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Window expiry resets the counter.
	mr.FastForward(2 * time.Minute)
	allowed, err = repo.CheckRateLimit(ctx, "sess", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}
