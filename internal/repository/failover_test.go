package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"renvask/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct{}

var errDown = errors.New("connection refused")

func (f *failingRepo) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return nil, errDown
}

func (f *failingRepo) SetSession(ctx context.Context, session *models.BookingSession) error {
	return errDown
}

func (f *failingRepo) ClearSession(ctx context.Context, sessionID string) error {
	return errDown
}

func (f *failingRepo) CheckRateLimit(ctx context.Context, sessionID string, limit int, window time.Duration) (bool, error) {
	return false, errDown
}

func TestFailover_FallsBackOnError(t *testing.T) {
	logger := zerolog.Nop()
	fallback := NewMemorySessionRepository(time.Hour)
	repo := NewFailoverSessionRepository(&failingRepo{}, fallback, &logger)
	ctx := context.Background()

	session := &models.BookingSession{SessionID: "f1", CurrentStep: models.StepService}
	require.NoError(t, repo.SetSession(ctx, session))

	got, err := repo.GetSession(ctx, "f1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StepService, got.CurrentStep)
}

func TestFailover_PrefersPrimary(t *testing.T) {
	logger := zerolog.Nop()
	primary := NewMemorySessionRepository(time.Hour)
	fallback := NewMemorySessionRepository(time.Hour)
	repo := NewFailoverSessionRepository(primary, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, repo.SetSession(ctx, &models.BookingSession{SessionID: "p1"}))

	got, err := primary.GetSession(ctx, "p1")
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = fallback.GetSession(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFailover_RateLimitFallsBack(t *testing.T) {
	logger := zerolog.Nop()
	repo := NewFailoverSessionRepository(&failingRepo{}, NewMemorySessionRepository(time.Hour), &logger)

	allowed, err := repo.CheckRateLimit(context.Background(), "s", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}
