package repository

import (
	"context"
	"sync/atomic"
	"time"

	"renvask/internal/domain"
	"renvask/internal/models"

	"github.com/rs/zerolog"
)

// FailoverSessionRepository serves from the primary until it errors, then
// switches to the fallback and probes the primary again after a minute.
type FailoverSessionRepository struct {
	primary   domain.SessionRepository
	fallback  domain.SessionRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverSessionRepository(primary, fallback domain.SessionRepository, logger *zerolog.Logger) *FailoverSessionRepository {
	return &FailoverSessionRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverSessionRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary session repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck = time.Now()
}

func (r *FailoverSessionRepository) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	if !r.isDown.Load() {
		session, err := r.primary.GetSession(ctx, sessionID)
		if err == nil {
			return session, nil
		}
		r.markDown(err)
	}

	// Try to recover after 1 minute
	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		session, err := r.primary.GetSession(ctx, sessionID)
		if err == nil {
			r.isDown.Store(false)
			return session, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.GetSession(ctx, sessionID)
}

func (r *FailoverSessionRepository) SetSession(ctx context.Context, session *models.BookingSession) error {
	if !r.isDown.Load() {
		err := r.primary.SetSession(ctx, session)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.SetSession(ctx, session)
}

func (r *FailoverSessionRepository) ClearSession(ctx context.Context, sessionID string) error {
	if !r.isDown.Load() {
		err := r.primary.ClearSession(ctx, sessionID)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.ClearSession(ctx, sessionID)
}

func (r *FailoverSessionRepository) CheckRateLimit(ctx context.Context, sessionID string, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, sessionID, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.markDown(err)
	}

	return r.fallback.CheckRateLimit(ctx, sessionID, limit, window)
}
