package repository

import (
	"context"
	"sync"
	"time"

	"renvask/internal/models"
)

// MemorySessionRepository keeps sessions in process memory. It backs the
// Redis repository during outages and the tests.
type MemorySessionRepository struct {
	sessions   sync.Map
	rateLimits sync.Map
	ttl        time.Duration
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		ttl: ttl,
	}
}

type sessionEntry struct {
	session   *models.BookingSession
	expiresAt time.Time
}

func (r *MemorySessionRepository) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	val, ok := r.sessions.Load(sessionID)
	if !ok {
		return nil, nil
	}
	entry := val.(*sessionEntry)
	if time.Now().After(entry.expiresAt) {
		r.sessions.Delete(sessionID)
		return nil, nil
	}
	return entry.session, nil
}

func (r *MemorySessionRepository) SetSession(ctx context.Context, session *models.BookingSession) error {
	r.sessions.Store(session.SessionID, &sessionEntry{
		session:   session,
		expiresAt: time.Now().Add(r.ttl),
	})
	return nil
}

func (r *MemorySessionRepository) ClearSession(ctx context.Context, sessionID string) error {
	r.sessions.Delete(sessionID)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemorySessionRepository) CheckRateLimit(ctx context.Context, sessionID string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := r.rateLimits.Load(sessionID)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(sessionID, entry)
	return entry.count <= limit, nil
}
