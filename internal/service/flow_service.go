package service

import (
	"context"
	"strings"
	"time"

	"renvask/internal/catalog"
	"renvask/internal/config"
	"renvask/internal/database"
	"renvask/internal/domain"
	"renvask/internal/metrics"
	"renvask/internal/models"
	"renvask/internal/schedule"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FlowService drives the booking wizard: service, datetime, confirmation,
// success. Steps reject out-of-order requests instead of silently skipping.
type FlowService struct {
	sessions       domain.SessionRepository
	bookings       domain.BookingService
	catalog        *catalog.Catalog
	availability   schedule.AvailabilityProvider
	gen            *schedule.Generator
	maxBookingDays int
	rateLimit      int
	rateWindow     time.Duration
	logger         *zerolog.Logger
}

func NewFlowService(sessions domain.SessionRepository, bookings domain.BookingService, cat *catalog.Catalog, availability schedule.AvailabilityProvider, gen *schedule.Generator, cfg config.BookingConfig, logger *zerolog.Logger) *FlowService {
	maxBookingDays := cfg.MaxBookingDays
	if maxBookingDays <= 0 {
		maxBookingDays = models.DefaultMaxBookingDays
	}
	return &FlowService{
		sessions:       sessions,
		bookings:       bookings,
		catalog:        cat,
		availability:   availability,
		gen:            gen,
		maxBookingDays: maxBookingDays,
		rateLimit:      cfg.RateLimitRequests,
		rateWindow:     time.Duration(cfg.RateLimitWindow) * time.Second,
		logger:         logger,
	}
}

// checkRate guards the mutating steps against a runaway client hammering
// one session. Errors from the limiter itself fail open.
func (s *FlowService) checkRate(ctx context.Context, sessionID string) error {
	if s.rateLimit <= 0 {
		return nil
	}
	ok, err := s.sessions.CheckRateLimit(ctx, sessionID, s.rateLimit, s.rateWindow)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("rate limit check error")
		return nil
	}
	if !ok {
		return ErrRateLimited
	}
	return nil
}

func (s *FlowService) StartSession(ctx context.Context) (*models.BookingSession, error) {
	session := &models.BookingSession{
		SessionID:   uuid.NewString(),
		CurrentStep: models.StepService,
		UpdatedAt:   time.Now(),
	}
	if err := s.sessions.SetSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *FlowService) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SelectService records the service selection. Changing the service later
// keeps the wizard on whatever step it reached; the quote simply updates.
func (s *FlowService) SelectService(ctx context.Context, sessionID, serviceID string, addOnIDs []string, frequency, specialRequest string) (*models.BookingSession, error) {
	if err := s.checkRate(ctx, sessionID); err != nil {
		return nil, err
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Resolving the quote validates service, add-ons and frequency in one go.
	if _, err := s.bookings.Quote(serviceID, addOnIDs, frequency); err != nil {
		return nil, err
	}

	session.ServiceID = serviceID
	session.AddOnIDs = addOnIDs
	session.Frequency = frequency
	session.SpecialRequest = specialRequest
	s.advance(session, models.StepDateTime)

	if err := s.sessions.SetSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectDateTime records the appointment. The whole quoted duration must
// fit in available slots, not just the starting hour.
func (s *FlowService) SelectDateTime(ctx context.Context, sessionID, date string, startTime time.Time) (*models.BookingSession, error) {
	if err := s.checkRate(ctx, sessionID); err != nil {
		return nil, err
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasService() {
		return nil, ErrStepNotReady
	}

	loc := s.gen.Location()
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, err
	}

	startTime = startTime.In(loc)
	now := s.gen.Now()
	if startTime.Before(now) {
		return nil, database.ErrPastDate
	}
	if startTime.After(now.AddDate(0, 0, s.maxBookingDays)) {
		return nil, database.ErrDateTooFar
	}

	quote, err := s.bookings.Quote(session.ServiceID, session.AddOnIDs, session.Frequency)
	if err != nil {
		return nil, err
	}

	slots, err := s.availability.Slots(ctx, day)
	if err != nil {
		return nil, err
	}

	endTime := startTime.Add(time.Duration(quote.DurationMinutes) * time.Minute)
	for t := startTime; t.Before(endTime); t = t.Add(models.SlotMinutes * time.Minute) {
		slot, ok := schedule.SlotAt(slots, t)
		if !ok || !slot.Available {
			return nil, database.ErrNotAvailable
		}
	}

	session.Date = date
	session.StartTime = startTime
	session.EndTime = endTime
	s.advance(session, models.StepConfirmation)

	if err := s.sessions.SetSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit turns the draft into a booking. Re-submitting a completed session
// returns the already created booking instead of a duplicate.
func (s *FlowService) Submit(ctx context.Context, sessionID string, data models.BookingData) (*models.Booking, error) {
	if err := s.checkRate(ctx, sessionID); err != nil {
		return nil, err
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.BookingRef != "" {
		return s.bookings.GetBookingByReference(ctx, session.BookingRef)
	}

	if !session.HasService() || !session.HasDateTime() {
		return nil, ErrStepNotReady
	}

	if data.PaymentMethod == "" {
		data.PaymentMethod = models.PaymentCard
	}

	if err := ValidateBookingData(data); err != nil {
		return nil, err
	}

	quote, err := s.bookings.Quote(session.ServiceID, session.AddOnIDs, session.Frequency)
	if err != nil {
		return nil, err
	}

	svc, err := s.catalog.ServiceByID(session.ServiceID)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Reference:           newReference(),
		ServiceID:           session.ServiceID,
		ServiceName:         svc.Name,
		AddOnIDs:            session.AddOnIDs,
		Frequency:           session.Frequency,
		TotalPrice:          quote.TotalPrice,
		DurationMinutes:     quote.DurationMinutes,
		ScheduledAt:         session.StartTime,
		CustomerName:        data.CustomerInfo.Name,
		Email:               data.CustomerInfo.Email,
		Phone:               data.CustomerInfo.Phone,
		Street:              data.Address.Street,
		City:                data.Address.City,
		PostalCode:          data.Address.PostalCode,
		Floor:               data.Address.Floor,
		Door:                data.Address.Door,
		AccessInstructions:  data.Address.AccessInstructions,
		PaymentMethod:       data.PaymentMethod,
		SpecialInstructions: data.SpecialInstructions,
		MarketingConsent:    data.MarketingConsent,
		Status:              models.StatusPending,
	}

	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	session.Customer = &data.CustomerInfo
	session.Address = &data.Address
	session.PaymentMethod = data.PaymentMethod
	session.SpecialInstructions = data.SpecialInstructions
	session.MarketingConsent = data.MarketingConsent
	session.BookingRef = booking.Reference
	s.advance(session, models.StepSuccess)

	if err := s.sessions.SetSession(ctx, session); err != nil {
		// The booking exists; losing the session only costs idempotency.
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to persist session after submit")
	}

	return booking, nil
}

// Back steps one screen up. Collected fields stay so the step can be
// re-entered with the previous values prefilled.
func (s *FlowService) Back(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.CurrentStep {
	case models.StepDateTime:
		s.advance(session, models.StepService)
	case models.StepConfirmation:
		s.advance(session, models.StepDateTime)
	default:
		return session, nil
	}

	if err := s.sessions.SetSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Reset discards the draft and starts over under the same session ID.
func (s *FlowService) Reset(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session := &models.BookingSession{
		SessionID:   sessionID,
		CurrentStep: models.StepService,
		UpdatedAt:   time.Now(),
	}
	if err := s.sessions.SetSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *FlowService) advance(session *models.BookingSession, to string) {
	if session.CurrentStep != to {
		metrics.IncFlowTransition(session.CurrentStep, to)
	}
	session.CurrentStep = to
	session.UpdatedAt = time.Now()
}

func newReference() string {
	return "RV-" + strings.ToUpper(uuid.NewString()[:8])
}
