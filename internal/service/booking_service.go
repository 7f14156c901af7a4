package service

import (
	"context"
	"time"

	"renvask/internal/catalog"
	"renvask/internal/database"
	"renvask/internal/domain"
	"renvask/internal/events"
	"renvask/internal/metrics"
	"renvask/internal/models"
	"renvask/internal/pricing"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo           domain.Repository
	catalog        *catalog.Catalog
	eventBus       domain.EventPublisher
	syncWorker     domain.SyncWorker
	teams          int
	maxBookingDays int
	logger         *zerolog.Logger
}

func NewBookingService(repo domain.Repository, cat *catalog.Catalog, eventBus domain.EventPublisher, syncWorker domain.SyncWorker, teams, maxBookingDays int, logger *zerolog.Logger) *BookingService {
	if teams <= 0 {
		teams = models.DefaultTeams
	}
	if maxBookingDays <= 0 {
		maxBookingDays = models.DefaultMaxBookingDays
	}
	return &BookingService{
		repo:           repo,
		catalog:        cat,
		eventBus:       eventBus,
		syncWorker:     syncWorker,
		teams:          teams,
		maxBookingDays: maxBookingDays,
		logger:         logger,
	}
}

func (s *BookingService) ValidateBookingDate(scheduledAt time.Time) error {
	if scheduledAt.Before(time.Now()) {
		return database.ErrPastDate
	}
	if scheduledAt.After(time.Now().AddDate(0, 0, s.maxBookingDays)) {
		return database.ErrDateTooFar
	}
	return nil
}

// Quote resolves the selection against the catalog and prices it.
func (s *BookingService) Quote(serviceID string, addOnIDs []string, frequency string) (pricing.Quote, error) {
	svc, err := s.catalog.ServiceByID(serviceID)
	if err != nil {
		return pricing.Quote{}, err
	}
	addOns, err := s.catalog.ResolveAddOns(addOnIDs)
	if err != nil {
		return pricing.Quote{}, err
	}
	freq, err := pricing.ParseFrequency(frequency)
	if err != nil {
		return pricing.Quote{}, err
	}
	return pricing.Compute(svc, addOns, freq), nil
}

func (s *BookingService) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if err := s.ValidateBookingDate(booking.ScheduledAt); err != nil {
		return err
	}

	if err := s.repo.CreateBookingWithLock(ctx, booking, s.teams); err != nil {
		return err
	}

	metrics.IncBookingCreated()

	// The customer list tracks the latest contact details per email.
	customer := &models.Customer{
		Name:             booking.CustomerName,
		Email:            booking.Email,
		Phone:            booking.Phone,
		Street:           booking.Street,
		City:             booking.City,
		PostalCode:       booking.PostalCode,
		MarketingConsent: booking.MarketingConsent,
	}
	if err := s.repo.UpsertCustomerByEmail(ctx, customer); err != nil {
		s.logger.Error().Err(err).Str("email", booking.Email).Msg("customer upsert error")
	}

	s.publishEvent(events.EventBookingCreated, booking)
	s.enqueueSync(ctx, "upsert", booking)

	return nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *BookingService) GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	return s.repo.GetBookingByReference(ctx, reference)
}

func (s *BookingService) ConfirmBooking(ctx context.Context, id, version int64) error {
	return s.updateStatus(ctx, id, version, models.StatusConfirmed, events.EventBookingConfirmed)
}

func (s *BookingService) CancelBooking(ctx context.Context, id, version int64) error {
	return s.updateStatus(ctx, id, version, models.StatusCanceled, events.EventBookingCanceled)
}

func (s *BookingService) CompleteBooking(ctx context.Context, id, version int64) error {
	return s.updateStatus(ctx, id, version, models.StatusCompleted, events.EventBookingCompleted)
}

func (s *BookingService) updateStatus(ctx context.Context, id, version int64, status, eventType string) error {
	if err := s.repo.UpdateBookingStatusWithVersion(ctx, id, version, status); err != nil {
		return err
	}

	booking, err := s.repo.GetBooking(ctx, id)
	if err == nil {
		s.publishEvent(eventType, booking)
		s.enqueueSync(ctx, "update_status", booking)
	}

	return nil
}

func (s *BookingService) ListByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	return s.repo.ListByDateRange(ctx, start, end)
}

func (s *BookingService) CustomerBookings(ctx context.Context, email string) ([]*models.Booking, error) {
	return s.repo.CustomerBookings(ctx, email)
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:       booking.ID,
		Reference:       booking.Reference,
		ServiceID:       booking.ServiceID,
		ServiceName:     booking.ServiceName,
		CustomerName:    booking.CustomerName,
		Email:           booking.Email,
		Status:          booking.Status,
		TotalPrice:      booking.TotalPrice,
		DurationMinutes: booking.DurationMinutes,
		ScheduledAt:     booking.ScheduledAt,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueSync(ctx context.Context, taskType string, booking *models.Booking) {
	if s.syncWorker == nil {
		return
	}

	if err := s.syncWorker.EnqueueTask(ctx, taskType, booking); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", booking.ID).Str("task", taskType).Msg("sheets enqueue error")
	}
}
