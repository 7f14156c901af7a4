package domain

import (
	"context"
	"time"

	"renvask/internal/models"
	"renvask/internal/pricing"
)

type Repository interface {
	CreateBookingWithLock(ctx context.Context, booking *models.Booking, teams int) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error)
	UpdateBookingStatusWithVersion(ctx context.Context, id, version int64, status string) error
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error)
	ListForDate(ctx context.Context, date time.Time) ([]models.Booking, error)
	CustomerBookings(ctx context.Context, email string) ([]*models.Booking, error)

	CreateCustomer(ctx context.Context, customer *models.Customer) error
	UpsertCustomerByEmail(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error

	CreateReview(ctx context.Context, review *models.Review) error
	ListReviews(ctx context.Context, limit int) ([]*models.Review, error)
	AverageRating(ctx context.Context, serviceID string) (float64, int, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, limit int) ([]*models.Message, error)

	CreateSyncTask(ctx context.Context, task *models.SyncTask) error
	GetPendingSyncTasks(ctx context.Context, limit int) ([]models.SyncTask, error)
	UpdateSyncTaskStatus(ctx context.Context, id int64, status, errMsg string, nextRetryAt *time.Time) error
	GetFailedSyncTasks(ctx context.Context) ([]models.SyncTask, error)
}

type SessionRepository interface {
	GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error)
	SetSession(ctx context.Context, session *models.BookingSession) error
	ClearSession(ctx context.Context, sessionID string) error
	CheckRateLimit(ctx context.Context, sessionID string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type SyncWorker interface {
	EnqueueTask(ctx context.Context, taskType string, booking *models.Booking) error
}

type FlowService interface {
	StartSession(ctx context.Context) (*models.BookingSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error)
	SelectService(ctx context.Context, sessionID, serviceID string, addOnIDs []string, frequency, specialRequest string) (*models.BookingSession, error)
	SelectDateTime(ctx context.Context, sessionID string, date string, startTime time.Time) (*models.BookingSession, error)
	Submit(ctx context.Context, sessionID string, data models.BookingData) (*models.Booking, error)
	Back(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Reset(ctx context.Context, sessionID string) (*models.BookingSession, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, id, version int64) error
	CancelBooking(ctx context.Context, id, version int64) error
	CompleteBooking(ctx context.Context, id, version int64) error
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error)
	CustomerBookings(ctx context.Context, email string) ([]*models.Booking, error)
	Quote(serviceID string, addOnIDs []string, frequency string) (pricing.Quote, error)
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
}

type ReviewService interface {
	SubmitReview(ctx context.Context, review *models.Review) error
	ListReviews(ctx context.Context, limit int) ([]*models.Review, error)
	AverageRating(ctx context.Context, serviceID string) (float64, int, error)
	SubmitMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, limit int) ([]*models.Message, error)
}
