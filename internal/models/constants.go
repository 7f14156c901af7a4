package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
	StatusCompleted = "completed"
)

const (
	StepService      = "service"
	StepDateTime     = "datetime"
	StepConfirmation = "confirmation"
	StepSuccess      = "success"
)

const (
	PaymentCard      = "card"
	PaymentInvoice   = "invoice"
	PaymentMobilePay = "mobilepay"
)

const (
	// DefaultSessionTTL is how long an abandoned booking session survives in Redis.
	DefaultSessionTTL = 24 * 60 * 60 // 24 hours in seconds

	// DefaultTeams is the number of cleaning teams when the config does not say.
	DefaultTeams = 3

	// WorkerQueueSize is the in-memory sync queue capacity.
	WorkerQueueSize = 128

	// RateLimitRequests is the per-session request budget within the window.
	RateLimitRequests = 30

	// RateLimitWindow is the session rate-limit window in seconds.
	RateLimitWindow = 60

	// DefaultMaxBookingDays limits how far ahead a cleaning can be booked.
	DefaultMaxBookingDays = 90

	// SlotMinutes is the granularity of the bookable grid.
	SlotMinutes = 60
)

// ActiveBookingStatuses are the statuses that consume team capacity.
var ActiveBookingStatuses = []string{StatusPending, StatusConfirmed}

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCard, PaymentInvoice, PaymentMobilePay:
		return true
	default:
		return false
	}
}

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted:
		return true
	default:
		return false
	}
}
