package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "renvask",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "renvask",
			Name:      "bookings_created_total",
			Help:      "Bookings accepted through the flow.",
		},
	)

	flowTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "renvask",
			Name:      "flow_transitions_total",
			Help:      "Booking flow step transitions.",
		},
		[]string{"from", "to"},
	)

	syncRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "renvask",
			Name:      "sheets_sync_retries_total",
			Help:      "Sheets sync tasks scheduled for retry.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, flowTransitions, syncRetries)
	})
}

// IncHTTP increments the request counter for an endpoint/status pair.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

// IncBookingCreated counts one accepted booking.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncFlowTransition counts one wizard step transition.
func IncFlowTransition(from, to string) {
	flowTransitions.WithLabelValues(from, to).Inc()
}

// IncSyncRetry counts one sheets task retry.
func IncSyncRetry() {
	syncRetries.Inc()
}
