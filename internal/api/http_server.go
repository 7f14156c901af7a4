package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"renvask/internal/catalog"
	"renvask/internal/config"
	"renvask/internal/database"
	"renvask/internal/domain"
	"renvask/internal/export"
	"renvask/internal/metrics"
	"renvask/internal/schedule"
	"renvask/internal/service"

	"github.com/rs/zerolog"
)

// Server is the HTTP surface of the booking system: the public booking
// flow, the catalog, availability, and the admin endpoints.
type Server struct {
	cfg          config.APIConfig
	flow         domain.FlowService
	bookings     domain.BookingService
	customers    domain.CustomerService
	reviews      domain.ReviewService
	catalog      *catalog.Catalog
	availability schedule.AvailabilityProvider
	gen          *schedule.Generator
	exporter     *export.Exporter
	auth         *HTTPAuth
	server       *http.Server
	logger       *zerolog.Logger
}

func NewServer(
	cfg config.APIConfig,
	flow domain.FlowService,
	bookings domain.BookingService,
	customers domain.CustomerService,
	reviews domain.ReviewService,
	cat *catalog.Catalog,
	availability schedule.AvailabilityProvider,
	gen *schedule.Generator,
	exporter *export.Exporter,
	logger *zerolog.Logger,
) *Server {
	s := &Server{
		cfg:          cfg,
		flow:         flow,
		bookings:     bookings,
		customers:    customers,
		reviews:      reviews,
		catalog:      cat,
		availability: availability,
		gen:          gen,
		exporter:     exporter,
		logger:       logger,
	}
	s.auth = NewHTTPAuth(cfg)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return s
}

// Handler builds the routed handler with auth and logging applied. Exposed
// so tests can drive the API through httptest without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/services", s.handleServices)
	mux.HandleFunc("POST /api/v1/quote", s.handleQuote)
	mux.HandleFunc("GET /api/v1/slots", s.handleSlots)
	mux.HandleFunc("GET /api/v1/slots/month", s.handleMonth)

	mux.HandleFunc("POST /api/v1/sessions", s.handleStartSession)
	mux.HandleFunc("GET /api/v1/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("POST /api/v1/sessions/{id}/service", s.handleSelectService)
	mux.HandleFunc("POST /api/v1/sessions/{id}/datetime", s.handleSelectDateTime)
	mux.HandleFunc("POST /api/v1/sessions/{id}/submit", s.handleSubmit)
	mux.HandleFunc("POST /api/v1/sessions/{id}/back", s.handleBack)
	mux.HandleFunc("POST /api/v1/sessions/{id}/reset", s.handleReset)

	mux.HandleFunc("GET /api/v1/bookings", s.handleCustomerBookings)
	mux.HandleFunc("GET /api/v1/bookings/{reference}", s.handleBookingByReference)

	mux.HandleFunc("POST /api/v1/reviews", s.handleSubmitReview)
	mux.HandleFunc("GET /api/v1/reviews", s.handleListReviews)
	mux.HandleFunc("POST /api/v1/messages", s.handleSubmitMessage)

	mux.HandleFunc("GET /api/v1/admin/customers", s.handleListCustomers)
	mux.HandleFunc("POST /api/v1/admin/customers", s.handleCreateCustomer)
	mux.HandleFunc("GET /api/v1/admin/customers/{id}", s.handleGetCustomer)
	mux.HandleFunc("PUT /api/v1/admin/customers/{id}", s.handleUpdateCustomer)
	mux.HandleFunc("DELETE /api/v1/admin/customers/{id}", s.handleDeleteCustomer)

	mux.HandleFunc("GET /api/v1/admin/bookings", s.handleAdminBookings)
	mux.HandleFunc("POST /api/v1/admin/bookings/{id}/status", s.handleBookingStatus)
	mux.HandleFunc("GET /api/v1/admin/bookings/export", s.handleExport)
	mux.HandleFunc("GET /api/v1/admin/messages", s.handleListMessages)

	return s.loggingMiddleware(s.auth.Wrap(mux))
}

func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		dur := time.Since(start)

		endpoint := r.Pattern
		if endpoint == "" {
			endpoint = r.URL.Path
		}
		metrics.IncHTTP(endpoint, fmt.Sprintf("%d", recorder.status))

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", dur).
			Msg("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps domain errors to HTTP statuses. Field validation
// failures keep their per-field messages so the form can highlight them.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": vErr.Fields})
		return
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrStepNotReady),
		errors.Is(err, database.ErrNotAvailable),
		errors.Is(err, database.ErrVersionConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, database.ErrPastDate),
		errors.Is(err, database.ErrDateTooFar),
		errors.Is(err, service.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
