package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"renvask/internal/database"
	"renvask/internal/models"
	"renvask/internal/schedule"
	"renvask/internal/service"
)

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"services": s.catalog.ActiveServices(),
		"add_ons":  s.catalog.ActiveAddOns(),
	})
}

type quoteRequest struct {
	ServiceID string   `json:"service_id"`
	AddOnIDs  []string `json:"add_on_ids"`
	Frequency string   `json:"frequency"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	quote, err := s.bookings.Quote(req.ServiceID, req.AddOnIDs, req.Frequency)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	if dateStr == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, s.gen.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	slots, err := s.availability.Slots(r.Context(), date)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": dateStr, "slots": slots})
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	monthStr := strings.TrimSpace(r.URL.Query().Get("month"))
	if monthStr == "" {
		writeError(w, http.StatusBadRequest, "month is required")
		return
	}

	first, err := time.ParseInLocation("2006-01", monthStr, s.gen.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month format; expected YYYY-MM")
		return
	}

	days, err := schedule.MonthOverview(r.Context(), s.availability, s.gen, first.Year(), first.Month())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"month": monthStr, "days": days})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.flow.StartSession(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.flow.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

type selectServiceRequest struct {
	ServiceID      string   `json:"service_id"`
	AddOnIDs       []string `json:"add_on_ids"`
	Frequency      string   `json:"frequency"`
	SpecialRequest string   `json:"special_request"`
}

func (s *Server) handleSelectService(w http.ResponseWriter, r *http.Request) {
	var req selectServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := s.flow.SelectService(r.Context(), r.PathValue("id"), req.ServiceID, req.AddOnIDs, req.Frequency, req.SpecialRequest)
	if err != nil {
		s.writeSelectionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

type dateTimeRequest struct {
	Date      string    `json:"date"`       // YYYY-MM-DD
	StartTime time.Time `json:"start_time"` // RFC 3339
}

func (s *Server) handleSelectDateTime(w http.ResponseWriter, r *http.Request) {
	var req dateTimeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := s.flow.SelectDateTime(r.Context(), r.PathValue("id"), req.Date, req.StartTime)
	if err != nil {
		s.writeSelectionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var data models.BookingData
	if err := decodeJSON(r, &data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.flow.Submit(r.Context(), r.PathValue("id"), data)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	session, err := s.flow.Back(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	session, err := s.flow.Reset(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleCustomerBookings(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	bookings, err := s.bookings.CustomerBookings(r.Context(), email)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *Server) handleBookingByReference(w http.ResponseWriter, r *http.Request) {
	booking, err := s.bookings.GetBookingByReference(r.Context(), r.PathValue("reference"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := decodeJSON(r, &review); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.reviews.SubmitReview(r.Context(), &review); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	reviews, err := s.reviews.ListReviews(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := map[string]any{}
	if serviceID := strings.TrimSpace(r.URL.Query().Get("service_id")); serviceID != "" {
		filtered := make([]*models.Review, 0, len(reviews))
		for _, rev := range reviews {
			if rev.ServiceID == serviceID {
				filtered = append(filtered, rev)
			}
		}
		reviews = filtered

		avg, count, err := s.reviews.AverageRating(r.Context(), serviceID)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}
		resp["average_rating"] = avg
		resp["review_count"] = count
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}
	resp["reviews"] = reviews
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitMessage(w http.ResponseWriter, r *http.Request) {
	var message models.Message
	if err := decodeJSON(r, &message); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.reviews.SubmitMessage(r.Context(), &message); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.reviews.ListMessages(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if messages == nil {
		messages = []*models.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.ListCustomers(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if customers == nil {
		customers = []*models.Customer{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": customers})
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := decodeJSON(r, &customer); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.customers.CreateCustomer(r.Context(), &customer); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := s.customers.GetCustomer(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var customer models.Customer
	if err := decodeJSON(r, &customer); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	customer.ID = id

	if err := s.customers.UpdateCustomer(r.Context(), &customer); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.customers.DeleteCustomer(r.Context(), id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminBookings(w http.ResponseWriter, r *http.Request) {
	from, to, err := s.dateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.ListByDateRange(r.Context(), from, to)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

type statusRequest struct {
	Status  string `json:"status"`
	Version int64  `json:"version"`
}

func (s *Server) handleBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	switch req.Status {
	case models.StatusConfirmed:
		err = s.bookings.ConfirmBooking(r.Context(), id, req.Version)
	case models.StatusCanceled:
		err = s.bookings.CancelBooking(r.Context(), id, req.Version)
	case models.StatusCompleted:
		err = s.bookings.CompleteBooking(r.Context(), id, req.Version)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported status: %s", req.Status))
		return
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	booking, err := s.bookings.GetBooking(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	from, to, err := s.dateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.ListByDateRange(r.Context(), from, to)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	path, err := s.exporter.Export(bookings, from, to.AddDate(0, 0, -1))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filenameOf(path)))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}

// dateRange parses from/to query dates; the returned end is exclusive so it
// can go straight into a range query.
func (s *Server) dateRange(r *http.Request) (time.Time, time.Time, error) {
	fromStr := strings.TrimSpace(r.URL.Query().Get("from"))
	toStr := strings.TrimSpace(r.URL.Query().Get("to"))
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("from and to are required")
	}

	loc := s.gen.Location()
	from, err := time.ParseInLocation("2006-01-02", fromStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date; expected YYYY-MM-DD")
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date; expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to must not be before from")
	}
	return from, to.AddDate(0, 0, 1), nil
}

// writeSelectionError treats unrecognized errors from the selection steps
// as client mistakes: unknown service ids, bad frequencies, unparseable
// dates. Known sentinels keep their usual mapping.
func (s *Server) writeSelectionError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrStepNotReady),
		errors.Is(err, database.ErrNotFound),
		errors.Is(err, database.ErrNotAvailable),
		errors.Is(err, database.ErrPastDate),
		errors.Is(err, database.ErrDateTooFar),
		errors.Is(err, database.ErrVersionConflict):
		s.writeServiceError(w, err)
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func filenameOf(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
