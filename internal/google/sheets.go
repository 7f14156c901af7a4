package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"renvask/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsService mirrors bookings into a Google spreadsheet the office staff
// work from. Rows are keyed by booking reference in column A.
type SheetsService struct {
	service         *sheets.Service
	bookingsSheetID string
	rowCache        map[string]int
	cacheMu         sync.RWMutex
}

func NewSheetsService(credentialsFile, bookingsSheetID string) (*SheetsService, error) {
	ctx := context.Background()

	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}

	service := &SheetsService{
		service:         srv,
		bookingsSheetID: bookingsSheetID,
		rowCache:        make(map[string]int),
	}

	// Warm up cache in background
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		service.WarmUpCache(ctx)
	}()

	// Periodic cache refresh every hour
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			service.WarmUpCache(ctx)
			cancel()
		}
	}()

	return service, nil
}

// TestConnection reads the header cell to verify access.
func (s *SheetsService) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.bookingsSheetID, "Bookings!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

// GetServiceAccountEmail returns the service account email, for sharing the
// spreadsheet with it.
func (s *SheetsService) GetServiceAccountEmail(credentialsFile string) (string, error) {
	file, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", err
	}

	var creds struct {
		ClientEmail string `json:"client_email"`
	}

	if err := json.Unmarshal(file, &creds); err != nil {
		return "", err
	}

	return creds.ClientEmail, nil
}

// WarmUpCache populates the row index cache by reading the reference column.
func (s *SheetsService) WarmUpCache(ctx context.Context) error {
	resp, err := s.service.Spreadsheets.Values.Get(s.bookingsSheetID, "Bookings!A:A").Context(ctx).Do()
	if err != nil {
		return err
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.rowCache = make(map[string]int)

	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if ref, ok := row[0].(string); ok && strings.HasPrefix(ref, "RV-") {
			s.rowCache[ref] = i + 1
		}
	}
	return nil
}

func bookingRow(b *models.Booking) []interface{} {
	return []interface{}{
		b.Reference,
		b.ScheduledAt.Format("2006-01-02 15:04"),
		b.ServiceName,
		strings.Join(b.AddOnIDs, ", "),
		b.Frequency,
		b.TotalPrice,
		b.DurationMinutes,
		b.Status,
		b.CustomerName,
		b.Email,
		b.Phone,
		fmt.Sprintf("%s, %s %s", b.Street, b.PostalCode, b.City),
		b.PaymentMethod,
		b.CreatedAt.Format("2006-01-02 15:04:05"),
		b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// AppendBooking appends a new booking row.
func (s *SheetsService) AppendBooking(ctx context.Context, booking *models.Booking) error {
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{bookingRow(booking)},
	}

	resp, err := s.service.Spreadsheets.Values.Append(s.bookingsSheetID, "Bookings!A:A", valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append booking: %w", err)
	}

	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		if row := parseRowFromRange(resp.Updates.UpdatedRange); row > 0 {
			s.cacheMu.Lock()
			s.rowCache[booking.Reference] = row
			s.cacheMu.Unlock()
		}
	}
	return nil
}

// UpsertBooking rewrites the row for a known reference, or appends.
func (s *SheetsService) UpsertBooking(ctx context.Context, booking *models.Booking) error {
	row, ok := s.cachedRow(booking.Reference)
	if !ok {
		if err := s.WarmUpCache(ctx); err != nil {
			return err
		}
		row, ok = s.cachedRow(booking.Reference)
	}
	if !ok {
		return s.AppendBooking(ctx, booking)
	}

	rangeData := fmt.Sprintf("Bookings!A%d:O%d", row, row)
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{bookingRow(booking)},
	}

	_, err := s.service.Spreadsheets.Values.Update(s.bookingsSheetID, rangeData, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("upsert booking %s: %w", booking.Reference, err)
	}
	return nil
}

// UpdateBookingStatus rewrites only the status cell.
func (s *SheetsService) UpdateBookingStatus(ctx context.Context, reference, status string) error {
	row, ok := s.cachedRow(reference)
	if !ok {
		if err := s.WarmUpCache(ctx); err != nil {
			return err
		}
		row, ok = s.cachedRow(reference)
	}
	if !ok {
		return fmt.Errorf("booking %s not found in sheet", reference)
	}

	rangeData := fmt.Sprintf("Bookings!H%d", row)
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{{status}},
	}

	_, err := s.service.Spreadsheets.Values.Update(s.bookingsSheetID, rangeData, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update status %s: %w", reference, err)
	}
	return nil
}

// DeleteBookingRow blanks the row for a reference.
func (s *SheetsService) DeleteBookingRow(ctx context.Context, reference string) error {
	row, ok := s.cachedRow(reference)
	if !ok {
		return nil
	}

	rangeData := fmt.Sprintf("Bookings!A%d:O%d", row, row)
	_, err := s.service.Spreadsheets.Values.Clear(s.bookingsSheetID, rangeData, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clear booking row %s: %w", reference, err)
	}

	s.cacheMu.Lock()
	delete(s.rowCache, reference)
	s.cacheMu.Unlock()
	return nil
}

// ReplaceBookingsSheet rewrites the whole sheet from scratch.
func (s *SheetsService) ReplaceBookingsSheet(ctx context.Context, bookings []*models.Booking) error {
	values := [][]interface{}{{
		"Reference", "Scheduled", "Service", "Add-ons", "Frequency", "Price (DKK)",
		"Duration (min)", "Status", "Customer", "Email", "Phone", "Address", "Payment",
		"Created", "Updated",
	}}
	for _, b := range bookings {
		values = append(values, bookingRow(b))
	}

	if _, err := s.service.Spreadsheets.Values.Clear(s.bookingsSheetID, "Bookings!A:O", &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear bookings sheet: %w", err)
	}

	rangeData := fmt.Sprintf("Bookings!A1:O%d", len(values))
	_, err := s.service.Spreadsheets.Values.Update(s.bookingsSheetID, rangeData, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("replace bookings sheet: %w", err)
	}

	s.cacheMu.Lock()
	s.rowCache = make(map[string]int)
	for i, b := range bookings {
		s.rowCache[b.Reference] = i + 2
	}
	s.cacheMu.Unlock()
	return nil
}

func (s *SheetsService) cachedRow(reference string) (int, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	row, ok := s.rowCache[reference]
	return row, ok
}

// parseRowFromRange extracts the row number from a range like Bookings!A42:O42.
func parseRowFromRange(updatedRange string) int {
	idx := strings.LastIndex(updatedRange, "!A")
	if idx < 0 {
		return 0
	}
	rest := updatedRange[idx+2:]
	var row int
	fmt.Sscanf(rest, "%d", &row)
	return row
}
