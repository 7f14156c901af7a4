package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"renvask/internal/models"
)

func encodeAddOnIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to encode add-on ids: %w", err)
	}
	return string(raw), nil
}

func decodeAddOnIDs(raw string, b *models.Booking) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), &b.AddOnIDs); err != nil {
		return fmt.Errorf("failed to decode add-on ids: %w", err)
	}
	return nil
}

const bookingColumns = `id, reference, service_id, service_name, add_on_ids, frequency,
       total_price, duration_minutes, scheduled_at, customer_name, email, phone,
       street, city, postal_code, floor, door, access_instructions,
       payment_method, special_instructions, marketing_consent,
       status, version, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	b := &models.Booking{}
	var addOns string
	var floor, door, access, special sql.NullString
	err := row.Scan(
		&b.ID, &b.Reference, &b.ServiceID, &b.ServiceName, &addOns, &b.Frequency,
		&b.TotalPrice, &b.DurationMinutes, &b.ScheduledAt, &b.CustomerName, &b.Email, &b.Phone,
		&b.Street, &b.City, &b.PostalCode, &floor, &door, &access,
		&b.PaymentMethod, &special, &b.MarketingConsent,
		&b.Status, &b.Version, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Floor = floor.String
	b.Door = door.String
	b.AccessInstructions = access.String
	b.SpecialInstructions = special.String
	if err := decodeAddOnIDs(addOns, b); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBookingWithLock inserts a booking after re-checking team capacity
// inside the same transaction, so two concurrent submits for the last team
// cannot both succeed.
func (db *DB) CreateBookingWithLock(ctx context.Context, booking *models.Booking, teams int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	existing, err := listOverlapping(ctx, tx, booking.ScheduledAt, booking.EndsAt())
	if err != nil {
		return fmt.Errorf("failed to check availability in tx: %w", err)
	}

	// Capacity is per hour slot. Walk every hour of the new booking and
	// count active bookings already covering it.
	for slot := booking.ScheduledAt; slot.Before(booking.EndsAt()); slot = slot.Add(models.SlotMinutes * time.Minute) {
		slotEnd := slot.Add(models.SlotMinutes * time.Minute)
		busy := 0
		for _, b := range existing {
			if b.ConsumesCapacity() && b.Overlaps(slot, slotEnd) {
				busy++
			}
		}
		if busy >= teams {
			return ErrNotAvailable
		}
	}

	addOns, err := encodeAddOnIDs(booking.AddOnIDs)
	if err != nil {
		return err
	}

	now := time.Now()
	query := `INSERT INTO bookings (
                reference, service_id, service_name, add_on_ids, frequency,
                total_price, duration_minutes, scheduled_at, customer_name, email, phone,
                street, city, postal_code, floor, door, access_instructions,
                payment_method, special_instructions, marketing_consent,
                status, version, created_at, updated_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query,
		booking.Reference, booking.ServiceID, booking.ServiceName, addOns, booking.Frequency,
		booking.TotalPrice, booking.DurationMinutes, booking.ScheduledAt, booking.CustomerName, booking.Email, booking.Phone,
		booking.Street, booking.City, booking.PostalCode, booking.Floor, booking.Door, booking.AccessInstructions,
		booking.PaymentMethod, booking.SpecialInstructions, booking.MarketingConsent,
		booking.Status, 1, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}
	booking.ID = id
	booking.Version = 1
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return tx.Commit()
}

func listOverlapping(ctx context.Context, tx *sql.Tx, start, end time.Time) ([]*models.Booking, error) {
	// A booking of any length started at most a day before start; the
	// precise overlap check happens in Go.
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE scheduled_at < ? AND scheduled_at > ?`
	rows, err := tx.QueryContext(ctx, query, end, start.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

func (db *DB) GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = ?`
	b, err := scanBooking(db.QueryRowContext(ctx, query, reference))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking by reference: %w", err)
	}
	return b, nil
}

// UpdateBookingStatusWithVersion applies an optimistic status update.
// Lost races surface as ErrVersionConflict.
func (db *DB) UpdateBookingStatusWithVersion(ctx context.Context, id, fromVersion int64, status string) error {
	query := `UPDATE bookings SET status = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now(), id, fromVersion)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (db *DB) ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE scheduled_at >= ? AND scheduled_at < ? ORDER BY scheduled_at ASC`
	rows, err := db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by date range: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// ListForDate returns the bookings consuming capacity on a calendar day in
// the day's own timezone. It feeds the slot availability calculation.
func (db *DB) ListForDate(ctx context.Context, date time.Time) ([]models.Booking, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	pointers, err := db.ListByDateRange(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	bookings := make([]models.Booking, 0, len(pointers))
	for _, b := range pointers {
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

func (db *DB) CustomerBookings(ctx context.Context, email string) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE email = ? ORDER BY scheduled_at DESC`
	rows, err := db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
