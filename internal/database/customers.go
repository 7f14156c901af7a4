package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"renvask/internal/models"
)

func (db *DB) CreateCustomer(ctx context.Context, c *models.Customer) error {
	query := `INSERT INTO customers (name, email, phone, street, city, postal_code, notes, marketing_consent, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Street, c.City, c.PostalCode, c.Notes, c.MarketingConsent, now, now)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

// UpsertCustomerByEmail keeps the customer list current as bookings come in.
// An existing row is refreshed with the latest contact details.
func (db *DB) UpsertCustomerByEmail(ctx context.Context, c *models.Customer) error {
	query := `INSERT INTO customers (name, email, phone, street, city, postal_code, notes, marketing_consent, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
              ON CONFLICT(email) DO UPDATE SET
                  name = excluded.name,
                  phone = excluded.phone,
                  street = excluded.street,
                  city = excluded.city,
                  postal_code = excluded.postal_code,
                  marketing_consent = excluded.marketing_consent,
                  updated_at = excluded.updated_at`
	now := time.Now()
	if _, err := db.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Street, c.City, c.PostalCode, c.Notes, c.MarketingConsent, now, now); err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}

	stored, err := db.GetCustomerByEmail(ctx, c.Email)
	if err != nil {
		return err
	}
	*c = *stored
	return nil
}

const customerColumns = `id, name, email, phone, street, city, postal_code, notes, marketing_consent, created_at, updated_at`

func scanCustomer(row interface{ Scan(...any) error }) (*models.Customer, error) {
	c := &models.Customer{}
	var phone, street, city, postal, notes sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Email, &phone, &street, &city, &postal, &notes, &c.MarketingConsent, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Phone = phone.String
	c.Street = street.String
	c.City = city.String
	c.PostalCode = postal.String
	c.Notes = notes.String
	return c, nil
}

func (db *DB) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	c, err := scanCustomer(db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

func (db *DB) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	c, err := scanCustomer(db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = ?`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer by email: %w", err)
	}
	return c, nil
}

func (db *DB) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (db *DB) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	query := `UPDATE customers SET name = ?, email = ?, phone = ?, street = ?, city = ?, postal_code = ?, notes = ?, marketing_consent = ?, updated_at = ?
              WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Street, c.City, c.PostalCode, c.Notes, c.MarketingConsent, time.Now(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteCustomer(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
