package models

import "time"

// Customer is a record in the admin panel. Rows are upserted by email when
// a booking is created and editable through the admin CRUD endpoints.
type Customer struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Street           string    `json:"street"`
	City             string    `json:"city"`
	PostalCode       string    `json:"postal_code"`
	Notes            string    `json:"notes,omitempty"`
	MarketingConsent bool      `json:"marketing_consent"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
