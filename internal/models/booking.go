package models

import "time"

type Booking struct {
	ID              int64     `json:"id"`
	Reference       string    `json:"reference"`
	ServiceID       string    `json:"service_id"`
	ServiceName     string    `json:"service_name"`
	AddOnIDs        []string  `json:"add_on_ids,omitempty"`
	Frequency       string    `json:"frequency"`
	TotalPrice      int64     `json:"total_price"` // whole DKK, after recurrence discount
	DurationMinutes int       `json:"duration_minutes"`
	ScheduledAt     time.Time `json:"scheduled_at"`

	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`

	Street             string `json:"street"`
	City               string `json:"city"`
	PostalCode         string `json:"postal_code"`
	Floor              string `json:"floor,omitempty"`
	Door               string `json:"door,omitempty"`
	AccessInstructions string `json:"access_instructions,omitempty"`

	PaymentMethod       string `json:"payment_method"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
	MarketingConsent    bool   `json:"marketing_consent"`

	Status    string    `json:"status"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndsAt is the scheduled finish time derived from the quoted duration.
func (b *Booking) EndsAt() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// Overlaps reports whether the booking occupies any part of [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.ScheduledAt.Before(end) && start.Before(b.EndsAt())
}

// ConsumesCapacity reports whether the booking still blocks a team.
func (b *Booking) ConsumesCapacity() bool {
	for _, s := range ActiveBookingStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}
