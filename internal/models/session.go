package models

import "time"

// CustomerInfo is the contact block collected at the confirmation step.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Address is where the cleaning happens. Floor, door and access
// instructions are optional.
type Address struct {
	Street             string `json:"street"`
	City               string `json:"city"`
	PostalCode         string `json:"postal_code"`
	Floor              string `json:"floor,omitempty"`
	Door               string `json:"door,omitempty"`
	AccessInstructions string `json:"access_instructions,omitempty"`
}

// BookingData is what the confirmation step submits.
type BookingData struct {
	CustomerInfo        CustomerInfo `json:"customer_info"`
	Address             Address      `json:"address"`
	PaymentMethod       string       `json:"payment_method"`
	SpecialInstructions string       `json:"special_instructions,omitempty"`
	MarketingConsent    bool         `json:"marketing_consent"`
}

// BookingSession is the draft accumulated across the wizard steps. It lives
// in the session state repository for the duration of one booking and is
// discarded on completion or expiry.
type BookingSession struct {
	SessionID   string `json:"session_id"`
	CurrentStep string `json:"current_step"`

	ServiceID      string   `json:"service_id,omitempty"`
	AddOnIDs       []string `json:"add_on_ids,omitempty"`
	Frequency      string   `json:"frequency,omitempty"`
	SpecialRequest string   `json:"special_request,omitempty"`

	Date      string    `json:"date,omitempty"` // YYYY-MM-DD
	StartTime time.Time `json:"start_time,omitempty"`
	EndTime   time.Time `json:"end_time,omitempty"`

	Customer            *CustomerInfo `json:"customer,omitempty"`
	Address             *Address      `json:"address,omitempty"`
	PaymentMethod       string        `json:"payment_method,omitempty"`
	SpecialInstructions string        `json:"special_instructions,omitempty"`
	MarketingConsent    bool          `json:"marketing_consent"`

	BookingRef string    `json:"booking_ref,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasService reports whether the service step has been completed.
func (s *BookingSession) HasService() bool {
	return s.ServiceID != ""
}

// HasDateTime reports whether a date and an available slot were picked.
func (s *BookingSession) HasDateTime() bool {
	return s.Date != "" && !s.StartTime.IsZero()
}
