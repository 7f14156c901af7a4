package service

import (
	"regexp"
	"strings"

	"renvask/internal/models"
)

// emailPattern requires local@domain.tld with a real dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[A-Za-z]{2,}$`)

// ValidateBookingData checks the confirmation form and returns a nil error
// or a *ValidationError keyed by field name.
func ValidateBookingData(data models.BookingData) error {
	fields := make(map[string]string)

	if strings.TrimSpace(data.CustomerInfo.Name) == "" {
		fields["name"] = "name is required"
	}
	email := strings.TrimSpace(data.CustomerInfo.Email)
	if email == "" {
		fields["email"] = "email is required"
	} else if !emailPattern.MatchString(email) {
		fields["email"] = "email is invalid"
	}
	if strings.TrimSpace(data.CustomerInfo.Phone) == "" {
		fields["phone"] = "phone is required"
	}

	if strings.TrimSpace(data.Address.Street) == "" {
		fields["street"] = "street is required"
	}
	if strings.TrimSpace(data.Address.City) == "" {
		fields["city"] = "city is required"
	}
	if strings.TrimSpace(data.Address.PostalCode) == "" {
		fields["postal_code"] = "postal code is required"
	}

	// An omitted payment method falls back to card at submit, so only
	// unknown values fail here.
	if data.PaymentMethod != "" && !models.ValidPaymentMethod(data.PaymentMethod) {
		fields["payment_method"] = "payment method must be card, invoice or mobilepay"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
