package service

import (
	"testing"

	"renvask/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBookingData_Valid(t *testing.T) {
	assert.NoError(t, ValidateBookingData(validBookingData()))
}

func TestValidateBookingData_MissingFields(t *testing.T) {
	err := ValidateBookingData(models.BookingData{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"name", "email", "phone", "street", "city", "postal_code"} {
		assert.Contains(t, verr.Fields, field)
	}
	// Payment method has a default, so leaving it out is not a failure.
	assert.NotContains(t, verr.Fields, "payment_method")
}

func TestValidateBookingData_Email(t *testing.T) {
	cases := map[string]bool{
		"mette@example.dk":      true,
		"m.jensen@sub.firma.dk": true,
		"no-at-sign":            false,
		"missing@tld":           false,
		"two@@example.dk":       false,
		"spaces in@example.dk":  false,
	}

	for email, ok := range cases {
		data := validBookingData()
		data.CustomerInfo.Email = email
		err := ValidateBookingData(data)
		if ok {
			assert.NoError(t, err, email)
		} else {
			var verr *ValidationError
			require.ErrorAs(t, err, &verr, email)
			assert.Contains(t, verr.Fields, "email", email)
		}
	}
}

func TestValidateBookingData_PaymentMethod(t *testing.T) {
	data := validBookingData()
	data.PaymentMethod = "cash"

	err := ValidateBookingData(data)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "payment_method")

	for _, m := range []string{models.PaymentCard, models.PaymentInvoice, models.PaymentMobilePay} {
		data.PaymentMethod = m
		assert.NoError(t, ValidateBookingData(data), m)
	}

	data.PaymentMethod = ""
	assert.NoError(t, ValidateBookingData(data))
}
