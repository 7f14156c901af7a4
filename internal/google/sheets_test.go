package google

import (
	"testing"
	"time"

	"renvask/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBookingRow(t *testing.T) {
	b := &models.Booking{
		Reference:       "RV-ABCD1234",
		ServiceName:     "Standard rengøring",
		AddOnIDs:        []string{"oven", "windows-external"},
		Frequency:       "weekly",
		TotalPrice:      850,
		DurationMinutes: 240,
		ScheduledAt:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Status:          "pending",
		CustomerName:    "Mette Jensen",
		Email:           "mette@example.dk",
		Phone:           "+45 12 34 56 78",
		Street:          "Nørrebrogade 12",
		City:            "København",
		PostalCode:      "2200",
		PaymentMethod:   "card",
	}

	row := bookingRow(b)
	assert.Equal(t, "RV-ABCD1234", row[0])
	assert.Equal(t, "2026-03-02 10:00", row[1])
	assert.Equal(t, "oven, windows-external", row[3])
	assert.Equal(t, "Nørrebrogade 12, 2200 København", row[11])
	assert.Len(t, row, 15)
}

func TestParseRowFromRange(t *testing.T) {
	assert.Equal(t, 42, parseRowFromRange("Bookings!A42:O42"))
	assert.Equal(t, 2, parseRowFromRange("Bookings!A2:O2"))
	assert.Equal(t, 0, parseRowFromRange("nonsense"))
}
