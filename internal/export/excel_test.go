package export

import (
	"testing"
	"time"

	"renvask/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExport(t *testing.T) {
	logger := zerolog.Nop()
	e := NewExporter(t.TempDir(), &logger)

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	bookings := []*models.Booking{
		{
			Reference:       "RV-ABCD1234",
			ServiceName:     "Standard rengøring",
			AddOnIDs:        []string{"oven"},
			Frequency:       "weekly",
			TotalPrice:      850,
			DurationMinutes: 240,
			ScheduledAt:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			Status:          "confirmed",
			CustomerName:    "Mette Jensen",
			Email:           "mette@example.dk",
			Phone:           "+45 12 34 56 78",
			Street:          "Nørrebrogade 12",
			City:            "København",
			PostalCode:      "2200",
			PaymentMethod:   "card",
		},
	}

	path, err := e.Export(bookings, start, end)
	require.NoError(t, err)
	assert.Contains(t, path, "bookings_2026-03-02_to_2026-03-08.xlsx")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Bookinger", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Periode: 02.03.2026 - 08.03.2026", title)

	ref, err := f.GetCellValue("Bookinger", "A3")
	require.NoError(t, err)
	assert.Equal(t, "RV-ABCD1234", ref)

	timeRange, err := f.GetCellValue("Bookinger", "C3")
	require.NoError(t, err)
	assert.Equal(t, "10:00 - 14:00", timeRange)
}

func TestExport_EmptyRange(t *testing.T) {
	logger := zerolog.Nop()
	e := NewExporter(t.TempDir(), &logger)

	path, err := e.Export(nil, time.Now(), time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}
