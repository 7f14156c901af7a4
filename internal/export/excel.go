package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"renvask/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Exporter writes booking schedules as Excel workbooks for the office.
type Exporter struct {
	dir    string
	logger *zerolog.Logger
}

func NewExporter(dir string, logger *zerolog.Logger) *Exporter {
	return &Exporter{dir: dir, logger: logger}
}

var headers = []string{
	"Reference", "Dato", "Tid", "Service", "Tillæg", "Frekvens",
	"Pris (kr.)", "Varighed (min.)", "Status", "Kunde", "Email", "Telefon",
	"Adresse", "Betaling",
}

// Export writes one workbook covering [startDate, endDate] and returns its path.
func (e *Exporter) Export(bookings []*models.Booking, startDate, endDate time.Time) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bookinger"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Periode: %s - %s",
		startDate.Format("02.01.2006"), endDate.Format("02.01.2006")))

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, h)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 3
		values := []interface{}{
			b.Reference,
			b.ScheduledAt.Format("02.01.2006"),
			fmt.Sprintf("%s - %s", b.ScheduledAt.Format("15:04"), b.EndsAt().Format("15:04")),
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
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 15)
	_ = f.SetColWidth(sheetName, "B", lastCol, 18)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s_to_%s.xlsx",
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"))
	filePath := filepath.Join(e.dir, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("Excel file created")
	return filePath, nil
}
