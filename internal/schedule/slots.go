package schedule

import (
	"context"
	"time"

	"renvask/internal/config"
	"renvask/internal/models"
)

// AvailabilityProvider answers which slots of a day can still be booked.
// The API layer depends on this interface only, so the capacity source can
// be swapped without touching handlers.
type AvailabilityProvider interface {
	Slots(ctx context.Context, date time.Time) ([]models.TimeSlot, error)
}

// BookingSource supplies the bookings that consume capacity on a date.
type BookingSource interface {
	ListForDate(ctx context.Context, date time.Time) ([]models.Booking, error)
}

// Generator produces the bookable slot grid from working hours:
// Sundays closed, Saturdays short day, hourly slots otherwise.
type Generator struct {
	cfg config.BookingConfig
	loc *time.Location
	now func() time.Time
}

func NewGenerator(cfg config.BookingConfig) (*Generator, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, loc: loc, now: time.Now}, nil
}

// NewGeneratorAt is NewGenerator with an explicit clock source.
func NewGeneratorAt(cfg config.BookingConfig, now func() time.Time) (*Generator, error) {
	gen, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	gen.now = now
	return gen, nil
}

// Location returns the business timezone.
func (g *Generator) Location() *time.Location {
	return g.loc
}

// Now returns the current time on the business clock. Every past-or-future
// decision in the booking path goes through this so they can not disagree.
func (g *Generator) Now() time.Time {
	return g.now().In(g.loc)
}

// workingHours returns the open/close hours for a weekday. Sunday is
// closed and reports ok=false.
func (g *Generator) workingHours(day time.Weekday) (open, close int, ok bool) {
	switch day {
	case time.Sunday:
		return 0, 0, false
	case time.Saturday:
		return g.cfg.SaturdayOpenHour, g.cfg.SaturdayCloseHour, true
	default:
		return g.cfg.WeekdayOpenHour, g.cfg.WeekdayCloseHour, true
	}
}

// Grid returns every slot of the day regardless of capacity. Slots in the
// past are marked unavailable so today's morning can not be booked in the
// afternoon.
func (g *Generator) Grid(date time.Time) []models.TimeSlot {
	date = date.In(g.loc)
	open, close, ok := g.workingHours(date.Weekday())
	if !ok {
		return nil
	}

	now := g.now().In(g.loc)
	slots := make([]models.TimeSlot, 0, close-open)
	for hour := open; hour < close; hour++ {
		start := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, g.loc)
		slot := models.TimeSlot{
			Start:     start,
			End:       start.Add(models.SlotMinutes * time.Minute),
			Available: true,
		}
		if !start.After(now) {
			slot.Available = false
			slot.Reason = "past"
		}
		slots = append(slots, slot)
	}
	return slots
}

// CapacityProvider marks grid slots unavailable once every team is taken.
// A slot is occupied by a booking when the booking's scheduled interval
// overlaps it, so a three-hour cleaning blocks three consecutive slots.
type CapacityProvider struct {
	gen    *Generator
	source BookingSource
	teams  int
}

func NewCapacityProvider(gen *Generator, source BookingSource, teams int) *CapacityProvider {
	if teams <= 0 {
		teams = models.DefaultTeams
	}
	return &CapacityProvider{gen: gen, source: source, teams: teams}
}

func (p *CapacityProvider) Slots(ctx context.Context, date time.Time) ([]models.TimeSlot, error) {
	grid := p.gen.Grid(date)
	if len(grid) == 0 {
		return nil, nil
	}

	bookings, err := p.source.ListForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	for i := range grid {
		if !grid[i].Available {
			continue
		}
		busy := 0
		for _, b := range bookings {
			if b.ConsumesCapacity() && b.Overlaps(grid[i].Start, grid[i].End) {
				busy++
			}
		}
		if busy >= p.teams {
			grid[i].Available = false
			grid[i].Reason = "fully booked"
		}
	}
	return grid, nil
}

// SlotAt returns the slot starting exactly at start, or ok=false when the
// day has no such slot.
func SlotAt(slots []models.TimeSlot, start time.Time) (models.TimeSlot, bool) {
	for _, s := range slots {
		if s.Start.Equal(start) {
			return s, true
		}
	}
	return models.TimeSlot{}, false
}

// daySelectable: today-or-later with at least one open slot.
func daySelectable(date, today time.Time, slots []models.TimeSlot) bool {
	if date.Before(today) {
		return false
	}
	for _, s := range slots {
		if s.Available {
			return true
		}
	}
	return false
}

// MonthOverview computes the date picker's view of a month: each day with
// its slots and whether it can be selected.
func MonthOverview(ctx context.Context, provider AvailabilityProvider, gen *Generator, year int, month time.Month) ([]models.DayOverview, error) {
	loc := gen.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	now := gen.now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	days := make([]models.DayOverview, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		slots, err := provider.Slots(ctx, d)
		if err != nil {
			return nil, err
		}
		days = append(days, models.DayOverview{
			Date:       d.Format("2006-01-02"),
			Selectable: daySelectable(d, today, slots),
			Slots:      slots,
		})
	}
	return days, nil
}
