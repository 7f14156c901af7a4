package pricing

import (
	"fmt"
	"math"

	"renvask/internal/models"
)

// Frequency is how often the cleaning repeats. Each value carries a fixed
// recurrence discount.
type Frequency string

const (
	OneTime  Frequency = "one_time"
	Weekly   Frequency = "weekly"
	BiWeekly Frequency = "bi_weekly"
	Monthly  Frequency = "monthly"
)

var discounts = map[Frequency]float64{
	OneTime:  0,
	Weekly:   0.15,
	BiWeekly: 0.10,
	Monthly:  0.05,
}

// ParseFrequency validates a raw frequency string.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	if _, ok := discounts[f]; !ok {
		return "", fmt.Errorf("unknown frequency: %s", s)
	}
	return f, nil
}

// Discount returns the recurrence discount rate for a frequency. Unknown
// frequencies get no discount rather than an error; callers validate input
// with ParseFrequency.
func Discount(f Frequency) float64 {
	return discounts[f]
}

// Quote is a computed price/duration offer. Price is in whole DKK.
type Quote struct {
	ServiceID       string    `json:"service_id"`
	AddOnIDs        []string  `json:"add_on_ids,omitempty"`
	Frequency       Frequency `json:"frequency"`
	BasePrice       int64     `json:"base_price"`
	AddOnPrice      int64     `json:"add_on_price"`
	Discount        float64   `json:"discount"`
	TotalPrice      int64     `json:"total_price"`
	DurationMinutes int       `json:"duration_minutes"`
}

// Compute is the single quote implementation. The selection summary and the
// confirmation page must both go through it so they can never disagree.
// The discount applies to the full price and the result is rounded once,
// to the nearest whole krone.
func Compute(service models.Service, addOns []models.AddOn, frequency Frequency) Quote {
	var addOnPrice int64
	duration := service.DurationMinutes
	ids := make([]string, 0, len(addOns))

	for _, a := range addOns {
		addOnPrice += a.PriceDelta
		duration += a.DurationDeltaMinutes
		ids = append(ids, a.ID)
	}

	discount := Discount(frequency)
	gross := service.BasePrice + addOnPrice
	total := int64(math.Round(float64(gross) * (1 - discount)))

	return Quote{
		ServiceID:       service.ID,
		AddOnIDs:        ids,
		Frequency:       frequency,
		BasePrice:       service.BasePrice,
		AddOnPrice:      addOnPrice,
		Discount:        discount,
		TotalPrice:      total,
		DurationMinutes: duration,
	}
}
