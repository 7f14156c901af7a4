package models

import "time"

// TimeSlot is a discrete bookable interval. Slots are recomputed on every
// calendar query, never persisted.
type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

// DayOverview summarizes one calendar day for the date picker.
type DayOverview struct {
	Date       string     `json:"date"` // YYYY-MM-DD
	Selectable bool       `json:"selectable"`
	Slots      []TimeSlot `json:"slots"`
}
