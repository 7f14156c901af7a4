package database

import "errors"

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotAvailable is returned when every team is already booked for the
	// requested interval.
	ErrNotAvailable = errors.New("time slot not available")
	// ErrPastDate is returned for bookings scheduled before now.
	ErrPastDate = errors.New("date is in the past")
	// ErrDateTooFar is returned when the date exceeds the booking horizon.
	ErrDateTooFar = errors.New("date is too far in the future")
	// ErrVersionConflict is returned when an optimistic update lost the race.
	ErrVersionConflict = errors.New("booking was modified concurrently")
	// ErrDuplicateReference is returned when a booking reference already exists.
	ErrDuplicateReference = errors.New("booking reference already exists")
)
