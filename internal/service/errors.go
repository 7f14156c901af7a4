package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSessionNotFound is returned when the session expired or never existed.
	ErrSessionNotFound = errors.New("booking session not found")
	// ErrStepNotReady is returned when a step is entered before its
	// prerequisites are complete.
	ErrStepNotReady = errors.New("previous step not completed")
	// ErrRateLimited is returned when one session exceeds its request budget.
	ErrRateLimited = errors.New("too many requests for this session")
)

// ValidationError carries per-field messages for the confirmation form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}
