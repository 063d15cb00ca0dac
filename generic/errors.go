/*
errors.go - Centralized error types for the shift ledger

PURPOSE:
  All error types in one place for consistency and discoverability.
  The accounting engine itself never returns errors (it degrades to zero
  hours); these are for parsing, storage and the API layer.

ERROR CATEGORIES:
  1. Parse errors - malformed dates and clock times
  2. Lookup errors - missing employees or shifts
  3. Validation errors - malformed periods

USAGE:
    if errors.Is(err, generic.ErrEmployeeNotFound) {
        writeError(w, http.StatusNotFound, ...)
    }
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a value cannot be read as a calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidClock is returned when a time-of-day is not HH:MM.
	ErrInvalidClock = errors.New("invalid clock time")

	// ErrInvalidPeriod is returned when a period is malformed (end before start, bad month).
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrShiftNotFound is returned when a referenced shift doesn't exist.
	ErrShiftNotFound = errors.New("shift not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotFoundError names the missing record.
type NotFoundError struct {
	Kind string // "employee", "shift"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	switch e.Kind {
	case "employee":
		return ErrEmployeeNotFound
	case "shift":
		return ErrShiftNotFound
	default:
		return nil
	}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidClock) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrShiftNotFound)
}
