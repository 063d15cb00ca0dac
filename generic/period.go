package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - The accounting window
// =============================================================================

// Period is an inclusive date range [Start, End].
// Monthly statistics are always computed for a period; the caller loads the
// period's shift records once and hands them to the engine.
type Period struct {
	Start Date
	End   Date
}

// MonthPeriod returns the calendar month as a period.
func MonthPeriod(year int, month time.Month) (Period, error) {
	if month < time.January || month > time.December {
		return Period{}, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}
	return Period{Start: StartOfMonth(year, month), End: EndOfMonth(year, month)}, nil
}

// MustMonthPeriod is MonthPeriod for fixtures.
func MustMonthPeriod(year int, month time.Month) Period {
	p, err := MonthPeriod(year, month)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate rejects periods whose end lies before their start.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return fmt.Errorf("%w: %s", ErrInvalidPeriod, p)
	}
	return nil
}

// Contains returns true if the date is within the period [Start, End]
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
