package premium

import (
	"sync"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/warp/shift-ledger/generic"
)

// =============================================================================
// HOLIDAY CALENDAR - Precomputed statutory holidays
// =============================================================================

// Supported years of the default calendar. Outside this span IsHoliday is
// always false.
const (
	DefaultFirstYear = 2026
	DefaultLastYear  = 2035
)

// HolidayCalendar is an immutable set of holiday dates for a bounded span of
// years. Fixed-date rules (Neujahr, Tag der Arbeit, Weihnachten) and
// Easter-relative rules (Karfreitag, Ostermontag, Himmelfahrt, Pfingstmontag)
// are expanded once at construction; lookups are map reads.
type HolidayCalendar struct {
	firstYear int
	lastYear  int
	byKey     map[string]generic.Holiday
	byYear    map[int][]generic.Holiday
}

var _ generic.HolidayCalendar = (*HolidayCalendar)(nil)

// NewHolidayCalendar expands rules for every day of [firstYear, lastYear].
// With no rules the German nationwide holidays are used.
func NewHolidayCalendar(firstYear, lastYear int, rules ...*cal.Holiday) *HolidayCalendar {
	if len(rules) == 0 {
		rules = de.Holidays
	}

	hc := &HolidayCalendar{
		firstYear: firstYear,
		lastYear:  lastYear,
		byKey:     make(map[string]generic.Holiday),
		byYear:    make(map[int][]generic.Holiday),
	}
	if lastYear < firstYear {
		return hc
	}

	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(rules...)

	last := generic.NewDate(lastYear, time.December, 31)
	for d := generic.NewDate(firstYear, time.January, 1); d.BeforeOrEqual(last); d = d.AddDays(1) {
		actual, _, h := bc.IsHoliday(d.Time)
		if !actual || h == nil {
			continue
		}
		holiday := generic.Holiday{Date: d, Name: h.Name}
		hc.byKey[d.Key()] = holiday
		hc.byYear[d.Year()] = append(hc.byYear[d.Year()], holiday)
	}
	return hc
}

var defaultCalendar = sync.OnceValue(func() *HolidayCalendar {
	return NewHolidayCalendar(DefaultFirstYear, DefaultLastYear)
})

// DefaultHolidayCalendar is the shared German calendar for 2026-2035.
func DefaultHolidayCalendar() *HolidayCalendar { return defaultCalendar() }

// IsHoliday looks the date up in the default calendar.
func IsHoliday(date generic.Date) bool { return DefaultHolidayCalendar().IsHoliday(date) }

// IsHoliday reports whether date is a statutory holiday. A holiday on a
// Sunday is still a holiday; precedence is decided by the aggregator.
func (hc *HolidayCalendar) IsHoliday(date generic.Date) bool {
	_, ok := hc.byKey[date.Key()]
	return ok
}

// Name returns the holiday's name, or "" for ordinary days.
func (hc *HolidayCalendar) Name(date generic.Date) string {
	return hc.byKey[date.Key()].Name
}

// Holidays returns the year's holidays in date order; nil outside the span.
func (hc *HolidayCalendar) Holidays(year int) []generic.Holiday {
	src := hc.byYear[year]
	if len(src) == 0 {
		return nil
	}
	out := make([]generic.Holiday, len(src))
	copy(out, src)
	return out
}

// Span returns the supported years.
func (hc *HolidayCalendar) Span() (first, last int) { return hc.firstYear, hc.lastYear }
