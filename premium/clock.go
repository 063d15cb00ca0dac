/*
clock.go - Duration and night-window arithmetic on HH:MM clock times

PURPOSE:
  A shift is a (start, end) pair of clock times on one calendar date.
  This file turns such a pair into elapsed minutes and into the part of
  those minutes that falls inside the nightly premium band.

WRAPAROUND RULE:
  end - start <= 0 means the shift crosses midnight, so one day is added.
  The pair 00:00-00:00 is therefore a full 24 hour shift, never 0.

NIGHT WINDOW:
  The default band is 23:00-06:00. A shift is laid out on an absolute
  minute axis starting on its own date ([start, start+duration), at most
  two days long) and intersected with the band on the previous, same and
  next night. The bands are disjoint so nothing is counted twice:

      day -1            day 0                   day +1
   ..[23:00  06:00)......[23:00        06:00)......[23:00 ...

EXAMPLES:
  HoursBetween("22:00", "06:00")           = 8
  HoursBetween("00:00", "00:00")           = 24
  NightHours("22:00", "06:00", date)       = 7
  NightHours("00:00", "00:00", date)       = 7   (00-06 tail + 23-24 head)
  NightHours("08:00", "23:00", date)       = 0
*/
package premium

import (
	"time"

	"github.com/warp/shift-ledger/generic"
)

// =============================================================================
// SPAN - A resolved start/end pair
// =============================================================================

// Span is a parsed (start, end) pair of clock times.
type Span struct {
	Start generic.ClockTime
	End   generic.ClockTime
}

// ParseSpan parses both ends. ok is false if either is empty or malformed.
func ParseSpan(start, end string) (Span, bool) {
	if start == "" || end == "" {
		return Span{}, false
	}
	s, err := generic.ParseClock(start)
	if err != nil {
		return Span{}, false
	}
	e, err := generic.ParseClock(end)
	if err != nil {
		return Span{}, false
	}
	return Span{Start: s, End: e}, true
}

// Minutes returns the elapsed minutes, in (0, 1440].
func (sp Span) Minutes() generic.Minutes {
	start := sp.normalizedStart()
	diff := int(sp.End) - int(start)
	if diff <= 0 {
		diff += generic.MinutesPerDay
	}
	return generic.Minutes(diff)
}

// Hours returns the elapsed hours without rounding.
func (sp Span) Hours() generic.Amount { return sp.Minutes().Hours() }

// "24:00" as a start is the same instant as "00:00".
func (sp Span) normalizedStart() generic.ClockTime {
	if sp.Start == generic.EndOfDay {
		return generic.Midnight
	}
	return sp.Start
}

// HoursBetween returns the elapsed hours between two HH:MM values.
// Malformed or missing values yield zero.
func HoursBetween(start, end string) generic.Amount {
	sp, ok := ParseSpan(start, end)
	if !ok {
		return generic.ZeroHours()
	}
	return sp.Hours()
}

// =============================================================================
// NIGHT WINDOW
// =============================================================================

// NightWindow is the nightly premium band [Start, End). End <= Start means
// the band crosses midnight.
type NightWindow struct {
	Start generic.ClockTime
	End   generic.ClockTime
}

// DefaultNightWindow is 23:00-06:00, seven hours per night.
var DefaultNightWindow = NightWindow{
	Start: generic.NewClock(23, 0),
	End:   generic.NewClock(6, 0),
}

// ParseNightWindow builds a band from two HH:MM values.
func ParseNightWindow(start, end string) (NightWindow, error) {
	s, err := generic.ParseClock(start)
	if err != nil {
		return NightWindow{}, err
	}
	e, err := generic.ParseClock(end)
	if err != nil {
		return NightWindow{}, err
	}
	return NightWindow{Start: s, End: e}, nil
}

// Minutes returns how much of sp falls inside the band.
// date is accepted for jurisdictions whose band varies by day; the band is
// currently the same every night.
func (w NightWindow) Minutes(sp Span, date generic.Date) generic.Minutes {
	_ = date

	start := int(sp.normalizedStart())
	end := start + int(sp.Minutes())

	total := 0
	for day := -1; day <= 1; day++ {
		lo := day*generic.MinutesPerDay + int(w.Start)
		hi := day*generic.MinutesPerDay + int(w.End)
		if w.End <= w.Start {
			hi += generic.MinutesPerDay
		}
		total += max(0, min(end, hi)-max(start, lo))
	}
	return generic.Minutes(total)
}

// Hours parses the pair and returns night hours; malformed input yields zero.
func (w NightWindow) Hours(start, end string, date generic.Date) generic.Amount {
	sp, ok := ParseSpan(start, end)
	if !ok {
		return generic.ZeroHours()
	}
	return w.Minutes(sp, date).Hours()
}

// NightHours uses DefaultNightWindow.
func NightHours(start, end string, date generic.Date) generic.Amount {
	return DefaultNightWindow.Hours(start, end, date)
}

// =============================================================================
// DAY CLASSIFIER
// =============================================================================

// IsSunday is a plain weekday check with no calendar-year restriction.
func IsSunday(date generic.Date) bool {
	return date.Weekday() == time.Sunday
}
