package generic

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// DATE - Calendar day without time-of-day or zone
// =============================================================================

const dateLayout = "2006-01-02"

// Date is a calendar day. The zero value is "no date".
// Internally it is always midnight UTC so that equal days compare equal.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf takes the calendar day of t as seen in t's own location.
// A value like 2026-04-05T00:00:00+02:00 stays on April 5th.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts "2006-01-02" and any ISO-8601 timestamp that starts with
// a date ("2026-04-05T00:00:00.000Z", "2026-04-05 22:00:00+02:00"). Only the
// leading date is used; time-of-day and offset are discarded.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) < len(dateLayout) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// NormalizeDate accepts the shapes storage layers hand us for a date column.
func NormalizeDate(v any) (Date, error) {
	switch x := v.(type) {
	case Date:
		return x, nil
	case time.Time:
		return DateOf(x), nil
	case *time.Time:
		if x == nil {
			return Date{}, fmt.Errorf("%w: nil time", ErrInvalidDate)
		}
		return DateOf(*x), nil
	case string:
		return ParseDate(x)
	case []byte:
		return ParseDate(string(x))
	default:
		return Date{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, v)
	}
}

// Comparison
func (d Date) Before(other Date) bool        { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool         { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool         { return d.Time.Equal(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int              { return d.Time.Year() }
func (d Date) Month() time.Month      { return d.Time.Month() }
func (d Date) Day() int               { return d.Time.Day() }
func (d Date) Weekday() time.Weekday  { return d.Time.Weekday() }
func (d Date) IsZero() bool           { return d.Time.IsZero() }

// Key is the normalized map key for per-date bookkeeping.
func (d Date) Key() string { return d.Time.Format(dateLayout) }

func (d Date) String() string { return d.Key() }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Key())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// CLOCK TIME - Minutes since midnight
// =============================================================================

// ClockTime is a time-of-day in whole minutes, 0..1440.
// 1440 only arises from the literal "24:00".
type ClockTime int

const (
	Midnight      ClockTime = 0
	MinutesPerDay           = 24 * 60
	EndOfDay      ClockTime = MinutesPerDay
)

func NewClock(hour, minute int) ClockTime { return ClockTime(hour*60 + minute) }

// ParseClock parses "HH:MM" (one-digit hours and a trailing ":SS" are tolerated).
func ParseClock(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if !digits(parts[0]) || len(parts[0]) > 2 || !digits(parts[1]) || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if len(parts) == 3 && (!digits(parts[2]) || len(parts[2]) != 2) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	if h == 24 && m == 0 {
		return EndOfDay, nil
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return NewClock(h, m), nil
}

// digits rejects signs and spaces that strconv.Atoi would accept.
func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// =============================================================================
// HOLIDAY CALENDAR - Statutory holiday lookup
// =============================================================================

// Holiday is a named statutory holiday on a specific date.
type Holiday struct {
	Date Date   `json:"date"`
	Name string `json:"name"`
}

// HolidayCalendar provides holiday lookup functionality.
// Implementations must be safe for concurrent reads.
type HolidayCalendar interface {
	// IsHoliday reports whether date is a recognized statutory holiday.
	IsHoliday(date Date) bool

	// Holidays returns the holidays of a year in date order.
	Holidays(year int) []Holiday
}

// NoHolidays is a calendar without holidays, for when holiday premiums are
// not tracked at all.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(Date) bool     { return false }
func (NoHolidays) Holidays(int) []Holiday { return nil }

// =============================================================================
// TIME UTILITIES
// =============================================================================

func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }
func EndOfMonth(year int, month time.Month) Date {
	return NewDate(year, month+1, 1).AddDays(-1)
}
