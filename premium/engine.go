/*
engine.go - The accounting engine and its shared premium rules

PURPOSE:
  Engine bundles the read-only collaborators every aggregation needs (the
  holiday calendar, the night band, a logger) so that the monthly and the
  backup aggregators classify hours with exactly the same rules.

PREMIUM PRECEDENCE:
  Per shift, after its duration is resolved:
    1. night minutes are counted if night premium is enabled;
    2. the whole duration goes to holiday if holiday premium is enabled and
       the date is a holiday, ELSE to Sunday if Sunday premium is enabled
       and the date is a Sunday.
  The ELSE keeps a holiday that falls on a Sunday from being paid twice.

PRECISION:
  Totals are exact whole minutes (generic.Minutes). Conversion to hours and
  rounding to two decimals happen once, when the aggregate is built.

CONCURRENCY:
  An Engine is never mutated after NewEngine. Share one across goroutines.

SEE ALSO:
  - monthly.go: per-employee aggregation
  - backup.go: stand-in coverage aggregation
  - resolve.go: which start/end pair a shift is counted with
*/
package premium

import (
	"github.com/sirupsen/logrus"
	"github.com/warp/shift-ledger/generic"
)

// =============================================================================
// ENGINE
// =============================================================================

type Engine struct {
	holidays generic.HolidayCalendar
	night    NightWindow
	log      logrus.FieldLogger
}

type Option func(*Engine)

// WithHolidayCalendar replaces the default German calendar.
func WithHolidayCalendar(c generic.HolidayCalendar) Option {
	return func(e *Engine) {
		if c != nil {
			e.holidays = c
		}
	}
}

func WithNightWindow(w NightWindow) Option {
	return func(e *Engine) { e.night = w }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		holidays: DefaultHolidayCalendar(),
		night:    DefaultNightWindow,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Holidays exposes the calendar the engine classifies with.
func (e *Engine) Holidays() generic.HolidayCalendar { return e.holidays }

// =============================================================================
// PREMIUM TALLY - Shared by monthly and backup aggregation
// =============================================================================

type premiumTally struct {
	worked  generic.Minutes
	night   generic.Minutes
	sunday  generic.Minutes
	holiday generic.Minutes
}

func (e *Engine) count(t *premiumTally, sp Span, date generic.Date, cfg PremiumConfig) {
	minutes := sp.Minutes()
	t.worked += minutes

	if cfg.NightPremiumEnabled {
		t.night += e.night.Minutes(sp, date)
	}

	if cfg.HolidayPremiumEnabled && e.holidays.IsHoliday(date) {
		t.holiday += minutes
	} else if cfg.SundayPremiumEnabled && IsSunday(date) {
		t.sunday += minutes
	}
}

// recognized drops shifts whose status or absence type is outside the known
// enumerations. They contribute nothing and are reported once per shift.
func (e *Engine) recognized(s ShiftRecord) bool {
	if !s.Status.Known() {
		e.log.WithFields(logrus.Fields{
			"shift_id":    s.ID,
			"employee_id": s.EmployeeID,
			"date":        s.Date.String(),
			"status":      string(s.Status),
		}).Warn("skipping shift with unrecognized status")
		return false
	}
	if !s.AbsenceType.Known() {
		e.log.WithFields(logrus.Fields{
			"shift_id":     s.ID,
			"employee_id":  s.EmployeeID,
			"date":         s.Date.String(),
			"absence_type": string(s.AbsenceType),
		}).Warn("skipping shift with unrecognized absence type")
		return false
	}
	return true
}
