/*
Package generic provides the domain-agnostic building blocks of the shift ledger.

PURPOSE:
  This package contains the value types every accounting component shares:
  quantities with a unit, date-only keys, clock times, accounting periods
  and per-date sets. Nothing here knows about shifts, premiums or backups;
  the premium package composes these into the accounting engine.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A quantity with a unit (e.g., 7.5 hours)
  - Minutes: Exact whole-minute accumulator
  - EmployeeID: Type-safe identifier for workers

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal so that 1/60 hour steps never drift
  2. Totals are summed as Minutes, never as rounded hours
  3. Rounding happens once, at output time (Round2)

USAGE:
  total := generic.Minutes(420) + generic.Minutes(20)
  fmt.Println(total.RoundedHours().Value)     // 7.33

SEE ALSO:
  - time.go: Date and ClockTime
  - period.go: Accounting periods
  - dateset.go: Per-date deduplication
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const UnitHours Unit = "hours"

var minutesPerHour = decimal.NewFromInt(60)

// ZeroHours is the additive identity for hour totals.
func ZeroHours() Amount { return Amount{Value: decimal.Zero, Unit: UnitHours} }

// Round2 rounds to two decimal places (half away from zero).
func (a Amount) Round2() Amount { return Amount{Value: a.Value.Round(2), Unit: a.Unit} }

// Float64 is for presentation layers (JSON, tables). Never feed it back into sums.
func (a Amount) Float64() float64 { return a.Value.InexactFloat64() }

func (a Amount) String() string { return a.Value.String() }

// =============================================================================
// MINUTES - Exact integer accumulator
// =============================================================================

// Minutes is an exact whole-minute duration. Totals are accumulated as
// Minutes and converted to hours only when an Amount is needed.
type Minutes int

// Hours converts to an hour Amount without rounding.
func (m Minutes) Hours() Amount {
	return Amount{Value: decimal.NewFromInt(int64(m)).Div(minutesPerHour), Unit: UnitHours}
}

// RoundedHours converts to hours rounded to two decimal places.
func (m Minutes) RoundedHours() Amount {
	return m.Hours().Round2()
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type ShiftID string

func (id EmployeeID) String() string { return string(id) }
