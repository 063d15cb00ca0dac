// Package premium implements the time and premium accounting engine.
// It turns daily shift records into monthly hour statistics: worked hours,
// night/Sunday/holiday premium hours, absence accounting and backup coverage.
// Every function here is pure over its inputs and safe to call concurrently.
package premium

import (
	"github.com/shopspring/decimal"
	"github.com/warp/shift-ledger/generic"
)

// =============================================================================
// SHIFT STATUS
// =============================================================================

type Status string

const (
	StatusPlanned   Status = "PLANNED"
	StatusConfirmed Status = "CONFIRMED"
	StatusChanged   Status = "CHANGED"
	StatusSubmitted Status = "SUBMITTED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lists every recognized status.
var Statuses = []Status{
	StatusPlanned, StatusConfirmed, StatusChanged,
	StatusSubmitted, StatusCompleted, StatusCancelled,
}

func (s Status) Known() bool {
	for _, k := range Statuses {
		if s == k {
			return true
		}
	}
	return false
}

// Committed is true once the shift is a confirmed obligation, i.e. its
// planned times may stand in for missing actual times.
func (s Status) Committed() bool {
	switch s {
	case StatusConfirmed, StatusChanged, StatusSubmitted, StatusCompleted:
		return true
	}
	return false
}

// =============================================================================
// ABSENCE TYPE
// =============================================================================

type AbsenceType string

const (
	AbsenceNone     AbsenceType = ""
	AbsenceSick     AbsenceType = "SICK"
	AbsenceVacation AbsenceType = "VACATION"
)

func (a AbsenceType) IsAbsence() bool { return a != AbsenceNone }

func (a AbsenceType) Known() bool {
	return a == AbsenceNone || a == AbsenceSick || a == AbsenceVacation
}

// =============================================================================
// SHIFT RECORD - One calendar-day work unit
// =============================================================================

// ShiftRecord is one work segment of one worker on one calendar day.
// A worker may have several segments on the same day.
// Clock fields hold "HH:MM" or "" when absent.
type ShiftRecord struct {
	ID               generic.ShiftID    `json:"id,omitempty"`
	Date             generic.Date       `json:"date"`
	PlannedStart     string             `json:"planned_start,omitempty"`
	PlannedEnd       string             `json:"planned_end,omitempty"`
	ActualStart      string             `json:"actual_start,omitempty"`
	ActualEnd        string             `json:"actual_end,omitempty"`
	AbsenceType      AbsenceType        `json:"absence_type,omitempty"`
	Status           Status             `json:"status"`
	EmployeeID       generic.EmployeeID `json:"employee_id"`
	BackupEmployeeID generic.EmployeeID `json:"backup_employee_id,omitempty"`
	Note             string             `json:"note,omitempty"`
}

// HasBackup reports whether a stand-in is designated for this shift.
func (s ShiftRecord) HasBackup() bool { return s.BackupEmployeeID != "" }

// =============================================================================
// PREMIUM CONFIG - Per-employee premium settings
// =============================================================================

// PremiumConfig switches premium categories on or off for an employee.
// Rates are percentages carried through to payroll; the engine only counts hours.
type PremiumConfig struct {
	NightPremiumEnabled   bool            `json:"night_premium_enabled"`
	SundayPremiumEnabled  bool            `json:"sunday_premium_enabled"`
	HolidayPremiumEnabled bool            `json:"holiday_premium_enabled"`
	NightPremiumRate      decimal.Decimal `json:"night_premium_rate"`
	SundayPremiumRate     decimal.Decimal `json:"sunday_premium_rate"`
	HolidayPremiumRate    decimal.Decimal `json:"holiday_premium_rate"`
}

// AllPremiums enables every category with zero rates.
func AllPremiums() PremiumConfig {
	return PremiumConfig{NightPremiumEnabled: true, SundayPremiumEnabled: true, HolidayPremiumEnabled: true}
}

// Employee is a worker together with the premium settings applied to them.
type Employee struct {
	ID       generic.EmployeeID `json:"id"`
	Name     string             `json:"name"`
	Email    string             `json:"email,omitempty"`
	Premiums PremiumConfig      `json:"premiums"`
}

// =============================================================================
// OUTPUTS
// =============================================================================

// MonthlyAggregate is one employee's statistics for one period.
// All hour amounts are rounded to two decimal places.
//
// INVARIANTS:
//   - A shift's hours go to at most one of HolidayHours and SundayHours.
//   - SickDays and VacationDays count distinct dates, not segments.
//   - BackupHours are already included in TotalHours.
type MonthlyAggregate struct {
	TotalHours    generic.Amount
	NightHours    generic.Amount
	SundayHours   generic.Amount
	HolidayHours  generic.Amount
	SickDays      int
	SickHours     generic.Amount
	VacationDays  int
	VacationHours generic.Amount

	// BackupDays counts covered days only: dates on which the worker stood in
	// for an absent owner. Duty-only dates are in BackupAggregate.Days.
	BackupDays  int
	BackupHours generic.Amount
}

// BackupAggregate is a worker's stand-in coverage for one period.
type BackupAggregate struct {
	WorkerID generic.EmployeeID

	// Days counts every date the worker was designated as backup,
	// whether or not the owner was absent.
	Days int

	// CoveredDays counts dates on which the owner was actually absent.
	CoveredDays int

	Hours        generic.Amount
	NightHours   generic.Amount
	SundayHours  generic.Amount
	HolidayHours generic.Amount

	// CoveredMinutes is Hours before rounding, so that folding into a
	// MonthlyAggregate does not round twice.
	CoveredMinutes generic.Minutes `json:"-"`
}
