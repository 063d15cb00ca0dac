package premium

import (
	"github.com/warp/shift-ledger/generic"
)

// =============================================================================
// MONTHLY AGGREGATION
// =============================================================================

// Aggregate computes one employee's statistics from that employee's shifts.
//
// Per shift:
//   - PLANNED and CANCELLED shifts are skipped entirely.
//   - Absences add their planned duration (actual if planned is missing) to
//     sick or vacation hours; their dates are counted once per day.
//   - Worked shifts are counted with WorkedTimes and classified for night,
//     holiday and Sunday premiums.
//
// backup may be nil. When given, its covered hours and covered days are
// folded into TotalHours, BackupHours and BackupDays.
func (e *Engine) Aggregate(shifts []ShiftRecord, cfg PremiumConfig, backup *BackupAggregate) MonthlyAggregate {
	var (
		worked       premiumTally
		sickMinutes  generic.Minutes
		vacMinutes   generic.Minutes
		sickDays     = generic.NewDateSet()
		vacationDays = generic.NewDateSet()
	)

	for _, s := range shifts {
		if !e.recognized(s) {
			continue
		}
		if s.Status == StatusPlanned || s.Status == StatusCancelled {
			continue
		}

		switch s.AbsenceType {
		case AbsenceSick:
			sickDays.Add(s.Date)
			if sp, ok := AbsenceTimes.Resolve(s); ok {
				sickMinutes += sp.Minutes()
			}
		case AbsenceVacation:
			vacationDays.Add(s.Date)
			if sp, ok := AbsenceTimes.Resolve(s); ok {
				vacMinutes += sp.Minutes()
			}
		default:
			if sp, ok := WorkedTimes.Resolve(s); ok {
				e.count(&worked, sp, s.Date, cfg)
			}
		}
	}

	total := worked.worked
	agg := MonthlyAggregate{
		NightHours:    worked.night.RoundedHours(),
		SundayHours:   worked.sunday.RoundedHours(),
		HolidayHours:  worked.holiday.RoundedHours(),
		SickDays:      sickDays.Len(),
		SickHours:     sickMinutes.RoundedHours(),
		VacationDays:  vacationDays.Len(),
		VacationHours: vacMinutes.RoundedHours(),
		BackupHours:   generic.ZeroHours(),
	}

	if backup != nil {
		total += backup.CoveredMinutes
		agg.BackupDays = backup.CoveredDays
		agg.BackupHours = backup.CoveredMinutes.RoundedHours()
	}
	agg.TotalHours = total.RoundedHours()
	return agg
}

// AggregateWithPeriod is Aggregate with the backup coverage of employeeID
// computed from the period's full cross-team shift set. all may be nil, in
// which case no backup coverage is folded in.
func (e *Engine) AggregateWithPeriod(employeeID generic.EmployeeID, shifts []ShiftRecord, cfg PremiumConfig, all []ShiftRecord) MonthlyAggregate {
	if all == nil {
		return e.Aggregate(shifts, cfg, nil)
	}
	backup := e.AggregateBackup(all, employeeID, cfg)
	return e.Aggregate(shifts, cfg, &backup)
}
