package premium

import (
	"github.com/sirupsen/logrus"
	"github.com/warp/shift-ledger/generic"
)

// =============================================================================
// BACKUP AGGREGATION
// =============================================================================

// AggregateBackup computes what workerID covered as a designated stand-in
// across the period's full shift set.
//
//   - Days counts every date the worker is designated as backup on a shift
//     that is not CANCELLED, whether or not the owner was absent.
//   - Hours, premium subtotals and CoveredDays only count shifts whose owner
//     is flagged absent. PLANNED shifts are duty days but never hours.
//   - Durations use WorkedTimes and the same premium precedence as the
//     monthly aggregation. Missing times give a day with zero hours.
func (e *Engine) AggregateBackup(all []ShiftRecord, workerID generic.EmployeeID, cfg PremiumConfig) BackupAggregate {
	result := BackupAggregate{
		WorkerID:     workerID,
		Hours:        generic.ZeroHours(),
		NightHours:   generic.ZeroHours(),
		SundayHours:  generic.ZeroHours(),
		HolidayHours: generic.ZeroHours(),
	}
	if workerID == "" {
		return result
	}

	var (
		covered  premiumTally
		duty     = generic.NewDateSet()
		absentOn = generic.NewDateSet()
	)

	for _, s := range all {
		if s.BackupEmployeeID != workerID {
			continue
		}
		if !e.recognized(s) || s.Status == StatusCancelled {
			continue
		}
		if s.EmployeeID == workerID {
			e.log.WithFields(logrus.Fields{
				"shift_id":    s.ID,
				"employee_id": s.EmployeeID,
				"date":        s.Date.String(),
			}).Debug("ignoring shift listing its owner as backup")
			continue
		}

		duty.Add(s.Date)
		if !s.AbsenceType.IsAbsence() || s.Status == StatusPlanned {
			continue
		}

		absentOn.Add(s.Date)
		if sp, ok := WorkedTimes.Resolve(s); ok {
			e.count(&covered, sp, s.Date, cfg)
		}
	}

	result.Days = duty.Len()
	result.CoveredDays = absentOn.Len()
	result.CoveredMinutes = covered.worked
	result.Hours = covered.worked.RoundedHours()
	result.NightHours = covered.night.RoundedHours()
	result.SundayHours = covered.sunday.RoundedHours()
	result.HolidayHours = covered.holiday.RoundedHours()
	return result
}
