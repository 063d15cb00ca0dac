/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's types from the external API contract: hour amounts leave the
  engine as exact decimals and are rendered here as JSON numbers with two
  decimals.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Employee:  EmployeeDTO, PremiumsDTO, CreateEmployeeRequest
  Shift:     ShiftDTO, CreateShiftRequest
  Reports:   AggregateDTO, BackupDTO, MonthlyReportDTO
  Calendar:  HolidayDTO
  Scenarios: ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Request types carry validator/v10 struct tags. "clock" is a custom tag
  registered in handlers.go (HH:MM, 24:00 allowed, empty allowed).

SEE ALSO:
  - handlers.go: Uses these types
  - premium/types.go: Engine types these are converted from
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/shift-ledger/generic"
	"github.com/warp/shift-ledger/premium"
	"github.com/warp/shift-ledger/report"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

// PremiumsDTO is an employee's premium settings. Rates are percentages.
type PremiumsDTO struct {
	NightEnabled   bool    `json:"night_premium_enabled"`
	SundayEnabled  bool    `json:"sunday_premium_enabled"`
	HolidayEnabled bool    `json:"holiday_premium_enabled"`
	NightRate      float64 `json:"night_premium_rate" validate:"gte=0,lte=1000"`
	SundayRate     float64 `json:"sunday_premium_rate" validate:"gte=0,lte=1000"`
	HolidayRate    float64 `json:"holiday_premium_rate" validate:"gte=0,lte=1000"`
}

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email,omitempty"`
	Premiums PremiumsDTO `json:"premiums"`
}

// CreateEmployeeRequest creates or updates an employee. An empty ID gets a UUID.
type CreateEmployeeRequest struct {
	ID       string      `json:"id" validate:"omitempty,max=64"`
	Name     string      `json:"name" validate:"required,max=200"`
	Email    string      `json:"email" validate:"omitempty,email"`
	Premiums PremiumsDTO `json:"premiums"`
}

// =============================================================================
// SHIFTS
// =============================================================================

// ShiftDTO represents a shift record in API responses.
type ShiftDTO struct {
	ID               string `json:"id"`
	Date             string `json:"date"`
	PlannedStart     string `json:"planned_start,omitempty"`
	PlannedEnd       string `json:"planned_end,omitempty"`
	ActualStart      string `json:"actual_start,omitempty"`
	ActualEnd        string `json:"actual_end,omitempty"`
	AbsenceType      string `json:"absence_type,omitempty"`
	Status           string `json:"status"`
	EmployeeID       string `json:"employee_id"`
	BackupEmployeeID string `json:"backup_employee_id,omitempty"`
	Note             string `json:"note,omitempty"`
}

// CreateShiftRequest creates or replaces a shift. Date accepts "YYYY-MM-DD"
// or any ISO timestamp starting with one. An empty ID gets a UUID.
type CreateShiftRequest struct {
	ID               string `json:"id" validate:"omitempty,max=64"`
	Date             string `json:"date" validate:"required"`
	PlannedStart     string `json:"planned_start" validate:"required_with=PlannedEnd,clock"`
	PlannedEnd       string `json:"planned_end" validate:"required_with=PlannedStart,clock"`
	ActualStart      string `json:"actual_start" validate:"required_with=ActualEnd,clock"`
	ActualEnd        string `json:"actual_end" validate:"required_with=ActualStart,clock"`
	AbsenceType      string `json:"absence_type" validate:"omitempty,oneof=SICK VACATION"`
	Status           string `json:"status" validate:"required,oneof=PLANNED CONFIRMED CHANGED SUBMITTED COMPLETED CANCELLED"`
	EmployeeID       string `json:"employee_id" validate:"required"`
	BackupEmployeeID string `json:"backup_employee_id" validate:"omitempty,nefield=EmployeeID"`
	Note             string `json:"note" validate:"max=500"`
}

// =============================================================================
// REPORTS
// =============================================================================

// AggregateDTO is one employee's monthly statistics.
type AggregateDTO struct {
	EmployeeID    string      `json:"employee_id"`
	Name          string      `json:"name"`
	TotalHours    float64     `json:"total_hours"`
	NightHours    float64     `json:"night_hours"`
	SundayHours   float64     `json:"sunday_hours"`
	HolidayHours  float64     `json:"holiday_hours"`
	SickDays      int         `json:"sick_days"`
	SickHours     float64     `json:"sick_hours"`
	VacationDays  int         `json:"vacation_days"`
	VacationHours float64     `json:"vacation_hours"`
	BackupDays    int         `json:"backup_days"`
	BackupHours   float64     `json:"backup_hours"`
	Premiums      PremiumsDTO `json:"premiums"`
}

// BackupDTO is a worker's stand-in coverage for a month.
type BackupDTO struct {
	WorkerID     string  `json:"worker_id"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	Days         int     `json:"days"`
	CoveredDays  int     `json:"covered_days"`
	Hours        float64 `json:"hours"`
	NightHours   float64 `json:"night_hours"`
	SundayHours  float64 `json:"sunday_hours"`
	HolidayHours float64 `json:"holiday_hours"`
}

// MonthlyReportDTO is the all-employee report for one month.
type MonthlyReportDTO struct {
	Year        int            `json:"year"`
	Month       int            `json:"month"`
	PeriodStart string         `json:"period_start"`
	PeriodEnd   string         `json:"period_end"`
	Rows        []AggregateDTO `json:"rows"`
}

// =============================================================================
// CALENDAR / SCENARIOS / ERRORS
// =============================================================================

type HolidayDTO struct {
	Date    string `json:"date"`
	Name    string `json:"name"`
	Weekday string `json:"weekday"`
}

// ScenarioDTO describes a demo dataset.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Month       string `json:"month"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// FieldError names one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toPremiumsDTO(cfg premium.PremiumConfig) PremiumsDTO {
	return PremiumsDTO{
		NightEnabled:   cfg.NightPremiumEnabled,
		SundayEnabled:  cfg.SundayPremiumEnabled,
		HolidayEnabled: cfg.HolidayPremiumEnabled,
		NightRate:      cfg.NightPremiumRate.InexactFloat64(),
		SundayRate:     cfg.SundayPremiumRate.InexactFloat64(),
		HolidayRate:    cfg.HolidayPremiumRate.InexactFloat64(),
	}
}

func (p PremiumsDTO) toConfig() premium.PremiumConfig {
	return premium.PremiumConfig{
		NightPremiumEnabled:   p.NightEnabled,
		SundayPremiumEnabled:  p.SundayEnabled,
		HolidayPremiumEnabled: p.HolidayEnabled,
		NightPremiumRate:      decimal.NewFromFloat(p.NightRate),
		SundayPremiumRate:     decimal.NewFromFloat(p.SundayRate),
		HolidayPremiumRate:    decimal.NewFromFloat(p.HolidayRate),
	}
}

func toEmployeeDTO(e premium.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:       e.ID.String(),
		Name:     e.Name,
		Email:    e.Email,
		Premiums: toPremiumsDTO(e.Premiums),
	}
}

func toShiftDTO(s premium.ShiftRecord) ShiftDTO {
	return ShiftDTO{
		ID:               string(s.ID),
		Date:             s.Date.Key(),
		PlannedStart:     s.PlannedStart,
		PlannedEnd:       s.PlannedEnd,
		ActualStart:      s.ActualStart,
		ActualEnd:        s.ActualEnd,
		AbsenceType:      string(s.AbsenceType),
		Status:           string(s.Status),
		EmployeeID:       s.EmployeeID.String(),
		BackupEmployeeID: s.BackupEmployeeID.String(),
		Note:             s.Note,
	}
}

// ToAggregateDTO renders a report row with hours rounded to two decimals.
func ToAggregateDTO(row report.Row) AggregateDTO {
	a := row.Aggregate
	return AggregateDTO{
		EmployeeID:    row.Employee.ID.String(),
		Name:          row.Employee.Name,
		TotalHours:    a.TotalHours.Float64(),
		NightHours:    a.NightHours.Float64(),
		SundayHours:   a.SundayHours.Float64(),
		HolidayHours:  a.HolidayHours.Float64(),
		SickDays:      a.SickDays,
		SickHours:     a.SickHours.Float64(),
		VacationDays:  a.VacationDays,
		VacationHours: a.VacationHours.Float64(),
		BackupDays:    a.BackupDays,
		BackupHours:   a.BackupHours.Float64(),
		Premiums:      toPremiumsDTO(row.Employee.Premiums),
	}
}

// ToMonthlyReportDTO renders every row of a monthly report.
func ToMonthlyReportDTO(rep *report.MonthlyReport) MonthlyReportDTO {
	rows := make([]AggregateDTO, len(rep.Rows))
	for i, row := range rep.Rows {
		rows[i] = ToAggregateDTO(row)
	}
	return MonthlyReportDTO{
		Year:        rep.Period.Start.Year(),
		Month:       int(rep.Period.Start.Month()),
		PeriodStart: rep.Period.Start.Key(),
		PeriodEnd:   rep.Period.End.Key(),
		Rows:        rows,
	}
}

// ToBackupDTO renders a worker's coverage for the month of p.
func ToBackupDTO(b premium.BackupAggregate, p generic.Period) BackupDTO {
	return BackupDTO{
		WorkerID:     b.WorkerID.String(),
		Year:         p.Start.Year(),
		Month:        int(p.Start.Month()),
		Days:         b.Days,
		CoveredDays:  b.CoveredDays,
		Hours:        b.Hours.Float64(),
		NightHours:   b.NightHours.Float64(),
		SundayHours:  b.SundayHours.Float64(),
		HolidayHours: b.HolidayHours.Float64(),
	}
}
