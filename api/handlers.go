/*
handlers.go - HTTP API handlers for the shift ledger

PURPOSE:
  Exposes shift storage and the accounting engine via REST API. Handles
  HTTP request/response, JSON serialization, input validation, and
  delegates aggregation to the report runner.

ENDPOINTS:
  Health:
    GET    /api/health                          Liveness

  Employees:
    GET    /api/employees                       List all employees
    POST   /api/employees                       Create or update employee
    GET    /api/employees/{id}                  Get employee details
    GET    /api/employees/{id}/aggregate        Monthly statistics (?year=&month=)
    GET    /api/employees/{id}/backup           Backup coverage (?year=&month=)

  Shifts:
    GET    /api/shifts                          Shifts of a month (?year=&month=[&employee_id=])
    POST   /api/shifts                          Create or replace a shift

  Reports:
    GET    /api/reports/monthly                 All employees (?year=&month=)

  Calendar:
    GET    /api/holidays                        Statutory holidays (?year=)

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Employee and shift persistence
  - Runner: Period reports on top of the engine
  - validate: Request validation (validator/v10)

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid dates, clocks or periods
  - 404: Employee or shift not found
  - 500: Internal errors (logged)

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo datasets
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/warp/shift-ledger/generic"
	"github.com/warp/shift-ledger/premium"
	"github.com/warp/shift-ledger/report"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Store is the persistence the API needs. Implemented by store/sqlite and store/memory.
type Store interface {
	report.Source
	SaveEmployee(ctx context.Context, emp premium.Employee) error
	SaveShift(ctx context.Context, s premium.ShiftRecord) error
	ShiftsForEmployee(ctx context.Context, id generic.EmployeeID, p generic.Period) ([]premium.ShiftRecord, error)
	GetShift(ctx context.Context, id generic.ShiftID) (*premium.ShiftRecord, error)
	Reset(ctx context.Context) error
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  Store
	Runner *report.Runner

	validate *validator.Validate
	log      logrus.FieldLogger

	// Track currently loaded scenario
	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler. A nil runner aggregates with the
// default engine; a nil logger uses the logrus standard logger.
func NewHandler(store Store, runner *report.Runner, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if runner == nil {
		runner = report.NewRunner(store, nil, report.WithLogger(log))
	}
	return &Handler{
		Store:    store,
		Runner:   runner,
		validate: newValidator(),
		log:      log,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("clock", validClock); err != nil {
		panic(err)
	}
	return v
}

// validClock accepts "" or an HH:MM clock time.
func validClock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := generic.ParseClock(s)
	return err == nil
}

// =============================================================================
// HEALTH
// =============================================================================

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := generic.EmployeeID(chi.URLParam(r, "id"))

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		h.fail(w, r, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates an employee, or updates it when the ID exists.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	emp := premium.Employee{
		ID:       generic.EmployeeID(req.ID),
		Name:     req.Name,
		Email:    req.Email,
		Premiums: req.Premiums.toConfig(),
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		h.fail(w, r, "Failed to save employee", err)
		return
	}

	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetAggregate returns one employee's statistics for a month, backup
// coverage included.
func (h *Handler) GetAggregate(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	id := generic.EmployeeID(chi.URLParam(r, "id"))

	row, err := h.Runner.Employee(r.Context(), id, period)
	if err != nil {
		h.fail(w, r, "Failed to aggregate employee", err)
		return
	}
	writeJSON(w, http.StatusOK, ToAggregateDTO(*row))
}

// GetBackup returns what the employee covered as a designated stand-in.
func (h *Handler) GetBackup(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	id := generic.EmployeeID(chi.URLParam(r, "id"))

	backup, err := h.Runner.Backup(r.Context(), id, period)
	if err != nil {
		h.fail(w, r, "Failed to aggregate backup coverage", err)
		return
	}
	writeJSON(w, http.StatusOK, ToBackupDTO(*backup, period))
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListShifts returns the shifts of a month, optionally for one employee.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(w, r)
	if !ok {
		return
	}
	employeeID := generic.EmployeeID(r.URL.Query().Get("employee_id"))

	var (
		shifts []premium.ShiftRecord
		err    error
	)
	if employeeID != "" {
		shifts, err = h.Store.ShiftsForEmployee(r.Context(), employeeID, period)
	} else {
		shifts, err = h.Store.ShiftsInPeriod(r.Context(), period)
	}
	if err != nil {
		h.fail(w, r, "Failed to list shifts", err)
		return
	}

	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dtos[i] = toShiftDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateShift creates or replaces a shift. Both the owner and the backup
// (if any) must be known employees.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateShiftRequest
	if !h.decode(w, r, &req) {
		return
	}

	date, err := generic.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	for _, id := range []string{req.EmployeeID, req.BackupEmployeeID} {
		if id == "" {
			continue
		}
		if _, err := h.Store.GetEmployee(ctx, generic.EmployeeID(id)); err != nil {
			h.fail(w, r, "Unknown employee", err)
			return
		}
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	shift := premium.ShiftRecord{
		ID:               generic.ShiftID(req.ID),
		Date:             date,
		PlannedStart:     req.PlannedStart,
		PlannedEnd:       req.PlannedEnd,
		ActualStart:      req.ActualStart,
		ActualEnd:        req.ActualEnd,
		AbsenceType:      premium.AbsenceType(req.AbsenceType),
		Status:           premium.Status(req.Status),
		EmployeeID:       generic.EmployeeID(req.EmployeeID),
		BackupEmployeeID: generic.EmployeeID(req.BackupEmployeeID),
		Note:             req.Note,
	}
	if err := h.Store.SaveShift(ctx, shift); err != nil {
		h.fail(w, r, "Failed to save shift", err)
		return
	}

	writeJSON(w, http.StatusCreated, toShiftDTO(shift))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// MonthlyReport aggregates every employee for a month.
func (h *Handler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	rep, err := h.Runner.Monthly(r.Context(), period)
	if err != nil {
		h.fail(w, r, "Failed to build monthly report", err)
		return
	}

	writeJSON(w, http.StatusOK, ToMonthlyReportDTO(rep))
}

// =============================================================================
// HOLIDAY ENDPOINTS
// =============================================================================

// ListHolidays returns the statutory holidays of a year. Years outside the
// calendar's window yield an empty list.
// GET /api/holidays?year=2026
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing year", err)
		return
	}

	holidays := h.Runner.Engine().Holidays().Holidays(year)
	dtos := make([]HolidayDTO, len(holidays))
	for i, hd := range holidays {
		dtos[i] = HolidayDTO{
			Date:    hd.Date.Key(),
			Name:    hd.Name,
			Weekday: hd.Date.Weekday().String(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

// parsePeriod reads ?year=&month= into a calendar month period.
func parsePeriod(w http.ResponseWriter, r *http.Request) (generic.Period, bool) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing year", err)
		return generic.Period{}, false
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing month", err)
		return generic.Period{}, false
	}
	period, err := generic.MonthPeriod(year, time.Month(month))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return generic.Period{}, false
	}
	return period, true
}

// decode reads and validates a JSON body. It writes the 400 itself.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]FieldError, len(verrs))
			for i, fe := range verrs {
				fields[i] = FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()}
			}
			writeError(w, http.StatusBadRequest, "Validation failed", nil, fields)
			return false
		}
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

// fail maps an error to its status code. Server-side errors are logged.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"path":       r.URL.Path,
		}).WithError(err).Error(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an ErrorResponse. Explicit details win over err's text.
func writeError(w http.ResponseWriter, status int, message string, err error, details ...any) {
	resp := ErrorResponse{Error: message}
	if len(details) > 0 {
		resp.Details = details[0]
	} else if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
