/*
handlers_test.go - HTTP tests for the API handlers

Tests run the full chi router against an in-memory store:
- Employee and shift creation with validation
- Monthly aggregate, backup and report endpoints
- Error mapping (400 / 404)
*/
package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-ledger/api"
	"github.com/warp/shift-ledger/premium"
	"github.com/warp/shift-ledger/report"
	"github.com/warp/shift-ledger/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*chi.Mux, *memory.Store) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := memory.New()
	engine := premium.NewEngine(premium.WithLogger(logger))
	runner := report.NewRunner(store, engine, report.WithLogger(logger))
	h := api.NewHandler(store, runner, logger)
	return api.NewRouter(h, nil), store
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createEmployee(t *testing.T, router http.Handler, id, name string, premiums api.PremiumsDTO) {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/employees", api.CreateEmployeeRequest{
		ID: id, Name: name, Premiums: premiums,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func createShift(t *testing.T, router http.Handler, req api.CreateShiftRequest) api.ShiftDTO {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/shifts", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[api.ShiftDTO](t, rec)
}

var allOn = api.PremiumsDTO{NightEnabled: true, SundayEnabled: true, HolidayEnabled: true, NightRate: 25}

// =============================================================================
// HEALTH / EMPLOYEES
// =============================================================================

func TestHealth(t *testing.T) {
	router, _ := newTestServer(t)
	rec := do(t, router, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateEmployee_GeneratesID(t *testing.T) {
	router, _ := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/employees", api.CreateEmployeeRequest{Name: "Anna", Premiums: allOn})
	require.Equal(t, http.StatusCreated, rec.Code)
	emp := decodeBody[api.EmployeeDTO](t, rec)
	assert.Len(t, emp.ID, 36)
	assert.Equal(t, 25.0, emp.Premiums.NightRate)

	rec = do(t, router, http.MethodGet, "/api/employees/"+emp.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Anna", decodeBody[api.EmployeeDTO](t, rec).Name)

	rec = do(t, router, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]api.EmployeeDTO](t, rec), 1)
}

func TestCreateEmployee_Validation(t *testing.T) {
	router, _ := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/employees", api.CreateEmployeeRequest{Email: "not-an-email"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeBody[struct {
		Error   string           `json:"error"`
		Details []api.FieldError `json:"details"`
	}](t, rec)
	assert.Equal(t, "Validation failed", resp.Error)

	fields := map[string]string{}
	for _, fe := range resp.Details {
		fields[fe.Field] = fe.Rule
	}
	assert.Equal(t, "required", fields["name"])
	assert.Equal(t, "email", fields["email"])
}

func TestGetEmployee_NotFound(t *testing.T) {
	router, _ := newTestServer(t)
	rec := do(t, router, http.MethodGet, "/api/employees/nobody", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateEmployee_InvalidJSON(t *testing.T) {
	router, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/employees", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// SHIFTS
// =============================================================================

func TestCreateShift_AndList(t *testing.T) {
	router, _ := newTestServer(t)
	createEmployee(t, router, "anna", "Anna", allOn)
	createEmployee(t, router, "ben", "Ben", allOn)

	s := createShift(t, router, api.CreateShiftRequest{
		Date: "2026-04-15T00:00:00.000Z", PlannedStart: "23:00", PlannedEnd: "06:00",
		Status: "CONFIRMED", EmployeeID: "anna",
	})
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "2026-04-15", s.Date)

	createShift(t, router, api.CreateShiftRequest{
		ID: "ben-1", Date: "2026-04-16", PlannedStart: "08:00", PlannedEnd: "16:00",
		Status: "PLANNED", EmployeeID: "ben",
	})
	createShift(t, router, api.CreateShiftRequest{
		ID: "may", Date: "2026-05-01", PlannedStart: "08:00", PlannedEnd: "16:00",
		Status: "PLANNED", EmployeeID: "ben",
	})

	rec := do(t, router, http.MethodGet, "/api/shifts?year=2026&month=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]api.ShiftDTO](t, rec), 2)

	rec = do(t, router, http.MethodGet, "/api/shifts?year=2026&month=4&employee_id=ben", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	shifts := decodeBody[[]api.ShiftDTO](t, rec)
	require.Len(t, shifts, 1)
	assert.Equal(t, "ben-1", shifts[0].ID)
}

func TestNewHandler_RegistersValidators(t *testing.T) {
	assert.NotPanics(t, func() {
		api.NewHandler(memory.New(), nil, nil)
	})
}

func TestCreateShift_Validation(t *testing.T) {
	router, _ := newTestServer(t)
	createEmployee(t, router, "anna", "Anna", allOn)

	cases := map[string]api.CreateShiftRequest{
		"bad clock":        {Date: "2026-04-15", PlannedStart: "25:00", PlannedEnd: "06:00", Status: "CONFIRMED", EmployeeID: "anna"},
		"signed clock":     {Date: "2026-04-15", ActualStart: "+8:00", ActualEnd: "16:00", Status: "COMPLETED", EmployeeID: "anna"},
		"half pair":        {Date: "2026-04-15", PlannedStart: "08:00", Status: "CONFIRMED", EmployeeID: "anna"},
		"unknown status":   {Date: "2026-04-15", Status: "APPROVED", EmployeeID: "anna"},
		"unknown absence":  {Date: "2026-04-15", Status: "CONFIRMED", AbsenceType: "PARENTAL", EmployeeID: "anna"},
		"self backup":      {Date: "2026-04-15", Status: "CONFIRMED", EmployeeID: "anna", BackupEmployeeID: "anna"},
		"missing employee": {Date: "2026-04-15", Status: "CONFIRMED"},
		"bad date":         {Date: "15.04.2026", Status: "CONFIRMED", EmployeeID: "anna"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/shifts", req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestCreateShift_AcceptsFullDayAndEndOfDay(t *testing.T) {
	router, _ := newTestServer(t)
	createEmployee(t, router, "anna", "Anna", allOn)

	createShift(t, router, api.CreateShiftRequest{
		Date: "2026-04-15", PlannedStart: "00:00", PlannedEnd: "00:00", Status: "CONFIRMED", EmployeeID: "anna",
	})
	createShift(t, router, api.CreateShiftRequest{
		Date: "2026-04-16", PlannedStart: "22:00", PlannedEnd: "24:00", Status: "CONFIRMED", EmployeeID: "anna",
	})

	rec := do(t, router, http.MethodGet, "/api/employees/anna/aggregate?year=2026&month=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 26.0, decodeBody[api.AggregateDTO](t, rec).TotalHours)
}

func TestCreateShift_UnknownEmployees(t *testing.T) {
	router, _ := newTestServer(t)
	createEmployee(t, router, "anna", "Anna", allOn)

	rec := do(t, router, http.MethodPost, "/api/shifts", api.CreateShiftRequest{
		Date: "2026-04-15", Status: "CONFIRMED", EmployeeID: "ghost",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/shifts", api.CreateShiftRequest{
		Date: "2026-04-15", Status: "CONFIRMED", EmployeeID: "anna", BackupEmployeeID: "ghost",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// AGGREGATES AND REPORTS
// =============================================================================

func seedBackupMonth(t *testing.T, router http.Handler) {
	t.Helper()
	createEmployee(t, router, "anna", "Anna", allOn)
	createEmployee(t, router, "ben", "Ben", allOn)

	// Anna works a night shift on Wednesday, is sick on Thursday; Ben covers.
	createShift(t, router, api.CreateShiftRequest{
		Date: "2026-04-15", PlannedStart: "23:00", PlannedEnd: "06:00", Status: "CONFIRMED", EmployeeID: "anna",
	})
	createShift(t, router, api.CreateShiftRequest{
		Date: "2026-04-16", PlannedStart: "08:00", PlannedEnd: "12:00", Status: "CONFIRMED",
		AbsenceType: "SICK", EmployeeID: "anna", BackupEmployeeID: "ben",
	})
	createShift(t, router, api.CreateShiftRequest{
		Date: "2026-04-22", PlannedStart: "08:00", PlannedEnd: "08:20", Status: "COMPLETED",
		AbsenceType: "VACATION", EmployeeID: "anna", BackupEmployeeID: "ben",
	})
}

func TestGetAggregate(t *testing.T) {
	router, _ := newTestServer(t)
	seedBackupMonth(t, router)

	rec := do(t, router, http.MethodGet, "/api/employees/anna/aggregate?year=2026&month=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	anna := decodeBody[api.AggregateDTO](t, rec)
	assert.Equal(t, 7.0, anna.TotalHours)
	assert.Equal(t, 7.0, anna.NightHours)
	assert.Equal(t, 1, anna.SickDays)
	assert.Equal(t, 4.0, anna.SickHours)
	assert.Equal(t, 1, anna.VacationDays)
	assert.Equal(t, 0.33, anna.VacationHours)

	rec = do(t, router, http.MethodGet, "/api/employees/ben/aggregate?year=2026&month=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ben := decodeBody[api.AggregateDTO](t, rec)
	assert.Equal(t, 4.33, ben.TotalHours)
	assert.Equal(t, 4.33, ben.BackupHours)
	assert.Equal(t, 2, ben.BackupDays)
}

func TestGetBackup(t *testing.T) {
	router, _ := newTestServer(t)
	seedBackupMonth(t, router)

	rec := do(t, router, http.MethodGet, "/api/employees/ben/backup?year=2026&month=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	b := decodeBody[api.BackupDTO](t, rec)
	assert.Equal(t, "ben", b.WorkerID)
	assert.Equal(t, 2026, b.Year)
	assert.Equal(t, 4, b.Month)
	assert.Equal(t, 2, b.Days)
	assert.Equal(t, 2, b.CoveredDays)
	assert.Equal(t, 4.33, b.Hours)
}

func TestMonthlyReport(t *testing.T) {
	router, _ := newTestServer(t)
	seedBackupMonth(t, router)

	rec := do(t, router, http.MethodGet, "/api/reports/monthly?year=2026&month=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rep := decodeBody[api.MonthlyReportDTO](t, rec)
	assert.Equal(t, "2026-04-01", rep.PeriodStart)
	assert.Equal(t, "2026-04-30", rep.PeriodEnd)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "Anna", rep.Rows[0].Name)
	assert.Equal(t, "Ben", rep.Rows[1].Name)
	assert.Equal(t, 25.0, rep.Rows[0].Premiums.NightRate)
}

func TestPeriodQueryErrors(t *testing.T) {
	router, _ := newTestServer(t)
	createEmployee(t, router, "anna", "Anna", allOn)

	for _, path := range []string{
		"/api/reports/monthly",
		"/api/reports/monthly?year=2026",
		"/api/reports/monthly?year=2026&month=13",
		"/api/employees/anna/aggregate?year=x&month=4",
		"/api/shifts?month=4",
	} {
		rec := do(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}

	rec := do(t, router, http.MethodGet, "/api/employees/nobody/aggregate?year=2026&month=4", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, router, http.MethodGet, "/api/employees/nobody/backup?year=2026&month=4", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestListHolidays(t *testing.T) {
	router, _ := newTestServer(t)

	rec := do(t, router, http.MethodGet, "/api/holidays?year=2026", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	holidays := decodeBody[[]api.HolidayDTO](t, rec)
	require.Len(t, holidays, 9)
	assert.Equal(t, "2026-01-01", holidays[0].Date)
	assert.Equal(t, "Thursday", holidays[0].Weekday)
	assert.Equal(t, "2026-12-26", holidays[8].Date)

	rec = do(t, router, http.MethodGet, "/api/holidays?year=2040", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/holidays", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
