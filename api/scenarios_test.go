package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-ledger/api"
)

func loadScenario(t *testing.T, router http.Handler, id string) {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/scenarios/load", api.LoadScenarioRequest{ScenarioID: id})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestScenarios_ListAndCurrent(t *testing.T) {
	router, _ := newTestServer(t)

	rec := do(t, router, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]api.ScenarioDTO](t, rec), 3)

	rec = do(t, router, http.MethodGet, "/api/scenarios/current", nil)
	assert.Equal(t, "null\n", rec.Body.String())

	loadScenario(t, router, "night-team")
	rec = do(t, router, http.MethodGet, "/api/scenarios/current", nil)
	assert.Equal(t, "night-team", decodeBody[api.ScenarioDTO](t, rec).ID)

	rec = do(t, router, http.MethodPost, "/api/scenarios/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodGet, "/api/employees", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestScenarios_UnknownID(t *testing.T) {
	router, _ := newTestServer(t)
	rec := do(t, router, http.MethodPost, "/api/scenarios/load", api.LoadScenarioRequest{ScenarioID: "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScenario_EasterHolidays(t *testing.T) {
	// GIVEN: Alice has all premiums; Mara has no holiday premium
	// THEN: Easter Sunday is Sunday time, Good Friday and Easter Monday are
	//       holiday time for Alice; Mara's Easter Monday falls back to nothing
	router, _ := newTestServer(t)
	loadScenario(t, router, "easter-holidays")

	rec := do(t, router, http.MethodGet, "/api/reports/monthly?year=2026&month=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rep := decodeBody[api.MonthlyReportDTO](t, rec)
	require.Len(t, rep.Rows, 2)

	alice, mara := rep.Rows[0], rep.Rows[1]
	assert.Equal(t, "Alice Becker", alice.Name)
	assert.Equal(t, 24.0, alice.TotalHours)
	assert.Equal(t, 16.0, alice.HolidayHours)
	assert.Equal(t, 8.0, alice.SundayHours)
	assert.Equal(t, 7.0, alice.NightHours)

	assert.Equal(t, "Mara Schulz", mara.Name)
	assert.Equal(t, 16.5, mara.TotalHours)
	assert.Equal(t, 0.0, mara.HolidayHours)
	assert.Equal(t, 0.0, mara.SundayHours)
}

func TestScenario_BackupCoverage(t *testing.T) {
	router, _ := newTestServer(t)
	loadScenario(t, router, "backup-coverage")

	rec := do(t, router, http.MethodGet, "/api/employees/emp-002/backup?year=2026&month=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	jonas := decodeBody[api.BackupDTO](t, rec)
	assert.Equal(t, 2, jonas.Days)
	assert.Equal(t, 1, jonas.CoveredDays)
	assert.Equal(t, 7.0, jonas.Hours)

	rec = do(t, router, http.MethodGet, "/api/employees/emp-004/backup?year=2026&month=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lena := decodeBody[api.BackupDTO](t, rec)
	assert.Equal(t, 3, lena.Days, "the PLANNED absence is still a duty day")
	assert.Equal(t, 2, lena.CoveredDays)
	assert.Equal(t, 16.0, lena.Hours)
	assert.Equal(t, 14.0, lena.NightHours)
	assert.Equal(t, 0.0, lena.HolidayHours, "Lena has no holiday premium")
}
