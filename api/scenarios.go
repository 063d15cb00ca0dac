/*
scenarios.go - Demo datasets for testing and demonstrations

PURPOSE:

	Provides pre-built datasets that populate the store with realistic
	employees and shifts for one month. Each dataset exercises specific
	accounting rules so the reports can be checked by eye.

AVAILABLE SCENARIOS:

	night-team:      Rotating night shifts, including ones that cross midnight
	easter-holidays: April 2026 with Good Friday, Easter Sunday and Monday
	backup-coverage: Sick and vacation absences covered by colleagues

HOW SCENARIOS WORK:
 1. Reset store (clear all data)
 2. Create employees with their premium settings
 3. Create the month's shifts

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "backup-coverage"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Add a loader to 'scenarioLoaders'

NOTE:

	Scenarios reset the store. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Handler and store interface
*/
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-ledger/generic"
	"github.com/warp/shift-ledger/premium"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "night-team",
		Name:        "Night Team",
		Description: "Two nurses on rotating night shifts, 22:00-06:00 and 23:00-07:00",
		Month:       "2026-03",
	},
	{
		ID:          "easter-holidays",
		Name:        "Easter Holidays",
		Description: "Shifts on Good Friday, Easter Sunday and Easter Monday; Sunday vs holiday precedence",
		Month:       "2026-04",
	},
	{
		ID:          "backup-coverage",
		Name:        "Backup Coverage",
		Description: "Sick and vacation days covered by designated backups",
		Month:       "2026-05",
	},
}

var scenarioLoaders = map[string]func(ctx context.Context, s Store) error{
	"night-team":      loadNightTeamScenario,
	"easter-holidays": loadEasterHolidaysScenario,
	"backup-coverage": loadBackupCoverageScenario,
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario resets the store and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if !h.decode(w, r, &req) {
		return
	}
	load, ok := scenarioLoaders[req.ScenarioID]
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	h.currentScenario = ""
	if err := h.Store.Reset(ctx); err != nil {
		h.fail(w, r, "Failed to reset store", err)
		return
	}
	if err := load(ctx, h.Store); err != nil {
		h.fail(w, r, fmt.Sprintf("Failed to load scenario %s", req.ScenarioID), err)
		return
	}

	h.currentScenario = req.ScenarioID
	h.log.WithField("scenario", req.ScenarioID).Info("scenario loaded")
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Store.Reset(r.Context()); err != nil {
		h.fail(w, r, "Failed to reset store", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

type demoShift struct {
	id, owner, backup string
	day               int
	start, end        string
	actualStart       string
	actualEnd         string
	absence           premium.AbsenceType
	status            premium.Status
}

func saveScenario(ctx context.Context, s Store, year int, month time.Month, emps []premium.Employee, shifts []demoShift) error {
	for _, e := range emps {
		if err := s.SaveEmployee(ctx, e); err != nil {
			return err
		}
	}
	for _, d := range shifts {
		status := d.status
		if status == "" {
			status = premium.StatusCompleted
		}
		rec := premium.ShiftRecord{
			ID:               generic.ShiftID(d.id),
			Date:             generic.NewDate(year, month, d.day),
			PlannedStart:     d.start,
			PlannedEnd:       d.end,
			ActualStart:      d.actualStart,
			ActualEnd:        d.actualEnd,
			AbsenceType:      d.absence,
			Status:           status,
			EmployeeID:       generic.EmployeeID(d.owner),
			BackupEmployeeID: generic.EmployeeID(d.backup),
		}
		if err := s.SaveShift(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func nursePremiums() premium.PremiumConfig {
	cfg := premium.AllPremiums()
	cfg.NightPremiumRate = decimal.NewFromInt(25)
	cfg.SundayPremiumRate = decimal.NewFromInt(50)
	cfg.HolidayPremiumRate = decimal.NewFromInt(125)
	return cfg
}

func loadNightTeamScenario(ctx context.Context, s Store) error {
	emps := []premium.Employee{
		{ID: "emp-001", Name: "Alice Becker", Email: "alice@example.com", Premiums: nursePremiums()},
		{ID: "emp-002", Name: "Jonas Weber", Email: "jonas@example.com", Premiums: nursePremiums()},
	}
	var shifts []demoShift
	for day := 2; day <= 27; day += 3 {
		shifts = append(shifts,
			demoShift{id: fmt.Sprintf("night-a-%02d", day), owner: "emp-001", day: day, start: "22:00", end: "06:00"},
			demoShift{id: fmt.Sprintf("night-b-%02d", day), owner: "emp-002", day: day + 1, start: "23:00", end: "07:00"},
		)
	}
	// A late clock-out recorded against the plan.
	shifts = append(shifts, demoShift{
		id: "night-a-30", owner: "emp-001", day: 30,
		start: "22:00", end: "06:00", actualStart: "22:00", actualEnd: "06:45",
	})
	return saveScenario(ctx, s, 2026, time.March, emps, shifts)
}

func loadEasterHolidaysScenario(ctx context.Context, s Store) error {
	noHoliday := nursePremiums()
	noHoliday.HolidayPremiumEnabled = false

	emps := []premium.Employee{
		{ID: "emp-001", Name: "Alice Becker", Premiums: nursePremiums()},
		{ID: "emp-003", Name: "Mara Schulz", Premiums: noHoliday},
	}
	shifts := []demoShift{
		{id: "good-friday", owner: "emp-001", day: 3, start: "08:00", end: "16:00"},
		{id: "easter-sunday", owner: "emp-001", day: 5, start: "08:00", end: "16:00"},
		{id: "easter-monday", owner: "emp-001", day: 6, start: "22:00", end: "06:00"},
		{id: "easter-monday-2", owner: "emp-003", day: 6, start: "08:00", end: "16:00"},
		{id: "regular-1", owner: "emp-003", day: 8, start: "08:00", end: "16:30"},
		{id: "planned-only", owner: "emp-003", day: 28, start: "08:00", end: "16:00", status: premium.StatusPlanned},
	}
	return saveScenario(ctx, s, 2026, time.April, emps, shifts)
}

func loadBackupCoverageScenario(ctx context.Context, s Store) error {
	emps := []premium.Employee{
		{ID: "emp-001", Name: "Alice Becker", Premiums: nursePremiums()},
		{ID: "emp-002", Name: "Jonas Weber", Premiums: nursePremiums()},
		{ID: "emp-004", Name: "Lena Hoffmann", Premiums: premium.PremiumConfig{NightPremiumEnabled: true}},
	}
	shifts := []demoShift{
		{id: "a-04", owner: "emp-001", backup: "emp-002", day: 4, start: "08:00", end: "16:00"},
		{id: "a-05", owner: "emp-001", backup: "emp-002", day: 5, start: "08:00", end: "12:00", absence: premium.AbsenceSick},
		{id: "a-05b", owner: "emp-001", backup: "emp-002", day: 5, start: "13:00", end: "16:00", absence: premium.AbsenceSick},
		{id: "a-14", owner: "emp-001", backup: "emp-004", day: 14, start: "22:00", end: "06:00", absence: premium.AbsenceVacation},
		{id: "a-15", owner: "emp-001", backup: "emp-004", day: 15, start: "22:00", end: "06:00", absence: premium.AbsenceVacation},
		{id: "j-06", owner: "emp-002", day: 6, start: "08:00", end: "16:00"},
		{id: "j-20", owner: "emp-002", backup: "emp-004", day: 20, start: "08:00", end: "16:00", absence: premium.AbsenceSick, status: premium.StatusPlanned},
	}
	return saveScenario(ctx, s, 2026, time.May, emps, shifts)
}
