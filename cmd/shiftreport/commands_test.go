package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-ledger/api"
	"github.com/warp/shift-ledger/generic"
	"github.com/warp/shift-ledger/premium"
	"github.com/warp/shift-ledger/report"
	"github.com/warp/shift-ledger/store/memory"
)

func newTestContext(t *testing.T, format string) (*Context, *bytes.Buffer) {
	t.Helper()
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	store := memory.New()
	ctx := context.Background()
	allOn := premium.PremiumConfig{
		NightPremiumEnabled:   true,
		SundayPremiumEnabled:  true,
		HolidayPremiumEnabled: true,
		NightPremiumRate:      decimal.NewFromInt(25),
		SundayPremiumRate:     decimal.NewFromInt(50),
		HolidayPremiumRate:    decimal.NewFromInt(125),
	}
	require.NoError(t, store.SaveEmployee(ctx, premium.Employee{ID: "anna", Name: "Anna", Premiums: allOn}))
	require.NoError(t, store.SaveEmployee(ctx, premium.Employee{ID: "ben", Name: "Ben", Premiums: allOn}))
	require.NoError(t, store.SaveShift(ctx, premium.ShiftRecord{
		ID:           "s-1",
		Date:         generic.NewDate(2026, time.April, 15),
		PlannedStart: "22:00",
		PlannedEnd:   "06:00",
		Status:       premium.StatusCompleted,
		EmployeeID:   "anna",
	}))
	require.NoError(t, store.SaveShift(ctx, premium.ShiftRecord{
		ID:               "s-2",
		Date:             generic.NewDate(2026, time.April, 16),
		PlannedStart:     "08:00",
		PlannedEnd:       "12:00",
		AbsenceType:      premium.AbsenceSick,
		Status:           premium.StatusConfirmed,
		EmployeeID:       "anna",
		BackupEmployeeID: "ben",
	}))

	engine := premium.NewEngine(premium.WithLogger(quiet))
	out := &bytes.Buffer{}
	return &Context{
		Runner: report.NewRunner(store, engine, report.WithLogger(quiet)),
		Format: format,
		Out:    out,
	}, out
}

func TestMonthly_Table(t *testing.T) {
	ctx, out := newTestContext(t, "table")

	require.NoError(t, (&MonthlyCmd{Year: 2026, Month: 4}).Run(ctx))

	s := out.String()
	assert.Contains(t, s, "[2026-04-01, 2026-04-30]")
	assert.Contains(t, s, "Anna")
	assert.Contains(t, s, "Ben")
	assert.Contains(t, s, "8.00")
	assert.Contains(t, s, "7.00")
	assert.Contains(t, s, "4.00")
}

func TestMonthly_JSONSingleEmployee(t *testing.T) {
	ctx, out := newTestContext(t, "json")

	require.NoError(t, (&MonthlyCmd{Year: 2026, Month: 4, Employee: "ben"}).Run(ctx))

	var rep api.MonthlyReportDTO
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "ben", rep.Rows[0].EmployeeID)
	assert.Equal(t, 4.0, rep.Rows[0].TotalHours)
	assert.Equal(t, 1, rep.Rows[0].BackupDays)
}

func TestMonthly_InvalidMonth(t *testing.T) {
	ctx, _ := newTestContext(t, "table")
	assert.Error(t, (&MonthlyCmd{Year: 2026, Month: 13}).Run(ctx))
}

func TestMonthly_UnknownEmployee(t *testing.T) {
	ctx, _ := newTestContext(t, "table")
	err := (&MonthlyCmd{Year: 2026, Month: 4, Employee: "ghost"}).Run(ctx)
	assert.ErrorIs(t, err, generic.ErrEmployeeNotFound)
}

func TestBackup_JSON(t *testing.T) {
	ctx, out := newTestContext(t, "json")

	require.NoError(t, (&BackupCmd{Worker: "ben", Year: 2026, Month: 4}).Run(ctx))

	var b api.BackupDTO
	require.NoError(t, json.Unmarshal(out.Bytes(), &b))
	assert.Equal(t, "ben", b.WorkerID)
	assert.Equal(t, 1, b.Days)
	assert.Equal(t, 1, b.CoveredDays)
	assert.Equal(t, 4.0, b.Hours)
}

func TestHolidays_Table(t *testing.T) {
	ctx, out := newTestContext(t, "table")

	require.NoError(t, (&HolidaysCmd{Year: 2026}).Run(ctx))

	s := out.String()
	assert.Contains(t, s, "2026-04-03")
	assert.Contains(t, s, "Friday")
	assert.Contains(t, s, "2026-12-25")
}

func TestHolidays_JSONOutsideWindow(t *testing.T) {
	ctx, out := newTestContext(t, "json")

	require.NoError(t, (&HolidaysCmd{Year: 2040}).Run(ctx))
	assert.JSONEq(t, `[]`, out.String())
}
