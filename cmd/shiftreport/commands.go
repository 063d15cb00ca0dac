package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/warp/shift-ledger/api"
	"github.com/warp/shift-ledger/generic"
	"github.com/warp/shift-ledger/report"
)

// Context is handed to every subcommand's Run.
type Context struct {
	Runner *report.Runner
	Format string
	Out    io.Writer
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// =============================================================================
// MONTHLY
// =============================================================================

type MonthlyCmd struct {
	Year     int    `help:"Year." required:""`
	Month    int    `help:"Month (1-12)." required:""`
	Employee string `help:"Only this employee ID."`
}

func (c *MonthlyCmd) Run(ctx *Context) error {
	period, err := generic.MonthPeriod(c.Year, time.Month(c.Month))
	if err != nil {
		return err
	}

	var rep *report.MonthlyReport
	if c.Employee != "" {
		row, err := ctx.Runner.Employee(context.Background(), generic.EmployeeID(c.Employee), period)
		if err != nil {
			return err
		}
		rep = &report.MonthlyReport{Period: period, Rows: []report.Row{*row}}
	} else {
		rep, err = ctx.Runner.Monthly(context.Background(), period)
		if err != nil {
			return err
		}
	}

	if ctx.Format == "json" {
		return writeJSON(ctx.Out, api.ToMonthlyReportDTO(rep))
	}

	t := newTable("Employee", "Total", "Night", "Sunday", "Holiday",
		"Sick d", "Sick h", "Vac d", "Vac h", "Backup d", "Backup h")
	for _, row := range rep.Rows {
		a := row.Aggregate
		t.Row(
			row.Employee.Name,
			hours(a.TotalHours), hours(a.NightHours), hours(a.SundayHours), hours(a.HolidayHours),
			strconv.Itoa(a.SickDays), hours(a.SickHours),
			strconv.Itoa(a.VacationDays), hours(a.VacationHours),
			strconv.Itoa(a.BackupDays), hours(a.BackupHours),
		)
	}
	_, err = fmt.Fprintf(ctx.Out, "%s\n%s\n", period, t.Render())
	return err
}

// =============================================================================
// BACKUP
// =============================================================================

type BackupCmd struct {
	Worker string `help:"Employee ID of the stand-in." required:""`
	Year   int    `help:"Year." required:""`
	Month  int    `help:"Month (1-12)." required:""`
}

func (c *BackupCmd) Run(ctx *Context) error {
	period, err := generic.MonthPeriod(c.Year, time.Month(c.Month))
	if err != nil {
		return err
	}

	b, err := ctx.Runner.Backup(context.Background(), generic.EmployeeID(c.Worker), period)
	if err != nil {
		return err
	}

	if ctx.Format == "json" {
		return writeJSON(ctx.Out, api.ToBackupDTO(*b, period))
	}

	t := newTable("Worker", "Days", "Covered", "Hours", "Night", "Sunday", "Holiday")
	t.Row(
		b.WorkerID.String(),
		strconv.Itoa(b.Days), strconv.Itoa(b.CoveredDays),
		hours(b.Hours), hours(b.NightHours), hours(b.SundayHours), hours(b.HolidayHours),
	)
	_, err = fmt.Fprintf(ctx.Out, "%s\n%s\n", period, t.Render())
	return err
}

// =============================================================================
// HOLIDAYS
// =============================================================================

type HolidaysCmd struct {
	Year int `help:"Year." required:""`
}

func (c *HolidaysCmd) Run(ctx *Context) error {
	holidays := ctx.Runner.Engine().Holidays().Holidays(c.Year)

	if ctx.Format == "json" {
		dtos := make([]api.HolidayDTO, len(holidays))
		for i, h := range holidays {
			dtos[i] = api.HolidayDTO{Date: h.Date.Key(), Name: h.Name, Weekday: h.Date.Weekday().String()}
		}
		return writeJSON(ctx.Out, dtos)
	}

	t := newTable("Date", "Weekday", "Holiday")
	for _, h := range holidays {
		t.Row(h.Date.Key(), h.Date.Weekday().String(), h.Name)
	}
	_, err := fmt.Fprintln(ctx.Out, t.Render())
	return err
}

// =============================================================================
// OUTPUT
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func hours(a generic.Amount) string { return a.Value.StringFixed(2) }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
