/*
Package sqlite provides a SQLite-backed shift store.

PURPOSE:
  Persists employees (with their premium settings) and shift records, and
  serves the single read per accounting period that the report runner and
  the API aggregate from.

KEY TABLES:
  employees: Worker records with premium flags and rates
  shifts:    One row per work segment (a worker may have several per day)

INDEXES:
  - idx_shifts_date:            Period load (hot path, one query per report)
  - idx_shifts_employee_date:   Single-employee views
  - idx_shifts_backup_date:     Backup coverage lookups

DATES AND CLOCKS:
  Dates are stored as "YYYY-MM-DD" text so that BETWEEN on the column is a
  calendar comparison. Clock fields are stored verbatim ("HH:MM" or '');
  malformed values are kept and simply contribute zero hours.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened with WAL so that
  readers don't block each other.

USAGE:
  store, err := sqlite.New("./data/shifts.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  shifts, err := store.ShiftsInPeriod(ctx, generic.MustMonthPeriod(2026, time.April))

SEE ALSO:
  - store/memory: In-memory implementation for testing
  - report: Period report runner built on ShiftsInPeriod
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/shift-ledger/generic"
	"github.com/warp/shift-ledger/premium"
)

const dateLayout = "2006-01-02"

// Store implements the shift storage using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Employees
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		night_premium_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		sunday_premium_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		holiday_premium_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		night_premium_rate TEXT NOT NULL DEFAULT '0',
		sunday_premium_rate TEXT NOT NULL DEFAULT '0',
		holiday_premium_rate TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	-- Shifts (one row per work segment)
	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		date TEXT NOT NULL,
		planned_start TEXT NOT NULL DEFAULT '',
		planned_end TEXT NOT NULL DEFAULT '',
		actual_start TEXT NOT NULL DEFAULT '',
		actual_end TEXT NOT NULL DEFAULT '',
		absence_type TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		backup_employee_id TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_date
		ON shifts(date);
	CREATE INDEX IF NOT EXISTS idx_shifts_employee_date
		ON shifts(employee_id, date);
	CREATE INDEX IF NOT EXISTS idx_shifts_backup_date
		ON shifts(backup_employee_id, date) WHERE backup_employee_id != '';
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

// SaveEmployee inserts an employee or updates it in place.
func (s *Store) SaveEmployee(ctx context.Context, emp premium.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (
			id, name, email,
			night_premium_enabled, sunday_premium_enabled, holiday_premium_enabled,
			night_premium_rate, sunday_premium_rate, holiday_premium_rate,
			created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			night_premium_enabled = excluded.night_premium_enabled,
			sunday_premium_enabled = excluded.sunday_premium_enabled,
			holiday_premium_enabled = excluded.holiday_premium_enabled,
			night_premium_rate = excluded.night_premium_rate,
			sunday_premium_rate = excluded.sunday_premium_rate,
			holiday_premium_rate = excluded.holiday_premium_rate
	`

	cfg := emp.Premiums
	_, err := s.db.ExecContext(ctx, query,
		string(emp.ID), emp.Name, emp.Email,
		cfg.NightPremiumEnabled, cfg.SundayPremiumEnabled, cfg.HolidayPremiumEnabled,
		cfg.NightPremiumRate.String(), cfg.SundayPremiumRate.String(), cfg.HolidayPremiumRate.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save employee %s: %w", emp.ID, err)
	}
	return nil
}

const employeeColumns = `id, name, email,
	night_premium_enabled, sunday_premium_enabled, holiday_premium_enabled,
	night_premium_rate, sunday_premium_rate, holiday_premium_rate`

// GetEmployee retrieves an employee by ID.
func (s *Store) GetEmployee(ctx context.Context, id generic.EmployeeID) (*premium.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE id = ?",
		string(id),
	)
	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &generic.NotFoundError{Kind: "employee", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// ListEmployees returns all employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]premium.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+employeeColumns+" FROM employees ORDER BY name, id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []premium.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (premium.Employee, error) {
	var (
		emp                          premium.Employee
		id                           string
		nightRate, sunRate, holRate string
	)
	cfg := &emp.Premiums
	if err := row.Scan(&id, &emp.Name, &emp.Email,
		&cfg.NightPremiumEnabled, &cfg.SundayPremiumEnabled, &cfg.HolidayPremiumEnabled,
		&nightRate, &sunRate, &holRate,
	); err != nil {
		return premium.Employee{}, err
	}
	emp.ID = generic.EmployeeID(id)
	cfg.NightPremiumRate = parseRate(nightRate)
	cfg.SundayPremiumRate = parseRate(sunRate)
	cfg.HolidayPremiumRate = parseRate(holRate)
	return emp, nil
}

func parseRate(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// SHIFT STORE
// =============================================================================

// SaveShift inserts a shift or replaces its fields in place.
// The owning employee must exist.
func (s *Store) SaveShift(ctx context.Context, sh premium.ShiftRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	query := `
		INSERT INTO shifts (
			id, employee_id, date,
			planned_start, planned_end, actual_start, actual_end,
			absence_type, status, backup_employee_id, note,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id,
			date = excluded.date,
			planned_start = excluded.planned_start,
			planned_end = excluded.planned_end,
			actual_start = excluded.actual_start,
			actual_end = excluded.actual_end,
			absence_type = excluded.absence_type,
			status = excluded.status,
			backup_employee_id = excluded.backup_employee_id,
			note = excluded.note,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		string(sh.ID), string(sh.EmployeeID), sh.Date.Time.Format(dateLayout),
		sh.PlannedStart, sh.PlannedEnd, sh.ActualStart, sh.ActualEnd,
		string(sh.AbsenceType), string(sh.Status), string(sh.BackupEmployeeID), sh.Note,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("save shift %s: %w", sh.ID, err)
	}
	return nil
}

const shiftColumns = `id, employee_id, date,
	planned_start, planned_end, actual_start, actual_end,
	absence_type, status, backup_employee_id, note`

// GetShift retrieves a shift by ID.
func (s *Store) GetShift(ctx context.Context, id generic.ShiftID) (*premium.ShiftRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+shiftColumns+" FROM shifts WHERE id = ?", string(id))
	sh, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &generic.NotFoundError{Kind: "shift", ID: string(id)}
	}
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// ShiftsInPeriod loads every shift of every employee dated within p.
// This is the one read a period report needs: backup coverage is computed
// from the same set as the owners' own statistics.
func (s *Store) ShiftsInPeriod(ctx context.Context, p generic.Period) ([]premium.ShiftRecord, error) {
	return s.queryShifts(ctx, `
		SELECT `+shiftColumns+` FROM shifts
		WHERE date BETWEEN ? AND ?
		ORDER BY date ASC, employee_id ASC, planned_start ASC, id ASC`,
		p.Start.Key(), p.End.Key(),
	)
}

// ShiftsForEmployee loads the shifts owned by one employee within p.
func (s *Store) ShiftsForEmployee(ctx context.Context, id generic.EmployeeID, p generic.Period) ([]premium.ShiftRecord, error) {
	return s.queryShifts(ctx, `
		SELECT `+shiftColumns+` FROM shifts
		WHERE employee_id = ? AND date BETWEEN ? AND ?
		ORDER BY date ASC, planned_start ASC, id ASC`,
		string(id), p.Start.Key(), p.End.Key(),
	)
}

func (s *Store) queryShifts(ctx context.Context, query string, args ...any) ([]premium.ShiftRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []premium.ShiftRecord
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

func scanShift(row scanner) (premium.ShiftRecord, error) {
	var (
		sh                            premium.ShiftRecord
		id, employeeID                string
		absenceType, status, backupID string
		date                          any
	)
	if err := row.Scan(&id, &employeeID, &date,
		&sh.PlannedStart, &sh.PlannedEnd, &sh.ActualStart, &sh.ActualEnd,
		&absenceType, &status, &backupID, &sh.Note,
	); err != nil {
		return premium.ShiftRecord{}, err
	}

	// go-sqlite3 hands back string, []byte or time.Time depending on how
	// the row was written.
	d, err := generic.NormalizeDate(date)
	if err != nil {
		return premium.ShiftRecord{}, fmt.Errorf("shift %s: %w", id, err)
	}

	sh.ID = generic.ShiftID(id)
	sh.EmployeeID = generic.EmployeeID(employeeID)
	sh.Date = d
	sh.AbsenceType = premium.AbsenceType(absenceType)
	sh.Status = premium.Status(status)
	sh.BackupEmployeeID = generic.EmployeeID(backupID)
	return sh, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"shifts", "employees"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
