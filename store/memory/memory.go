// Package memory provides an in-memory shift store (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/shift-ledger/generic"
	"github.com/warp/shift-ledger/premium"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Store struct {
	mu        sync.RWMutex
	employees map[generic.EmployeeID]premium.Employee
	shifts    map[generic.ShiftID]premium.ShiftRecord
}

func New() *Store {
	return &Store{
		employees: make(map[generic.EmployeeID]premium.Employee),
		shifts:    make(map[generic.ShiftID]premium.ShiftRecord),
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee inserts or replaces an employee.
func (m *Store) SaveEmployee(_ context.Context, emp premium.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[emp.ID] = emp
	return nil
}

func (m *Store) GetEmployee(_ context.Context, id generic.EmployeeID) (*premium.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emp, ok := m.employees[id]
	if !ok {
		return nil, &generic.NotFoundError{Kind: "employee", ID: id.String()}
	}
	return &emp, nil
}

// ListEmployees returns all employees ordered by name.
func (m *Store) ListEmployees(_ context.Context) ([]premium.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]premium.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		result = append(result, emp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// =============================================================================
// SHIFTS
// =============================================================================

// SaveShift inserts or replaces a shift keyed by its ID.
func (m *Store) SaveShift(_ context.Context, s premium.ShiftRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts[s.ID] = s
	return nil
}

func (m *Store) GetShift(_ context.Context, id generic.ShiftID) (*premium.ShiftRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.shifts[id]
	if !ok {
		return nil, &generic.NotFoundError{Kind: "shift", ID: string(id)}
	}
	return &s, nil
}

// ShiftsInPeriod returns every shift of every employee dated within p.
func (m *Store) ShiftsInPeriod(_ context.Context, p generic.Period) ([]premium.ShiftRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.filterLocked(func(s premium.ShiftRecord) bool {
		return p.Contains(s.Date)
	}), nil
}

// ShiftsForEmployee returns the shifts owned by one employee within p.
func (m *Store) ShiftsForEmployee(_ context.Context, id generic.EmployeeID, p generic.Period) ([]premium.ShiftRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.filterLocked(func(s premium.ShiftRecord) bool {
		return s.EmployeeID == id && p.Contains(s.Date)
	}), nil
}

func (m *Store) filterLocked(keep func(premium.ShiftRecord) bool) []premium.ShiftRecord {
	var result []premium.ShiftRecord
	for _, s := range m.shifts {
		if keep(s) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		if a.PlannedStart != b.PlannedStart {
			return a.PlannedStart < b.PlannedStart
		}
		return a.ID < b.ID
	})
	return result
}

// Reset clears all data.
func (m *Store) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees = make(map[generic.EmployeeID]premium.Employee)
	m.shifts = make(map[generic.ShiftID]premium.ShiftRecord)
	return nil
}
