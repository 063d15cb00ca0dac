/*
Package report builds period reports on top of the accounting engine.

PURPOSE:
  The engine is pure: it aggregates whatever shifts it is handed. This
  package is the caller that loads a period's shifts once, partitions them
  per employee and runs the aggregations. Backup coverage is indexed by the
  designated stand-in in the same pass, so each employee only looks at the
  duties naming them.

DATA FLOW:
  Source.ShiftsInPeriod (one read)
      |
      +--> partition by EmployeeID ---------> Engine.Aggregate per employee
      |                                       (on a bounded worker pool)
      +--> partition by BackupEmployeeID ---> Engine.AggregateBackup
                                              (folded into the row above)

SEE ALSO:
  - premium/monthly.go: per-employee aggregation
  - premium/backup.go: backup coverage
  - pkg/workerpool: the pool employees are aggregated on
*/
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/warp/shift-ledger/generic"
	"github.com/warp/shift-ledger/pkg/workerpool"
	"github.com/warp/shift-ledger/premium"
)

// Source is the storage a Runner reads from.
type Source interface {
	ListEmployees(ctx context.Context) ([]premium.Employee, error)
	GetEmployee(ctx context.Context, id generic.EmployeeID) (*premium.Employee, error)
	ShiftsInPeriod(ctx context.Context, p generic.Period) ([]premium.ShiftRecord, error)
}

// =============================================================================
// RESULTS
// =============================================================================

// Row is one employee's line in a period report.
type Row struct {
	Employee  premium.Employee
	Aggregate premium.MonthlyAggregate
}

type MonthlyReport struct {
	Period generic.Period
	Rows   []Row
}

// =============================================================================
// RUNNER
// =============================================================================

const DefaultWorkers = 4

type Runner struct {
	src     Source
	engine  *premium.Engine
	workers int
	log     logrus.FieldLogger
}

type Option func(*Runner)

func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

func NewRunner(src Source, engine *premium.Engine, opts ...Option) *Runner {
	if engine == nil {
		engine = premium.NewEngine()
	}
	r := &Runner{
		src:     src,
		engine:  engine,
		workers: DefaultWorkers,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Engine returns the engine the runner aggregates with.
func (r *Runner) Engine() *premium.Engine { return r.engine }

// Monthly aggregates every employee for the period. Rows are ordered by
// employee name. Shifts owned by unknown employees are left out and logged.
func (r *Runner) Monthly(ctx context.Context, p generic.Period) (*MonthlyReport, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	started := time.Now()

	employees, err := r.src.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	all, err := r.loadPeriod(ctx, p)
	if err != nil {
		return nil, err
	}

	byEmployee := partition(all)
	byBackup := partitionByBackup(all)
	known := make(map[generic.EmployeeID]bool, len(employees))
	for _, emp := range employees {
		known[emp.ID] = true
	}
	for id, owned := range byEmployee {
		if !known[id] {
			r.log.WithFields(logrus.Fields{
				"employee_id": id,
				"shifts":      len(owned),
				"period":      p.String(),
			}).Warn("shifts reference an unknown employee")
		}
	}

	pool := workerpool.New(ctx, r.workers, len(employees))
	results := make(chan workerpool.Result, len(employees))
	for _, emp := range employees {
		emp := emp
		err := pool.Submit(workerpool.Task{
			Fn: func(context.Context) (any, error) {
				backup := r.engine.AggregateBackup(byBackup[emp.ID], emp.ID, emp.Premiums)
				agg := r.engine.Aggregate(byEmployee[emp.ID], emp.Premiums, &backup)
				return Row{Employee: emp, Aggregate: agg}, nil
			},
			ResultC: results,
		})
		if err != nil {
			pool.Close()
			return nil, err
		}
	}
	pool.Close()
	close(results)

	rows := make([]Row, 0, len(employees))
	for res := range results {
		if res.Err != nil {
			return nil, res.Err
		}
		rows = append(rows, res.Value.(Row))
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Employee.Name != rows[j].Employee.Name {
			return rows[i].Employee.Name < rows[j].Employee.Name
		}
		return rows[i].Employee.ID < rows[j].Employee.ID
	})

	r.log.WithFields(logrus.Fields{
		"period":    p.String(),
		"employees": len(rows),
		"shifts":    len(all),
		"took":      time.Since(started).String(),
	}).Info("monthly report built")

	return &MonthlyReport{Period: p, Rows: rows}, nil
}

// Employee aggregates a single employee for the period, backup coverage included.
func (r *Runner) Employee(ctx context.Context, id generic.EmployeeID, p generic.Period) (*Row, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	emp, err := r.src.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := r.loadPeriod(ctx, p)
	if err != nil {
		return nil, err
	}

	agg := r.engine.AggregateWithPeriod(emp.ID, partition(all)[emp.ID], emp.Premiums, all)
	return &Row{Employee: *emp, Aggregate: agg}, nil
}

// Backup computes what the employee covered as a designated stand-in,
// classified with the employee's own premium settings.
func (r *Runner) Backup(ctx context.Context, id generic.EmployeeID, p generic.Period) (*premium.BackupAggregate, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	emp, err := r.src.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := r.loadPeriod(ctx, p)
	if err != nil {
		return nil, err
	}

	backup := r.engine.AggregateBackup(all, emp.ID, emp.Premiums)
	return &backup, nil
}

// loadPeriod is the single shift read per report. The result is never nil
// so that backup coverage is always computed.
func (r *Runner) loadPeriod(ctx context.Context, p generic.Period) ([]premium.ShiftRecord, error) {
	shifts, err := r.src.ShiftsInPeriod(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("load shifts for %s: %w", p, err)
	}
	if shifts == nil {
		shifts = []premium.ShiftRecord{}
	}
	return shifts, nil
}

func partition(shifts []premium.ShiftRecord) map[generic.EmployeeID][]premium.ShiftRecord {
	out := make(map[generic.EmployeeID][]premium.ShiftRecord)
	for _, s := range shifts {
		out[s.EmployeeID] = append(out[s.EmployeeID], s)
	}
	return out
}

// partitionByBackup indexes shifts by their designated stand-in, so that each
// employee's coverage is computed from their own duties instead of a scan of
// the whole period.
func partitionByBackup(shifts []premium.ShiftRecord) map[generic.EmployeeID][]premium.ShiftRecord {
	out := make(map[generic.EmployeeID][]premium.ShiftRecord)
	for _, s := range shifts {
		if s.HasBackup() {
			out[s.BackupEmployeeID] = append(out[s.BackupEmployeeID], s)
		}
	}
	return out
}
