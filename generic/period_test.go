package generic_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-ledger/generic"
)

func TestMonthPeriod(t *testing.T) {
	p, err := generic.MonthPeriod(2026, time.February)
	require.NoError(t, err)
	assert.Equal(t, "[2026-02-01, 2026-02-28]", p.String())
	require.NoError(t, p.Validate())

	assert.True(t, p.Contains(generic.NewDate(2026, time.February, 1)))
	assert.True(t, p.Contains(generic.NewDate(2026, time.February, 28)))
	assert.False(t, p.Contains(generic.NewDate(2026, time.March, 1)))
	assert.False(t, p.Contains(generic.NewDate(2026, time.January, 31)))
}

func TestMonthPeriod_InvalidMonth(t *testing.T) {
	for _, m := range []time.Month{0, 13} {
		_, err := generic.MonthPeriod(2026, m)
		assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
	}
}

func TestPeriod_ValidateRejectsInverted(t *testing.T) {
	p := generic.Period{
		Start: generic.NewDate(2026, time.May, 2),
		End:   generic.NewDate(2026, time.May, 1),
	}
	assert.ErrorIs(t, p.Validate(), generic.ErrInvalidPeriod)
}

// =============================================================================
// DATE SET
// =============================================================================

func TestDateSet_DistinctDays(t *testing.T) {
	s := generic.NewDateSet()
	d := generic.NewDate(2026, time.April, 15)

	afternoon, err := generic.ParseDate("2026-04-15T13:00:00Z")
	require.NoError(t, err)

	s.Add(d)
	s.Add(afternoon)
	s.Add(d.AddDays(-1))

	assert.Equal(t, 2, s.Len())
}

func TestDateSet_ZeroValueUsable(t *testing.T) {
	var s generic.DateSet
	assert.Zero(t, s.Len())
	s.Add(generic.NewDate(2026, time.April, 15))
	assert.Equal(t, 1, s.Len())
}

// =============================================================================
// ERRORS
// =============================================================================

func TestNotFoundError_Unwrap(t *testing.T) {
	var err error = &generic.NotFoundError{Kind: "employee", ID: "emp-9"}
	assert.True(t, errors.Is(err, generic.ErrEmployeeNotFound))
	assert.True(t, generic.IsNotFound(err))
	assert.False(t, generic.IsClientError(err))
	assert.Equal(t, "employee not found: emp-9", err.Error())

	err = &generic.NotFoundError{Kind: "shift", ID: "s-1"}
	assert.True(t, errors.Is(err, generic.ErrShiftNotFound))
}
