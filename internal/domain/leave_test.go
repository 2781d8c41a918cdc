package domain_test

import (
	"testing"
	"time"

	"go-school/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestInclusiveDayCountString(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{name: "same day", start: "2025-06-10", end: "2025-06-10", want: 1},
		{name: "three days", start: "2025-06-10", end: "2025-06-12", want: 3},
		{name: "across month", start: "2025-01-30", end: "2025-02-02", want: 4},
		{name: "leap day", start: "2024-02-28", end: "2024-03-01", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.InclusiveDayCountString(tt.start, tt.end)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("negative end before start", func(t *testing.T) {
		_, err := domain.InclusiveDayCountString("2025-06-12", "2025-06-10")
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("negative bad format", func(t *testing.T) {
		_, err := domain.InclusiveDayCountString("10/06/2025", "2025-06-10")
		assert.ErrorIs(t, err, domain.ErrInvalidDateFormat)
	})
}

func TestAllowance(t *testing.T) {
	a := domain.Allowance{Casual: 10, Medical: 15, Emergency: 5, Personal: 5}

	after := a.Deduct(domain.LeaveCasual, 3)
	assert.Equal(t, 7, after.Casual)
	assert.Equal(t, 10, a.Casual)
	assert.Equal(t, 15, after.Medical)
	assert.False(t, after.HasNegative())

	assert.True(t, a.Deduct(domain.LeaveEmergency, 6).HasNegative())
	assert.Equal(t, 0, a.Get(domain.LeaveType("sabbatical")))
}

func TestDateBucket(t *testing.T) {
	ts := time.Date(2025, time.June, 10, 23, 30, 0, 0, time.FixedZone("WIB", 7*3600))

	assert.Equal(t, "06-10", domain.DateBucket(ts))
}

func TestParseApplicantRole(t *testing.T) {
	r, err := domain.ParseApplicantRole("teacher")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleTeacher, r)

	_, err = domain.ParseApplicantRole("admin")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestRepairAllowance(t *testing.T) {
	fallback := domain.Allowance{Casual: 10, Medical: 15, Emergency: 5, Personal: 5}
	three := 3
	negative := -4

	got, repaired := domain.RepairAllowance([4]*int{&three, nil, &negative, &three}, fallback)

	assert.True(t, repaired)
	assert.Equal(t, domain.Allowance{Casual: 3, Medical: 15, Emergency: 5, Personal: 3}, got)

	clean := domain.Allowance{Casual: 1, Medical: 2, Emergency: 0, Personal: 4}
	got, repaired = domain.RepairAllowance(clean.Fields(), fallback)
	assert.False(t, repaired)
	assert.Equal(t, clean, got)
}
