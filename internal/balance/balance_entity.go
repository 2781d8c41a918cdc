package balance

import (
	"time"

	"go-school/internal/domain"
)

// LeaveBalance is the remaining allowance of one applicant. Columns are
// nullable so partially written rows can be repaired on read.
type LeaveBalance struct {
	ApplicantID string `gorm:"type:varchar(64);primaryKey"`
	Role        string `gorm:"type:varchar(20);not null"`
	Casual      *int   `gorm:"type:int"`
	Medical     *int   `gorm:"type:int"`
	Emergency   *int   `gorm:"type:int"`
	Personal    *int   `gorm:"type:int"`
	UpdatedAt   time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

func newLeaveBalance(applicantID string, role domain.Role, a domain.Allowance, now time.Time) *LeaveBalance {
	f := a.Fields()
	return &LeaveBalance{
		ApplicantID: applicantID,
		Role:        string(role),
		Casual:      f[0],
		Medical:     f[1],
		Emergency:   f[2],
		Personal:    f[3],
		UpdatedAt:   now,
	}
}

func (b LeaveBalance) fields() [4]*int {
	return [4]*int{b.Casual, b.Medical, b.Emergency, b.Personal}
}

// ResetRecord remembers the last calendar year an applicant was reset for.
type ResetRecord struct {
	ApplicantID string `gorm:"type:varchar(64);primaryKey"`
	Year        int    `gorm:"not null"`
	ResetAt     time.Time
}

func (ResetRecord) TableName() string {
	return "leave_reset_records"
}
