package leave

import (
	"time"

	"go-school/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type LeaveApplication struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	DateBucket    string    `gorm:"type:varchar(5);not null"`
	ApplicantID   string    `gorm:"type:varchar(64);not null;index:idx_leave_applications_applicant_created,priority:1"`
	ApplicantType string    `gorm:"type:varchar(20);not null"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Duration  int       `gorm:"type:int;not null"`
	Reason    string    `gorm:"type:text"`

	Status    string `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_applications_status_created,priority:1;index:idx_leave_applications_status_processed,priority:1"`
	Processed bool   `gorm:"not null;default:false;index:idx_leave_applications_status_processed,priority:2"`

	BalanceBefore datatypes.JSONType[domain.Allowance]  `gorm:"type:jsonb;not null"`
	BalanceAfter  *datatypes.JSONType[domain.Allowance] `gorm:"type:jsonb"`

	ReviewedBy      *string `gorm:"type:varchar(64)"`
	ReviewedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"index:idx_leave_applications_applicant_created,priority:2;index:idx_leave_applications_status_created,priority:2"`
	UpdatedAt time.Time
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}

// Settle marks the application processed with the balance left after it.
func (l *LeaveApplication) Settle(after domain.Allowance, now time.Time) {
	snapshot := datatypes.NewJSONType(after)
	l.Processed = true
	l.BalanceAfter = &snapshot
	l.UpdatedAt = now
}
