package quota

import (
	"time"

	"go-school/internal/domain"
)

// LeaveQuota is the configured yearly allowance of a role. Columns are
// nullable so a partially written row can be detected and repaired.
type LeaveQuota struct {
	Role      string  `gorm:"type:varchar(20);primaryKey"`
	Casual    *int    `gorm:"type:int"`
	Medical   *int    `gorm:"type:int"`
	Emergency *int    `gorm:"type:int"`
	Personal  *int    `gorm:"type:int"`
	UpdatedBy *string `gorm:"type:varchar(64)"`
	UpdatedAt time.Time
}

func (LeaveQuota) TableName() string {
	return "leave_quotas"
}

func newLeaveQuota(role domain.Role, a domain.Allowance) *LeaveQuota {
	return &LeaveQuota{
		Role:      string(role),
		Casual:    intPtr(a.Casual),
		Medical:   intPtr(a.Medical),
		Emergency: intPtr(a.Emergency),
		Personal:  intPtr(a.Personal),
	}
}

func intPtr(v int) *int {
	return &v
}

// fallbackQuotas apply when no row is configured for a role.
var fallbackQuotas = map[domain.Role]domain.Allowance{
	domain.RoleStudent: {Casual: 10, Medical: 15, Emergency: 5, Personal: 5},
	domain.RoleTeacher: {Casual: 12, Medical: 15, Emergency: 5, Personal: 8},
}

func FallbackQuota(role domain.Role) domain.Allowance {
	return fallbackQuotas[role]
}

func (q LeaveQuota) fields() [4]*int {
	return [4]*int{q.Casual, q.Medical, q.Emergency, q.Personal}
}
