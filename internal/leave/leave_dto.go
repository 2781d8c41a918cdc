package leave

import "go-school/internal/domain"

type SubmitLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=casual medical emergency personal"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"max=1000"`
}

type ReviewLeaveRequest struct {
	DateBucket      string  `json:"date_bucket"`
	RejectionReason *string `json:"rejection_reason" binding:"omitempty,max=1000"`
}

type LeaveResponse struct {
	ID              string            `json:"id"`
	DateBucket      string            `json:"date_bucket"`
	ApplicantID     string            `json:"applicant_id"`
	ApplicantType   string            `json:"applicant_type"`
	LeaveType       string            `json:"leave_type"`
	StartDate       string            `json:"start_date"`
	EndDate         string            `json:"end_date"`
	Duration        int               `json:"duration"`
	Reason          string            `json:"reason"`
	Status          string            `json:"status"`
	Processed       bool              `json:"processed"`
	BalanceBefore   domain.Allowance  `json:"balance_before"`
	BalanceAfter    *domain.Allowance `json:"balance_after,omitempty"`
	ReviewedBy      *string           `json:"reviewed_by,omitempty"`
	ReviewedAt      *string           `json:"reviewed_at,omitempty"`
	RejectionReason *string           `json:"rejection_reason,omitempty"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at"`
}
