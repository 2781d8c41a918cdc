package balance

import "go-school/internal/domain"

type SetBalanceRequest struct {
	Role      string `json:"role" binding:"required,oneof=student teacher"`
	Casual    *int   `json:"casual" binding:"required,min=0"`
	Medical   *int   `json:"medical" binding:"required,min=0"`
	Emergency *int   `json:"emergency" binding:"required,min=0"`
	Personal  *int   `json:"personal" binding:"required,min=0"`
}

// Allowance assumes binding has already required every field.
func (r SetBalanceRequest) Allowance() domain.Allowance {
	return domain.Allowance{
		Casual:    *r.Casual,
		Medical:   *r.Medical,
		Emergency: *r.Emergency,
		Personal:  *r.Personal,
	}
}

type BalanceResponse struct {
	ApplicantID string           `json:"applicant_id"`
	Role        string           `json:"role"`
	Balance     domain.Allowance `json:"balance"`
}
