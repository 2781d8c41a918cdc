package quota

import "go-school/internal/domain"

type UpdateQuotaRequest struct {
	Casual    *int `json:"casual" binding:"required,min=0"`
	Medical   *int `json:"medical" binding:"required,min=0"`
	Emergency *int `json:"emergency" binding:"required,min=0"`
	Personal  *int `json:"personal" binding:"required,min=0"`
}

func (r UpdateQuotaRequest) Allowance() domain.Allowance {
	return domain.Allowance{
		Casual:    derefInt(r.Casual),
		Medical:   derefInt(r.Medical),
		Emergency: derefInt(r.Emergency),
		Personal:  derefInt(r.Personal),
	}
}

type QuotaResponse struct {
	Role       string           `json:"role"`
	Quota      domain.Allowance `json:"quota"`
	Configured bool             `json:"configured"`
	UpdatedBy  *string          `json:"updated_by,omitempty"`
	UpdatedAt  *string          `json:"updated_at,omitempty"`
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
