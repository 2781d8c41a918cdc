package processing

import "go-school/internal/domain"

type Outcome string

const (
	OutcomeProcessed        Outcome = "processed"
	OutcomeAlreadyProcessed Outcome = "already_processed"
	OutcomeNotFound         Outcome = "not_found"
	OutcomeNotApproved      Outcome = "not_approved"
	// OutcomeSkipped leaves the application approved and unprocessed because
	// the deduction would take its leave type below zero.
	OutcomeSkipped Outcome = "skipped_insufficient_balance"
)

type Result struct {
	LeaveID      string            `json:"leave_id"`
	Outcome      Outcome           `json:"outcome"`
	BalanceAfter *domain.Allowance `json:"balance_after,omitempty"`
}

type BatchResult struct {
	ApplicantID string            `json:"applicant_id"`
	Results     []Result          `json:"results"`
	Balance     *domain.Allowance `json:"balance,omitempty"`
}

// Processed counts the applications settled by the batch.
func (b BatchResult) Processed() int {
	n := 0
	for _, r := range b.Results {
		if r.Outcome == OutcomeProcessed {
			n++
		}
	}
	return n
}
