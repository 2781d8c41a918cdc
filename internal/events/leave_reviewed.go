package events

import "time"

const (
	LeaveReviewedTopic     = "school.leave.reviewed.v1"
	LeaveReviewedEventType = "leave_reviewed"
)

// LeaveReviewedEvent is emitted when an application is approved so the
// consumer can settle the applicant's balance right away.
type LeaveReviewedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	LeaveID       string    `json:"leave_id"`
	ApplicantID   string    `json:"applicant_id"`
	ApplicantType string    `json:"applicant_type"`
	Decision      string    `json:"decision"`
	ReviewedBy    string    `json:"reviewed_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
