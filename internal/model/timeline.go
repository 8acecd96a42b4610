package model

import "time"

// Timeline step labels shown on the public tracking page.
const (
	TimelineStepReported    = "Reported"
	TimelineStepUnderReview = "Under Review"
	TimelineStepInProgress  = "In Progress"
	TimelineStepResolved    = "Resolved"
)

// TimelineStep is a derived milestone. Date is nil while the step is
// incomplete; clients render that as "Pending".
type TimelineStep struct {
	Label       string     `json:"status"`
	Description string     `json:"description"`
	Completed   bool       `json:"is_completed"`
	Date        *time.Time `json:"date,omitempty"`
}
