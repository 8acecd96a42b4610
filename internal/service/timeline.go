package service

import (
	"time"

	"report-service/internal/model"
)

// DeriveTimeline builds the four-step tracking timeline from the report's
// lifecycle fields. It is recomputed on every read and never persisted.
//
// "Under Review" has no backing column: it is marked complete as soon as
// the report exists, with a synthetic timestamp one hour after creation.
// That mirrors the portal's original behavior and is kept as-is.
func DeriveTimeline(report *model.Report) []model.TimelineStep {
	createdAt := report.CreatedAt
	reviewedAt := createdAt.Add(time.Hour)

	inProgressDone := report.Status == model.ReportStatusInProgress ||
		report.Status == model.ReportStatusResolved
	resolvedDone := report.Status == model.ReportStatusResolved

	steps := []model.TimelineStep{
		{
			Label:       model.TimelineStepReported,
			Description: "Complaint submitted by citizen",
			Completed:   true,
			Date:        &createdAt,
		},
		{
			Label:       model.TimelineStepUnderReview,
			Description: "Complaint verified by ward officer",
			Completed:   true,
			Date:        &reviewedAt,
		},
		{
			Label:       model.TimelineStepInProgress,
			Description: "Repair work has started",
			Completed:   inProgressDone,
		},
		{
			Label:       model.TimelineStepResolved,
			Description: "Repair work completed",
			Completed:   resolvedDone,
		},
	}

	if inProgressDone {
		updatedAt := report.UpdatedAt
		steps[2].Date = &updatedAt
	} else {
		steps[2].Description = "Awaiting crew assignment"
	}
	if resolvedDone && report.ResolvedAt != nil {
		steps[3].Date = report.ResolvedAt
	}
	if !resolvedDone {
		steps[3].Description = "Awaiting completion"
	}

	return steps
}
