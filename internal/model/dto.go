package model

import (
	"time"

	"github.com/google/uuid"
)

// PublicReport is the projection returned to unauthenticated trackers.
// Reporter phone and email stay private.
type PublicReport struct {
	ComplaintID string         `json:"complaint_id"`
	Status      ReportStatus   `json:"status"`
	Severity    ReportSeverity `json:"severity"`
	DamageType  string         `json:"damage_type"`
	Location    string         `json:"location"`
	Landmark    string         `json:"landmark,omitempty"`
	Ward        string         `json:"ward"`
	ReportedBy  string         `json:"reported_by"`
	Assigned    bool           `json:"assigned"`
	CreatedAt   time.Time      `json:"created_at"`
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty"`
}

func (r *Report) PublicProjection() PublicReport {
	return PublicReport{
		ComplaintID: r.ComplaintID,
		Status:      r.Status,
		Severity:    r.Severity,
		DamageType:  r.DamageType,
		Location:    r.Location,
		Landmark:    r.Landmark,
		Ward:        r.Ward,
		ReportedBy:  r.ReporterName,
		Assigned:    r.AssignedTo != nil,
		CreatedAt:   r.CreatedAt,
		ResolvedAt:  r.ResolvedAt,
	}
}

// TrackedReport is the public tracking response: projection plus the
// derived four-step timeline.
type TrackedReport struct {
	Report   PublicReport   `json:"report"`
	Timeline []TimelineStep `json:"timeline"`
}

type ReportStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
}

// ReportFilter narrows staff listings. Statuses and Ward are exact
// matches; Search runs case-insensitively over complaint ID, location
// and reporter name.
type ReportFilter struct {
	Statuses   []ReportStatus
	Ward       string
	AssignedTo *uuid.UUID
	Search     string
	Limit      int
	Offset     int
}

type NotificationKind string

const (
	NotificationAssignment   NotificationKind = "assignment"
	NotificationStatusChange NotificationKind = "status_change"
)

// Notification is a best-effort mail request. Delivery failures never
// affect the lifecycle transition that produced it.
type Notification struct {
	Kind          NotificationKind
	Recipient     string
	RecipientName string
	ComplaintID   string
	Location      string
	DamageType    string
	Severity      ReportSeverity
	NewStatus     ReportStatus
}
