package model

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusInProgress ReportStatus = "in-progress"
	ReportStatusResolved   ReportStatus = "resolved"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusResolved:
		return true
	}
	return false
}

type ReportSeverity string

const (
	ReportSeverityLow      ReportSeverity = "low"
	ReportSeverityModerate ReportSeverity = "moderate"
	ReportSeverityCritical ReportSeverity = "critical"
)

func (s ReportSeverity) Valid() bool {
	switch s {
	case ReportSeverityLow, ReportSeverityModerate, ReportSeverityCritical:
		return true
	}
	return false
}

// Report is a citizen-submitted road-damage record. ComplaintID is the
// public identifier (SMC-<year>-<sequence>) and never changes after
// creation; ResolvedAt is set exactly while Status is resolved.
type Report struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ComplaintID    string         `gorm:"type:varchar(32);not null;uniqueIndex:uniq_reports_complaint_id" json:"complaint_id"`
	Status         ReportStatus   `gorm:"type:report_status;not null;default:'pending'" json:"status"`
	Severity       ReportSeverity `gorm:"type:report_severity;not null" json:"severity"`
	DamageType     string         `gorm:"type:varchar(64);not null" json:"damage_type"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	ReporterName   string         `gorm:"type:varchar(255);not null" json:"reporter_name"`
	ReporterPhone  string         `gorm:"type:varchar(32);not null" json:"reporter_phone"`
	ReporterEmail  string         `gorm:"type:varchar(255)" json:"reporter_email"`
	Location       string         `gorm:"type:text;not null" json:"location"`
	Landmark       string         `gorm:"type:text" json:"landmark"`
	Ward           string         `gorm:"type:varchar(32);not null" json:"ward"`
	GpsLat         *float64       `gorm:"column:gps_lat" json:"gps_lat"`
	GpsLng         *float64       `gorm:"column:gps_lng" json:"gps_lng"`
	ImageURL       *string        `gorm:"type:text" json:"image_url"`
	BeforeImageURL *string        `gorm:"type:text" json:"before_image_url"`
	AfterImageURL  *string        `gorm:"type:text" json:"after_image_url"`
	AssignedTo     *uuid.UUID     `gorm:"type:uuid" json:"assigned_to"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	ResolvedAt     *time.Time     `json:"resolved_at"`
}

func (Report) TableName() string {
	return "reports"
}
