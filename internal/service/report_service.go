package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"report-service/internal/model"
)

// ReportStore is the persistence contract for report records. The gorm
// repository satisfies it in production; tests use an in-memory fake.
type ReportStore interface {
	Create(ctx context.Context, report *model.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Report, error)
	GetByComplaintID(ctx context.Context, complaintID string) (*model.Report, error)
	List(ctx context.Context, filter model.ReportFilter) ([]model.Report, error)
	UpdateAssignment(ctx context.Context, id uuid.UUID, workerID *uuid.UUID, status model.ReportStatus, resolvedAt *time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReportStatus, resolvedAt *time.Time) error
	UpdateWorkImages(ctx context.Context, id uuid.UUID, beforeURL, afterURL *string) error
	CountByStatus(ctx context.Context) (model.ReportStats, error)
	LogStatusChange(ctx context.Context, entry *model.ReportStatusLog) error
}

// SequenceStore allocates per-year complaint sequence numbers. The
// allocation must be atomic across concurrent callers and across
// service instances.
type SequenceStore interface {
	NextValue(ctx context.Context, year int) (int64, error)
}

type WorkerStore interface {
	ListWorkers(ctx context.Context) ([]model.WorkerProfile, error)
	GetWorker(ctx context.Context, userID uuid.UUID) (*model.WorkerProfile, error)
}

// Notifier delivers best-effort mail. Errors are logged and swallowed by
// the service; they never surface to callers.
type Notifier interface {
	Send(ctx context.Context, n model.Notification) error
}

type ReportService struct {
	reports   ReportStore
	sequences SequenceStore
	workers   WorkerStore
	notifier  Notifier
	log       zerolog.Logger
	now       func() time.Time
}

func NewReportService(
	reports ReportStore,
	sequences SequenceStore,
	workers WorkerStore,
	notifier Notifier,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		reports:   reports,
		sequences: sequences,
		workers:   workers,
		notifier:  notifier,
		log:       log,
		now:       time.Now,
	}
}

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

type CreateReportInput struct {
	ReporterName  string
	ReporterPhone string
	ReporterEmail string
	DamageType    string
	Severity      model.ReportSeverity
	Location      string
	Landmark      string
	Ward          string
	Description   string
	GpsLat        *float64
	GpsLng        *float64
	ImageURL      *string
}

func (in CreateReportInput) validate() error {
	if strings.TrimSpace(in.ReporterName) == "" {
		return fmt.Errorf("%w: reporter_name is required", ErrInvalidInput)
	}
	if !phonePattern.MatchString(in.ReporterPhone) {
		return fmt.Errorf("%w: reporter_phone must be 10 digits", ErrInvalidInput)
	}
	if strings.TrimSpace(in.DamageType) == "" {
		return fmt.Errorf("%w: damage_type is required", ErrInvalidInput)
	}
	if !in.Severity.Valid() {
		return fmt.Errorf("%w: severity must be low, moderate or critical", ErrInvalidInput)
	}
	if len(strings.TrimSpace(in.Location)) < 5 {
		return fmt.Errorf("%w: location is too short", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Ward) == "" {
		return fmt.Errorf("%w: ward is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	return nil
}

// CreateReport is the public submission path. The complaint ID and
// lifecycle fields are system-assigned; callers cannot supply them.
func (s *ReportService) CreateReport(ctx context.Context, input CreateReportInput) (*model.Report, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := s.now()
	seq, err := s.sequences.NextValue(ctx, now.Year())
	if err != nil {
		return nil, fmt.Errorf("allocate complaint sequence: %w", err)
	}

	report := &model.Report{
		ID:            uuid.New(),
		ComplaintID:   FormatComplaintID(now.Year(), seq),
		Status:        model.ReportStatusPending,
		Severity:      input.Severity,
		DamageType:    strings.TrimSpace(input.DamageType),
		Description:   strings.TrimSpace(input.Description),
		ReporterName:  strings.TrimSpace(input.ReporterName),
		ReporterPhone: input.ReporterPhone,
		ReporterEmail: strings.TrimSpace(input.ReporterEmail),
		Location:      strings.TrimSpace(input.Location),
		Landmark:      strings.TrimSpace(input.Landmark),
		Ward:          strings.TrimSpace(input.Ward),
		GpsLat:        input.GpsLat,
		GpsLng:        input.GpsLng,
		ImageURL:      input.ImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	if err := s.reports.LogStatusChange(ctx, &model.ReportStatusLog{
		ReportID:  report.ID,
		NewStatus: model.ReportStatusPending,
		Note:      "citizen submission",
	}); err != nil {
		s.log.Warn().Err(err).Str("complaint_id", report.ComplaintID).Msg("status log write failed")
	}

	return report, nil
}

// FormatComplaintID renders the public identifier, e.g. SMC-2026-000123.
func FormatComplaintID(year int, seq int64) string {
	return fmt.Sprintf("SMC-%04d-%06d", year, seq)
}

// AssignWorker sets or clears the assignee. Assigning a pending report
// promotes it to in-progress; unassigning always reverts to pending.
func (s *ReportService) AssignWorker(ctx context.Context, principal model.Principal, reportID uuid.UUID, workerID *uuid.UUID) (*model.Report, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var worker *model.WorkerProfile
	newStatus := report.Status
	if workerID != nil {
		worker, err = s.workers.GetWorker(ctx, *workerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if report.Status == model.ReportStatusPending {
			newStatus = model.ReportStatusInProgress
		}
	} else {
		newStatus = model.ReportStatusPending
	}

	resolvedAt := report.ResolvedAt
	if newStatus != model.ReportStatusResolved {
		resolvedAt = nil
	}

	if err := s.reports.UpdateAssignment(ctx, report.ID, workerID, newStatus, resolvedAt); err != nil {
		return nil, err
	}

	if newStatus != report.Status {
		s.logTransition(ctx, report, newStatus, principal.UserID, "assignment change")
	}

	if worker != nil {
		s.dispatch(model.Notification{
			Kind:          model.NotificationAssignment,
			Recipient:     worker.Email,
			RecipientName: worker.FullName,
			ComplaintID:   report.ComplaintID,
			Location:      report.Location,
			DamageType:    report.DamageType,
			Severity:      report.Severity,
		})
	}

	return s.reports.GetByID(ctx, report.ID)
}

// UpdateStatus is the explicit staff-driven transition. Any status is
// reachable from any other; resolved_at follows the resolved state.
func (s *ReportService) UpdateStatus(ctx context.Context, principal model.Principal, reportID uuid.UUID, target model.ReportStatus) (*model.Report, error) {
	if !target.Valid() {
		return nil, ErrInvalidStatus
	}

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !principal.CanUpdateReport(report) {
		return nil, ErrPermissionDenied
	}

	var resolvedAt *time.Time
	if target == model.ReportStatusResolved {
		ts := s.now()
		resolvedAt = &ts
	}

	if err := s.reports.UpdateStatus(ctx, report.ID, target, resolvedAt); err != nil {
		return nil, err
	}

	if target != report.Status {
		s.logTransition(ctx, report, target, principal.UserID, "staff status update")
	}

	if report.ReporterEmail != "" {
		s.dispatch(model.Notification{
			Kind:          model.NotificationStatusChange,
			Recipient:     report.ReporterEmail,
			RecipientName: report.ReporterName,
			ComplaintID:   report.ComplaintID,
			NewStatus:     target,
		})
	}

	return s.reports.GetByID(ctx, report.ID)
}

// UpdateWorkImages stores before/after work photo URLs on a report.
func (s *ReportService) UpdateWorkImages(ctx context.Context, principal model.Principal, reportID uuid.UUID, beforeURL, afterURL *string) (*model.Report, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !principal.CanUpdateReport(report) {
		return nil, ErrPermissionDenied
	}

	if err := s.reports.UpdateWorkImages(ctx, report.ID, beforeURL, afterURL); err != nil {
		return nil, err
	}

	return s.reports.GetByID(ctx, report.ID)
}

// Track is the public read surface: the projection plus derived timeline
// for a complaint ID. Reporter contact details are not included.
func (s *ReportService) Track(ctx context.Context, complaintID string) (*model.TrackedReport, error) {
	report, err := s.reports.GetByComplaintID(ctx, strings.ToUpper(strings.TrimSpace(complaintID)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &model.TrackedReport{
		Report:   report.PublicProjection(),
		Timeline: DeriveTimeline(report),
	}, nil
}

func (s *ReportService) List(ctx context.Context, principal model.Principal, filter model.ReportFilter) ([]model.Report, error) {
	switch {
	case principal.IsAdmin():
	case principal.IsWorker():
		// Workers only ever see their own queue.
		id := principal.UserID
		filter.AssignedTo = &id
	default:
		return nil, ErrPermissionDenied
	}

	return s.reports.List(ctx, filter)
}

// RecentReports returns public projections for the portal's landing page.
func (s *ReportService) RecentReports(ctx context.Context, limit int) ([]model.PublicReport, error) {
	if limit <= 0 || limit > 50 {
		limit = 4
	}
	reports, err := s.reports.List(ctx, model.ReportFilter{Limit: limit})
	if err != nil {
		return nil, err
	}
	projections := make([]model.PublicReport, 0, len(reports))
	for i := range reports {
		projections = append(projections, reports[i].PublicProjection())
	}
	return projections, nil
}

func (s *ReportService) Stats(ctx context.Context) (model.ReportStats, error) {
	return s.reports.CountByStatus(ctx)
}

func (s *ReportService) ListWorkers(ctx context.Context, principal model.Principal) ([]model.WorkerProfile, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.workers.ListWorkers(ctx)
}

func (s *ReportService) logTransition(ctx context.Context, report *model.Report, target model.ReportStatus, changedBy uuid.UUID, note string) {
	prev := report.Status
	if err := s.reports.LogStatusChange(ctx, &model.ReportStatusLog{
		ReportID:  report.ID,
		OldStatus: &prev,
		NewStatus: target,
		Note:      note,
		ChangedBy: &changedBy,
	}); err != nil {
		s.log.Warn().Err(err).Str("complaint_id", report.ComplaintID).Msg("status log write failed")
	}
}

// dispatch fires a notification without blocking the transition. The send
// runs after the durable write; failures are logged and dropped.
func (s *ReportService) dispatch(n model.Notification) {
	if n.Recipient == "" {
		return
	}
	go func() {
		if err := s.notifier.Send(context.Background(), n); err != nil {
			s.log.Warn().
				Err(err).
				Str("kind", string(n.Kind)).
				Str("complaint_id", n.ComplaintID).
				Msg("notification failed")
		}
	}()
}
