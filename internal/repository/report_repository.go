package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"report-service/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).
		First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) GetByComplaintID(ctx context.Context, complaintID string) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).
		First(&report, "complaint_id = ?", complaintID).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) List(ctx context.Context, filter model.ReportFilter) ([]model.Report, error) {
	query := r.db.WithContext(ctx).Model(&model.Report{})

	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.Ward != "" {
		query = query.Where("ward = ?", filter.Ward)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where(
			"(complaint_id ILIKE ? OR location ILIKE ? OR reporter_name ILIKE ?)",
			search, search, search,
		)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(200)
	}

	var reports []model.Report
	if err := query.
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *ReportRepository) UpdateAssignment(ctx context.Context, id uuid.UUID, workerID *uuid.UUID, status model.ReportStatus, resolvedAt *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"assigned_to": workerID,
			"status":      status,
			"resolved_at": resolvedAt,
		}).Error
}

func (r *ReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReportStatus, resolvedAt *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_at": resolvedAt,
		}).Error
}

func (r *ReportRepository) UpdateWorkImages(ctx context.Context, id uuid.UUID, beforeURL, afterURL *string) error {
	updates := map[string]interface{}{}
	if beforeURL != nil {
		updates["before_image_url"] = *beforeURL
	}
	if afterURL != nil {
		updates["after_image_url"] = *afterURL
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *ReportRepository) CountByStatus(ctx context.Context) (model.ReportStats, error) {
	type result struct {
		Status model.ReportStatus
		Count  int64
	}
	var data []result
	if err := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Find(&data).Error; err != nil {
		return model.ReportStats{}, err
	}

	var stats model.ReportStats
	for _, row := range data {
		stats.Total += row.Count
		switch row.Status {
		case model.ReportStatusPending:
			stats.Pending = row.Count
		case model.ReportStatusInProgress:
			stats.InProgress = row.Count
		case model.ReportStatusResolved:
			stats.Resolved = row.Count
		}
	}
	return stats, nil
}

func (r *ReportRepository) LogStatusChange(ctx context.Context, logEntry *model.ReportStatusLog) error {
	return r.db.WithContext(ctx).Create(logEntry).Error
}
