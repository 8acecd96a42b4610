package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"report-service/internal/model"
)

type WorkerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

func (r *WorkerRepository) ListWorkers(ctx context.Context) ([]model.WorkerProfile, error) {
	var workers []model.WorkerProfile
	if err := r.db.WithContext(ctx).
		Table("profiles").
		Select("profiles.user_id, profiles.full_name, profiles.email, profiles.phone").
		Joins("JOIN user_roles ur ON ur.user_id = profiles.user_id").
		Where("ur.role = ?", model.UserRoleWorker).
		Order("profiles.full_name ASC").
		Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

func (r *WorkerRepository) GetWorker(ctx context.Context, userID uuid.UUID) (*model.WorkerProfile, error) {
	var worker model.WorkerProfile
	if err := r.db.WithContext(ctx).
		Table("profiles").
		Select("profiles.user_id, profiles.full_name, profiles.email, profiles.phone").
		Joins("JOIN user_roles ur ON ur.user_id = profiles.user_id").
		Where("ur.role = ? AND profiles.user_id = ?", model.UserRoleWorker, userID).
		Take(&worker).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}
