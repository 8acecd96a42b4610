package repository

import (
	"context"

	"gorm.io/gorm"
)

// SequenceRepository allocates per-year complaint sequence numbers.
// The upsert takes a row lock, so concurrent creates serialize on the
// year row and never see the same value. The unique index on
// reports.complaint_id is the backstop if an allocation is retried.
type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

func (r *SequenceRepository) NextValue(ctx context.Context, year int) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO complaint_sequences (year, last_value) VALUES (?, 1)
		 ON CONFLICT (year) DO UPDATE SET last_value = complaint_sequences.last_value + 1
		 RETURNING last_value`,
		year,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
