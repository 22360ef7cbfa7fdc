package repository

import (
	"context"

	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db}
}

func (r *AssessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	return r.db.WithContext(ctx).Create(assessment).Error
}

// LatestCompleted returns the most recent completed assessment of a user.
func (r *AssessmentRepository) LatestCompleted(ctx context.Context, userID uuid.UUID) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, true).
		Order("created_at DESC").
		First(&assessment).Error
	return &assessment, err
}

func (r *AssessmentRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Assessment{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
