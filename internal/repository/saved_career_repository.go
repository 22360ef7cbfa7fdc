package repository

import (
	"context"

	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SavedCareerRepository struct {
	db *gorm.DB
}

func NewSavedCareerRepository(db *gorm.DB) *SavedCareerRepository {
	return &SavedCareerRepository{db}
}

func (r *SavedCareerRepository) Create(ctx context.Context, saved *model.SavedCareer) error {
	return r.db.WithContext(ctx).Create(saved).Error
}

func (r *SavedCareerRepository) Exists(ctx context.Context, userID, careerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SavedCareer{}).
		Where("user_id = ? AND career_id = ?", userID, careerID).
		Count(&count).Error
	return count > 0, err
}

func (r *SavedCareerRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SavedCareer, error) {
	var saved []model.SavedCareer
	err := r.db.WithContext(ctx).
		Preload("Career").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saved).Error
	return saved, err
}

// DeleteForUser removes a saved career owned by userID and reports whether a row was deleted.
func (r *SavedCareerRepository) DeleteForUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.SavedCareer{})
	return res.RowsAffected > 0, res.Error
}
