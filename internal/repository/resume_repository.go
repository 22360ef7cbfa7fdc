package repository

import (
	"context"

	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db}
}

func (r *ResumeRepository) Create(ctx context.Context, resume *model.Resume) error {
	return r.db.WithContext(ctx).Create(resume).Error
}

func (r *ResumeRepository) Update(ctx context.Context, resume *model.Resume) error {
	return r.db.WithContext(ctx).Save(resume).Error
}

func (r *ResumeRepository) FindForUser(ctx context.Context, id, userID uuid.UUID) (*model.Resume, error) {
	var resume model.Resume
	err := r.db.WithContext(ctx).First(&resume, "id = ? AND user_id = ?", id, userID).Error
	return &resume, err
}

func (r *ResumeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Resume, error) {
	var resumes []model.Resume
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at DESC").Find(&resumes).Error
	return resumes, err
}
