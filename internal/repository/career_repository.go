package repository

import (
	"context"
	"strings"

	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CareerFilter struct {
	Category string
	Search   string
}

type CareerRepository struct {
	db *gorm.DB
}

func NewCareerRepository(db *gorm.DB) *CareerRepository {
	return &CareerRepository{db}
}

func (r *CareerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Career{}).Count(&count).Error
	return count, err
}

func (r *CareerRepository) CreateBatch(ctx context.Context, careers []model.Career) error {
	return r.db.WithContext(ctx).CreateInBatches(&careers, 50).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List returns careers matching the filter, highest demand first. Search is a
// case-insensitive substring match on the title.
func (r *CareerRepository) List(ctx context.Context, filter CareerFilter) ([]model.Career, error) {
	var careers []model.Career
	q := r.db.WithContext(ctx).Model(&model.Career{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(filter.Search))+"%")
	}
	err := q.Order("demand_score DESC").Order("title ASC").Find(&careers).Error
	return careers, err
}

func (r *CareerRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.Career{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *CareerRepository) FindBySlug(ctx context.Context, slug string) (*model.Career, error) {
	var career model.Career
	err := r.db.WithContext(ctx).First(&career, "slug = ?", slug).Error
	return &career, err
}

func (r *CareerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Career, error) {
	var career model.Career
	err := r.db.WithContext(ctx).First(&career, "id = ?", id).Error
	return &career, err
}

func (r *CareerRepository) All(ctx context.Context) ([]model.Career, error) {
	var careers []model.Career
	err := r.db.WithContext(ctx).Order("demand_score DESC").Find(&careers).Error
	return careers, err
}
