package repository

import (
	"context"
	"time"

	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CareerEmbeddingRepository struct {
	db *gorm.DB
}

func NewCareerEmbeddingRepository(db *gorm.DB) *CareerEmbeddingRepository {
	return &CareerEmbeddingRepository{db}
}

func (r *CareerEmbeddingRepository) Upsert(ctx context.Context, careerID uuid.UUID, embedding pgvector.Vector) error {
	row := model.CareerEmbedding{
		CareerID:  careerID,
		Embedding: embedding,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "career_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"embedding", "updated_at"}),
	}).Create(&row).Error
}

// SearchSimilar returns the topK careers closest to embedding by cosine distance.
func (r *CareerEmbeddingRepository) SearchSimilar(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.Career, error) {
	var careers []model.Career
	err := similarCareers(r.db.WithContext(ctx), embedding, topK).Scan(&careers).Error
	return careers, err
}

func similarCareers(db *gorm.DB, embedding pgvector.Vector, topK int) *gorm.DB {
	return db.Raw(`
        SELECT careers.*
        FROM careers
        JOIN career_embeddings ON career_embeddings.career_id = careers.id
        ORDER BY career_embeddings.embedding <=> ?
        LIMIT ?
    `, embedding, topK)
}
