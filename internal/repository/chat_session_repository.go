package repository

import (
	"context"

	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatSessionRepository struct {
	db *gorm.DB
}

func NewChatSessionRepository(db *gorm.DB) *ChatSessionRepository {
	return &ChatSessionRepository{db}
}

func (r *ChatSessionRepository) Create(ctx context.Context, session *model.ChatSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *ChatSessionRepository) Update(ctx context.Context, session *model.ChatSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *ChatSessionRepository) FindForUser(ctx context.Context, id, userID uuid.UUID) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.db.WithContext(ctx).First(&session, "id = ? AND user_id = ?", id, userID).Error
	return &session, err
}

// FindForUpdate loads the session for a read-modify-write. On PostgreSQL the
// row is locked until the surrounding transaction ends; SQLite already
// serializes writers on its single connection.
func (r *ChatSessionRepository) FindForUpdate(ctx context.Context, id, userID uuid.UUID) (*model.ChatSession, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var session model.ChatSession
	err := q.First(&session, "id = ? AND user_id = ?", id, userID).Error
	return &session, err
}

func (r *ChatSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ChatSession, error) {
	var sessions []model.ChatSession
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at DESC").Find(&sessions).Error
	return sessions, err
}
