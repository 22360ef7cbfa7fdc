package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories over one *gorm.DB. A Store built inside
// Transaction shares a single database transaction across all of them.
type Store struct {
	db               *gorm.DB
	Users            *UserRepository
	Assessments      *AssessmentRepository
	Careers          *CareerRepository
	CareerEmbeddings *CareerEmbeddingRepository
	SavedCareers     *SavedCareerRepository
	Resumes          *ResumeRepository
	ChatSessions     *ChatSessionRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:               db,
		Users:            NewUserRepository(db),
		Assessments:      NewAssessmentRepository(db),
		Careers:          NewCareerRepository(db),
		CareerEmbeddings: NewCareerEmbeddingRepository(db),
		SavedCareers:     NewSavedCareerRepository(db),
		Resumes:          NewResumeRepository(db),
		ChatSessions:     NewChatSessionRepository(db),
	}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn as one unit of work. Returning an error rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
