package dto

import (
	"time"

	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/google/uuid"
)

type ChatRequest struct {
	Message   string  `json:"message" validate:"required,max=4000"`
	SessionID *string `json:"session_id" validate:"omitempty,uuid"`
}

type ChatResponse struct {
	SessionID     uuid.UUID `json:"session_id"`
	Response      string    `json:"response"`
	MessagesCount int       `json:"messages_count"`
}

type ChatSessionSummaryDTO struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	MessagesCount int       `json:"messages_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ChatSessionDTO struct {
	ID        uuid.UUID           `json:"id"`
	Title     string              `json:"title"`
	Messages  []model.ChatMessage `json:"messages"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
