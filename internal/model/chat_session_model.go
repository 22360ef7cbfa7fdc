package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatMessage struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

const DefaultChatTitle = "New Chat"

type ChatSession struct {
	Base
	UserID   uuid.UUID                        `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User                            `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Title    string                           `gorm:"type:varchar(255);not null" json:"title"`
	Messages datatypes.JSONSlice[ChatMessage] `json:"messages"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

// Append adds a turn to the end of the transcript. Earlier entries are never rewritten.
func (s *ChatSession) Append(role Role, content string, at time.Time) {
	s.Messages = append(s.Messages, ChatMessage{Role: role, Content: content, Timestamp: at})
}
