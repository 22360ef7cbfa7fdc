package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DefaultResumeTitle    = "My Resume"
	DefaultResumeTemplate = "modern"
)

type Resume struct {
	Base
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User          `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	Content       datatypes.JSON `gorm:"not null" json:"content"` // {name, email, phone, summary, experience, education, skills, projects}
	Template      string         `gorm:"type:varchar(50);not null" json:"template"`
	AISuggestions datatypes.JSON `json:"ai_suggestions"`
	ATSScore      *int           `json:"ats_score"`
	SourceFileKey *string        `gorm:"type:text" json:"source_file_key,omitempty"`
}

func (Resume) TableName() string {
	return "resumes"
}
