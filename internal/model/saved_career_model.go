package model

import "github.com/google/uuid"

type SavedCareer struct {
	Base
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_careers_user_career" json:"user_id"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CareerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_careers_user_career" json:"career_id"`
	Career   *Career   `gorm:"foreignKey:CareerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"career,omitempty"`
	Notes    *string   `gorm:"type:text" json:"notes"`
}

func (SavedCareer) TableName() string {
	return "saved_careers"
}
