package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const AssessmentTypeCareer = "career"

// Personality dimensions an assessment answer can contribute to.
const (
	TraitAnalytical   = "analytical"
	TraitCreative     = "creative"
	TraitSocial       = "social"
	TraitEnterprising = "enterprising"
	TraitConventional = "conventional"
	TraitRealistic    = "realistic"
)

var Traits = []string{
	TraitAnalytical,
	TraitCreative,
	TraitSocial,
	TraitEnterprising,
	TraitConventional,
	TraitRealistic,
}

// NewTraitScores returns a score map holding every trait at zero.
func NewTraitScores() map[string]int {
	scores := make(map[string]int, len(Traits))
	for _, t := range Traits {
		scores[t] = 0
	}
	return scores
}

func IsTrait(name string) bool {
	for _, t := range Traits {
		if t == name {
			return true
		}
	}
	return false
}

type Assessment struct {
	Base
	UserID            uuid.UUID                          `gorm:"type:uuid;not null;index" json:"user_id"`
	User              *User                              `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AssessmentType    string                             `gorm:"type:varchar(50);not null" json:"assessment_type"`
	Answers           datatypes.JSONType[map[string]int] `gorm:"not null" json:"answers"`
	TraitScores       datatypes.JSONType[map[string]int] `json:"trait_scores"`
	Results           datatypes.JSON                     `json:"results"`
	TopCareers        datatypes.JSON                     `json:"top_careers"`
	PersonalityTraits datatypes.JSON                     `json:"personality_traits"`
	Completed         bool                               `json:"completed"`
}

func (Assessment) TableName() string {
	return "assessments"
}
