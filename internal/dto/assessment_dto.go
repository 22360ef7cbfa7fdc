package dto

import (
	"encoding/json"
	"time"

	"github.com/fadilmartias/skillsync-api/internal/ai"
	"github.com/fadilmartias/skillsync-api/internal/seed"
	"github.com/google/uuid"
)

const EstimatedAssessmentTime = "5-7 minutes"

type QuestionsResponse struct {
	TotalQuestions int             `json:"total_questions"`
	EstimatedTime  string          `json:"estimated_time"`
	Questions      []seed.Question `json:"questions"`
}

// AssessmentSubmitRequest maps question id to the selected option index.
type AssessmentSubmitRequest struct {
	Answers map[string]int `json:"answers" validate:"required"`
}

type AssessmentSubmitResponse struct {
	AssessmentID uuid.UUID      `json:"assessment_id"`
	TraitScores  map[string]int `json:"trait_scores"`
	ai.AssessmentAnalysis
}

type AssessmentResultsResponse struct {
	HasResults        bool            `json:"has_results"`
	Message           string          `json:"message,omitempty"`
	AssessmentID      *uuid.UUID      `json:"assessment_id,omitempty"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
	Results           json.RawMessage `json:"results,omitempty"`
	TopCareers        json.RawMessage `json:"top_careers,omitempty"`
	PersonalityTraits json.RawMessage `json:"personality_traits,omitempty"`
	TraitScores       map[string]int  `json:"trait_scores,omitempty"`
}
