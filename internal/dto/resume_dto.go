package dto

import (
	"encoding/json"
	"time"

	"github.com/fadilmartias/skillsync-api/internal/ai"
	"github.com/google/uuid"
)

// ResumeRequest content holds {name, email, phone, summary, experience, education, skills, projects}.
type ResumeRequest struct {
	Title      string          `json:"title" validate:"max=255"`
	Content    json.RawMessage `json:"content" validate:"required"`
	TargetRole string          `json:"target_role" validate:"max=255"`
	Template   string          `json:"template" validate:"max=50"`
}

type ResumeUpdateRequest struct {
	Title      *string         `json:"title" validate:"omitempty,min=1,max=255"`
	Content    json.RawMessage `json:"content"`
	Template   *string         `json:"template" validate:"omitempty,min=1,max=50"`
	TargetRole string          `json:"target_role" validate:"max=255"`
}

type ResumeResultResponse struct {
	ResumeID      uuid.UUID          `json:"resume_id"`
	ATSScore      *int               `json:"ats_score"`
	Suggestions   *ai.ResumeFeedback `json:"suggestions"`
	SourceFileKey *string            `json:"source_file_key,omitempty"`
}

type ResumeSummaryDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	ATSScore  *int      `json:"ats_score"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ResumeListResponse struct {
	Count   int                `json:"count"`
	Resumes []ResumeSummaryDTO `json:"resumes"`
}
