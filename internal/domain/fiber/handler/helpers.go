package handler

import (
	"time"

	"github.com/fadilmartias/skillsync-api/internal/dto"
	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/google/uuid"
)

const timeLayout = time.RFC3339

func newSavedCareerDTO(id uuid.UUID, notes *string, savedAt string, career *model.Career) dto.SavedCareerDTO {
	out := dto.SavedCareerDTO{ID: id, Notes: notes, SavedAt: savedAt}
	if career != nil {
		summary := dto.NewCareerSummary(career)
		out.Career = &summary
	}
	return out
}
