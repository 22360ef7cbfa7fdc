package dto

import (
	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/google/uuid"
)

const summaryLength = 150

type CareerSummaryDTO struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	SalaryRange   string    `json:"salary_range"`
	GrowthOutlook string    `json:"growth_outlook"`
	DemandScore   int       `json:"demand_score"`
	Icon          string    `json:"icon"`
}

type CareerListResponse struct {
	Count   int                `json:"count"`
	Careers []CareerSummaryDTO `json:"careers"`
}

type CategoryDTO struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type SalaryRangeDTO struct {
	Min       *int   `json:"min"`
	Max       *int   `json:"max"`
	Formatted string `json:"formatted"`
}

type CareerDetailDTO struct {
	ID                uuid.UUID             `json:"id"`
	Title             string                `json:"title"`
	Slug              string                `json:"slug"`
	Category          string                `json:"category"`
	Icon              string                `json:"icon"`
	Description       string                `json:"description"`
	DayInLife         string                `json:"day_in_life"`
	RequiredSkills    []string              `json:"required_skills"`
	RequiredEducation []model.EducationPath `json:"required_education"`
	SalaryRange       SalaryRangeDTO        `json:"salary_range"`
	GrowthOutlook     string                `json:"growth_outlook"`
	DemandScore       int                   `json:"demand_score"`
	TopCompanies      []string              `json:"top_companies"`
	EntranceExams     []string              `json:"entrance_exams"`
	RelatedCourses    []string              `json:"related_courses"`
}

type SemanticSearchResponse struct {
	Query   string             `json:"query"`
	Mode    string             `json:"mode"`
	Count   int                `json:"count"`
	Careers []CareerSummaryDTO `json:"careers"`
}

type SaveCareerRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

type SavedCareerDTO struct {
	ID      uuid.UUID         `json:"id"`
	Notes   *string           `json:"notes"`
	SavedAt string            `json:"saved_at"`
	Career  *CareerSummaryDTO `json:"career,omitempty"`
}

// Summarize truncates text longer than 150 characters and appends "...".
func Summarize(text string) string {
	runes := []rune(text)
	if len(runes) <= summaryLength {
		return text
	}
	return string(runes[:summaryLength]) + "..."
}

func NewCareerSummary(c *model.Career) CareerSummaryDTO {
	return CareerSummaryDTO{
		ID:            c.ID,
		Title:         c.Title,
		Slug:          c.Slug,
		Category:      c.Category,
		Description:   Summarize(c.Description),
		SalaryRange:   c.FormattedSalary(),
		GrowthOutlook: c.GrowthOutlook,
		DemandScore:   c.DemandScore,
		Icon:          c.Icon,
	}
}

func NewCareerSummaries(careers []model.Career) []CareerSummaryDTO {
	out := make([]CareerSummaryDTO, 0, len(careers))
	for i := range careers {
		out = append(out, NewCareerSummary(&careers[i]))
	}
	return out
}

func NewCareerDetail(c *model.Career) CareerDetailDTO {
	return CareerDetailDTO{
		ID:                c.ID,
		Title:             c.Title,
		Slug:              c.Slug,
		Category:          c.Category,
		Icon:              c.Icon,
		Description:       c.Description,
		DayInLife:         c.DayInLife,
		RequiredSkills:    nonNil(c.RequiredSkills),
		RequiredEducation: nonNil(c.RequiredEducation),
		SalaryRange: SalaryRangeDTO{
			Min:       c.SalaryRangeMin,
			Max:       c.SalaryRangeMax,
			Formatted: c.FormattedSalary(),
		},
		GrowthOutlook:  c.GrowthOutlook,
		DemandScore:    c.DemandScore,
		TopCompanies:   nonNil(c.TopCompanies),
		EntranceExams:  nonNil(c.EntranceExams),
		RelatedCourses: nonNil(c.RelatedCourses),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
