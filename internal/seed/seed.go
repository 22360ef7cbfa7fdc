// Package seed holds the static assessment questionnaire and the career
// catalog loaded into an empty database on startup.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/fadilmartias/skillsync-api/internal/repository"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

//go:embed careers.yaml
var careersYAML []byte

//go:embed questions.yaml
var questionsYAML []byte

type Option struct {
	Text  string `yaml:"text" json:"text"`
	Trait string `yaml:"trait" json:"trait"`
	Score int    `yaml:"score" json:"score"`
}

type Question struct {
	ID       int      `yaml:"id" json:"id"`
	Question string   `yaml:"question" json:"question"`
	Category string   `yaml:"category" json:"category"`
	Options  []Option `yaml:"options" json:"options"`
}

type careerEntry struct {
	Title             string                `yaml:"title"`
	Slug              string                `yaml:"slug"`
	Category          string                `yaml:"category"`
	Icon              string                `yaml:"icon"`
	Description       string                `yaml:"description"`
	DayInLife         string                `yaml:"day_in_life"`
	RequiredSkills    []string              `yaml:"required_skills"`
	RequiredEducation []model.EducationPath `yaml:"required_education"`
	SalaryRangeMin    *int                  `yaml:"salary_range_min"`
	SalaryRangeMax    *int                  `yaml:"salary_range_max"`
	GrowthOutlook     string                `yaml:"growth_outlook"`
	DemandScore       int                   `yaml:"demand_score"`
	TopCompanies      []string              `yaml:"top_companies"`
	EntranceExams     []string              `yaml:"entrance_exams"`
	RelatedCourses    []string              `yaml:"related_courses"`
}

var (
	questions     []Question
	questionsErr  error
	questionsOnce sync.Once
)

// Questions returns the parsed questionnaire. The result is shared; callers must not modify it.
func Questions() ([]Question, error) {
	questionsOnce.Do(func() {
		questionsErr = yaml.Unmarshal(questionsYAML, &questions)
		if questionsErr == nil {
			questionsErr = validateQuestions(questions)
		}
	})
	return questions, questionsErr
}

func validateQuestions(qs []Question) error {
	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
		for _, o := range q.Options {
			if !model.IsTrait(o.Trait) {
				return fmt.Errorf("question %d: unknown trait %q", q.ID, o.Trait)
			}
		}
	}
	return nil
}

// Careers parses the embedded catalog into fresh model values.
func Careers() ([]model.Career, error) {
	var entries []careerEntry
	if err := yaml.Unmarshal(careersYAML, &entries); err != nil {
		return nil, fmt.Errorf("parse career catalog: %w", err)
	}
	careers := make([]model.Career, 0, len(entries))
	for _, e := range entries {
		careers = append(careers, model.Career{
			Title:             e.Title,
			Slug:              e.Slug,
			Category:          e.Category,
			Icon:              e.Icon,
			Description:       e.Description,
			DayInLife:         e.DayInLife,
			RequiredSkills:    datatypes.JSONSlice[string](e.RequiredSkills),
			RequiredEducation: datatypes.JSONSlice[model.EducationPath](e.RequiredEducation),
			SalaryRangeMin:    e.SalaryRangeMin,
			SalaryRangeMax:    e.SalaryRangeMax,
			GrowthOutlook:     e.GrowthOutlook,
			DemandScore:       e.DemandScore,
			TopCompanies:      datatypes.JSONSlice[string](e.TopCompanies),
			EntranceExams:     datatypes.JSONSlice[string](e.EntranceExams),
			RelatedCourses:    datatypes.JSONSlice[string](e.RelatedCourses),
		})
	}
	return careers, nil
}

// SeedCareers loads the catalog when the careers table is empty and reports how many rows it inserted.
func SeedCareers(ctx context.Context, store *repository.Store, log *zap.Logger) (int, error) {
	count, err := store.Careers.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count careers: %w", err)
	}
	if count > 0 {
		log.Info("careers already in database", zap.Int64("count", count))
		return 0, nil
	}

	careers, err := Careers()
	if err != nil {
		return 0, err
	}
	log.Info("seeding career data", zap.Int("count", len(careers)))
	if err := store.Careers.CreateBatch(ctx, careers); err != nil {
		return 0, fmt.Errorf("seed careers: %w", err)
	}
	return len(careers), nil
}
