package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fadilmartias/skillsync-api/internal/ai"
	"github.com/fadilmartias/skillsync-api/internal/events"
	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/fadilmartias/skillsync-api/internal/repository"
	"github.com/fadilmartias/skillsync-api/internal/seed"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type AssessmentUsecase struct {
	store     *repository.Store
	gateway   *ai.Gateway
	publisher events.Publisher
	log       *zap.Logger
}

func NewAssessmentUsecase(store *repository.Store, gateway *ai.Gateway, publisher events.Publisher, log *zap.Logger) *AssessmentUsecase {
	return &AssessmentUsecase{store: store, gateway: gateway, publisher: publisher, log: log}
}

type AssessmentOutcome struct {
	Assessment  *model.Assessment
	Analysis    ai.AssessmentAnalysis
	TraitScores map[string]int
	Degraded    bool
}

func (uc *AssessmentUsecase) Questions() ([]seed.Question, error) {
	return seed.Questions()
}

// ScoreAnswers sums the option scores per trait. Answers whose key is not a
// known question id, or whose index is out of range, contribute nothing.
func ScoreAnswers(questions []seed.Question, answers map[string]int) map[string]int {
	byID := make(map[int]seed.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	scores := model.NewTraitScores()
	for key, idx := range answers {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		q, ok := byID[id]
		if !ok || idx < 0 || idx >= len(q.Options) {
			continue
		}
		opt := q.Options[idx]
		if model.IsTrait(opt.Trait) {
			scores[opt.Trait] += opt.Score
		}
	}
	return scores
}

func (uc *AssessmentUsecase) Submit(ctx context.Context, user *model.User, answers map[string]int) (*AssessmentOutcome, error) {
	questions, err := seed.Questions()
	if err != nil {
		return nil, err
	}
	scores := ScoreAnswers(questions, answers)

	result := uc.gateway.AnalyzeAssessment(ctx, ai.AssessmentInput{
		Answers:        answers,
		TraitScores:    scores,
		UserAge:        user.Age,
		EducationLevel: user.EducationLevel,
	})

	results, err := json.Marshal(result.Data)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	topCareers, err := json.Marshal(result.Data.TopCareers)
	if err != nil {
		return nil, fmt.Errorf("encode top careers: %w", err)
	}
	traits, err := json.Marshal(result.Data.PersonalityTraits)
	if err != nil {
		return nil, fmt.Errorf("encode personality traits: %w", err)
	}

	assessment := &model.Assessment{
		UserID:            user.ID,
		AssessmentType:    model.AssessmentTypeCareer,
		Answers:           datatypes.NewJSONType(answers),
		TraitScores:       datatypes.NewJSONType(scores),
		Results:           datatypes.JSON(results),
		TopCareers:        datatypes.JSON(topCareers),
		PersonalityTraits: datatypes.JSON(traits),
		Completed:         true,
	}
	if err := uc.store.Assessments.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}

	uc.publish(ctx, events.AssessmentCompleted, map[string]any{
		"assessment_id": assessment.ID,
		"user_id":       user.ID,
		"trait_scores":  scores,
		"degraded":      result.Degraded,
	})

	return &AssessmentOutcome{
		Assessment:  assessment,
		Analysis:    result.Data,
		TraitScores: scores,
		Degraded:    result.Degraded,
	}, nil
}

// Latest returns the most recent completed assessment, or ErrNotFound.
func (uc *AssessmentUsecase) Latest(ctx context.Context, userID uuid.UUID) (*model.Assessment, error) {
	assessment, err := uc.store.Assessments.LatestCompleted(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return assessment, nil
}

func (uc *AssessmentUsecase) publish(ctx context.Context, event string, payload any) {
	if err := uc.publisher.Publish(ctx, event, payload); err != nil {
		uc.log.Warn("publish event failed", zap.String("event", event), zap.Error(err))
	}
}
