package usecase

import (
	"context"
	"strings"

	"github.com/fadilmartias/skillsync-api/internal/ai"
)

type SkillUsecase struct {
	gateway *ai.Gateway
}

func NewSkillUsecase(gateway *ai.Gateway) *SkillUsecase {
	return &SkillUsecase{gateway: gateway}
}

func (uc *SkillUsecase) GapAnalysis(ctx context.Context, currentSkills []string, targetCareer string) ai.Result[ai.SkillGapAnalysis] {
	skills := make([]string, 0, len(currentSkills))
	for _, s := range currentSkills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return uc.gateway.AnalyzeSkillGap(ctx, skills, strings.TrimSpace(targetCareer))
}
