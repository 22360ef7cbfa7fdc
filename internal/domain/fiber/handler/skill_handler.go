package handler

import (
	"github.com/fadilmartias/skillsync-api/internal/dto"
	"github.com/fadilmartias/skillsync-api/internal/usecase"
	"github.com/fadilmartias/skillsync-api/internal/util"
	"github.com/gofiber/fiber/v2"
)

type SkillHandler struct {
	uc *usecase.SkillUsecase
}

func NewSkillHandler(uc *usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/skills/gap-analysis", h.GapAnalysis)
}

func (h *SkillHandler) GapAnalysis(c *fiber.Ctx) error {
	var req dto.SkillGapRequest
	if err := util.ParseAndValidate(c, &req); err != nil {
		return fail(c, err, "")
	}
	result := h.uc.GapAnalysis(c.UserContext(), req.CurrentSkills, req.TargetCareer)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success analyze skill gap",
		Data:    result.Data,
		Meta:    fiber.Map{"ai_degraded": result.Degraded},
	})
}
