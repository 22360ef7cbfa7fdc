package handler

import (
	"encoding/json"
	"errors"

	"github.com/fadilmartias/skillsync-api/internal/dto"
	"github.com/fadilmartias/skillsync-api/internal/middleware"
	"github.com/fadilmartias/skillsync-api/internal/usecase"
	"github.com/fadilmartias/skillsync-api/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AssessmentHandler struct {
	uc *usecase.AssessmentUsecase
}

func NewAssessmentHandler(uc *usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterRoutes(router fiber.Router, requireUser fiber.Handler) {
	group := router.Group("/assessment")
	group.Get("/questions", h.Questions)
	group.Post("/submit", requireUser, h.Submit)
	group.Get("/results", requireUser, h.Results)
}

func (h *AssessmentHandler) Questions(c *fiber.Ctx) error {
	questions, err := h.uc.Questions()
	if err != nil {
		return fail(c, err, "")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get assessment questions",
		Data: dto.QuestionsResponse{
			TotalQuestions: len(questions),
			EstimatedTime:  dto.EstimatedAssessmentTime,
			Questions:      questions,
		},
	})
}

func (h *AssessmentHandler) Submit(c *fiber.Ctx) error {
	var req dto.AssessmentSubmitRequest
	if err := util.ParseAndValidate(c, &req); err != nil {
		return fail(c, err, "")
	}
	out, err := h.uc.Submit(c.UserContext(), middleware.CurrentUser(c), req.Answers)
	if err != nil {
		return fail(c, err, "")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Assessment submitted",
		Data: dto.AssessmentSubmitResponse{
			AssessmentID:       out.Assessment.ID,
			TraitScores:        out.TraitScores,
			AssessmentAnalysis: out.Analysis,
		},
		Meta: fiber.Map{"ai_degraded": out.Degraded},
	})
}

func (h *AssessmentHandler) Results(c *fiber.Ctx) error {
	assessment, err := h.uc.Latest(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			return util.SuccessResponse(c, util.SuccessResponseFormat{
				Message: "No assessment completed yet",
				Data:    dto.AssessmentResultsResponse{HasResults: false, Message: "No assessment completed yet"},
			})
		}
		return fail(c, err, "Assessment")
	}

	completedAt := assessment.CreatedAt
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get assessment results",
		Data: dto.AssessmentResultsResponse{
			HasResults:        true,
			AssessmentID:      &assessment.ID,
			CompletedAt:       &completedAt,
			Results:           json.RawMessage(assessment.Results),
			TopCareers:        json.RawMessage(assessment.TopCareers),
			PersonalityTraits: json.RawMessage(assessment.PersonalityTraits),
			TraitScores:       assessment.TraitScores.Data(),
		},
	})
}
