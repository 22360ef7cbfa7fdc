package handler

import (
	"github.com/fadilmartias/skillsync-api/internal/usecase"
	"github.com/fadilmartias/skillsync-api/internal/util"
	"github.com/gofiber/fiber/v2"
)

type MarketHandler struct {
	uc *usecase.MarketUsecase
}

func NewMarketHandler(uc *usecase.MarketUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

func (h *MarketHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/market")
	group.Get("/trending-skills", h.TrendingSkills)
	group.Get("/salary-insights", h.SalaryInsights)
}

func (h *MarketHandler) TrendingSkills(c *fiber.Ctx) error {
	updated, skills, err := h.uc.TrendingSkills()
	if err != nil {
		return fail(c, err, "")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get trending skills",
		Data:    fiber.Map{"last_updated": updated, "skills": skills},
	})
}

func (h *MarketHandler) SalaryInsights(c *fiber.Ctx) error {
	if role := c.Query("role"); role != "" {
		band, err := h.uc.SalaryForRole(role)
		if err != nil {
			return fail(c, err, "Role")
		}
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "Success get salary insights",
			Data: fiber.Map{
				"role":       role,
				"fresher":    band.Fresher,
				"mid":        band.Mid,
				"senior":     band.Senior,
				"top_cities": band.TopCities,
			},
		})
	}

	roles, err := h.uc.SalaryInsights()
	if err != nil {
		return fail(c, err, "")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get salary insights",
		Data:    fiber.Map{"roles": roles},
	})
}
