package handler

import (
	"github.com/fadilmartias/skillsync-api/internal/dto"
	"github.com/fadilmartias/skillsync-api/internal/middleware"
	"github.com/fadilmartias/skillsync-api/internal/response"
	"github.com/fadilmartias/skillsync-api/internal/usecase"
	"github.com/fadilmartias/skillsync-api/internal/util"
	"github.com/gofiber/fiber/v2"
)

type CareerHandler struct {
	uc *usecase.CareerUsecase
}

func NewCareerHandler(uc *usecase.CareerUsecase) *CareerHandler {
	return &CareerHandler{uc: uc}
}

// RegisterRoutes mounts the career routes. Fixed paths are registered
// before /careers/:slug so they are not captured as slugs.
func (h *CareerHandler) RegisterRoutes(router fiber.Router, requireUser fiber.Handler) {
	group := router.Group("/careers")
	group.Get("/", h.List)
	group.Get("/categories", h.Categories)
	group.Get("/search/semantic", h.Search)
	group.Get("/saved", requireUser, h.ListSaved)
	group.Delete("/saved/:id", requireUser, h.Unsave)
	group.Get("/:slug", h.Detail)
	group.Post("/:slug/save", requireUser, h.Save)
}

func (h *CareerHandler) List(c *fiber.Ctx) error {
	careers, err := h.uc.List(c.UserContext(), c.Query("category"), c.Query("search"))
	if err != nil {
		return fail(c, err, "Career")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get careers",
		Data:       dto.CareerListResponse{Count: len(careers), Careers: dto.NewCareerSummaries(careers)},
		Pagination: response.Whole(len(careers)),
	})
}

func (h *CareerHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return fail(c, err, "Category")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get categories",
		Data:    fiber.Map{"categories": categories},
	})
}

func (h *CareerHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	careers, mode, err := h.uc.Search(c.UserContext(), query, c.QueryInt("limit", 0))
	if err != nil {
		return fail(c, err, "Career")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success search careers",
		Data: dto.SemanticSearchResponse{
			Query:   query,
			Mode:    mode,
			Count:   len(careers),
			Careers: dto.NewCareerSummaries(careers),
		},
	})
}

func (h *CareerHandler) Detail(c *fiber.Ctx) error {
	career, err := h.uc.Detail(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(c, err, "Career")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get career",
		Data:    dto.NewCareerDetail(career),
	})
}

func (h *CareerHandler) Save(c *fiber.Ctx) error {
	var req dto.SaveCareerRequest
	if len(c.Body()) > 0 {
		if err := util.ParseAndValidate(c, &req); err != nil {
			return fail(c, err, "")
		}
	}
	saved, err := h.uc.Save(c.UserContext(), middleware.CurrentUser(c).ID, c.Params("slug"), req.Notes)
	if err != nil {
		return fail(c, err, "Career")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Career saved",
		Data:    newSavedCareerDTO(saved.ID, saved.Notes, saved.CreatedAt.Format(timeLayout), saved.Career),
	})
}

func (h *CareerHandler) ListSaved(c *fiber.Ctx) error {
	saved, err := h.uc.ListSaved(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return fail(c, err, "Saved career")
	}
	out := make([]dto.SavedCareerDTO, 0, len(saved))
	for i := range saved {
		s := &saved[i]
		out = append(out, newSavedCareerDTO(s.ID, s.Notes, s.CreatedAt.Format(timeLayout), s.Career))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get saved careers",
		Data:       fiber.Map{"count": len(out), "saved_careers": out},
		Pagination: response.Whole(len(out)),
	})
}

func (h *CareerHandler) Unsave(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err, "")
	}
	if err := h.uc.Unsave(c.UserContext(), middleware.CurrentUser(c).ID, id); err != nil {
		return fail(c, err, "Saved career")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Career removed from saved",
		Data:    fiber.Map{"id": id},
	})
}
