package handler

import (
	"io"

	"github.com/fadilmartias/skillsync-api/internal/dto"
	"github.com/fadilmartias/skillsync-api/internal/middleware"
	"github.com/fadilmartias/skillsync-api/internal/response"
	"github.com/fadilmartias/skillsync-api/internal/usecase"
	"github.com/fadilmartias/skillsync-api/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ResumeHandler struct {
	uc *usecase.ResumeUsecase
}

func NewResumeHandler(uc *usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(router fiber.Router, requireUser fiber.Handler) {
	group := router.Group("/resume", requireUser)
	group.Post("/create", h.Create)
	group.Post("/upload", h.Upload)
	group.Get("/list", h.List)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
}

func newResumeResult(out *usecase.ResumeOutcome) dto.ResumeResultResponse {
	return dto.ResumeResultResponse{
		ResumeID:      out.Resume.ID,
		ATSScore:      out.Resume.ATSScore,
		Suggestions:   out.Suggestions,
		SourceFileKey: out.Resume.SourceFileKey,
	}
}

func (h *ResumeHandler) Create(c *fiber.Ctx) error {
	var req dto.ResumeRequest
	if err := util.ParseAndValidate(c, &req); err != nil {
		return fail(c, err, "")
	}
	out, err := h.uc.Create(c.UserContext(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		return fail(c, err, "Resume")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Resume saved",
		Data:    newResumeResult(out),
		Meta:    fiber.Map{"ai_degraded": out.Degraded},
	})
}

func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return fail(c, util.NewFormError("file is required", map[string]string{"file": "is required"}), "")
	}
	if file.Size > util.MaxResumeFileSize {
		return fail(c, usecase.ErrFileTooLarge, "")
	}

	f, err := file.Open()
	if err != nil {
		return fail(c, err, "")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, util.MaxResumeFileSize+1))
	if err != nil {
		return fail(c, err, "")
	}

	out, err := h.uc.Upload(c.UserContext(), middleware.CurrentUser(c).ID, usecase.Upload{
		Filename:   file.Filename,
		Data:       data,
		Title:      c.FormValue("title"),
		TargetRole: c.FormValue("target_role"),
		Template:   c.FormValue("template"),
	})
	if err != nil {
		return fail(c, err, "Resume")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Resume uploaded",
		Data:    newResumeResult(out),
		Meta:    fiber.Map{"ai_degraded": out.Degraded},
	})
}

func (h *ResumeHandler) List(c *fiber.Ctx) error {
	resumes, err := h.uc.List(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return fail(c, err, "Resume")
	}
	out := make([]dto.ResumeSummaryDTO, 0, len(resumes))
	for _, r := range resumes {
		out = append(out, dto.ResumeSummaryDTO{
			ID:        r.ID,
			Title:     r.Title,
			Template:  r.Template,
			ATSScore:  r.ATSScore,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get resumes",
		Data:       dto.ResumeListResponse{Count: len(out), Resumes: out},
		Pagination: response.Whole(len(out)),
	})
}

func (h *ResumeHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err, "")
	}
	resume, err := h.uc.Get(c.UserContext(), middleware.CurrentUser(c).ID, id)
	if err != nil {
		return fail(c, err, "Resume")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get resume",
		Data:    resume,
	})
}

func (h *ResumeHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err, "")
	}
	var req dto.ResumeUpdateRequest
	if err := util.ParseAndValidate(c, &req); err != nil {
		return fail(c, err, "")
	}
	out, err := h.uc.Update(c.UserContext(), middleware.CurrentUser(c).ID, id, req)
	if err != nil {
		return fail(c, err, "Resume")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume updated",
		Data:    out.Resume,
		Meta:    fiber.Map{"ai_degraded": out.Degraded},
	})
}

