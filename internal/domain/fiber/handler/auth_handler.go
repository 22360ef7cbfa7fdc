package handler

import (
	"github.com/fadilmartias/skillsync-api/internal/dto"
	"github.com/fadilmartias/skillsync-api/internal/middleware"
	"github.com/fadilmartias/skillsync-api/internal/usecase"
	"github.com/fadilmartias/skillsync-api/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(router fiber.Router, requireUser fiber.Handler) {
	group := router.Group("/auth")
	group.Post("/signup", h.Signup)
	group.Post("/login", h.Login)
	group.Get("/me", requireUser, h.Me)
	group.Patch("/me", requireUser, h.UpdateMe)
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := util.ParseAndValidate(c, &req); err != nil {
		return fail(c, err, "")
	}
	user, token, err := h.uc.Signup(c.UserContext(), req)
	if err != nil {
		return fail(c, err, "User")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Account created",
		Data:    dto.AuthResponse{Token: token, User: dto.NewUserDTO(user, false)},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := util.ParseAndValidate(c, &req); err != nil {
		return fail(c, err, "")
	}
	user, token, err := h.uc.Login(c.UserContext(), req)
	if err != nil {
		return fail(c, err, "User")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Login successful",
		Data:    dto.AuthResponse{Token: token, User: dto.NewUserDTO(user, false)},
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get profile",
		Data:    dto.NewUserDTO(middleware.CurrentUser(c), true),
	})
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := util.ParseAndValidate(c, &req); err != nil {
		return fail(c, err, "")
	}
	user, err := h.uc.UpdateProfile(c.UserContext(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		return fail(c, err, "User")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Profile updated",
		Data:    dto.NewUserDTO(user, true),
	})
}
