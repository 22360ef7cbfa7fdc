package handler

import (
	"errors"
	"fmt"

	"github.com/fadilmartias/skillsync-api/internal/usecase"
	"github.com/fadilmartias/skillsync-api/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// fail maps a usecase error onto the error envelope. subject names the
// resource in not-found messages.
func fail(c *fiber.Ctx, err error, subject string) error {
	var formErr *util.FormError
	var roleErr *usecase.RoleNotFoundError

	params := util.ErrorResponseFormat{Code: fiber.StatusInternalServerError, Message: "Internal server error"}
	switch {
	case errors.As(err, &formErr):
		params = util.ErrorResponseFormat{Code: fiber.StatusBadRequest, Message: formErr.Message, Details: formErr.Errors}
	case errors.As(err, &roleErr):
		params = util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "Role not found",
			Details: fiber.Map{"available_roles": roleErr.AvailableRoles},
		}
	case errors.Is(err, usecase.ErrNotFound):
		params = util.ErrorResponseFormat{Code: fiber.StatusNotFound, Message: fmt.Sprintf("%s not found", subject)}
	case errors.Is(err, usecase.ErrInvalidInput):
		params = util.ErrorResponseFormat{Code: fiber.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, usecase.ErrEmailTaken):
		params = util.ErrorResponseFormat{Code: fiber.StatusConflict, Message: "Email already registered"}
	case errors.Is(err, usecase.ErrAlreadySaved):
		params = util.ErrorResponseFormat{Code: fiber.StatusConflict, Message: "Career already saved"}
	case errors.Is(err, usecase.ErrInvalidCredentials):
		params = util.ErrorResponseFormat{Code: fiber.StatusUnauthorized, Message: "Invalid email or password"}
	case errors.Is(err, usecase.ErrUnauthorized):
		params = util.ErrorResponseFormat{Code: fiber.StatusUnauthorized, Message: "Invalid or expired token"}
	case errors.Is(err, usecase.ErrFileTooLarge):
		params = util.ErrorResponseFormat{Code: fiber.StatusRequestEntityTooLarge, Message: "File size is too large (max 5MB)"}
	case errors.Is(err, usecase.ErrUnsupportedFile):
		params = util.ErrorResponseFormat{Code: fiber.StatusUnsupportedMediaType, Message: "Unsupported file type, upload a PDF, DOCX or TXT file"}
	}
	return util.ErrorResponse(c, params, err)
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, util.NewFormError("Invalid id", map[string]string{name: "must be a valid id"})
	}
	return id, nil
}
