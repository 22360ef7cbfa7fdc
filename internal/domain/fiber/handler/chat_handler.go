package handler

import (
	"github.com/fadilmartias/skillsync-api/internal/dto"
	"github.com/fadilmartias/skillsync-api/internal/middleware"
	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/fadilmartias/skillsync-api/internal/usecase"
	"github.com/fadilmartias/skillsync-api/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ChatHandler struct {
	uc *usecase.ChatUsecase
}

func NewChatHandler(uc *usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

func (h *ChatHandler) RegisterRoutes(router fiber.Router, requireUser fiber.Handler) {
	router.Post("/chat", requireUser, h.Send)
	router.Get("/chat/sessions", requireUser, h.Sessions)
	router.Get("/chat/sessions/:id", requireUser, h.Session)
}

func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := util.ParseAndValidate(c, &req); err != nil {
		return fail(c, err, "")
	}
	var sessionID *uuid.UUID
	if req.SessionID != nil && *req.SessionID != "" {
		id, err := uuid.Parse(*req.SessionID)
		if err != nil {
			return fail(c, util.NewFormError("Validation failed", map[string]string{"session_id": "must be a valid id"}), "")
		}
		sessionID = &id
	}

	reply, err := h.uc.Send(c.UserContext(), middleware.CurrentUser(c).ID, req.Message, sessionID)
	if err != nil {
		return fail(c, err, "Chat session")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success chat",
		Data: dto.ChatResponse{
			SessionID:     reply.Session.ID,
			Response:      reply.Response,
			MessagesCount: len(reply.Session.Messages),
		},
		Meta: fiber.Map{"ai_degraded": reply.Degraded},
	})
}

func (h *ChatHandler) Sessions(c *fiber.Ctx) error {
	sessions, err := h.uc.Sessions(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return fail(c, err, "Chat session")
	}
	out := make([]dto.ChatSessionSummaryDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.ChatSessionSummaryDTO{
			ID:            s.ID,
			Title:         s.Title,
			MessagesCount: len(s.Messages),
			UpdatedAt:     s.UpdatedAt,
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get chat sessions",
		Data:    fiber.Map{"sessions": out},
	})
}

func (h *ChatHandler) Session(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err, "")
	}
	session, err := h.uc.Session(c.UserContext(), middleware.CurrentUser(c).ID, id)
	if err != nil {
		return fail(c, err, "Chat session")
	}
	messages := []model.ChatMessage(session.Messages)
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get chat session",
		Data: dto.ChatSessionDTO{
			ID:        session.ID,
			Title:     session.Title,
			Messages:  messages,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
		},
	})
}
