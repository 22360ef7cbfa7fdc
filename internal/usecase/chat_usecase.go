package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/skillsync-api/internal/ai"
	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/fadilmartias/skillsync-api/internal/repository"
	"github.com/google/uuid"
)

const chatTitleLength = 50

type ChatUsecase struct {
	store   *repository.Store
	gateway *ai.Gateway
	now     func() time.Time
}

func NewChatUsecase(store *repository.Store, gateway *ai.Gateway) *ChatUsecase {
	return &ChatUsecase{store: store, gateway: gateway, now: time.Now}
}

type ChatReply struct {
	Session  *model.ChatSession
	Response string
	Degraded bool
}

func chatTitle(message string) string {
	runes := []rune(strings.TrimSpace(message))
	if len(runes) == 0 {
		return model.DefaultChatTitle
	}
	if len(runes) > chatTitleLength {
		runes = runes[:chatTitleLength]
	}
	return string(runes)
}

// Send appends message and the assistant reply to the user's session. A
// missing or foreign sessionID starts a new session.
//
// The model call happens outside any transaction. The transcript is then
// re-read under lock and both turns are appended to the fresh copy, so
// concurrent turns on one session never overwrite each other.
func (uc *ChatUsecase) Send(ctx context.Context, userID uuid.UUID, message string, sessionID *uuid.UUID) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	var existing *model.ChatSession
	if sessionID != nil {
		found, err := uc.store.ChatSessions.FindForUser(ctx, *sessionID, userID)
		switch {
		case err == nil:
			existing = found
		case !isNotFound(err):
			return nil, fmt.Errorf("load chat session: %w", err)
		}
	}

	var history []ai.ChatTurn
	if existing != nil {
		history = make([]ai.ChatTurn, 0, len(existing.Messages))
		for _, m := range existing.Messages {
			history = append(history, ai.ChatTurn{Role: string(m.Role), Content: m.Content})
		}
	}

	askedAt := uc.now().UTC()
	reply := uc.gateway.Chat(ctx, message, history)
	answeredAt := uc.now().UTC()

	var session *model.ChatSession
	err := uc.store.Transaction(ctx, func(tx *repository.Store) error {
		if existing != nil {
			fresh, err := tx.ChatSessions.FindForUpdate(ctx, existing.ID, userID)
			switch {
			case err == nil:
				session = fresh
				session.Append(model.RoleUser, message, askedAt)
				session.Append(model.RoleAssistant, reply.Data, answeredAt)
				return tx.ChatSessions.Update(ctx, session)
			case !isNotFound(err):
				return err
			}
		}
		session = &model.ChatSession{UserID: userID, Title: chatTitle(message)}
		session.Append(model.RoleUser, message, askedAt)
		session.Append(model.RoleAssistant, reply.Data, answeredAt)
		return tx.ChatSessions.Create(ctx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("save chat session: %w", err)
	}

	return &ChatReply{Session: session, Response: reply.Data, Degraded: reply.Degraded}, nil
}

func (uc *ChatUsecase) Sessions(ctx context.Context, userID uuid.UUID) ([]model.ChatSession, error) {
	return uc.store.ChatSessions.ListByUser(ctx, userID)
}

func (uc *ChatUsecase) Session(ctx context.Context, userID, id uuid.UUID) (*model.ChatSession, error) {
	session, err := uc.store.ChatSessions.FindForUser(ctx, id, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}
