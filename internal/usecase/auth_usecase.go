package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/skillsync-api/internal/auth"
	"github.com/fadilmartias/skillsync-api/internal/dto"
	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/fadilmartias/skillsync-api/internal/repository"
	"github.com/google/uuid"
)

type AuthUsecase struct {
	store  *repository.Store
	tokens *auth.TokenIssuer
}

func NewAuthUsecase(store *repository.Store, tokens *auth.TokenIssuer) *AuthUsecase {
	return &AuthUsecase{store: store, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *AuthUsecase) Signup(ctx context.Context, req dto.SignupRequest) (*model.User, string, error) {
	email := normalizeEmail(req.Email)
	if len(req.Password) > auth.MaxPasswordBytes {
		return nil, "", fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, auth.MaxPasswordBytes)
	}
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:          email,
		Name:           strings.TrimSpace(req.Name),
		HashedPassword: hashed,
		Age:            req.Age,
		EducationLevel: req.EducationLevel,
		City:           req.City,
	}
	err = uc.store.Transaction(ctx, func(tx *repository.Store) error {
		exists, err := tx.Users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return ErrEmailTaken
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			if isDuplicate(err) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("signup: %w", err)
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (uc *AuthUsecase) Login(ctx context.Context, req dto.LoginRequest) (*model.User, string, error) {
	user, err := uc.store.Users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: %w", err)
	}
	if !auth.VerifyPassword(req.Password, user.HashedPassword) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to its user. Unknown or deleted users are unauthorized.
func (uc *AuthUsecase) Authenticate(ctx context.Context, token string) (*model.User, error) {
	userID, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	user, err := uc.store.Users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

func (uc *AuthUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*model.User, error) {
	var user *model.User
	err := uc.store.Transaction(ctx, func(tx *repository.Store) error {
		found, err := tx.Users.FindByID(ctx, userID)
		if err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if req.Age != nil {
			found.Age = req.Age
		}
		if req.EducationLevel != nil {
			found.EducationLevel = req.EducationLevel
		}
		if req.CurrentField != nil {
			found.CurrentField = req.CurrentField
		}
		if req.City != nil {
			found.City = req.City
		}
		if req.AvatarURL != nil {
			found.AvatarURL = req.AvatarURL
		}
		user = found
		return tx.Users.Update(ctx, found)
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}
