package dto

import (
	"time"

	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/google/uuid"
)

type SignupRequest struct {
	Email          string  `json:"email" validate:"required,min=5,max=255"`
	Name           string  `json:"name" validate:"required,min=1,max=255"`
	Password       string  `json:"password" validate:"required,min=6,maxbytes=72"`
	Age            *int    `json:"age" validate:"omitempty,min=1,max=120"`
	EducationLevel *string `json:"education_level" validate:"omitempty,max=50"`
	City           *string `json:"city" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest changes only the fields that are present.
type UpdateProfileRequest struct {
	Age            *int    `json:"age" validate:"omitempty,min=1,max=120"`
	EducationLevel *string `json:"education_level" validate:"omitempty,max=50"`
	CurrentField   *string `json:"current_field" validate:"omitempty,max=255"`
	City           *string `json:"city" validate:"omitempty,max=255"`
	AvatarURL      *string `json:"avatar_url" validate:"omitempty,url"`
}

type UserDTO struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Age            *int       `json:"age"`
	EducationLevel *string    `json:"education_level"`
	CurrentField   *string    `json:"current_field"`
	City           *string    `json:"city"`
	AvatarURL      *string    `json:"avatar_url"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

func NewUserDTO(u *model.User, withCreatedAt bool) UserDTO {
	out := UserDTO{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Age:            u.Age,
		EducationLevel: u.EducationLevel,
		CurrentField:   u.CurrentField,
		City:           u.City,
		AvatarURL:      u.AvatarURL,
	}
	if withCreatedAt {
		createdAt := u.CreatedAt
		out.CreatedAt = &createdAt
	}
	return out
}
