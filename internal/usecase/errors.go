package usecase

import (
	"errors"

	"github.com/fadilmartias/skillsync-api/internal/util"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAlreadySaved       = errors.New("career already saved")
	ErrInvalidInput       = errors.New("invalid input")
	ErrFileTooLarge       = errors.New("file too large")
	ErrUnsupportedFile    = util.ErrUnsupportedFile
	ErrRoleNotFound       = errors.New("role not found")
	ErrSearchUnavailable  = errors.New("semantic search unavailable")
)

// RoleNotFoundError lists the roles that do have salary data.
type RoleNotFoundError struct {
	Role           string
	AvailableRoles []string
}

func (e *RoleNotFoundError) Error() string {
	return "role not found: " + e.Role
}

func (e *RoleNotFoundError) Unwrap() error {
	return ErrRoleNotFound
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
