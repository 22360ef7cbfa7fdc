package middleware

import (
	"context"
	"strings"

	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/fadilmartias/skillsync-api/internal/util"
	"github.com/gofiber/fiber/v2"
)

const userLocalKey = "user"

// Authenticator resolves a bearer token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// RequireUser rejects requests without a valid bearer token and stores the
// resolved user for CurrentUser.
func RequireUser(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c, "Not authenticated", nil)
		}
		user, err := authn.Authenticate(c.UserContext(), token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token", err)
		}
		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by RequireUser.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(userLocalKey).(*model.User)
	return user
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *fiber.Ctx, message string, err error) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusUnauthorized,
		Message: message,
	}, err)
}
