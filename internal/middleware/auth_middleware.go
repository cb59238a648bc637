package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventhub-backend/internal/models"
	"github.com/sefazor/eventhub-backend/internal/service"
	jwtPkg "github.com/sefazor/eventhub-backend/pkg/jwt"
	"go.uber.org/zap"
)

const userKey = "currentUser"

// IdentityResolver maps a bearer token to the stored user.
type IdentityResolver interface {
	ResolveUser(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware rejects the request with 401 unless it carries a bearer
// token for an existing user; the user is then available via CurrentUser.
func AuthMiddleware(resolver IdentityResolver, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := jwtPkg.TokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return unauthorized(c, "Not authenticated")
		}

		user, err := resolver.ResolveUser(c.UserContext(), token)
		if errors.Is(err, service.ErrUnauthenticated) {
			return unauthorized(c, "Could not validate credentials")
		}
		if err != nil {
			log.Error("resolve user failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Internal server error"))
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(userKey).(*models.User)
	return user, ok && user != nil
}

func unauthorized(c *fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(msg))
}
