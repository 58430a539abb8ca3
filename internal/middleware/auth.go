package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const userKey = "current_user"

// Protected validates the bearer token's signature and expiry, then
// checks it is still the live token for its user (re-issuing replaces
// it) and loads the account into the request context.
func Protected(cfg *config.Config, tokens *services.TokenService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return unauthorized(c)
			}
			user, err := tokens.ResolveVerified(token.Raw)
			if err != nil {
				return unauthorized(c)
			}
			c.Locals(userKey, user)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

// CurrentUser returns the account loaded by Protected.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(userKey).(*models.User)
	if !ok {
		return nil, errors.New("no authenticated user in context")
	}
	return user, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: invalid or expired token",
	})
}
