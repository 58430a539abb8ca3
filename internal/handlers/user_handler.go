package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users  *services.UserService
	tokens *services.TokenService
}

func NewUserHandler(users *services.UserService, tokens *services.TokenService) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

// Register handles POST /users.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.users.Register(&req)
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

// Token handles POST /users/token. Bad credentials answer 400, not
// 401: the caller is not presenting a token to be refused.
func (h *UserHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return badRequest(c, err.Error())
		}
		return renderError(c, err)
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(dto.TokenResponse{Token: token})
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return renderError(c, services.ErrInvalidToken)
	}
	return c.JSON(toUserResponse(user))
}

// UpdateMe handles PATCH and PUT on /users/me. PUT requires the full
// writable field set; PATCH touches only what is supplied.
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return renderError(c, services.ErrInvalidToken)
	}

	var req dto.UpdateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if c.Method() == fiber.MethodPut && (req.Name == nil || req.Password == nil) {
		return badRequest(c, "name and password are required")
	}

	updated, err := h.users.UpdateProfile(user.ID, &req)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(toUserResponse(updated))
}
