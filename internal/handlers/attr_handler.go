package handlers

import (
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AttrHandler serves the tag and ingredient endpoints; both entities
// share the same surface and only differ in which table they hit.
type AttrHandler struct {
	attrs *services.AttrService
}

func NewAttrHandler(attrs *services.AttrService) *AttrHandler {
	return &AttrHandler{attrs: attrs}
}

// ListTags handles GET /tags, honoring the assigned_only query flag.
func (h *AttrHandler) ListTags(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return renderError(c, services.ErrInvalidToken)
	}

	tags, err := h.attrs.ListTags(user.ID, c.QueryBool("assigned_only"))
	if err != nil {
		return renderError(c, err)
	}

	out := make([]dto.AttrResponse, 0, len(tags))
	for i := range tags {
		out = append(out, dto.AttrResponse{ID: tags[i].ID, Name: tags[i].Name})
	}
	return c.JSON(out)
}

func (h *AttrHandler) GetTag(c *fiber.Ctx) error {
	return h.getAttr(c, services.ErrTagNotFound, func(userID, id uuid.UUID) (dto.AttrResponse, error) {
		tag, err := h.attrs.GetTag(userID, id)
		if err != nil {
			return dto.AttrResponse{}, err
		}
		return dto.AttrResponse{ID: tag.ID, Name: tag.Name}, nil
	})
}

func (h *AttrHandler) UpdateTag(c *fiber.Ctx) error {
	return h.updateAttr(c, services.ErrTagNotFound, func(userID, id uuid.UUID, name string) (dto.AttrResponse, error) {
		tag, err := h.attrs.UpdateTag(userID, id, name)
		if err != nil {
			return dto.AttrResponse{}, err
		}
		return dto.AttrResponse{ID: tag.ID, Name: tag.Name}, nil
	})
}

func (h *AttrHandler) DeleteTag(c *fiber.Ctx) error {
	return h.deleteAttr(c, services.ErrTagNotFound, h.attrs.DeleteTag)
}

// ListIngredients handles GET /ingredients, same shape as ListTags.
func (h *AttrHandler) ListIngredients(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return renderError(c, services.ErrInvalidToken)
	}

	ingredients, err := h.attrs.ListIngredients(user.ID, c.QueryBool("assigned_only"))
	if err != nil {
		return renderError(c, err)
	}

	out := make([]dto.AttrResponse, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, dto.AttrResponse{ID: ingredients[i].ID, Name: ingredients[i].Name})
	}
	return c.JSON(out)
}

func (h *AttrHandler) GetIngredient(c *fiber.Ctx) error {
	return h.getAttr(c, services.ErrIngredientNotFound, func(userID, id uuid.UUID) (dto.AttrResponse, error) {
		ingredient, err := h.attrs.GetIngredient(userID, id)
		if err != nil {
			return dto.AttrResponse{}, err
		}
		return dto.AttrResponse{ID: ingredient.ID, Name: ingredient.Name}, nil
	})
}

func (h *AttrHandler) UpdateIngredient(c *fiber.Ctx) error {
	return h.updateAttr(c, services.ErrIngredientNotFound, func(userID, id uuid.UUID, name string) (dto.AttrResponse, error) {
		ingredient, err := h.attrs.UpdateIngredient(userID, id, name)
		if err != nil {
			return dto.AttrResponse{}, err
		}
		return dto.AttrResponse{ID: ingredient.ID, Name: ingredient.Name}, nil
	})
}

func (h *AttrHandler) DeleteIngredient(c *fiber.Ctx) error {
	return h.deleteAttr(c, services.ErrIngredientNotFound, h.attrs.DeleteIngredient)
}

func (h *AttrHandler) getAttr(c *fiber.Ctx, notFound error, get func(userID, id uuid.UUID) (dto.AttrResponse, error)) error {
	user, id, err := attrRequest(c, notFound)
	if err != nil {
		return renderError(c, err)
	}

	resp, err := get(user.ID, id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(resp)
}

func (h *AttrHandler) updateAttr(c *fiber.Ctx, notFound error, update func(userID, id uuid.UUID, name string) (dto.AttrResponse, error)) error {
	user, id, err := attrRequest(c, notFound)
	if err != nil {
		return renderError(c, err)
	}

	var req dto.UpdateAttrRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := update(user.ID, id, req.Name)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(resp)
}

func (h *AttrHandler) deleteAttr(c *fiber.Ctx, notFound error, del func(userID, id uuid.UUID) error) error {
	user, id, err := attrRequest(c, notFound)
	if err != nil {
		return renderError(c, err)
	}

	if err := del(user.ID, id); err != nil {
		return renderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func attrRequest(c *fiber.Ctx, notFound error) (*models.User, uuid.UUID, error) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return nil, uuid.Nil, services.ErrInvalidToken
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, uuid.Nil, notFound
	}
	return user, id, nil
}
