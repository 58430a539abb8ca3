package handlers

import (
	"path/filepath"

	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxImageSize = 10 * 1024 * 1024

var imageExtByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type RecipeHandler struct {
	recipes *services.RecipeService
}

func NewRecipeHandler(recipes *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// List handles GET /recipes - the caller's recipes, newest first.
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return renderError(c, services.ErrInvalidToken)
	}

	recipes, err := h.recipes.List(user.ID)
	if err != nil {
		return renderError(c, err)
	}

	out := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, toRecipeResponse(&recipes[i]))
	}
	return c.JSON(out)
}

// Create handles POST /recipes.
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return renderError(c, services.ErrInvalidToken)
	}

	var req dto.CreateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	recipe, err := h.recipes.Create(user.ID, &req)
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toRecipeDetailResponse(recipe))
}

// Get handles GET /recipes/:id.
func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return renderError(c, services.ErrInvalidToken)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return renderError(c, services.ErrRecipeNotFound)
	}

	recipe, err := h.recipes.Get(user.ID, id)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(toRecipeDetailResponse(recipe))
}

// Update handles PUT (full) and PATCH (partial) on /recipes/:id.
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return renderError(c, services.ErrInvalidToken)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return renderError(c, services.ErrRecipeNotFound)
	}

	var req dto.UpdateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	recipe, err := h.recipes.Update(user.ID, id, &req, c.Method() == fiber.MethodPatch)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(toRecipeDetailResponse(recipe))
}

// Delete handles DELETE /recipes/:id.
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return renderError(c, services.ErrInvalidToken)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return renderError(c, services.ErrRecipeNotFound)
	}

	if err := h.recipes.Delete(user.ID, id); err != nil {
		return renderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadImage handles POST /recipes/:id/upload-image with
// multipart/form-data.
func (h *RecipeHandler) UploadImage(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return renderError(c, services.ErrInvalidToken)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return renderError(c, services.ErrRecipeNotFound)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "Image file is required")
	}
	if file.Size > maxImageSize {
		return badRequest(c, "Image size must be less than 10MB")
	}

	contentType := file.Header.Get("Content-Type")
	typeExt, ok := imageExtByType[contentType]
	if !ok {
		return badRequest(c, "Invalid image format. Only JPEG, PNG, GIF and WebP are allowed")
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = typeExt
	}

	src, err := file.Open()
	if err != nil {
		return badRequest(c, "Unreadable image file")
	}
	defer src.Close()

	path, err := h.recipes.SetImage(user.ID, id, src, ext)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(dto.UploadImageResponse{ID: id, Image: path})
}
