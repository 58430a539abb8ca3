package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// renderError maps a domain error onto the HTTP surface. Cross-owner
// access surfaces as 404, never 403, so resource existence does not
// leak between accounts.
func renderError(c *fiber.Ctx, err error) error {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid input", Fields: vErr.Fields,
		})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(), Fields: map[string]string{"email": err.Error()},
		})
	case errors.Is(err, services.ErrRecipeNotFound),
		errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrIngredientNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}

func toRecipeResponse(recipe *models.Recipe) dto.RecipeResponse {
	return dto.RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		CreatedAt:   recipe.CreatedAt,
	}
}

func toRecipeDetailResponse(recipe *models.Recipe) dto.RecipeDetailResponse {
	tags := make([]dto.AttrResponse, 0, len(recipe.Tags))
	for i := range recipe.Tags {
		tags = append(tags, dto.AttrResponse{ID: recipe.Tags[i].ID, Name: recipe.Tags[i].Name})
	}
	ingredients := make([]dto.AttrResponse, 0, len(recipe.Ingredients))
	for i := range recipe.Ingredients {
		ingredients = append(ingredients, dto.AttrResponse{ID: recipe.Ingredients[i].ID, Name: recipe.Ingredients[i].Name})
	}

	return dto.RecipeDetailResponse{
		RecipeResponse: toRecipeResponse(recipe),
		Description:    recipe.Description,
		Image:          recipe.ImagePath,
		Tags:           tags,
		Ingredients:    ingredients,
	}
}
