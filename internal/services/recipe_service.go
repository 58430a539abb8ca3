package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecipeService struct {
	db     *gorm.DB
	images *storage.ImageStore
}

func NewRecipeService(db *gorm.DB, images *storage.ImageStore) *RecipeService {
	return &RecipeService{db: db, images: images}
}

// List returns the owner's recipes, newest first.
func (s *RecipeService) List(ownerID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.Scopes(models.ForOwner(ownerID)).
		Order("created_at DESC, id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// Get loads one recipe with its tags and ingredients. A recipe owned
// by someone else reads as not found.
func (s *RecipeService) Get(ownerID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Scopes(models.ForOwner(ownerID)).
		Preload("Tags").Preload("Ingredients").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, ErrRecipeNotFound
	}
	return &recipe, nil
}

func (s *RecipeService) Create(ownerID uuid.UUID, req *dto.CreateRecipeRequest) (*models.Recipe, error) {
	if err := validateRecipeFields(req.Title, req.TimeMinutes, req.Price); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		tags, err := s.resolveTags(tx, ownerID, req.Tags)
		if err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
			return fmt.Errorf("failed to attach tags: %w", err)
		}

		ingredients, err := s.resolveIngredients(tx, ownerID, req.Ingredients)
		if err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Ingredients").Replace(&ingredients); err != nil {
			return fmt.Errorf("failed to attach ingredients: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ownerID, recipe.ID)
}

// Update applies a partial (PATCH) or full (PUT) update. A present
// tags or ingredients key replaces the whole association set; scalar
// changes and the replacement commit or roll back together. Ownership
// is not part of the payload and never changes.
func (s *RecipeService) Update(ownerID, id uuid.UUID, req *dto.UpdateRecipeRequest, partial bool) (*models.Recipe, error) {
	if !partial {
		missing := map[string]string{}
		if req.Title == nil {
			missing["title"] = "this field is required"
		}
		if req.TimeMinutes == nil {
			missing["time_mins"] = "this field is required"
		}
		if req.Price == nil {
			missing["price"] = "this field is required"
		}
		if len(missing) > 0 {
			return nil, &ValidationError{Fields: missing}
		}
	}

	title, timeMinutes, price := "placeholder", 0, 0.0
	if req.Title != nil {
		title = *req.Title
	}
	if req.TimeMinutes != nil {
		timeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		price = *req.Price
	}
	if err := validateRecipeFields(title, timeMinutes, price); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Scopes(models.ForOwner(ownerID)).First(&recipe, "id = ?", id).Error; err != nil {
			return ErrRecipeNotFound
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.TimeMinutes != nil {
			updates["time_minutes"] = *req.TimeMinutes
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Link != nil {
			updates["link"] = *req.Link
		}
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update recipe: %w", err)
			}
		}

		if req.Tags != nil {
			tags, err := s.resolveTags(tx, ownerID, *req.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
				return fmt.Errorf("failed to replace tags: %w", err)
			}
		}
		if req.Ingredients != nil {
			ingredients, err := s.resolveIngredients(tx, ownerID, *req.Ingredients)
			if err != nil {
				return err
			}
			if err := tx.Model(&recipe).Association("Ingredients").Replace(&ingredients); err != nil {
				return fmt.Errorf("failed to replace ingredients: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ownerID, id)
}

// Delete removes the recipe, its association rows and its image file.
func (s *RecipeService) Delete(ownerID, id uuid.UUID) error {
	var imagePath *string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Scopes(models.ForOwner(ownerID)).First(&recipe, "id = ?", id).Error; err != nil {
			return ErrRecipeNotFound
		}
		imagePath = recipe.ImagePath
		return tx.Select(clause.Associations).Delete(&recipe).Error
	})
	if err != nil {
		return err
	}

	if imagePath != nil {
		if err := s.images.Remove(*imagePath); err != nil {
			slog.Warn("failed to remove recipe image", "path", *imagePath, "error", err)
		}
	}
	return nil
}

// SetImage stores an uploaded image and attaches its path to the
// recipe, replacing (and deleting) any previous image.
func (s *RecipeService) SetImage(ownerID, id uuid.UUID, r io.Reader, ext string) (string, error) {
	var recipe models.Recipe
	if err := s.db.Scopes(models.ForOwner(ownerID)).First(&recipe, "id = ?", id).Error; err != nil {
		return "", ErrRecipeNotFound
	}

	path, err := s.images.SaveRecipeImage(r, ext)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	previous := recipe.ImagePath
	if err := s.db.Model(&recipe).Update("image_path", path).Error; err != nil {
		s.images.Remove(path)
		return "", fmt.Errorf("failed to attach image: %w", err)
	}

	if previous != nil {
		if err := s.images.Remove(*previous); err != nil {
			slog.Warn("failed to remove replaced recipe image", "path", *previous, "error", err)
		}
	}
	return path, nil
}

func (s *RecipeService) resolveTags(tx *gorm.DB, ownerID uuid.UUID, refs []dto.AttrRef) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(refs))
	for _, ref := range refs {
		tag, err := getOrCreateTag(tx, ownerID, ref.Name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (s *RecipeService) resolveIngredients(tx *gorm.DB, ownerID uuid.UUID, refs []dto.AttrRef) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(refs))
	for _, ref := range refs {
		ingredient, err := getOrCreateIngredient(tx, ownerID, ref.Name)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}

// getOrCreateTag reuses the owner's tag of the given name or inserts
// it. A duplicate-key failure means a concurrent request inserted the
// same name first; the row is re-read instead of failing the call.
func getOrCreateTag(tx *gorm.DB, ownerID uuid.UUID, name string) (models.Tag, error) {
	var tag models.Tag
	if strings.TrimSpace(name) == "" {
		return tag, validationErr("tags", "tag name must not be empty")
	}

	err := tx.Scopes(models.ForOwner(ownerID)).Where("name = ?", name).First(&tag).Error
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return tag, fmt.Errorf("failed to look up tag: %w", err)
	}

	tag = models.Tag{ID: uuid.New(), UserID: ownerID, Name: name}
	if err := tx.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = tx.Scopes(models.ForOwner(ownerID)).Where("name = ?", name).First(&tag).Error
		}
		if err != nil {
			return tag, fmt.Errorf("failed to create tag: %w", err)
		}
	}
	return tag, nil
}

func getOrCreateIngredient(tx *gorm.DB, ownerID uuid.UUID, name string) (models.Ingredient, error) {
	var ingredient models.Ingredient
	if strings.TrimSpace(name) == "" {
		return ingredient, validationErr("ingredients", "ingredient name must not be empty")
	}

	err := tx.Scopes(models.ForOwner(ownerID)).Where("name = ?", name).First(&ingredient).Error
	if err == nil {
		return ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ingredient, fmt.Errorf("failed to look up ingredient: %w", err)
	}

	ingredient = models.Ingredient{ID: uuid.New(), UserID: ownerID, Name: name}
	if err := tx.Create(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = tx.Scopes(models.ForOwner(ownerID)).Where("name = ?", name).First(&ingredient).Error
		}
		if err != nil {
			return ingredient, fmt.Errorf("failed to create ingredient: %w", err)
		}
	}
	return ingredient, nil
}

func validateRecipeFields(title string, timeMinutes int, price float64) error {
	fields := map[string]string{}
	if strings.TrimSpace(title) == "" {
		fields["title"] = "this field may not be blank"
	}
	if timeMinutes < 0 {
		fields["time_mins"] = "must not be negative"
	}
	if price < 0 {
		fields["price"] = "must not be negative"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
