package services

import (
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttrService manages the owner-scoped tag and ingredient collections.
// Rows come into being either here or implicitly through recipe writes;
// either way names stay unique per owner.
type AttrService struct {
	db *gorm.DB
}

func NewAttrService(db *gorm.DB) *AttrService {
	return &AttrService{db: db}
}

// ListTags returns the owner's tags in descending name order. With
// assignedOnly set, only tags attached to at least one of the owner's
// recipes are returned, each one exactly once no matter how many
// recipes reference it.
func (s *AttrService) ListTags(ownerID uuid.UUID, assignedOnly bool) ([]models.Tag, error) {
	q := s.db.Scopes(models.ForOwner(ownerID)).Order("tags.name DESC")
	if assignedOnly {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").Distinct("tags.*")
	}

	var tags []models.Tag
	if err := q.Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (s *AttrService) GetTag(ownerID, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.Scopes(models.ForOwner(ownerID)).First(&tag, "id = ?", id).Error; err != nil {
		return nil, ErrTagNotFound
	}
	return &tag, nil
}

func (s *AttrService) UpdateTag(ownerID, id uuid.UUID, name string) (*models.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, validationErr("name", "this field may not be blank")
	}

	tag, err := s.GetTag(ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(tag).Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return tag, nil
}

// DeleteTag removes the tag and its recipe associations; the recipes
// themselves survive.
func (s *AttrService) DeleteTag(ownerID, id uuid.UUID) error {
	tag, err := s.GetTag(ownerID, id)
	if err != nil {
		return err
	}
	if err := s.db.Select(clause.Associations).Delete(tag).Error; err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

func (s *AttrService) ListIngredients(ownerID uuid.UUID, assignedOnly bool) ([]models.Ingredient, error) {
	q := s.db.Scopes(models.ForOwner(ownerID)).Order("ingredients.name DESC")
	if assignedOnly {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").Distinct("ingredients.*")
	}

	var ingredients []models.Ingredient
	if err := q.Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *AttrService) GetIngredient(ownerID, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.Scopes(models.ForOwner(ownerID)).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, ErrIngredientNotFound
	}
	return &ingredient, nil
}

func (s *AttrService) UpdateIngredient(ownerID, id uuid.UUID, name string) (*models.Ingredient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, validationErr("name", "this field may not be blank")
	}

	ingredient, err := s.GetIngredient(ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(ingredient).Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *AttrService) DeleteIngredient(ownerID, id uuid.UUID) error {
	ingredient, err := s.GetIngredient(ownerID, id)
	if err != nil {
		return err
	}
	if err := s.db.Select(clause.Associations).Delete(ingredient).Error; err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	return nil
}
