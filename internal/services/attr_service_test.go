package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestTag(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string) *models.Tag {
	t.Helper()
	tag := models.Tag{ID: uuid.New(), UserID: ownerID, Name: name}
	require.NoError(t, db.Create(&tag).Error)
	return &tag
}

func createTestIngredient(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string) *models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{ID: uuid.New(), UserID: ownerID, Name: name}
	require.NoError(t, db.Create(&ingredient).Error)
	return &ingredient
}

func TestListTagsOrderedByNameDescending(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttrService(db)
	user := createTestUser(t, db, "test@example.com")

	createTestTag(t, db, user.ID, "Breakfast")
	createTestTag(t, db, user.ID, "Vegan")
	createTestTag(t, db, user.ID, "Dessert")

	tags, err := svc.ListTags(user.ID, false)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "Vegan", tags[0].Name)
	assert.Equal(t, "Dessert", tags[1].Name)
	assert.Equal(t, "Breakfast", tags[2].Name)
}

func TestListTagsLimitedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttrService(db)
	user := createTestUser(t, db, "test@example.com")
	other := createTestUser(t, db, "other@example.com")

	createTestTag(t, db, user.ID, "Mine")
	createTestTag(t, db, other.ID, "Theirs")

	tags, err := svc.ListTags(user.ID, false)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Mine", tags[0].Name)
}

func TestListTagsAssignedOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttrService(db)
	recipes := newRecipeService(t, db)
	user := createTestUser(t, db, "test@example.com")

	createTestTag(t, db, user.ID, "Unused")
	createTestRecipe(t, recipes, user.ID, "Curry", dto.AttrRef{Name: "Dinner"})

	tags, err := svc.ListTags(user.ID, true)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Dinner", tags[0].Name)
}

func TestListTagsAssignedOnlyDeduplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttrService(db)
	recipes := newRecipeService(t, db)
	user := createTestUser(t, db, "test@example.com")

	// Two recipes referencing the same tag must yield it once.
	createTestRecipe(t, recipes, user.ID, "Pancakes", dto.AttrRef{Name: "Breakfast"})
	createTestRecipe(t, recipes, user.ID, "Porridge", dto.AttrRef{Name: "Breakfast"})

	tags, err := svc.ListTags(user.ID, true)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Breakfast", tags[0].Name)
}

func TestUpdateTag(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttrService(db)
	user := createTestUser(t, db, "test@example.com")
	tag := createTestTag(t, db, user.ID, "Dessert")

	updated, err := svc.UpdateTag(user.ID, tag.ID, "After Dinner")
	require.NoError(t, err)
	assert.Equal(t, "After Dinner", updated.Name)

	_, err = svc.UpdateTag(user.ID, tag.ID, "  ")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestUpdateTagCrossOwnerIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttrService(db)
	user := createTestUser(t, db, "test@example.com")
	other := createTestUser(t, db, "other@example.com")
	tag := createTestTag(t, db, other.ID, "Theirs")

	_, err := svc.UpdateTag(user.ID, tag.ID, "Hijacked")
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestDeleteTagKeepsRecipes(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttrService(db)
	recipes := newRecipeService(t, db)
	user := createTestUser(t, db, "test@example.com")

	recipe := createTestRecipe(t, recipes, user.ID, "Curry", dto.AttrRef{Name: "Dinner"})

	tags, err := svc.ListTags(user.ID, false)
	require.NoError(t, err)
	require.Len(t, tags, 1)

	require.NoError(t, svc.DeleteTag(user.ID, tags[0].ID))

	got, err := recipes.Get(user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags, "association is gone")
	assert.Equal(t, "Curry", got.Title, "recipe survives")
}

func TestDeleteTagCrossOwnerIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttrService(db)
	user := createTestUser(t, db, "test@example.com")
	other := createTestUser(t, db, "other@example.com")
	tag := createTestTag(t, db, other.ID, "Theirs")

	assert.ErrorIs(t, svc.DeleteTag(user.ID, tag.ID), ErrTagNotFound)
}

func TestListIngredientsAssignedOnlyDeduplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttrService(db)
	recipes := newRecipeService(t, db)
	user := createTestUser(t, db, "test@example.com")

	createTestIngredient(t, db, user.ID, "Unused Salt")

	for _, title := range []string{"Eggs Benedict", "Omelette"} {
		_, err := recipes.Create(user.ID, &dto.CreateRecipeRequest{
			Title:       title,
			TimeMinutes: 10,
			Price:       4.00,
			Ingredients: []dto.AttrRef{{Name: "Eggs"}},
		})
		require.NoError(t, err)
	}

	ingredients, err := svc.ListIngredients(user.ID, true)
	require.NoError(t, err)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "Eggs", ingredients[0].Name)
}

func TestUpdateIngredientCrossOwnerIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttrService(db)
	user := createTestUser(t, db, "test@example.com")
	other := createTestUser(t, db, "other@example.com")
	ingredient := createTestIngredient(t, db, other.ID, "Theirs")

	_, err := svc.UpdateIngredient(user.ID, ingredient.ID, "Hijacked")
	assert.ErrorIs(t, err, ErrIngredientNotFound)

	assert.ErrorIs(t, svc.DeleteIngredient(user.ID, ingredient.ID), ErrIngredientNotFound)
}
