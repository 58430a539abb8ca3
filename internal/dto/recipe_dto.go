package dto

import (
	"time"

	"github.com/google/uuid"
)

// AttrRef references a tag or ingredient by name inside a recipe write.
// Unknown names are created for the caller, existing ones are reused.
type AttrRef struct {
	Name string `json:"name"`
}

type AttrResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type UpdateAttrRequest struct {
	Name string `json:"name"`
}

type CreateRecipeRequest struct {
	Title       string    `json:"title"`
	TimeMinutes int       `json:"time_mins"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Link        *string   `json:"link"`
	Tags        []AttrRef `json:"tags"`
	Ingredients []AttrRef `json:"ingredients"`
}

// UpdateRecipeRequest is shared by PUT and PATCH; nil fields are left
// untouched on PATCH and rejected as missing on PUT. A non-nil Tags or
// Ingredients slice replaces the association set wholesale. There is no
// owner field: ownership is immutable and anything extra in the payload
// is dropped by the decoder.
type UpdateRecipeRequest struct {
	Title       *string    `json:"title"`
	TimeMinutes *int       `json:"time_mins"`
	Price       *float64   `json:"price"`
	Description *string    `json:"description"`
	Link        *string    `json:"link"`
	Tags        *[]AttrRef `json:"tags"`
	Ingredients *[]AttrRef `json:"ingredients"`
}

type RecipeResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	TimeMinutes int       `json:"time_mins"`
	Price       float64   `json:"price"`
	Link        *string   `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecipeDetailResponse is the list item plus the heavyweight fields.
type RecipeDetailResponse struct {
	RecipeResponse
	Description string         `json:"description"`
	Image       *string        `json:"image"`
	Tags        []AttrResponse `json:"tags"`
	Ingredients []AttrResponse `json:"ingredients"`
}

type UploadImageResponse struct {
	ID    uuid.UUID `json:"id"`
	Image string    `json:"image"`
}
