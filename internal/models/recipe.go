package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is owned by exactly one user; the owner never changes after
// creation. Tags and ingredients attached to a recipe always belong to
// the same owner.
type Recipe struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	TimeMinutes int          `gorm:"not null" json:"time_mins"`
	Price       float64      `gorm:"type:numeric(6,2);not null" json:"price"`
	Description string       `gorm:"type:text" json:"description"`
	Link        *string      `gorm:"size:255" json:"link"`
	ImagePath   *string      `gorm:"size:255" json:"image"`
	Tags        []Tag        `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients" json:"ingredients"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	User        User         `gorm:"foreignKey:UserID" json:"-"`
}

// Tag names are unique per owner, not globally; the composite index
// backs the get-or-create fallback under concurrent inserts.
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tags_user_name" json:"user_id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_tags_user_name" json:"name"`
	Recipes   []Recipe  `gorm:"many2many:recipe_tags" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

type Ingredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ingredients_user_name" json:"user_id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_ingredients_user_name" json:"name"`
	Recipes   []Recipe  `gorm:"many2many:recipe_ingredients" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
