package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken is the single live bearer credential for a user. Only the
// SHA-256 of the issued string is stored; issuing a new token replaces
// the row, so older tokens stop resolving immediately.
type AuthToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	TokenHash string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
