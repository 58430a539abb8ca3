package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account identified by email. The email's domain part is
// lower-cased before storage; the local part is kept verbatim.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Name        string    `gorm:"size:255" json:"name"`
	IsStaff     bool      `gorm:"default:false" json:"-"`
	IsSuperuser bool      `gorm:"default:false" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
