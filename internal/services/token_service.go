package services

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenService issues and resolves bearer credentials. A token is a
// signed JWT whose SHA-256 is stored on the user's single auth_tokens
// row; issuing a new one replaces the row, so the previous token stops
// resolving even before its exp claim.
type TokenService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewTokenService(db *gorm.DB, cfg *config.Config) *TokenService {
	return &TokenService{db: db, cfg: cfg}
}

func (s *TokenService) Issue(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.TokenExpiry).Unix(),
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	record := models.AuthToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(raw),
		ExpiresAt: time.Now().Add(s.cfg.TokenExpiry),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return raw, nil
}

// Resolve validates the signature and expiry of a bearer string and
// checks it is still the live token for its user.
func (s *TokenService) Resolve(raw string) (*models.User, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return s.ResolveVerified(raw)
}

// ResolveVerified looks up a bearer string whose signature has already
// been checked (by the auth middleware) against the stored live token.
func (s *TokenService) ResolveVerified(raw string) (*models.User, error) {
	var stored models.AuthToken
	err := s.db.Preload("User").Where("token_hash = ?", hashToken(raw)).First(&stored).Error
	if err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Delete(&stored)
		return nil, ErrInvalidToken
	}

	return &stored.User, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
