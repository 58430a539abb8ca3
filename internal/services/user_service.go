package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// NormalizeEmail lower-cases the domain part of an email address while
// keeping the local part verbatim, so Test2@Example.COM and
// Test2@example.com are the same account but test2@example.com is not.
func NormalizeEmail(email string) (string, error) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", validationErr("email", "enter a valid email address")
	}
	return email[:at+1] + strings.ToLower(email[at+1:]), nil
}

func (s *UserService) Register(req *dto.RegisterRequest) (*models.User, error) {
	email, err := NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLength {
		return nil, validationErr("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		Name:     req.Name,
	}

	// The unique index on email is the source of truth; a pre-read
	// would race with concurrent signups.
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// CreateSuperuser provisions a staff account with full privileges.
func (s *UserService) CreateSuperuser(email, password string) (*models.User, error) {
	user, err := s.Register(&dto.RegisterRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Updates(map[string]interface{}{
		"is_staff":     true,
		"is_superuser": true,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}
	user.IsStaff = true
	user.IsSuperuser = true

	return user, nil
}

// Authenticate fails the same way for an unknown email and a wrong
// password so callers cannot probe which accounts exist.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.Where("email = ?", normalized).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (s *UserService) GetByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// UpdateProfile applies a partial self-service update. A new password
// is re-hashed; email changes are not supported.
func (s *UserService) UpdateProfile(userID uuid.UUID, req *dto.UpdateMeRequest) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			return nil, validationErr("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = string(hash)
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}
