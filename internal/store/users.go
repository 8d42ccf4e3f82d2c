package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/charlesng35/restaurants/internal/models"
)

// UserStore persists accounts and looks up roles.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore constructs a UserStore.
func NewUserStore(db *gorm.DB) (*UserStore, error) {
	if db == nil {
		return nil, errors.New("user store: db is required")
	}
	return &UserStore{db: db}, nil
}

// FindByEmail loads a user and its role. Emails are compared case-insensitively.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ensureContext(ctx)).
		Preload("Role").
		Where("email = ?", normaliseEmail(email)).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// EmailExists reports whether an account already uses the email.
func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ensureContext(ctx)).
		Model(&models.User{}).
		Where("email = ?", normaliseEmail(email)).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a user. The email is stored lower-cased.
func (s *UserStore) Add(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("user store: user is required")
	}
	user.Email = normaliseEmail(user.Email)
	return s.db.WithContext(ensureContext(ctx)).Omit("Role").Create(user).Error
}

// FindRole loads a role by name.
func (s *UserStore) FindRole(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := s.db.WithContext(ensureContext(ctx)).
		Where("name = ?", strings.TrimSpace(name)).
		First(&role).Error
	if err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
