package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	iauth "github.com/charlesng35/restaurants/internal/auth"
	"github.com/charlesng35/restaurants/internal/models"
	"github.com/charlesng35/restaurants/internal/store"
	apperrors "github.com/charlesng35/restaurants/pkg/errors"
	"github.com/charlesng35/restaurants/pkg/logger"
	"github.com/charlesng35/restaurants/pkg/metrics"
)

const dateLayout = "2006-01-02"

// RegisterUserInput describes a new account.
type RegisterUserInput struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FirstName       string `json:"firstName" validate:"omitempty,max=100"`
	LastName        string `json:"lastName" validate:"omitempty,max=100"`
	Nationality     string `json:"nationality" validate:"omitempty,max=64"`
	DateOfBirth     string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	RoleID          int    `json:"roleId" validate:"omitempty,min=1,max=3"`
}

// LoginInput carries credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AccountService registers users and issues access tokens.
type AccountService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
	log    *zap.Logger
}

// NewAccountService constructs an AccountService.
func NewAccountService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) (*AccountService, error) {
	if users == nil {
		return nil, errors.New("account service: user store is required")
	}
	if hasher == nil {
		return nil, errors.New("account service: password hasher is required")
	}
	if tokens == nil {
		return nil, errors.New("account service: token issuer is required")
	}
	return &AccountService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    logger.WithModule("account"),
	}, nil
}

// Register creates an account. Without an explicit role the account gets the User role.
func (s *AccountService) Register(ctx context.Context, input RegisterUserInput) error {
	ctx = ensureContext(ctx)

	if err := validateInput(input); err != nil {
		return err
	}

	exists, err := s.users.EmailExists(ctx, input.Email)
	if err != nil {
		return fmt.Errorf("account service: check email: %w", err)
	}
	if exists {
		return ErrEmailTaken
	}

	roleID := input.RoleID
	if roleID == 0 {
		role, err := s.users.FindRole(ctx, models.RoleUser)
		if err != nil {
			return fmt.Errorf("account service: load default role: %w", err)
		}
		roleID = role.ID
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return fmt.Errorf("account service: hash password: %w", err)
	}

	user := &models.User{
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Nationality:  strings.TrimSpace(input.Nationality),
		RoleID:       roleID,
	}
	if input.DateOfBirth != "" {
		parsed, err := time.Parse(dateLayout, input.DateOfBirth)
		if err != nil {
			return apperrors.NewValidation(map[string][]string{"dateOfBirth": {"dateOfBirth must use the YYYY-MM-DD format"}})
		}
		dob := datatypes.Date(parsed)
		user.DateOfBirth = &dob
	}

	if err := s.users.Add(ctx, user); err != nil {
		if isUniqueConstraintError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("account service: create user: %w", err)
	}

	s.log.Info("user registered", zap.Int("user_id", user.ID), zap.Int("role_id", roleID))
	return nil
}

// Login verifies the credentials and returns a signed access token.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (string, error) {
	ctx = ensureContext(ctx)

	if err := validateInput(input); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if errors.Is(err, store.ErrNotFound) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return "", apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("account service: load user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, input.Password) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		s.log.Info("login rejected", zap.Int("user_id", user.ID))
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(tokenInput(user))
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("error").Inc()
		return "", fmt.Errorf("account service: issue token: %w", err)
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	return token, nil
}

func tokenInput(user *models.User) iauth.AccessTokenInput {
	input := iauth.AccessTokenInput{
		UserID:      user.ID,
		Role:        user.RoleName(),
		Name:        user.FullName(),
		Nationality: user.Nationality,
	}
	if user.DateOfBirth != nil {
		input.DateOfBirth = time.Time(*user.DateOfBirth).Format(dateLayout)
	}
	return input
}
