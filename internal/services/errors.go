package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/charlesng35/restaurants/pkg/errors"
	"github.com/charlesng35/restaurants/pkg/validator"
)

var (
	// ErrRestaurantNotFound indicates the requested restaurant does not exist.
	ErrRestaurantNotFound = apperrors.NewNotFound("Restaurant not found")
	// ErrDishNotFound indicates the dish does not exist or belongs to another restaurant.
	ErrDishNotFound = apperrors.NewNotFound("Dish not found")
	// ErrEmailTaken rejects registrations reusing an existing email.
	ErrEmailTaken = apperrors.NewValidation(map[string][]string{"email": {"Email is already taken"}})
)

// isUniqueConstraintError detects database uniqueness constraint violations across vendors.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr != nil && pgErr.Code == "23505" {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr != nil && myErr.Number == 1062 {
		return true
	}

	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "unique") || strings.Contains(lower, "duplicate")
}

// validateInput runs struct validation and converts failures into a field level AppError.
func validateInput(input any) error {
	err := validator.ValidateStruct(input)
	if err == nil {
		return nil
	}
	var failures validator.ValidationErrors
	if errors.As(err, &failures) {
		return apperrors.NewValidation(failures.Fields())
	}
	return apperrors.NewBadRequest(err.Error())
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
