package services

import (
	"context"

	iauth "github.com/charlesng35/restaurants/internal/auth"
	"github.com/charlesng35/restaurants/internal/authz"
	"github.com/charlesng35/restaurants/internal/models"
	"github.com/charlesng35/restaurants/internal/query"
)

// RestaurantStore persists restaurants.
type RestaurantStore interface {
	FindByID(ctx context.Context, id int) (*models.Restaurant, error)
	Query() query.Source[models.Restaurant]
	Add(ctx context.Context, restaurant *models.Restaurant) error
	Save(ctx context.Context, restaurant *models.Restaurant) error
	Remove(ctx context.Context, restaurant *models.Restaurant) error
}

// DishStore persists dishes scoped to a restaurant.
type DishStore interface {
	FindInRestaurant(ctx context.Context, restaurantID, dishID int) (*models.Dish, error)
	ListByRestaurant(ctx context.Context, restaurantID int) ([]models.Dish, error)
	Add(ctx context.Context, dish *models.Dish) error
	Remove(ctx context.Context, dish *models.Dish) error
	RemoveByRestaurant(ctx context.Context, restaurantID int) (int64, error)
}

// UserStore persists accounts.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Add(ctx context.Context, user *models.User) error
	FindRole(ctx context.Context, name string) (*models.Role, error)
}

// PrincipalResolver supplies the caller of the current request.
type PrincipalResolver interface {
	Principal(ctx context.Context) (authz.Principal, bool)
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	GenerateAccessToken(input iauth.AccessTokenInput) (string, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}
