package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charlesng35/restaurants/internal/models"
	"github.com/charlesng35/restaurants/internal/query"
)

// RestaurantStore persists restaurants together with their address and dishes.
type RestaurantStore struct {
	db *gorm.DB
}

// NewRestaurantStore constructs a RestaurantStore.
func NewRestaurantStore(db *gorm.DB) (*RestaurantStore, error) {
	if db == nil {
		return nil, errors.New("restaurant store: db is required")
	}
	return &RestaurantStore{db: db}, nil
}

// FindByID loads a restaurant with its address and dishes.
func (s *RestaurantStore) FindByID(ctx context.Context, id int) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ensureContext(ctx)).
		Preload("Address").
		Preload("Dishes", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&restaurant, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

// Query exposes restaurants as a filterable, sortable list source.
func (s *RestaurantStore) Query() query.Source[models.Restaurant] {
	return restaurantSource{db: s.db}
}

// Add inserts the restaurant with its address and dishes.
func (s *RestaurantStore) Add(ctx context.Context, restaurant *models.Restaurant) error {
	if restaurant == nil {
		return errors.New("restaurant store: restaurant is required")
	}
	return s.db.WithContext(ensureContext(ctx)).Create(restaurant).Error
}

// Save persists the restaurant's own columns. Associations are left untouched.
func (s *RestaurantStore) Save(ctx context.Context, restaurant *models.Restaurant) error {
	if restaurant == nil || restaurant.ID == 0 {
		return errors.New("restaurant store: persisted restaurant is required")
	}
	result := s.db.WithContext(ensureContext(ctx)).
		Omit(clause.Associations).
		Save(restaurant)
	return result.Error
}

// Remove deletes the restaurant, its dishes and its address in one transaction.
func (s *RestaurantStore) Remove(ctx context.Context, restaurant *models.Restaurant) error {
	if restaurant == nil || restaurant.ID == 0 {
		return errors.New("restaurant store: persisted restaurant is required")
	}

	return s.db.WithContext(ensureContext(ctx)).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.Dish{}).Error; err != nil {
			return fmt.Errorf("delete dishes: %w", err)
		}
		if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.Address{}).Error; err != nil {
			return fmt.Errorf("delete address: %w", err)
		}
		result := tx.Delete(&models.Restaurant{}, restaurant.ID)
		if result.Error != nil {
			return fmt.Errorf("delete restaurant: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
