package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/charlesng35/restaurants/internal/models"
)

// DishStore persists dishes scoped to their restaurant.
type DishStore struct {
	db *gorm.DB
}

// NewDishStore constructs a DishStore.
func NewDishStore(db *gorm.DB) (*DishStore, error) {
	if db == nil {
		return nil, errors.New("dish store: db is required")
	}
	return &DishStore{db: db}, nil
}

// FindInRestaurant loads a dish only when it belongs to the restaurant.
func (s *DishStore) FindInRestaurant(ctx context.Context, restaurantID, dishID int) (*models.Dish, error) {
	var dish models.Dish
	err := s.db.WithContext(ensureContext(ctx)).
		Where("id = ? AND restaurant_id = ?", dishID, restaurantID).
		First(&dish).Error
	if err != nil {
		return nil, translate(err)
	}
	return &dish, nil
}

// ListByRestaurant returns the restaurant's dishes in insertion order.
func (s *DishStore) ListByRestaurant(ctx context.Context, restaurantID int) ([]models.Dish, error) {
	var dishes []models.Dish
	err := s.db.WithContext(ensureContext(ctx)).
		Where("restaurant_id = ?", restaurantID).
		Order("id ASC").
		Find(&dishes).Error
	return dishes, err
}

// Add inserts a dish.
func (s *DishStore) Add(ctx context.Context, dish *models.Dish) error {
	if dish == nil {
		return errors.New("dish store: dish is required")
	}
	return s.db.WithContext(ensureContext(ctx)).Create(dish).Error
}

// Remove deletes a single dish.
func (s *DishStore) Remove(ctx context.Context, dish *models.Dish) error {
	if dish == nil || dish.ID == 0 {
		return errors.New("dish store: persisted dish is required")
	}
	result := s.db.WithContext(ensureContext(ctx)).Delete(&models.Dish{}, dish.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveByRestaurant deletes every dish of the restaurant and reports how many were removed.
func (s *DishStore) RemoveByRestaurant(ctx context.Context, restaurantID int) (int64, error) {
	result := s.db.WithContext(ensureContext(ctx)).
		Where("restaurant_id = ?", restaurantID).
		Delete(&models.Dish{})
	return result.RowsAffected, result.Error
}
