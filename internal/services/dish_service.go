package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/charlesng35/restaurants/internal/authz"
	"github.com/charlesng35/restaurants/internal/events"
	"github.com/charlesng35/restaurants/internal/models"
	"github.com/charlesng35/restaurants/internal/store"
	"github.com/charlesng35/restaurants/pkg/logger"
)

// DishService manages dishes of a restaurant. Mutations require the caller
// to be allowed to update the parent restaurant.
type DishService struct {
	dishes      DishStore
	restaurants RestaurantStore
	principals  PrincipalResolver
	mapper      Mapper
	events      events.Publisher
	log         *zap.Logger
}

// NewDishService constructs a DishService.
func NewDishService(dishes DishStore, restaurants RestaurantStore, principals PrincipalResolver, mapper Mapper, publisher events.Publisher) (*DishService, error) {
	if dishes == nil {
		return nil, errors.New("dish service: dish store is required")
	}
	if restaurants == nil {
		return nil, errors.New("dish service: restaurant store is required")
	}
	if principals == nil {
		return nil, errors.New("dish service: principal resolver is required")
	}
	if mapper == nil {
		mapper = DefaultMapper{}
	}
	if publisher == nil {
		publisher = events.Nop{}
	}

	return &DishService{
		dishes:      dishes,
		restaurants: restaurants,
		principals:  principals,
		mapper:      mapper,
		events:      publisher,
		log:         logger.WithModule("dishes"),
	}, nil
}

// Create adds a dish to the restaurant and returns the new dish id.
func (s *DishService) Create(ctx context.Context, restaurantID int, input CreateDishInput) (int, error) {
	ctx = ensureContext(ctx)

	if err := validateInput(input); err != nil {
		return 0, err
	}

	restaurant, err := s.parent(ctx, restaurantID)
	if err != nil {
		return 0, err
	}
	if err := authorize(ctx, s.principals, s.log, restaurant, authz.OperationUpdate); err != nil {
		return 0, err
	}

	dish := s.mapper.DishFromInput(input)
	dish.RestaurantID = restaurant.ID
	if err := s.dishes.Add(ctx, &dish); err != nil {
		return 0, fmt.Errorf("dish service: create: %w", err)
	}

	s.log.Info("dish created", zap.Int("restaurant_id", restaurant.ID), zap.Int("dish_id", dish.ID))
	s.publish(ctx, events.DishCreated, dish.ID, s.mapper.DishToDTO(dish))
	return dish.ID, nil
}

// GetByID returns a dish that belongs to the restaurant.
func (s *DishService) GetByID(ctx context.Context, restaurantID, dishID int) (*DishDTO, error) {
	ctx = ensureContext(ctx)

	if _, err := s.parent(ctx, restaurantID); err != nil {
		return nil, err
	}

	dish, err := s.dish(ctx, restaurantID, dishID)
	if err != nil {
		return nil, err
	}
	dto := s.mapper.DishToDTO(*dish)
	return &dto, nil
}

// GetAll lists the dishes of a restaurant.
func (s *DishService) GetAll(ctx context.Context, restaurantID int) ([]DishDTO, error) {
	ctx = ensureContext(ctx)

	if _, err := s.parent(ctx, restaurantID); err != nil {
		return nil, err
	}

	dishes, err := s.dishes.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("dish service: list: %w", err)
	}

	out := make([]DishDTO, 0, len(dishes))
	for _, dish := range dishes {
		out = append(out, s.mapper.DishToDTO(dish))
	}
	return out, nil
}

// RemoveAll deletes every dish of the restaurant.
func (s *DishService) RemoveAll(ctx context.Context, restaurantID int) error {
	ctx = ensureContext(ctx)

	restaurant, err := s.parent(ctx, restaurantID)
	if err != nil {
		return err
	}
	if err := authorize(ctx, s.principals, s.log, restaurant, authz.OperationUpdate); err != nil {
		return err
	}

	removed, err := s.dishes.RemoveByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return fmt.Errorf("dish service: remove all: %w", err)
	}

	s.log.Info("dishes cleared", zap.Int("restaurant_id", restaurant.ID), zap.Int64("removed", removed))
	s.publish(ctx, events.DishesCleared, restaurant.ID, map[string]int64{"removed": removed})
	return nil
}

// RemoveByID deletes a single dish of the restaurant.
func (s *DishService) RemoveByID(ctx context.Context, restaurantID, dishID int) error {
	ctx = ensureContext(ctx)

	restaurant, err := s.parent(ctx, restaurantID)
	if err != nil {
		return err
	}
	if err := authorize(ctx, s.principals, s.log, restaurant, authz.OperationUpdate); err != nil {
		return err
	}

	dish, err := s.dish(ctx, restaurant.ID, dishID)
	if err != nil {
		return err
	}
	if err := s.dishes.Remove(ctx, dish); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDishNotFound
		}
		return fmt.Errorf("dish service: remove: %w", err)
	}

	s.publish(ctx, events.DishDeleted, dish.ID, s.mapper.DishToDTO(*dish))
	return nil
}

func (s *DishService) parent(ctx context.Context, restaurantID int) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.FindByID(ctx, restaurantID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("dish service: load restaurant %d: %w", restaurantID, err)
	}
	return restaurant, nil
}

func (s *DishService) dish(ctx context.Context, restaurantID, dishID int) (*models.Dish, error) {
	dish, err := s.dishes.FindInRestaurant(ctx, restaurantID, dishID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrDishNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("dish service: load dish %d: %w", dishID, err)
	}
	return dish, nil
}

func (s *DishService) publish(ctx context.Context, eventType string, id int, data any) {
	event := events.New(eventType, id, data)
	if principal, ok := s.principals.Principal(ctx); ok {
		event = event.WithMetadata("actorId", fmt.Sprint(principal.ID()))
	}
	publishEvent(ctx, s.events, s.log, event)
}
