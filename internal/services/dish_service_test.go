package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/restaurants/internal/events"
	apperrors "github.com/charlesng35/restaurants/pkg/errors"
)

func TestDishServiceCreateAndGet(t *testing.T) {
	fx := newServiceFixture(t)
	owner := asUser(1)

	restaurantID, err := fx.restaurants.Create(owner, restaurantInput("Dishes"))
	require.NoError(t, err)

	dishID, err := fx.dishes.Create(owner, restaurantID, CreateDishInput{Name: "Margherita", Description: "Classic", Price: 21.5})
	require.NoError(t, err)

	dish, err := fx.dishes.GetByID(context.Background(), restaurantID, dishID)
	require.NoError(t, err)
	require.Equal(t, "Margherita", dish.Name)
	require.Equal(t, 21.5, dish.Price)
	require.Equal(t, restaurantID, dish.RestaurantID)

	restaurant, err := fx.restaurants.GetByID(context.Background(), restaurantID)
	require.NoError(t, err)
	require.Len(t, restaurant.Dishes, 1)

	require.Contains(t, fx.publisher.topics(), events.DishCreated)
}

func TestDishServiceGates(t *testing.T) {
	fx := newServiceFixture(t)
	owner := asUser(1)

	restaurantID, err := fx.restaurants.Create(owner, restaurantInput("Guarded"))
	require.NoError(t, err)

	_, err = fx.dishes.Create(owner, 9999, CreateDishInput{Name: "Ghost"})
	require.ErrorIs(t, err, ErrRestaurantNotFound)

	_, err = fx.dishes.Create(asUser(2), restaurantID, CreateDishInput{Name: "Intruder"})
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = fx.dishes.Create(owner, restaurantID, CreateDishInput{Name: "Negative", Price: -1})
	require.True(t, apperrors.IsValidation(err))

	dishes, err := fx.dishes.GetAll(context.Background(), restaurantID)
	require.NoError(t, err)
	require.Empty(t, dishes)
}

func TestDishServiceGetByIDScopedToRestaurant(t *testing.T) {
	fx := newServiceFixture(t)
	owner := asUser(1)

	first, err := fx.restaurants.Create(owner, restaurantInput("First"))
	require.NoError(t, err)
	second, err := fx.restaurants.Create(owner, restaurantInput("Second"))
	require.NoError(t, err)

	dishID, err := fx.dishes.Create(owner, first, CreateDishInput{Name: "Pierogi", Price: 12})
	require.NoError(t, err)

	_, err = fx.dishes.GetByID(context.Background(), second, dishID)
	require.ErrorIs(t, err, ErrDishNotFound)

	_, err = fx.dishes.GetByID(context.Background(), 9999, dishID)
	require.ErrorIs(t, err, ErrRestaurantNotFound)

	require.ErrorIs(t, fx.dishes.RemoveByID(owner, second, dishID), ErrDishNotFound)
}

func TestDishServiceRemove(t *testing.T) {
	fx := newServiceFixture(t)
	owner := asUser(1)

	restaurantID, err := fx.restaurants.Create(owner, restaurantInput("Remover"))
	require.NoError(t, err)

	var ids []int
	for _, name := range []string{"Soup", "Salad", "Cake"} {
		id, err := fx.dishes.Create(owner, restaurantID, CreateDishInput{Name: name, Price: 5})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	require.ErrorIs(t, fx.dishes.RemoveByID(asUser(2), restaurantID, ids[0]), apperrors.ErrForbidden)
	require.ErrorIs(t, fx.dishes.RemoveAll(context.Background(), restaurantID), apperrors.ErrUnauthorized)

	require.NoError(t, fx.dishes.RemoveByID(owner, restaurantID, ids[0]))
	dishes, err := fx.dishes.GetAll(context.Background(), restaurantID)
	require.NoError(t, err)
	require.Len(t, dishes, 2)

	require.NoError(t, fx.dishes.RemoveAll(owner, restaurantID))
	dishes, err = fx.dishes.GetAll(context.Background(), restaurantID)
	require.NoError(t, err)
	require.Empty(t, dishes)

	topics := fx.publisher.topics()
	require.Contains(t, topics, events.DishDeleted)
	require.Contains(t, topics, events.DishesCleared)
}
