package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/restaurants/internal/handlers/testutil"
	"github.com/charlesng35/restaurants/internal/models"
	"github.com/charlesng35/restaurants/internal/services"
)

func TestDishEndpoints(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.CreateUser(models.RoleManager, "secret1")
	token := env.Token(owner)

	restaurantID := createRestaurant(t, env, token, "Pierogarnia")
	base := fmt.Sprintf("/api/restaurant/%d/dish", restaurantID)

	var ids []int
	for _, name := range []string{"Ruskie", "Z miesem", "Na slodko"} {
		w := env.Request(http.MethodPost, base, map[string]any{"name": name, "price": 18.5}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created struct {
			ID int `json:"id"`
		}
		testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &created)
		require.Equal(t, fmt.Sprintf("%s/%d", base, created.ID), w.Header().Get("Location"))
		ids = append(ids, created.ID)
	}

	w := env.Request(http.MethodGet, base, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var dishes []services.DishDTO
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &dishes)
	require.Len(t, dishes, 3)

	w = env.Request(http.MethodGet, fmt.Sprintf("%s/%d", base, ids[0]), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var dish services.DishDTO
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &dish)
	require.Equal(t, "Ruskie", dish.Name)

	w = env.Request(http.MethodDelete, fmt.Sprintf("%s/%d", base, ids[0]), nil, token)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.Request(http.MethodGet, fmt.Sprintf("%s/%d", base, ids[0]), nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.Request(http.MethodDelete, base, nil, token)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.Request(http.MethodGet, base, nil, "")
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &dishes)
	require.Empty(t, dishes)
}

func TestDishMutationsRequireParentOwnership(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.CreateUser(models.RoleManager, "secret1")
	stranger := env.CreateUser(models.RoleUser, "secret1")

	restaurantID := createRestaurant(t, env, env.Token(owner), "Private")
	base := fmt.Sprintf("/api/restaurant/%d/dish", restaurantID)

	w := env.Request(http.MethodPost, base, map[string]any{"name": "Sneaky", "price": 1}, env.Token(stranger))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.Request(http.MethodDelete, base, nil, env.Token(stranger))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.Request(http.MethodPost, base, map[string]any{"name": "Anonymous", "price": 1}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.Request(http.MethodPost, "/api/restaurant/9999/dish", map[string]any{"name": "Orphan", "price": 1}, env.Token(owner))
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.Request(http.MethodPost, base, map[string]any{"name": "", "price": -2}, env.Token(owner))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletingRestaurantRemovesDishes(t *testing.T) {
	env := testutil.NewEnv(t)
	token := env.Token(env.CreateUser(models.RoleAdmin, "secret1"))

	restaurantID := createRestaurant(t, env, token, "Short lived")
	base := fmt.Sprintf("/api/restaurant/%d/dish", restaurantID)
	for i := 0; i < 3; i++ {
		w := env.Request(http.MethodPost, base, map[string]any{"name": fmt.Sprintf("Dish %d", i), "price": 9}, token)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.Request(http.MethodDelete, fmt.Sprintf("/api/restaurant/%d", restaurantID), nil, token)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.Request(http.MethodGet, base, nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var remaining int64
	require.NoError(t, env.DB.Model(&models.Dish{}).Count(&remaining).Error)
	require.Zero(t, remaining)
}
