package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/restaurants/internal/events"
	"github.com/charlesng35/restaurants/internal/handlers/testutil"
	"github.com/charlesng35/restaurants/internal/models"
	"github.com/charlesng35/restaurants/internal/query"
	"github.com/charlesng35/restaurants/internal/services"
	apperrors "github.com/charlesng35/restaurants/pkg/errors"
)

func newRestaurantPayload(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": "Wood fired",
		"category":    "Italian",
		"hasDelivery": true,
		"city":        "Krakow",
		"street":      "Dluga 5",
	}
}

func createRestaurant(t *testing.T, env *testutil.Env, token, name string) int {
	t.Helper()

	w := env.Request(http.MethodPost, "/api/restaurant", newRestaurantPayload(name), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID int `json:"id"`
	}
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &created)
	require.NotZero(t, created.ID)
	require.Equal(t, fmt.Sprintf("/api/restaurant/%d", created.ID), w.Header().Get("Location"))
	return created.ID
}

func TestRestaurantLifecycle(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.CreateUser(models.RoleManager, "secret1")
	token := env.Login(owner.Email, "secret1")

	id := createRestaurant(t, env, token, "Sushi Place")

	w := env.Request(http.MethodGet, fmt.Sprintf("/api/restaurant/%d", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var restaurant services.RestaurantDTO
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &restaurant)
	require.Equal(t, "Sushi Place", restaurant.Name)
	require.Equal(t, owner.ID, restaurant.OwnerID)
	require.Equal(t, "Krakow", restaurant.City)

	w = env.Request(http.MethodPut, fmt.Sprintf("/api/restaurant/%d", id), map[string]any{
		"name":        "Sushi Place 2",
		"description": "Omakase",
		"hasDelivery": false,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.True(t, testutil.DecodeResponse(t, w).Success)

	w = env.Request(http.MethodGet, fmt.Sprintf("/api/restaurant/%d", id), nil, "")
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &restaurant)
	require.Equal(t, "Sushi Place 2", restaurant.Name)
	require.False(t, restaurant.HasDelivery)

	w = env.Request(http.MethodDelete, fmt.Sprintf("/api/restaurant/%d", id), nil, token)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = env.Request(http.MethodGet, fmt.Sprintf("/api/restaurant/%d", id), nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, []string{events.RestaurantCreated, events.RestaurantUpdated, events.RestaurantDeleted}, env.EventTopics())
}

func TestRestaurantCreateRequiresElevatedRole(t *testing.T) {
	env := testutil.NewEnv(t)

	w := env.Request(http.MethodPost, "/api/restaurant", newRestaurantPayload("Anonymous"), "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	user := env.CreateUser(models.RoleUser, "secret1")
	w = env.Request(http.MethodPost, "/api/restaurant", newRestaurantPayload("Plain user"), env.Token(user))
	require.Equal(t, http.StatusForbidden, w.Code)

	admin := env.CreateUser(models.RoleAdmin, "secret1")
	createRestaurant(t, env, env.Token(admin), "Admin place")
}

func TestRestaurantMutationsRequireOwnership(t *testing.T) {
	env := testutil.NewEnv(t)
	owner := env.CreateUser(models.RoleManager, "secret1")
	other := env.CreateUser(models.RoleAdmin, "secret1")

	id := createRestaurant(t, env, env.Token(owner), "Owned")
	path := fmt.Sprintf("/api/restaurant/%d", id)

	w := env.Request(http.MethodPut, path, map[string]any{"name": "Stolen"}, env.Token(other))
	require.Equal(t, http.StatusForbidden, w.Code)
	resp := testutil.DecodeResponse(t, w)
	require.Equal(t, apperrors.ErrForbidden.Code, resp.Error.Code)

	w = env.Request(http.MethodDelete, path, nil, env.Token(other))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.Request(http.MethodPut, path, map[string]any{"name": "No token"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.Request(http.MethodPut, "/api/restaurant/9999", map[string]any{"name": "Missing"}, env.Token(owner))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRestaurantCreateValidation(t *testing.T) {
	env := testutil.NewEnv(t)
	token := env.Token(env.CreateUser(models.RoleAdmin, "secret1"))

	payload := newRestaurantPayload("This restaurant name is way too long")
	delete(payload, "city")
	w := env.Request(http.MethodPost, "/api/restaurant", payload, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := testutil.DecodeResponse(t, w)
	require.Equal(t, apperrors.ErrValidation.Code, resp.Error.Code)
	require.Contains(t, resp.Error.Fields, "name")
	require.Contains(t, resp.Error.Fields, "city")

	w = env.Request(http.MethodGet, "/api/restaurant/abc", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRestaurantCreateWithoutCategory(t *testing.T) {
	env := testutil.NewEnv(t)
	token := env.Token(env.CreateUser(models.RoleManager, "secret1"))

	payload := newRestaurantPayload("Pierogarnia")
	delete(payload, "category")
	w := env.Request(http.MethodPost, "/api/restaurant", payload, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.Request(http.MethodGet, w.Header().Get("Location"), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var restaurant services.RestaurantDTO
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &restaurant)
	require.Equal(t, "Pierogarnia", restaurant.Name)
	require.Empty(t, restaurant.Category)

	payload["category"] = strings.Repeat("x", 65)
	w = env.Request(http.MethodPost, "/api/restaurant", payload, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, testutil.DecodeResponse(t, w).Error.Fields, "category")
}

func TestRestaurantListPaging(t *testing.T) {
	env := testutil.NewEnv(t)
	token := env.Token(env.CreateUser(models.RoleManager, "secret1"))

	for i := 1; i <= 12; i++ {
		createRestaurant(t, env, token, fmt.Sprintf("Pizza %02d", i))
	}
	createRestaurant(t, env, token, "Kebab")

	w := env.Request(http.MethodGet, "/api/restaurant?searchPhrase=pizza&pageNumber=1&pageSize=5&sortBy=Name&sortDirection=DESC", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := testutil.DecodeResponse(t, w)
	var page query.Page[services.RestaurantDTO]
	testutil.DecodeInto(t, resp.Data, &page)
	require.Len(t, page.Items, 5)
	require.Equal(t, 12, page.TotalItemsCount)
	require.Equal(t, "Pizza 12", page.Items[0].Name)

	require.NotNil(t, resp.Meta)
	require.Equal(t, 12, resp.Meta.Total)
	require.Equal(t, 3, resp.Meta.TotalPages)
	require.Equal(t, 5, resp.Meta.PerPage)
}

func TestRestaurantListRejectsInvalidQuery(t *testing.T) {
	env := testutil.NewEnv(t)

	w := env.Request(http.MethodGet, "/api/restaurant?pageNumber=0&pageSize=7&sortBy=Rating", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := testutil.DecodeResponse(t, w)
	require.Equal(t, []string{"PageSize must be in [5,10,15]"}, resp.Error.Fields["pageSize"])
	require.Equal(t, []string{"PageNumber must be greater than or equal to 1"}, resp.Error.Fields["pageNumber"])
	require.Contains(t, resp.Error.Fields, "sortBy")
}

func TestRestaurantListPagePastDataIsEmpty(t *testing.T) {
	env := testutil.NewEnv(t)
	createRestaurant(t, env, env.Token(env.CreateUser(models.RoleManager, "secret1")), "Lonely")

	w := env.Request(http.MethodGet, "/api/restaurant?pageNumber=2305843009213693953&pageSize=5", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page query.Page[services.RestaurantDTO]
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &page)
	require.Empty(t, page.Items)
	require.Equal(t, 1, page.TotalItemsCount)
}
