package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/restaurants/internal/handlers/testutil"
	"github.com/charlesng35/restaurants/internal/models"
	apperrors "github.com/charlesng35/restaurants/pkg/errors"
)

func TestRegisterAndLogin(t *testing.T) {
	env := testutil.NewEnv(t)

	w := env.Request(http.MethodPost, "/api/account/register", map[string]any{
		"email":           "chef@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
		"nationality":     "Italian",
		"dateOfBirth":     "1985-03-02",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token := env.Login("chef@example.com", "secret1")

	claims, err := env.JWT.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, claims.Role)
	require.Equal(t, "Italian", claims.Nationality)
	require.Equal(t, "1985-03-02", claims.DateOfBirth)

	// Plain users cannot create restaurants.
	w = env.Request(http.MethodPost, "/api/restaurant", newRestaurantPayload("Nope"), token)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := testutil.NewEnv(t)
	payload := map[string]any{
		"email":           "dup@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
	}

	w := env.Request(http.MethodPost, "/api/account/register", payload, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.Request(http.MethodPost, "/api/account/register", payload, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := testutil.DecodeResponse(t, w)
	require.Equal(t, []string{"Email is already taken"}, resp.Error.Fields["email"])
}

func TestRegisterValidatesPayload(t *testing.T) {
	env := testutil.NewEnv(t)

	w := env.Request(http.MethodPost, "/api/account/register", map[string]any{
		"email":           "not-an-email",
		"password":        "abc",
		"confirmPassword": "abd",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := testutil.DecodeResponse(t, w)
	require.Equal(t, apperrors.ErrValidation.Code, resp.Error.Code)
	require.Contains(t, resp.Error.Fields, "email")
	require.Contains(t, resp.Error.Fields, "password")
	require.Contains(t, resp.Error.Fields, "confirmPassword")
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := testutil.NewEnv(t)
	user := env.CreateUser(models.RoleUser, "secret1")

	w := env.Request(http.MethodPost, "/api/account/login", map[string]string{
		"email":    user.Email,
		"password": "wrong-one",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	resp := testutil.DecodeResponse(t, w)
	require.Equal(t, apperrors.ErrInvalidCredentials.Code, resp.Error.Code)
}

func TestLoginRejectsMalformedJSON(t *testing.T) {
	env := testutil.NewEnv(t)

	w := env.Request(http.MethodPost, "/api/account/login", "not-an-object", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
