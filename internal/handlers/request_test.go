package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestIntParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		raw    string
		want   int
		ok     bool
		status int
	}{
		{raw: "7", want: 7, ok: true, status: http.StatusOK},
		{raw: "0", status: http.StatusBadRequest},
		{raw: "-3", status: http.StatusBadRequest},
		{raw: "abc", status: http.StatusBadRequest},
		{raw: "99999999999999999999", status: http.StatusBadRequest},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "dishId", Value: tc.raw}}

		got, ok := intParam(c, "dishId")
		require.Equal(t, tc.ok, ok, tc.raw)
		require.Equal(t, tc.want, got, tc.raw)
		if !tc.ok {
			require.Equal(t, tc.status, w.Code, tc.raw)
			require.Contains(t, w.Body.String(), "dishId must be a positive integer")
		}
	}
}

func TestRequestContextFallsBackToBackground(t *testing.T) {
	require.Equal(t, context.Background(), requestContext(nil))

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	require.Equal(t, context.Background(), requestContext(c))

	type key struct{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request = req.WithContext(context.WithValue(req.Context(), key{}, "v"))
	require.Equal(t, "v", requestContext(c).Value(key{}))
}
