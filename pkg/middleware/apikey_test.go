package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Use(APIKey("anon-key", zap.NewNop(), "/health", "/auth/*"))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.GET("/health", ok)
	e.GET("/auth/verify", ok)
	e.GET("/navigation", ok)
	return e
}

func TestAPIKey(t *testing.T) {
	e := newEcho()

	cases := []struct {
		name string
		path string
		key  string
		code int
	}{
		{"valid key", "/navigation", "anon-key", http.StatusNoContent},
		{"missing key", "/navigation", "", http.StatusUnauthorized},
		{"wrong key", "/navigation", "other", http.StatusUnauthorized},
		{"open path", "/health", "", http.StatusNoContent},
		{"open prefix", "/auth/verify", "", http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.key != "" {
				req.Header.Set(APIKeyHeader, tc.key)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
