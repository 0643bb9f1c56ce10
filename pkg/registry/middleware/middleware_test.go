package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func token(t *testing.T, scope string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"scope": scope})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newAuthEngine(scope string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/models", RequireAccess(scope), ok)
	r.POST("/models", RequireAccess(scope), ok)
	return r
}

func TestRequireAccess(t *testing.T) {
	tests := []struct {
		name   string
		method string
		scope  string
		header map[string]string
		want   int
	}{
		{name: "no credentials", method: http.MethodGet, scope: ScopeRead, want: http.StatusUnauthorized},
		{name: "malformed header", method: http.MethodGet, scope: ScopeRead, header: map[string]string{"Authorization": "Token abc"}, want: http.StatusUnauthorized},
		{name: "api key read", method: http.MethodGet, scope: ScopeRead, header: map[string]string{"x-api-key": "k"}, want: http.StatusOK},
		{name: "api key write", method: http.MethodPost, scope: ScopeWrite, header: map[string]string{"x-api-key": "k"}, want: http.StatusForbidden},
		{name: "garbage token", method: http.MethodGet, scope: ScopeRead, header: map[string]string{"Authorization": "Bearer not-a-jwt"}, want: http.StatusForbidden},
	}

	for _, tc := range tests {
		current := tc
		t.Run(current.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(current.method, "/models", nil)
			for k, v := range current.header {
				req.Header.Set(k, v)
			}
			newAuthEngine(current.scope).ServeHTTP(w, req)
			assert.Equal(t, current.want, w.Code)
			if current.want != http.StatusOK {
				assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestRequireAccess_Scopes(t *testing.T) {
	r := newAuthEngine(ScopeWrite)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/models", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "models:read models:write"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/models", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "models:read"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
