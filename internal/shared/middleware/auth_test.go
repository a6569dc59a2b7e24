package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/pkg/jwt"
)

func newAuthRouter(manager *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/protected", Auth(manager), ok)
	r.GET("/admin", Auth(manager), RequireRole("admin"), ok)
	return r
}

func doAuthRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Minute, "library-backend")
	r := newAuthRouter(manager)

	t.Run("missing header is 401", func(t *testing.T) {
		w := doAuthRequest(r, "/protected", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header is 401", func(t *testing.T) {
		w := doAuthRequest(r, "/protected", "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token is 401", func(t *testing.T) {
		w := doAuthRequest(r, "/protected", "Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		token, err := manager.GenerateAccessToken(uuid.New(), "user@example.com", "user")
		require.NoError(t, err)
		w := doAuthRequest(r, "/protected", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Minute, "library-backend")
	r := newAuthRouter(manager)

	t.Run("wrong role is 403", func(t *testing.T) {
		token, err := manager.GenerateAccessToken(uuid.New(), "user@example.com", "user")
		require.NoError(t, err)
		w := doAuthRequest(r, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		token, err := manager.GenerateAccessToken(uuid.New(), "admin@example.com", "admin")
		require.NoError(t, err)
		w := doAuthRequest(r, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
