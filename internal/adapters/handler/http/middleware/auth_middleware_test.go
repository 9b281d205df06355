package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowtrack/routine-engine/internal/adapters/handler/http/middleware"
	"github.com/glowtrack/routine-engine/internal/adapters/repository"
	"github.com/glowtrack/routine-engine/internal/core/domain"
	"github.com/glowtrack/routine-engine/internal/core/services"
)

func setupAuthedRouter(t *testing.T) (*gin.Engine, *services.TokenService, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	coaches := repository.NewInMemoryCoachRepository()
	coach, err := domain.NewCoach("coach-1", "coach@glowtrack.io")
	require.NoError(t, err)
	require.NoError(t, coach.SetPassword("s3cret-pass"))
	require.NoError(t, coaches.Create(context.Background(), coach))

	tokens := services.NewTokenService("test-secret", "routine-engine", time.Hour, coaches)

	r := gin.New()
	r.GET("/whoami", middleware.AuthMiddleware(tokens), func(c *gin.Context) {
		id, ok := middleware.GetCoachID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"coachId": id})
	})

	return r, tokens, coach.ID
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid token passes and exposes the coach id", func(t *testing.T) {
		r, tokens, coachID := setupAuthedRouter(t)

		token, err := tokens.GenerateToken(coachID)
		require.NoError(t, err)

		req, _ := http.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), coachID)
	})

	t.Run("missing header", func(t *testing.T) {
		r, _, _ := setupAuthedRouter(t)

		req, _ := http.NewRequest("GET", "/whoami", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "authorization header required")
	})

	t.Run("malformed header", func(t *testing.T) {
		r, tokens, coachID := setupAuthedRouter(t)

		token, err := tokens.GenerateToken(coachID)
		require.NoError(t, err)

		req, _ := http.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Token "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid authorization header format")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		r, _, coachID := setupAuthedRouter(t)

		forged := services.NewTokenService("other-secret", "routine-engine", time.Hour, repository.NewInMemoryCoachRepository())
		token, err := forged.GenerateToken(coachID)
		require.NoError(t, err)

		req, _ := http.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid or expired token")
	})

	t.Run("token for a deleted coach", func(t *testing.T) {
		r, tokens, _ := setupAuthedRouter(t)

		token, err := tokens.GenerateToken("gone-coach")
		require.NoError(t, err)

		req, _ := http.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
