package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/glowtrack/routine-engine/internal/adapters/handler/http"
	"github.com/glowtrack/routine-engine/internal/adapters/repository"
	"github.com/glowtrack/routine-engine/internal/core/domain"
	"github.com/glowtrack/routine-engine/internal/core/services"
)

func setupProfileRouter() (*gin.Engine, *repository.InMemoryProfileRepository) {
	gin.SetMode(gin.TestMode)

	profiles := repository.NewInMemoryProfileRepository()
	handler := adapterHTTP.NewProfileHandler(services.NewProfileService(profiles))

	r := gin.New()
	v1 := r.Group("/api/v1")
	handler.RegisterRoutes(v1)

	return r, profiles
}

func getPath(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()

	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func putJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, _ := http.NewRequest("PUT", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProfileRoutes(t *testing.T) {
	authUserID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	t.Run("create accepts an omitted timezone", func(t *testing.T) {
		r, _ := setupProfileRouter()

		w := postJSON(t, r, "/api/v1/profiles", gin.H{
			"authUserId":  authUserID,
			"displayName": "Iris",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var profile domain.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		assert.NotEmpty(t, profile.ID)
		assert.Equal(t, authUserID, profile.AuthUserID)
		assert.Empty(t, profile.Timezone)
		assert.Equal(t, domain.DefaultTimezone, profile.Location().String())
	})

	t.Run("400 on an unknown timezone", func(t *testing.T) {
		r, _ := setupProfileRouter()

		w := postJSON(t, r, "/api/v1/profiles", gin.H{
			"authUserId": authUserID,
			"timezone":   "Mars/Olympus_Mons",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "timezone must be a valid IANA name")
	})

	t.Run("409 on a second profile for the same auth user", func(t *testing.T) {
		r, _ := setupProfileRouter()

		body := gin.H{"authUserId": authUserID, "timezone": "America/New_York"}
		require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/v1/profiles", body).Code)

		w := postJSON(t, r, "/api/v1/profiles", body)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("get and update round-trip", func(t *testing.T) {
		r, _ := setupProfileRouter()

		w := postJSON(t, r, "/api/v1/profiles", gin.H{
			"authUserId":  authUserID,
			"displayName": "Iris",
			"timezone":    "America/New_York",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created domain.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = getPath(t, r, "/api/v1/profiles/"+created.ID)
		require.Equal(t, http.StatusOK, w.Code)

		w = putJSON(t, r, "/api/v1/profiles/"+created.ID, gin.H{"timezone": "Pacific/Auckland"})
		require.Equal(t, http.StatusOK, w.Code)

		var updated domain.UserProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "Pacific/Auckland", updated.Timezone)
		assert.Equal(t, "Iris", updated.DisplayName)
	})

	t.Run("404 on unknown profile", func(t *testing.T) {
		r, _ := setupProfileRouter()

		w := getPath(t, r, "/api/v1/profiles/ghost")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = putJSON(t, r, "/api/v1/profiles/ghost", gin.H{"displayName": "Nobody"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
