package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maintain-ai/maintain-backend/internal/storage/memory"
)

func TestHealthCheck_ReportsEntityCounts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHealthHandler("maintain-backend", "1.0.0", memory.NewStore(), nil).RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "maintain-backend", resp.Service)
	assert.Equal(t, 3, resp.Entities.Issues)
	assert.Equal(t, 2, resp.Entities.Users)
	assert.Equal(t, 3, resp.Entities.Technicians)
	assert.Equal(t, "disabled", resp.Redis)
}

func TestHealthCheck_RedisStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	r := gin.New()
	NewHealthHandler("maintain-backend", "1.0.0", memory.NewStore(), rdb).RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "up", resp.Redis)

	mr.Close()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "down", resp.Redis)
}

func TestResetData_RestoresSeedState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	id := store.ListIssues()[0].ID
	require.True(t, store.DeleteIssue(id))
	require.Equal(t, 2, store.Counts().Issues)

	r := gin.New()
	api := r.Group("/api")
	NewResetHandler(store).RegisterResetRoute(api)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reset-data", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Data reset to initial state")
	assert.Equal(t, 3, store.Counts().Issues)
}
