package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maintain-ai/maintain-backend/internal/analytics"
	"github.com/maintain-ai/maintain-backend/internal/storage/memory"
)

func TestGetAnalytics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(analytics.NewService(memory.NewStore(), nil)).Register(r.Group("/api"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analytics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var snap analytics.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, 3, snap.TotalIssues)
	assert.Len(t, snap.Last7Days, 7)
	assert.NotEmpty(t, snap.IssuesByCategory)
	assert.NotEmpty(t, snap.TopUpvotedIssues)
}
