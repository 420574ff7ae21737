package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maintain-ai/maintain-backend/internal/auth"
)

func newLimitedRouter(t *testing.T, rdb *redis.Client, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(auth.Identity(nil))
	r.POST("/issues", IssueRateLimiter(rdb, limit), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func post(r *gin.Engine, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/issues", nil)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIssueRateLimiter_BlocksAfterLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newLimitedRouter(t, rdb, 3)

	for i := 0; i < 3; i++ {
		w := post(r, "heavy-user")
		require.Equal(t, http.StatusCreated, w.Code, "request %d should pass", i+1)
	}

	w := post(r, "heavy-user")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
	assert.Contains(t, w.Body.String(), "retry_after")
}

func TestIssueRateLimiter_CountsPerUser(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newLimitedRouter(t, rdb, 1)

	require.Equal(t, http.StatusCreated, post(r, "alice").Code)
	require.Equal(t, http.StatusTooManyRequests, post(r, "alice").Code)

	// a different user has their own counter
	assert.Equal(t, http.StatusCreated, post(r, "bob").Code)
}

func TestIssueRateLimiter_WindowExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newLimitedRouter(t, rdb, 1)

	require.Equal(t, http.StatusCreated, post(r, "carol").Code)
	require.Equal(t, http.StatusTooManyRequests, post(r, "carol").Code)

	mr.FastForward(24*time.Hour + time.Minute)
	assert.Equal(t, http.StatusCreated, post(r, "carol").Code)
}

func TestIssueRateLimiter_NilClientDisables(t *testing.T) {
	r := newLimitedRouter(t, nil, 1)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusCreated, post(r, "anyone").Code)
	}
}

func TestIssueRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := newLimitedRouter(t, rdb, 1)
	mr.Close()

	assert.Equal(t, http.StatusCreated, post(r, "dave").Code)
}
