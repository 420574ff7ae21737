package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/maintain-ai/maintain-backend/internal/auth"
)

const issueLimitKeyPrefix = "maintain:ratelimit:issues:"

// IssueRateLimiter caps how many issues a single user may create per
// day, INCR+EXPIRE on a per-user redis key. A nil client disables the
// limiter entirely, and redis errors fail open: losing rate limiting is
// better than refusing reports when the cache is down.
func IssueRateLimiter(rdb *redis.Client, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		userID := auth.CurrentUserID(c)
		if userID == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := issueLimitKeyPrefix + userID

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("rate limiter: redis incr failed: %v", err)
			c.Next()
			return
		}

		if count == 1 {
			if err := rdb.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
				log.Printf("rate limiter: redis expire failed: %v", err)
			}
		}

		if count > int64(limit) {
			retryAfter, _ := rdb.TTL(ctx, key).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message":     "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
