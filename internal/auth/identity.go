package auth

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

const ctxUserID = "user_id"

// Identity resolves the acting user id for a request.
//
// With a Firebase client configured, a Bearer token is verified and its
// UID wins. Without one (mock mode, the default), the X-User-Id header
// is trusted, falling back to "demo-user". Real authorization is out of
// scope; downstream code only needs a stable per-user key for upvotes
// and rate limiting.
func Identity(authClient *fbauth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authClient != nil {
			if token := extractBearer(c); token != "" {
				decoded, err := authClient.VerifyIDToken(context.Background(), token)
				if err != nil {
					c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
					c.Abort()
					return
				}
				c.Set(ctxUserID, decoded.UID)
				c.Next()
				return
			}
		}

		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = "demo-user"
		}
		c.Set(ctxUserID, uid)
		c.Next()
	}
}

// CurrentUserID returns the id set by Identity, or "" when the
// middleware did not run.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return header[len("Bearer "):]
	}
	return ""
}
