package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserContextKey is where the authenticated user's ID is stored on the gin
// context.
const UserContextKey = "userID"

// AuthMiddleware trusts the identity headers set by the API gateway. This
// service never sits on a public edge; the gateway owns authentication and
// strips any client-supplied X-User-ID.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")

		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(UserContextKey, userID)
		c.Next()
	}
}
