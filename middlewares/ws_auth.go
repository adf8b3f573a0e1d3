package middlewares

import (
	"backend/pkg/resp"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware authenticates websocket upgrades. Browsers cannot set an
// Authorization header on a ws handshake, so the token rides a query param.
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			resp.Unauthorized(c, "missing token")
			c.Abort()
			return
		}

		claims, err := parseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
