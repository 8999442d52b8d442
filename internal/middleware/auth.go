// ================== internal/middleware/auth.go ==================
package middleware

import (
	"strings"

	"github.com/xyz-asif/gotasks/internal/config"
	"github.com/xyz-asif/gotasks/internal/pkg/response"
	"github.com/xyz-asif/gotasks/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// Auth validates the bearer access token and stores the requester's
// identity on the context. Refresh tokens are rejected here.
func Auth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		// Support both "Bearer <token>" (case-insensitive) and raw token in header
		fields := strings.Fields(authHeader)
		var tokenString string
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			tokenString = fields[1]
		} else {
			tokenString = authHeader
		}

		claims, err := token.ValidateTokenOfType(tokenString, cfg.JWTSecret, token.TypeAccess)
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("tokenExpires", claims.ExpiresAt.Unix())
		c.Next()
	}
}
