package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/utils"
)

const bearerPrefix = "Bearer "

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}

// AuthMiddleware validates the Bearer token and stores the authenticated
// identity (user_id, user_email, user_role) on the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Authorization header must be a Bearer token")
			return
		}

		claims, err := utils.ValidateToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// AdminMiddleware gates back-office routes. It assumes AuthMiddleware has
// already run and set user_role.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_role") != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin access required",
			})
			return
		}
		c.Next()
	}
}
