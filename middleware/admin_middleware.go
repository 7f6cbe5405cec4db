package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/taskmanager-pro/utils"
)

// AdminMiddleware creates a middleware that ensures the user has admin role.
// This middleware should be used after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.Fail(c, utils.Unauthorized("Authentication required"))
			return
		}

		if roleStr, ok := role.(string); !ok || roleStr != "admin" {
			utils.Fail(c, utils.Forbidden("Admin privileges required"))
			return
		}

		c.Next()
	}
}
