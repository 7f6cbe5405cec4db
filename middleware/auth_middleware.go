package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskmanager-pro/services"
	"github.com/taskmanager-pro/utils"
)

// AuthMiddleware validates the bearer token and stores the caller's identity
// in the request context under "userId" and "role". It runs before any
// handler logic on protected routes.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.Fail(c, utils.Unauthorized("Authentication required"))
			return
		}

		claims, err := services.ValidateToken(tokenString)
		if err != nil {
			utils.Fail(c, err)
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header, falling back
// to the access_token cookie set at login
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}
