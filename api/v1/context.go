package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskmanager-pro/models"
)

// currentUserID reads the authenticated user id set by AuthMiddleware
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userId")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// currentRole reads the authenticated role set by AuthMiddleware
func currentRole(c *gin.Context) models.Role {
	value, exists := c.Get("role")
	if !exists {
		return models.RoleUser
	}
	role, ok := value.(string)
	if !ok {
		return models.RoleUser
	}
	return models.Role(role)
}

// pathID parses a numeric path parameter
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryInt parses an integer query parameter with a default
func queryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// queryUint parses an optional unsigned query parameter
func queryUint(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(value)
	return &id
}
