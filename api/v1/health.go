package v1

import (
	"github.com/gin-gonic/gin"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"success": true,
		"message": "ok",
		"data": gin.H{
			"service": "taskmanager-api",
			"version": "1.0.0",
		},
	})
}
