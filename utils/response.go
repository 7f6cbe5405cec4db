package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskmanager-pro/config"
)

// Envelope is the uniform response shape for every endpoint
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Respond writes a success envelope
func Respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail classifies err and writes the matching error envelope. Internal
// failures are logged with full detail and surfaced generically unless debug
// mode is on.
func Fail(c *gin.Context, err error) {
	appErr := AsAppError(err)
	message := appErr.Message
	if appErr.Status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		if config.Debug() {
			message = err.Error()
		}
	}
	c.AbortWithStatusJSON(appErr.Status, Envelope{
		Success: false,
		Message: message,
		Errors:  appErr.Fields,
	})
}
