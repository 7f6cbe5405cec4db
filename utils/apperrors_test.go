package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestConstructorsCarryStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("x").Status)
	assert.Equal(t, http.StatusForbidden, Forbidden("x").Status)
	assert.Equal(t, http.StatusConflict, Conflict("x").Status)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("x").Status)
	assert.Equal(t, http.StatusBadRequest, BadRequest("x").Status)

	invalid := Invalid("bad", map[string]string{"title": "This field is required"})
	assert.Equal(t, http.StatusUnprocessableEntity, invalid.Status)
	assert.Equal(t, "This field is required", invalid.Fields["title"])
}

func TestAppErrorImplementsError(t *testing.T) {
	err := error(NotFound("Task not found"))
	assert.Equal(t, "Task not found", err.Error())
}

func TestAsAppErrorPassesThrough(t *testing.T) {
	orig := Conflict("Email already registered")
	got := AsAppError(fmt.Errorf("register: %w", orig))
	require.NotNil(t, got)
	assert.Equal(t, orig, got)
}

func TestAsAppErrorMapsRecordNotFound(t *testing.T) {
	got := AsAppError(gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "Resource not found", got.Message)
}

func TestAsAppErrorHidesUnknownErrors(t *testing.T) {
	got := AsAppError(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "Internal server error", got.Message)
	assert.NotContains(t, got.Message, "pq")
}
