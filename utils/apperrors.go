package utils

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// AppError is a failure with a fixed HTTP status. Field-level validation
// failures additionally carry a per-field message map.
type AppError struct {
	Status  int               `json:"-"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NotFound signals a missing entity, or one the caller must not learn exists
func NotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

// Forbidden signals an authenticated caller without the required role or ownership
func Forbidden(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: message}
}

// Conflict signals a uniqueness violation or invalid state transition
func Conflict(message string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: message}
}

// Unauthorized signals a missing, invalid or expired credential
func Unauthorized(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

// Invalid signals malformed input, reported field by field
func Invalid(message string, fields map[string]string) *AppError {
	return &AppError{Status: http.StatusUnprocessableEntity, Message: message, Fields: fields}
}

// BadRequest signals a request that could not be decoded at all
func BadRequest(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

// AsAppError classifies any error into the taxonomy. Unknown errors map to a
// 500 with a generic message; gorm's not-found sentinel maps to 404 so
// repository misses never leak driver detail.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Resource not found")
	}
	return &AppError{Status: http.StatusInternalServerError, Message: "Internal server error"}
}
