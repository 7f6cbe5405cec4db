package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfWeek(t *testing.T) {
	// Wednesday
	wed := time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC)
	monday := startOfWeek(wed)
	assert.Equal(t, time.Monday, monday.Weekday())
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), monday)

	// Sunday belongs to the week that started the previous Monday
	sun := time.Date(2026, 3, 22, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), startOfWeek(sun))

	// Monday maps to itself at midnight
	mon := time.Date(2026, 3, 16, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), startOfWeek(mon))
}
