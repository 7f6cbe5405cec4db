package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskmanager-pro/models"
	"github.com/taskmanager-pro/utils"
)

func strPtr(s string) *string { return &s }

func TestProjectOrderWhitelist(t *testing.T) {
	assert.Equal(t, "projects.name asc", projectOrder("name", "asc"))
	assert.Equal(t, "projects.status desc", projectOrder("status", "desc"))
	assert.Equal(t, "projects.created_at desc", projectOrder("owner_id", "desc"))
	assert.Equal(t, "projects.created_at desc", projectOrder("", ""))
}

func TestHexColorPattern(t *testing.T) {
	assert.True(t, hexColorPattern.MatchString("#4361ee"))
	assert.True(t, hexColorPattern.MatchString("#FFFFFF"))
	assert.False(t, hexColorPattern.MatchString("4361ee"))
	assert.False(t, hexColorPattern.MatchString("#4361e"))
	assert.False(t, hexColorPattern.MatchString("#4361eez"))
	assert.False(t, hexColorPattern.MatchString("red"))
}

func TestValidateDateRangeOrdering(t *testing.T) {
	_, _, err := validateDateRange(strPtr("2026-05-01"), strPtr("2026-04-01"), models.Project{})
	require.Error(t, err)
	appErr := utils.AsAppError(err)
	assert.Equal(t, 422, appErr.Status)
	assert.Contains(t, appErr.Fields, "end_date")
}

func TestValidateDateRangeValid(t *testing.T) {
	start, end, err := validateDateRange(strPtr("2026-04-01"), strPtr("2026-05-01"), models.Project{})
	require.NoError(t, err)
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.True(t, start.Before(*end))
}

func TestValidateDateRangeKeepsCurrent(t *testing.T) {
	existing := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	current := models.Project{StartDate: &existing}

	// only the end date changes; the stored start still participates in the check
	_, _, err := validateDateRange(nil, strPtr("2025-12-01"), current)
	assert.Error(t, err)

	start, end, err := validateDateRange(nil, strPtr("2026-02-01"), current)
	require.NoError(t, err)
	assert.Equal(t, &existing, start)
	require.NotNil(t, end)
}

func TestValidateDateRangeUnparseable(t *testing.T) {
	_, _, err := validateDateRange(strPtr("someday"), nil, models.Project{})
	require.Error(t, err)
	appErr := utils.AsAppError(err)
	assert.Contains(t, appErr.Fields, "start_date")
}
