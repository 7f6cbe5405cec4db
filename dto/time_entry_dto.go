package dto

import (
	"github.com/taskmanager-pro/models"
)

// StartTimerRequest starts a running entry for the caller
type StartTimerRequest struct {
	TaskID      uint    `json:"task_id" binding:"required"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// ManualEntryRequest backfills a closed entry. Duration is taken as given,
// not recomputed from the interval.
type ManualEntryRequest struct {
	TaskID      uint    `json:"task_id" binding:"required"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	Duration    *int64  `json:"duration" binding:"required,gte=0"`
}

// UpdateTimeEntryRequest represents partial changes to a closed entry
type UpdateTimeEntryRequest struct {
	Description *string `json:"description" binding:"omitempty,max=500"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Duration    *int64  `json:"duration" binding:"omitempty,gte=0"`
}

// TimeEntryFilter carries listing parameters
type TimeEntryFilter struct {
	UserID   uint
	TaskID   *uint
	From     string
	To       string
	Page     int
	PageSize int
}

// TimeEntryListResponse is the paginated listing payload
type TimeEntryListResponse struct {
	Entries    []models.TimeEntry `json:"entries"`
	TotalCount int64              `json:"totalCount"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}

// TimeStatsResponse sums closed-entry durations per day over a range
type TimeStatsResponse struct {
	Days         []models.DayDuration `json:"days"`
	TotalSeconds int64                `json:"totalSeconds"`
}
