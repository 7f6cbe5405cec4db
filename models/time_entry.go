package models

import (
	"time"
)

// TimeEntry represents tracked time against a task. An entry with a null
// EndTime is the user's running timer; the partial unique index guarantees at
// most one per user.
type TimeEntry struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"userId" gorm:"not null;index;uniqueIndex:idx_running_timer,where:end_time IS NULL"`
	TaskID      uint       `json:"taskId" gorm:"not null;index"`
	Description string     `json:"description" gorm:"size:500"`
	StartTime   time.Time  `json:"startTime" gorm:"not null"`
	EndTime     *time.Time `json:"endTime"`
	Duration    *int64     `json:"duration"` // seconds, null while running
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	Task *Task `json:"task,omitempty" gorm:"foreignKey:TaskID"`
}

// DayDuration is one bucket of the per-day time aggregation
type DayDuration struct {
	Day     string `json:"day"`
	Seconds int64  `json:"seconds"`
}
