package dto

import (
	"github.com/taskmanager-pro/models"
)

// DashboardResponse aggregates the caller's current workload
type DashboardResponse struct {
	TaskCounts   map[string]int64      `json:"taskCounts"` // per status
	TotalTasks   int64                 `json:"totalTasks"`
	OverdueTasks int64                 `json:"overdueTasks"`
	ProjectCount int64                 `json:"projectCount"`
	WeekSeconds  int64                 `json:"weekSeconds"`
	RecentTasks  []models.TaskOverview `json:"recentTasks"`
	ActiveTimer  *models.TimeEntry     `json:"activeTimer,omitempty"`
}
