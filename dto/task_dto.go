package dto

import (
	"github.com/taskmanager-pro/models"
)

// CreateTaskRequest represents data for creating a task. The creator is
// always the authenticated caller, never part of the payload.
type CreateTaskRequest struct {
	Title                string   `json:"title" binding:"required,max=200"`
	Description          *string  `json:"description" binding:"omitempty,max=1000"`
	ProjectID            *uint    `json:"project_id"`
	AssigneeID           *uint    `json:"assignee_id"`
	Status               *string  `json:"status" binding:"omitempty,oneof=pending in_progress completed archived cancelled"`
	Priority             *string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate              *string  `json:"due_date"`
	StartDate            *string  `json:"start_date"`
	EstimatedHours       *float64 `json:"estimated_hours" binding:"omitempty,gte=0"`
	ActualHours          *float64 `json:"actual_hours" binding:"omitempty,gte=0"`
	CompletionPercentage *int     `json:"completion_percentage"`
	ParentTaskID         *uint    `json:"parent_task_id"`
	TagIDs               []uint   `json:"tag_ids"`
}

// UpdateTaskRequest represents partial task changes
type UpdateTaskRequest struct {
	Title                *string  `json:"title" binding:"omitempty,max=200"`
	Description          *string  `json:"description" binding:"omitempty,max=1000"`
	ProjectID            *uint    `json:"project_id"`
	AssigneeID           *uint    `json:"assignee_id"`
	Status               *string  `json:"status" binding:"omitempty,oneof=pending in_progress completed archived cancelled"`
	Priority             *string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate              *string  `json:"due_date"`
	StartDate            *string  `json:"start_date"`
	EstimatedHours       *float64 `json:"estimated_hours" binding:"omitempty,gte=0"`
	ActualHours          *float64 `json:"actual_hours" binding:"omitempty,gte=0"`
	CompletionPercentage *int     `json:"completion_percentage"`
	ParentTaskID         *uint    `json:"parent_task_id"`
	TagIDs               []uint   `json:"tag_ids"`
}

// UpdateTaskStatusRequest drives the status transition endpoint
type UpdateTaskStatusRequest struct {
	Status               string `json:"status" binding:"required,oneof=pending in_progress completed archived cancelled"`
	CompletionPercentage *int   `json:"completion_percentage"`
}

// TaskFilter carries listing parameters
type TaskFilter struct {
	UserID     uint
	Status     string
	Priority   string
	ProjectID  *uint
	AssigneeID *uint
	Search     string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// TaskListResponse is the paginated listing payload
type TaskListResponse struct {
	Tasks      []models.TaskOverview `json:"tasks"`
	TotalCount int64                 `json:"totalCount"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
}

// CreateCommentRequest represents a comment on a task
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}
