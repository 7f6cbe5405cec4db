package models

import (
	"time"
)

// TaskStatus represents task lifecycle states
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskArchived   TaskStatus = "archived"
	TaskCancelled  TaskStatus = "cancelled"
)

// TaskPriority represents task priority levels
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Task represents a unit of work
type Task struct {
	ID                   uint         `json:"id" gorm:"primaryKey"`
	Title                string       `json:"title" gorm:"size:200;not null"`
	Description          string       `json:"description" gorm:"size:1000"`
	ProjectID            *uint        `json:"projectId" gorm:"index"`
	CreatorID            uint         `json:"creatorId" gorm:"not null;index"`
	AssigneeID           *uint        `json:"assigneeId" gorm:"index"`
	Status               TaskStatus   `json:"status" gorm:"type:varchar(15);default:'pending'"`
	Priority             TaskPriority `json:"priority" gorm:"type:varchar(10);default:'medium'"`
	DueDate              *time.Time   `json:"dueDate"`
	StartDate            *time.Time   `json:"startDate"`
	EstimatedHours       *float64     `json:"estimatedHours"`
	ActualHours          *float64     `json:"actualHours"`
	CompletionPercentage int          `json:"completionPercentage" gorm:"default:0"`
	ParentTaskID         *uint        `json:"parentTaskId"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`

	// Relations
	Project  *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Creator  *User    `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Assignee *User    `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
}

// TaskTag links a task to a tag
type TaskTag struct {
	TaskID uint `json:"taskId" gorm:"primaryKey"`
	TagID  uint `json:"tagId" gorm:"primaryKey"`
}

// TableName overrides the default pluralization
func (TaskTag) TableName() string {
	return "task_tags"
}

// TaskOverview is a read model for task listings with joined display fields
type TaskOverview struct {
	Task
	CreatorUsername  string `json:"creatorUsername"`
	AssigneeUsername string `json:"assigneeUsername"`
	ProjectName      string `json:"projectName"`
	ProjectColor     string `json:"projectColor"`
}

// TaskDetail is the enriched single-task read model
type TaskDetail struct {
	TaskOverview
	Tags        []Tag       `json:"tags"`
	Comments    []Comment   `json:"comments"`
	TimeEntries []TimeEntry `json:"timeEntries"`
}
