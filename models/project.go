package models

import (
	"time"
)

// ProjectStatus represents project lifecycle states
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectArchived  ProjectStatus = "archived"
	ProjectCompleted ProjectStatus = "completed"
)

// Defaults applied when a project is created without them
const (
	DefaultProjectColor = "#4361ee"
	DefaultProjectIcon  = "folder"
)

// Project represents a project container for tasks and tags
type Project struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"size:100;not null"`
	Description string        `json:"description" gorm:"size:1000"`
	Color       string        `json:"color" gorm:"size:7;default:'#4361ee'"`
	Icon        string        `json:"icon" gorm:"size:50;default:'folder'"`
	OwnerID     uint          `json:"ownerId" gorm:"not null;index"`
	Status      ProjectStatus `json:"status" gorm:"type:varchar(10);default:'active'"`
	StartDate   *time.Time    `json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	// Relations
	Owner   *User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Members []ProjectMember `json:"members,omitempty" gorm:"foreignKey:ProjectID"`
}

// ProjectOverview is a membership-joined read model for project listings.
// TaskCount/CompletedTaskCount are aggregated per project, OwnerUsername and
// MemberRole come from the joined users and project_members rows.
type ProjectOverview struct {
	Project
	OwnerUsername      string      `json:"ownerUsername"`
	MemberRole         ProjectRole `json:"memberRole"`
	TaskCount          int64       `json:"taskCount"`
	CompletedTaskCount int64       `json:"completedTaskCount"`
}
