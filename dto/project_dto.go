package dto

import (
	"github.com/taskmanager-pro/models"
)

// CreateProjectRequest represents data for creating a project
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon" binding:"omitempty,max=50"`
	Status      *string `json:"status" binding:"omitempty,oneof=active archived completed"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// UpdateProjectRequest represents partial project changes
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon" binding:"omitempty,max=50"`
	Status      *string `json:"status" binding:"omitempty,oneof=active archived completed"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// AddMemberRequest represents a membership addition. Role defaults to member;
// owner is reserved for the creating user.
type AddMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"omitempty,oneof=admin member viewer"`
}

// ProjectFilter carries listing parameters
type ProjectFilter struct {
	UserID    uint
	Status    string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ProjectListResponse is the paginated listing payload
type ProjectListResponse struct {
	Projects   []models.ProjectOverview `json:"projects"`
	TotalCount int64                    `json:"totalCount"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"pageSize"`
	TotalPages int                      `json:"totalPages"`
}

// ProjectDetailResponse is a single project with its members
type ProjectDetailResponse struct {
	models.ProjectOverview
	Members []models.MemberOverview `json:"members"`
}
