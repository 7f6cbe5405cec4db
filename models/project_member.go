package models

import (
	"time"
)

// ProjectRole represents a member's role within a project
type ProjectRole string

const (
	ProjectRoleOwner  ProjectRole = "owner"
	ProjectRoleAdmin  ProjectRole = "admin"
	ProjectRoleMember ProjectRole = "member"
	ProjectRoleViewer ProjectRole = "viewer"
)

// ProjectMember is the authoritative record of who can see and act on a
// project. Every project owner also has a row here with role "owner".
type ProjectMember struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	ProjectID uint        `json:"projectId" gorm:"uniqueIndex:idx_project_user;not null"`
	UserID    uint        `json:"userId" gorm:"uniqueIndex:idx_project_user;not null"`
	Role      ProjectRole `json:"role" gorm:"type:varchar(10);default:'member'"`
	JoinedAt  time.Time   `json:"joinedAt" gorm:"autoCreateTime"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// MemberOverview joins a membership row with the member's public identity
type MemberOverview struct {
	ID        uint        `json:"id"`
	ProjectID uint        `json:"projectId"`
	UserID    uint        `json:"userId"`
	Role      ProjectRole `json:"role"`
	JoinedAt  time.Time   `json:"joinedAt"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Avatar    string      `json:"avatar"`
}
