package models

import (
	"time"
)

// Tag represents a label attachable to tasks. Scope is determined by
// (user_id, project_id): both null + is_global for shared tags, user_id only
// for personal tags, project_id for project-scoped tags.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null;index:idx_tag_scope"`
	Color     string    `json:"color" gorm:"size:7;default:'#4895ef'"`
	Icon      string    `json:"icon" gorm:"size:50;default:'tag'"`
	UserID    *uint     `json:"userId" gorm:"index:idx_tag_scope"`
	ProjectID *uint     `json:"projectId" gorm:"index:idx_tag_scope"`
	IsGlobal  bool      `json:"isGlobal" gorm:"default:false"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
