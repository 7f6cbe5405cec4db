package models

import (
	"time"
)

// Role represents user role types
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// UserStatus represents account states
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

// User represents a user account
type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Username    string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email       string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password    string     `json:"-" gorm:"not null"` // Password is not exposed in JSON
	FirstName   string     `json:"firstName" gorm:"size:100"`
	LastName    string     `json:"lastName" gorm:"size:100"`
	Avatar      string     `json:"avatar" gorm:"size:255"`
	Role        Role       `json:"role" gorm:"type:varchar(10);default:'user'"`
	Status      UserStatus `json:"status" gorm:"type:varchar(10);default:'active'"`
	Theme       string     `json:"theme" gorm:"size:20;default:'light'"`
	Language    string     `json:"language" gorm:"size:10;default:'en'"`
	Timezone    string     `json:"timezone" gorm:"size:50;default:'UTC'"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
