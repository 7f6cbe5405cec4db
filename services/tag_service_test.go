package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskmanager-pro/models"
)

func TestAllowGlobal(t *testing.T) {
	assert.True(t, allowGlobal(true, models.RoleAdmin))
	// non-admins are quietly downgraded to a personal tag
	assert.False(t, allowGlobal(true, models.RoleUser))
	assert.False(t, allowGlobal(true, models.RoleManager))
	assert.False(t, allowGlobal(false, models.RoleAdmin))
}

func TestCanManageOwner(t *testing.T) {
	owner := uint(3)
	tag := models.Tag{UserID: &owner}

	assert.True(t, canManage(tag, 3, models.RoleUser))
	assert.False(t, canManage(tag, 4, models.RoleUser))
	// admin role grants nothing on someone else's personal tag
	assert.False(t, canManage(tag, 4, models.RoleAdmin))
}

func TestCanManageGlobal(t *testing.T) {
	global := models.Tag{IsGlobal: true}

	assert.True(t, canManage(global, 9, models.RoleAdmin))
	assert.False(t, canManage(global, 9, models.RoleUser))
	assert.False(t, canManage(global, 9, models.RoleManager))
}
