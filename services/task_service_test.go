package services

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/models"
	"github.com/taskmanager-pro/utils"
)

func intPtr(v int) *int    { return &v }
func uintPtr(v uint) *uint { return &v }

func TestTaskOrderWhitelist(t *testing.T) {
	assert.Equal(t, "tasks.due_date asc", taskOrder("due_date", "asc"))
	assert.Equal(t, "tasks.priority desc", taskOrder("priority", "desc"))
	// unknown column falls back to created_at
	assert.Equal(t, "tasks.created_at desc", taskOrder("password; DROP TABLE tasks", "desc"))
	// unknown direction falls back to desc
	assert.Equal(t, "tasks.title desc", taskOrder("title", "sideways"))
	assert.Equal(t, "tasks.created_at desc", taskOrder("", ""))
}

func TestNormalizeCompletionCompletedForces100(t *testing.T) {
	assert.Equal(t, 100, normalizeCompletion(models.TaskCompleted, nil, 30))
	assert.Equal(t, 100, normalizeCompletion(models.TaskCompleted, intPtr(55), 30))
	assert.Equal(t, 100, normalizeCompletion(models.TaskCompleted, intPtr(0), 0))
}

func TestNormalizeCompletionClampsRequested(t *testing.T) {
	assert.Equal(t, 55, normalizeCompletion(models.TaskInProgress, intPtr(55), 0))
	assert.Equal(t, 100, normalizeCompletion(models.TaskInProgress, intPtr(150), 0))
	assert.Equal(t, 0, normalizeCompletion(models.TaskPending, intPtr(-5), 40))
}

func TestNormalizeCompletionKeepsCurrent(t *testing.T) {
	assert.Equal(t, 40, normalizeCompletion(models.TaskInProgress, nil, 40))
	assert.Equal(t, 0, normalizeCompletion(models.TaskPending, nil, 0))
}

func TestCanRead(t *testing.T) {
	task := models.Task{CreatorID: 1, AssigneeID: uintPtr(2)}
	assert.True(t, canRead(task, 1))
	assert.True(t, canRead(task, 2))
	assert.False(t, canRead(task, 3))

	unassigned := models.Task{CreatorID: 1}
	assert.True(t, canRead(unassigned, 1))
	assert.False(t, canRead(unassigned, 2))
}

func TestUpdateTaskAppliesParentTask(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id"}).AddRow(10, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id"}).AddRow(7, 1))
	mock.ExpectExec(`UPDATE "tasks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id", "parent_task_id"}).
			AddRow(10, 1, 7))

	task, err := NewTaskService().UpdateTask(10, dto.UpdateTaskRequest{ParentTaskID: uintPtr(7)}, 1)
	require.NoError(t, err)
	require.NotNil(t, task.ParentTaskID)
	assert.Equal(t, uint(7), *task.ParentTaskID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTaskRejectsHiddenParent(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id"}).AddRow(10, 1))
	// parent belongs to someone else entirely
	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id"}).AddRow(7, 99))

	_, err := NewTaskService().UpdateTask(10, dto.UpdateTaskRequest{ParentTaskID: uintPtr(7)}, 1)
	require.Error(t, err)
	appErr := utils.AsAppError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "Parent task not found", appErr.Message)
}

func TestParseDateFieldNil(t *testing.T) {
	got, err := parseDateField(nil, "due_date")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseDateFieldInvalid(t *testing.T) {
	raw := "whenever"
	_, err := parseDateField(&raw, "due_date")
	assert.Error(t, err)
}
