package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/services"
	"github.com/taskmanager-pro/utils"
)

var taskService = services.NewTaskService()

// ListTasks returns the caller's visible tasks with filtering, sorting and
// pagination
func ListTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	filter := dto.TaskFilter{
		UserID:     userID,
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		ProjectID:  queryUint(c, "project_id"),
		AssigneeID: queryUint(c, "assignee_id"),
		Search:     c.Query("search"),
		SortBy:     c.DefaultQuery("sortBy", "created_at"),
		SortOrder:  c.DefaultQuery("sortOrder", "desc"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "pageSize", 10),
	}

	response, err := taskService.ListTasks(filter)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Tasks retrieved", response)
}

// CreateTask creates a task with the caller as creator
func CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	task, err := taskService.CreateTask(req, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Task created", task)
}

// GetTask returns a task enriched with tags, comments and time entries
func GetTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid task ID"))
		return
	}

	detail, err := taskService.GetTaskDetail(taskID, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Task retrieved", detail)
}

// UpdateTask applies task changes for the creator or assignee
func UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid task ID"))
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	task, err := taskService.UpdateTask(taskID, req, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Task updated", task)
}

// UpdateTaskStatus performs the status transition endpoint
func UpdateTaskStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid task ID"))
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	task, err := taskService.UpdateStatus(taskID, req, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Task status updated", task)
}

// DeleteTask removes a task. Creator only.
func DeleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid task ID"))
		return
	}

	if err := taskService.DeleteTask(taskID, userID); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Task deleted", nil)
}

// ListComments returns a task's comments, oldest first
func ListComments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid task ID"))
		return
	}

	comments, err := taskService.ListComments(taskID, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Comments retrieved", comments)
}

// AddComment leaves a comment on a task
func AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid task ID"))
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	comment, err := taskService.AddComment(taskID, req, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Comment added", comment)
}
