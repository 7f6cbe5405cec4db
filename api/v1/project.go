package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/services"
	"github.com/taskmanager-pro/utils"
)

var projectService = services.NewProjectService()

// ListProjects returns the caller's projects through their memberships, with
// pagination, filtering and sorting
func ListProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	filter := dto.ProjectFilter{
		UserID:    userID,
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "created_at"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "pageSize", 10),
	}

	response, err := projectService.ListProjects(filter)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Projects retrieved", response)
}

// CreateProject creates a project owned by the caller
func CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	project, err := projectService.CreateProject(req, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Project created", project)
}

// GetProject returns a project with its members
func GetProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid project ID"))
		return
	}

	detail, err := projectService.GetProjectDetail(projectID, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Project retrieved", detail)
}

// UpdateProject applies project changes for owners and admins
func UpdateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid project ID"))
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	project, err := projectService.UpdateProject(projectID, req, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Project updated", project)
}

// DeleteProject cascades a project away. Owner only.
func DeleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid project ID"))
		return
	}

	if err := projectService.DeleteProject(projectID, userID); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Project deleted", nil)
}

// ListMembers returns a project's members
func ListMembers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid project ID"))
		return
	}

	members, err := projectService.ListMembers(projectID, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Members retrieved", members)
}

// AddMember adds a user to a project. Owner or admin only.
func AddMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid project ID"))
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	member, err := projectService.AddMember(projectID, req, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Member added", member)
}

// RemoveMember deletes a membership row. Owner or admin only.
func RemoveMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid project ID"))
		return
	}
	memberID, ok := pathID(c, "userId")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid user ID"))
		return
	}

	if err := projectService.RemoveMember(projectID, memberID, userID); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Member removed", nil)
}
