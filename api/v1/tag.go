package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/services"
	"github.com/taskmanager-pro/utils"
)

var tagService = services.NewTagService()

// ListTags returns the tags visible to the caller, optionally narrowed to a
// project scope or to personal tags
func ListTags(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	filter := dto.TagFilter{
		UserID:    userID,
		ProjectID: queryUint(c, "project_id"),
		Personal:  c.Query("personal") == "true",
	}

	tags, err := tagService.ListTags(filter)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Tags retrieved", tags)
}

// CreateTag creates a tag in the caller's scope
func CreateTag(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	tag, err := tagService.CreateTag(req, userID, currentRole(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Tag created", tag)
}

// GetTag returns a single visible tag
func GetTag(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	tagID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid tag ID"))
		return
	}

	tag, err := tagService.GetTag(tagID, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Tag retrieved", tag)
}

// UpdateTag applies tag changes for the owner or an admin
func UpdateTag(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	tagID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid tag ID"))
		return
	}

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	tag, err := tagService.UpdateTag(tagID, req, userID, currentRole(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Tag updated", tag)
}

// DeleteTag removes a tag and its task links
func DeleteTag(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	tagID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid tag ID"))
		return
	}

	if err := tagService.DeleteTag(tagID, userID, currentRole(c)); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Tag deleted", nil)
}
