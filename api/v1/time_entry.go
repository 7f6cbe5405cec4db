package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/services"
	"github.com/taskmanager-pro/utils"
)

var timeService = services.NewTimeService()

// StartTimer opens a running entry for the caller
func StartTimer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	var req dto.StartTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	entry, err := timeService.StartTimer(userID, req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Timer started", entry)
}

// StopTimer closes the caller's running entry
func StopTimer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	entry, err := timeService.StopTimer(userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Timer stopped", entry)
}

// GetActiveTimer returns the caller's running entry, if any
func GetActiveTimer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	entry, err := timeService.GetActive(userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Active timer retrieved", entry)
}

// ListTimeEntries returns the caller's entries, newest first
func ListTimeEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	filter := dto.TimeEntryFilter{
		UserID:   userID,
		TaskID:   queryUint(c, "task_id"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "pageSize", 20),
	}

	response, err := timeService.ListEntries(filter)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Time entries retrieved", response)
}

// CreateTimeEntry backfills a manual, closed entry
func CreateTimeEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	var req dto.ManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	entry, err := timeService.CreateManualEntry(userID, req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, "Time entry created", entry)
}

// UpdateTimeEntry applies changes to a closed entry
func UpdateTimeEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	entryID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid time entry ID"))
		return
	}

	var req dto.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	entry, err := timeService.UpdateTimeEntry(entryID, req, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Time entry updated", entry)
}

// DeleteTimeEntry removes a closed entry
func DeleteTimeEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	entryID, ok := pathID(c, "id")
	if !ok {
		utils.Fail(c, utils.BadRequest("Invalid time entry ID"))
		return
	}

	if err := timeService.DeleteTimeEntry(entryID, userID); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Time entry deleted", nil)
}

// GetTimeStats sums tracked time per day over a date range
func GetTimeStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	stats, err := timeService.GetTimeStats(userID, c.Query("from"), c.Query("to"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Time stats retrieved", stats)
}
