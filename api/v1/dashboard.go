package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskmanager-pro/services"
	"github.com/taskmanager-pro/utils"
)

var dashboardService = services.NewDashboardService()

// GetDashboard returns aggregated stats and recent items for the caller
func GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	dashboard, err := dashboardService.GetDashboard(userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, "Dashboard retrieved", dashboard)
}
