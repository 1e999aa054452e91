package handlers

import (
	"net/http"

	"homehelper/middleware"
	"homehelper/models"
	"homehelper/services/gate"

	"github.com/gin-gonic/gin"
)

// DashboardHandler implements the generic dashboard entry point: every
// signed-in role is redirected to its own home, everyone else to login.
func DashboardHandler(c *gin.Context) {
	view := gate.View{}
	if userID := c.GetString(middleware.ContextUserIDKey); userID != "" {
		view.IsAuthenticated = true
		view.Role = models.Role(c.GetString(middleware.ContextRoleKey))
	}

	outcome, ok := gate.RedirectHome(view)
	if !ok {
		c.JSON(http.StatusAccepted, gin.H{"loading": true})
		return
	}

	resp := gin.H{"redirect": outcome.Path}
	if outcome.From != "" {
		resp["from"] = outcome.From
	}
	status := http.StatusOK
	if outcome.Kind == gate.RedirectToLogin {
		status = http.StatusUnauthorized
	}
	c.JSON(status, resp)
}
