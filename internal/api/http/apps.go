package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultSearchLimit = 10

// ListApps returns the catalog
func (h *Handlers) ListApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"apps": h.device.Catalog().Summaries()})
}

// SearchApps finds apps by name
func (h *Handlers) SearchApps(c *gin.Context) {
	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{"apps": h.device.SearchApps(c.Query("q"), limit)})
}

// Recents returns the derived recent-apps list
func (h *Handlers) Recents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"apps": h.device.Recents()})
}

// AppStatus returns an app's status line
func (h *Handlers) AppStatus(c *gin.Context) {
	appID := c.Param("id")
	if !h.device.Catalog().Has(appID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown app"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"app_id": appID, "status": h.device.AppStatus(appID)})
}

// OpenApp shows an app view. Unknown ids and opens while locked are
// ignored and reported with success=false.
func (h *Handlers) OpenApp(c *gin.Context) {
	appID := c.Param("id")
	ok := h.device.ShowApp(appID)
	c.JSON(http.StatusOK, gin.H{
		"success": ok,
		"app_id":  appID,
		"state":   h.device.Snapshot(),
	})
}

// Back navigates to the previous view
func (h *Handlers) Back(c *gin.Context) {
	h.device.NavigateBack()
	h.State(c)
}

// Home returns to the home screen
func (h *Handlers) Home(c *gin.Context) {
	h.device.GoHome()
	h.State(c)
}
