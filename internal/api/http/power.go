package http

import (
	"net/http"

	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"github.com/gin-gonic/gin"
)

// LockPress begins a lock-screen press. interactive=true marks a press on
// a control, which never opens the customize sheet.
func (h *Handlers) LockPress(c *gin.Context) {
	interactive, err := boolQuery(c, "interactive")
	if err != nil {
		badRequest(c, "interactive must be a boolean")
		return
	}
	h.device.LockPress(interactive)
	h.State(c)
}

// LockClick clicks the lock screen
func (h *Handlers) LockClick(c *gin.Context) {
	interactive, err := boolQuery(c, "interactive")
	if err != nil {
		badRequest(c, "interactive must be a boolean")
		return
	}
	h.device.LockClick(interactive)
	h.State(c)
}

// Flashlight toggles the flashlight
func (h *Handlers) Flashlight(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"on": h.device.ToggleFlashlight()})
}

// OpenOverlay opens a user-openable overlay
func (h *Handlers) OpenOverlay(c *gin.Context) {
	kind := types.OverlayKind(c.Param("kind"))
	if !kind.Valid() {
		badRequest(c, "unknown overlay kind")
		return
	}
	if err := h.device.OpenOverlay(kind); err != nil {
		h.fail(c, err)
		return
	}
	h.State(c)
}

// CloseOverlay closes an overlay if it is showing
func (h *Handlers) CloseOverlay(c *gin.Context) {
	kind := types.OverlayKind(c.Param("kind"))
	if !kind.Valid() {
		badRequest(c, "unknown overlay kind")
		return
	}
	c.JSON(http.StatusOK, gin.H{"closed": h.device.CloseOverlay(kind)})
}

// PostNotificationRequest is the body of POST /notifications
type PostNotificationRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Message string `json:"message" binding:"max=2000"`
}

// ListNotifications returns the shade contents
func (h *Handlers) ListNotifications(c *gin.Context) {
	snap := h.device.Snapshot()
	c.JSON(http.StatusOK, gin.H{"notifications": snap.Notifications, "peek": snap.Peek})
}

// PostNotification posts a notification
func (h *Handlers) PostNotification(c *gin.Context) {
	var req PostNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, h.device.PostNotification(req.Title, req.Message))
}

// ClearNotifications empties the shade
func (h *Handlers) ClearNotifications(c *gin.Context) {
	h.device.ClearNotifications()
	c.Status(http.StatusNoContent)
}

// DismissNotification removes one notification
func (h *Handlers) DismissNotification(c *gin.Context) {
	if !h.device.DismissNotification(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
