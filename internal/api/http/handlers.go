package http

import (
	"net/http"
	"strconv"

	"github.com/GriffinCanCode/PocketOS/internal/domain/device"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/monitoring"
	"github.com/gin-gonic/gin"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Handlers exposes the device over HTTP
type Handlers struct {
	device  *device.Device
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(d *device.Device, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	return &Handlers{
		device:  d,
		metrics: metrics,
		logger:  logger.Component("api"),
	}
}

// Register mounts every device route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/state", h.State)
	r.POST("/logs", h.StreamLogs)

	apps := r.Group("/apps")
	apps.GET("", h.ListApps)
	apps.GET("/search", h.SearchApps)
	apps.GET("/recents", h.Recents)
	apps.GET("/:id/status", h.AppStatus)
	apps.POST("/:id/open", h.OpenApp)

	nav := r.Group("/nav")
	nav.POST("/back", h.Back)
	nav.POST("/home", h.Home)

	pwr := r.Group("/power")
	pwr.POST("/toggle", h.action(h.device.ToggleScreen))
	pwr.POST("/press", h.action(h.device.PowerDown))
	pwr.POST("/release", h.action(h.device.PowerUp))
	pwr.POST("/shutdown", h.action(h.device.Shutdown))
	pwr.POST("/restart", h.action(h.device.Restart))
	pwr.POST("/lock", h.action(h.device.Lock))
	pwr.POST("/flashlight", h.Flashlight)

	lock := r.Group("/lockscreen")
	lock.POST("/press", h.LockPress)
	lock.POST("/release", h.action(h.device.LockRelease))
	lock.POST("/leave", h.action(h.device.LockLeave))
	lock.POST("/click", h.LockClick)
	lock.GET("/config", h.LockScreenConfig)
	lock.PATCH("/config", h.ApplyLockScreen)
	lock.GET("/profiles", h.ListProfiles)
	lock.POST("/profiles", h.SaveProfile)
	lock.POST("/profiles/:name/load", h.LoadProfile)
	lock.DELETE("/profiles/:name", h.DeleteProfile)

	overlays := r.Group("/overlays")
	overlays.POST("/:kind/open", h.OpenOverlay)
	overlays.POST("/:kind/close", h.CloseOverlay)

	notes := r.Group("/notifications")
	notes.GET("", h.ListNotifications)
	notes.POST("", h.PostNotification)
	notes.DELETE("", h.ClearNotifications)
	notes.DELETE("/:id", h.DismissNotification)

	settings := r.Group("/settings")
	settings.GET("/theme", h.Theme)
	settings.PUT("/theme", h.SetTheme)
	settings.PUT("/language", h.SetLanguage)
	settings.PUT("/icons", h.SetIconStyle)
	settings.POST("/volume/up", h.VolumeUp)
	settings.POST("/volume/down", h.VolumeDown)

	assistant := r.Group("/assistant")
	assistant.GET("/chat", h.ChatHistory)
	assistant.POST("/chat", h.SendChat)
	assistant.DELETE("/chat", h.ResetChat)
	assistant.POST("/images", h.GenerateImage)
	assistant.GET("/images/latest", h.LastImage)
}

// Root reports the service identity
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "PocketOS",
		"version": Version,
	})
}

// Health reports liveness plus a few counters
func (h *Handlers) Health(c *gin.Context) {
	snap := h.device.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"power":   snap.Power,
		"apps":    h.device.Catalog().Len(),
		"metrics": h.metrics.Snapshot(),
	})
}

// State returns the whole device snapshot
func (h *Handlers) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.device.Snapshot())
}

// action adapts a fire-and-forget device input to a handler that replies
// with the resulting state
func (h *Handlers) action(f func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		f()
		h.State(c)
	}
}

// boolQuery parses an optional boolean query parameter
func boolQuery(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
