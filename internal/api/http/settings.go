package http

import (
	"net/http"

	"github.com/GriffinCanCode/PocketOS/internal/domain/lockscreen"
	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"github.com/gin-gonic/gin"
)

// ThemeRequest is the body of PUT /settings/theme
type ThemeRequest struct {
	Accent types.Accent `json:"accent" binding:"required"`
	Mode   types.Mode   `json:"mode" binding:"required"`
}

// LanguageRequest is the body of PUT /settings/language
type LanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

// IconStyleRequest is the body of PUT /settings/icons
type IconStyleRequest struct {
	Shape string `json:"shape" binding:"required"`
	Size  string `json:"size" binding:"required"`
}

// ProfileRequest is the body of POST /lockscreen/profiles
type ProfileRequest struct {
	Name string `json:"name" binding:"required,max=64"`
}

// Theme returns the applied display variables
func (h *Handlers) Theme(c *gin.Context) {
	snap := h.device.Snapshot()
	c.JSON(http.StatusOK, gin.H{"theme": snap.Theme, "variables": h.device.ThemeVariables()})
}

// SetTheme applies an accent and mode
func (h *Handlers) SetTheme(c *gin.Context) {
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.device.SetTheme(c.Request.Context(), req.Accent, req.Mode); err != nil {
		h.fail(c, err)
		return
	}
	h.Theme(c)
}

// SetLanguage switches the label language
func (h *Handlers) SetLanguage(c *gin.Context) {
	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.device.SetLanguage(c.Request.Context(), req.Language); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": req.Language})
}

// SetIconStyle changes the icon presentation
func (h *Handlers) SetIconStyle(c *gin.Context) {
	var req IconStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.device.SetIconStyle(c.Request.Context(), req.Shape, req.Size); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, types.IconStyle{Shape: req.Shape, Size: req.Size})
}

// VolumeUp raises the volume one step
func (h *Handlers) VolumeUp(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"volume": h.device.VolumeUp(c.Request.Context())})
}

// VolumeDown lowers the volume one step
func (h *Handlers) VolumeDown(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"volume": h.device.VolumeDown(c.Request.Context())})
}

// LockScreenConfig returns the lock-screen config and its rendered view
func (h *Handlers) LockScreenConfig(c *gin.Context) {
	cfg := h.device.LockScreenConfig()
	c.JSON(http.StatusOK, gin.H{"config": cfg, "view": lockscreen.BuildView(cfg)})
}

// ApplyLockScreen merges a partial config
func (h *Handlers) ApplyLockScreen(c *gin.Context) {
	var p lockscreen.Partial
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.device.ApplyLockScreen(c.Request.Context(), p); err != nil {
		h.fail(c, err)
		return
	}
	h.LockScreenConfig(c)
}

// ListProfiles returns saved profile names
func (h *Handlers) ListProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"profiles": h.device.LockScreenProfiles()})
}

// SaveProfile stores the current config under a name
func (h *Handlers) SaveProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.device.SaveLockScreenProfile(c.Request.Context(), req.Name); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"profiles": h.device.LockScreenProfiles()})
}

// LoadProfile applies a saved profile
func (h *Handlers) LoadProfile(c *gin.Context) {
	if err := h.device.LoadLockScreenProfile(c.Request.Context(), c.Param("name")); err != nil {
		h.fail(c, err)
		return
	}
	h.LockScreenConfig(c)
}

// DeleteProfile removes a saved profile. The caller confirms with
// confirm=true; anything else leaves the profile in place.
func (h *Handlers) DeleteProfile(c *gin.Context) {
	confirmed, err := boolQuery(c, "confirm")
	if err != nil {
		badRequest(c, "confirm must be a boolean")
		return
	}
	deleted := h.device.DeleteLockScreenProfile(c.Request.Context(), c.Param("name"), func(string) bool {
		return confirmed
	})
	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "profiles": h.device.LockScreenProfiles()})
}
