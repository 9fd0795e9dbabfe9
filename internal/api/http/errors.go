package http

import (
	"errors"
	"net/http"

	"github.com/GriffinCanCode/PocketOS/internal/domain/device"
	"github.com/GriffinCanCode/PocketOS/internal/domain/lockscreen"
	"github.com/GriffinCanCode/PocketOS/internal/domain/theme"
	"github.com/GriffinCanCode/PocketOS/internal/providers/ai"
	"github.com/GriffinCanCode/PocketOS/internal/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps device errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, lockscreen.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, device.ErrBusy), errors.Is(err, device.ErrScreenOff):
		return http.StatusConflict
	case errors.Is(err, device.ErrClosed), errors.Is(err, device.ErrNoAIService):
		return http.StatusServiceUnavailable
	case errors.Is(err, ai.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, device.ErrNotOpenable),
		errors.Is(err, device.ErrInvalidOption),
		errors.Is(err, theme.ErrUnknownAccent),
		errors.Is(err, theme.ErrUnknownMode),
		errors.Is(err, lockscreen.ErrInvalidPreset),
		errors.Is(err, lockscreen.ErrInvalidEffect),
		errors.Is(err, lockscreen.ErrInvalidOrientation),
		errors.Is(err, lockscreen.ErrUnknownWidget),
		errors.Is(err, lockscreen.ErrEmptyName),
		errors.Is(err, utils.ErrInvalidName),
		errors.Is(err, ai.ErrEmptyPrompt),
		errors.Is(err, ai.ErrUnsupportedImage),
		errors.Is(err, ai.ErrInvalidAspect):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes an error response
func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// badRequest writes a 400 for malformed input
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
