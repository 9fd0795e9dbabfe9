package http

import (
	"net/http"

	"github.com/GriffinCanCode/PocketOS/internal/domain/device"
	"github.com/GriffinCanCode/PocketOS/internal/providers/ai"
	"github.com/gin-gonic/gin"
)

// ChatRequest is the body of POST /assistant/chat. Image is base64 in JSON.
type ChatRequest struct {
	Message string `json:"message"`
	Image   []byte `json:"image,omitempty"`
}

// ImageRequest is the body of POST /assistant/images
type ImageRequest struct {
	Prompt string         `json:"prompt" binding:"required"`
	Aspect ai.AspectRatio `json:"aspect"`
}

// ChatHistory returns the conversation
func (h *Handlers) ChatHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.device.ChatHistory())
}

// SendChat queues a chat message; the reply arrives on the render stream
func (h *Handlers) SendChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.device.SendChat(req.Message, req.Image); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, h.device.ChatHistory())
}

// ResetChat starts a new conversation
func (h *Handlers) ResetChat(c *gin.Context) {
	if err := h.device.ResetChat(); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GenerateImage queues an image request
func (h *Handlers) GenerateImage(c *gin.Context) {
	var req ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Aspect == "" {
		req.Aspect = ai.AspectSquare
	}
	if err := h.device.GenerateImage(req.Prompt, req.Aspect); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": h.device.AppStatus(device.ImageApp)})
}

// LastImage returns the most recent generated image
func (h *Handlers) LastImage(c *gin.Context) {
	img, ok := h.device.LastImage()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no image generated yet"})
		return
	}
	c.JSON(http.StatusOK, img)
}
