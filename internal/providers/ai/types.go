package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotConfigured     = errors.New("ai service not configured")
	ErrEmptyReply        = errors.New("ai service returned no content")
	ErrUnsupportedImage  = errors.New("unsupported image type")
	ErrImageTooLarge     = errors.New("image too large")
	ErrInvalidAspect     = errors.New("invalid aspect ratio")
	ErrEmptyPrompt       = errors.New("prompt is empty")
	ErrServiceStatusCode = errors.New("ai service error status")
)

// Role tags a chat message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation. Image may be set on user turns.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Image   *Image `json:"image,omitempty"`
}

// MaxImageBytes bounds chat attachments
const MaxImageBytes = 8 << 20

var allowedImageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// Image is a validated image attachment
type Image struct {
	MIME string `json:"mime"`
	Data []byte `json:"-"`
}

// NewImage sniffs data and accepts common raster formats only
func NewImage(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrUnsupportedImage)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(data))
	}
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
	}
	return &Image{MIME: mt.String(), Data: data}, nil
}

// DataURL encodes the image for inline transport
func (i *Image) DataURL() string {
	return "data:" + i.MIME + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// AspectRatio is a supported image generation shape
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectLandscape AspectRatio = "16:9"
	AspectPortrait  AspectRatio = "9:16"
)

// Size returns the pixel size requested for the ratio
func (a AspectRatio) Size() (string, error) {
	switch a {
	case AspectSquare:
		return "1024x1024", nil
	case AspectLandscape:
		return "1792x1024", nil
	case AspectPortrait:
		return "1024x1792", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAspect, a)
	}
}

// ImageResult is a generated image
type ImageResult struct {
	URL           string `json:"url"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// Service is the assistant backend the device talks to
type Service interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	GenerateImage(ctx context.Context, prompt string, aspect AspectRatio) (ImageResult, error)
}
