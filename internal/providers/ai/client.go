package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/PocketOS/internal/shared/id"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client calls an OpenAI-compatible chat and image API. Requests are never
// retried; failures surface to the caller once.
type Client struct {
	resty      *resty.Client
	limiter    *rate.Limiter
	chat       *resilience.Breaker
	images     *resilience.Breaker
	chatModel  string
	imageModel string
	configured bool

	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewClient builds a client from configuration
func NewClient(cfg config.AIConfig, metrics *monitoring.Metrics, logger *logging.Logger) *Client {
	logger = logger.Component("ai")

	// One attempt only; the passthrough handler hands non-2xx responses back
	// to resty untouched so status mapping stays in this package.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		logger.Debug("ai request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("attempt", attempt))
	}
	retryClient.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
		logger.Debug("ai response",
			zap.String("path", resp.Request.URL.Path),
			zap.Int("status", resp.StatusCode))
	}

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", "PocketOS/1.0").
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		restyClient.SetAuthToken(cfg.APIKey)
	}

	breaker := func(name string) *resilience.Breaker {
		return resilience.New(name, resilience.Settings{
			Interval: 60 * time.Second,
			Timeout:  30 * time.Second,
			ReadyToTrip: func(c resilience.Counts) bool {
				return c.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to resilience.State) {
				logger.Warn("circuit breaker state change",
					zap.String("breaker", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to))
			},
		})
	}

	return &Client{
		resty:      restyClient,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
		chat:       breaker("ai-chat"),
		images:     breaker("ai-images"),
		chatModel:  cfg.ChatModel,
		imageModel: cfg.ImageModel,
		configured: cfg.BaseURL != "" && cfg.APIKey != "",
		metrics:    metrics,
		logger:     logger,
	}
}

type chatContentPart struct {
	Type     string            `json:"type"`
	Text     string            `json:"text,omitempty"`
	ImageURL *chatContentImage `json:"image_url,omitempty"`
}

type chatContentImage struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
	N      int    `json:"n"`
}

type imageResponse struct {
	Data []struct {
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat sends the conversation and returns the assistant's reply
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	req := chatRequest{Model: c.chatModel, Messages: make([]chatMessage, 0, len(messages))}
	for _, m := range messages {
		msg := chatMessage{Role: string(m.Role), Content: m.Content}
		if m.Image != nil {
			msg.Content = []chatContentPart{
				{Type: "text", Text: m.Content},
				{Type: "image_url", ImageURL: &chatContentImage{URL: m.Image.DataURL()}},
			}
		}
		req.Messages = append(req.Messages, msg)
	}

	var out chatResponse
	err := c.call(ctx, "chat", c.chat, "/chat/completions", req, &out)
	if err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", ErrEmptyReply
	}
	return out.Choices[0].Message.Content, nil
}

// GenerateImage requests one image for prompt at the given aspect ratio
func (c *Client) GenerateImage(ctx context.Context, prompt string, aspect AspectRatio) (ImageResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ImageResult{}, ErrEmptyPrompt
	}
	size, err := aspect.Size()
	if err != nil {
		return ImageResult{}, err
	}

	var out imageResponse
	req := imageRequest{Model: c.imageModel, Prompt: prompt, Size: size, N: 1}
	if err := c.call(ctx, "image", c.images, "/images/generations", req, &out); err != nil {
		return ImageResult{}, err
	}
	if len(out.Data) == 0 || out.Data[0].URL == "" {
		return ImageResult{}, ErrEmptyReply
	}
	return ImageResult{URL: out.Data[0].URL, RevisedPrompt: out.Data[0].RevisedPrompt}, nil
}

func (c *Client) call(ctx context.Context, kind string, breaker *resilience.Breaker, path string, body, out any) error {
	if !c.configured {
		return ErrNotConfigured
	}

	requestID := id.NewRequestID()
	timer := monitoring.NewTimer(c.metrics, kind)
	status := "error"
	defer func() { timer.Stop(status) }()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	err := breaker.Execute(ctx, func(ctx context.Context) error {
		var apiErr apiError
		resp, err := c.resty.R().
			SetContext(ctx).
			SetHeader("X-Request-ID", requestID.String()).
			SetBody(body).
			SetResult(out).
			SetError(&apiErr).
			Post(path)
		if err != nil {
			return fmt.Errorf("%s request: %w", kind, err)
		}
		if resp.IsError() {
			msg := apiErr.Error.Message
			if msg == "" {
				msg = resp.Status()
			}
			return fmt.Errorf("%w: %d %s", ErrServiceStatusCode, resp.StatusCode(), msg)
		}
		return nil
	})
	if err != nil {
		c.logger.Warn("ai call failed",
			zap.String("kind", kind),
			zap.String("request_id", requestID.String()),
			zap.Error(err))
		return err
	}

	status = "ok"
	c.logger.Debug("ai call", zap.String("kind", kind), zap.String("request_id", requestID.String()))
	return nil
}
