package notification

import (
	"html"
	"strings"
	"time"

	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/scheduler"
	"github.com/GriffinCanCode/PocketOS/internal/render"
	"github.com/GriffinCanCode/PocketOS/internal/shared/id"
	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// PeekDuration is how long the lock-screen peek stays visible
const PeekDuration = 5000 * time.Millisecond

// Center holds posted notifications, newest first, and the lock-screen peek.
// All methods run on the device loop.
type Center struct {
	loop     *scheduler.Loop
	items    []types.Notification
	peek     *types.Notification
	peekSlot *scheduler.Slot

	policy  *bluemonday.Policy
	sink    render.Sink
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewCenter creates an empty notification center
func NewCenter(loop *scheduler.Loop, sink render.Sink, metrics *monitoring.Metrics, logger *logging.Logger) *Center {
	if sink == nil {
		sink = render.Nop
	}
	return &Center{
		loop:     loop,
		peekSlot: loop.NewSlot("notification-peek"),
		policy:   bluemonday.StrictPolicy(),
		sink:     sink,
		metrics:  metrics,
		logger:   logger.Component("notifications"),
	}
}

// Post prepends a notification. When showPeek is set (the device is
// locked) it also becomes the peek, restarting the auto-clear timer.
func (c *Center) Post(title, message string, showPeek bool) types.Notification {
	now := c.loop.Now()
	n := types.Notification{
		ID:        id.NewNotificationID(now).String(),
		Title:     c.plain(title),
		Message:   c.plain(message),
		CreatedAt: now,
	}

	c.items = append([]types.Notification{n}, c.items...)
	c.renderList()
	c.metrics.RecordNotification("posted", len(c.items))
	c.logger.Debug("notification posted", zap.String("id", n.ID), zap.Bool("peek", showPeek))

	if showPeek {
		peek := n
		c.peek = &peek
		c.sink.Render(render.Event{Kind: render.KindPeek, Data: peek})
		c.peekSlot.After(PeekDuration, c.ClearPeek)
	}
	return n
}

// ClearAll empties the list and clears the peek immediately
func (c *Center) ClearAll() {
	c.items = nil
	c.renderList()
	c.ClearPeek()
	c.metrics.RecordNotification("cleared", 0)
}

// Dismiss removes one notification. It reports whether id was found.
func (c *Center) Dismiss(notificationID string) bool {
	for i, n := range c.items {
		if n.ID != notificationID {
			continue
		}
		c.items = append(c.items[:i:i], c.items[i+1:]...)
		c.renderList()
		c.metrics.RecordNotification("dismissed", len(c.items))
		if c.peek != nil && c.peek.ID == notificationID {
			c.ClearPeek()
		}
		return true
	}
	return false
}

// ClearPeek hides the peek and cancels its timer
func (c *Center) ClearPeek() {
	c.peekSlot.Cancel()
	if c.peek == nil {
		return
	}
	c.peek = nil
	c.sink.Render(render.Event{Kind: render.KindPeek, Data: nil})
}

// List returns the notifications, newest first
func (c *Center) List() []types.Notification {
	return append([]types.Notification{}, c.items...)
}

// Peek returns the notification currently peeked on the lock screen
func (c *Center) Peek() (types.Notification, bool) {
	if c.peek == nil {
		return types.Notification{}, false
	}
	return *c.peek, true
}

// Len returns the number of notifications
func (c *Center) Len() int {
	return len(c.items)
}

func (c *Center) renderList() {
	c.sink.Render(render.Event{Kind: render.KindNotifications, Data: c.List()})
}

// plain strips markup; the shade renders text only
func (c *Center) plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.policy.Sanitize(s)))
}
