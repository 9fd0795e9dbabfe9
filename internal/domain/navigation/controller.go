package navigation

import (
	"github.com/GriffinCanCode/PocketOS/internal/domain/catalog"
	"github.com/GriffinCanCode/PocketOS/internal/domain/overlay"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PocketOS/internal/render"
	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"go.uber.org/zap"
)

// MaxHistory bounds the app history; the oldest entry is evicted first
const MaxHistory = 20

// Controller owns the screen-power state and the app history. Methods run
// on the device loop.
type Controller struct {
	power   types.PowerState
	history []string
	active  string

	catalog   *catalog.Catalog
	overlays  *overlay.Manager
	iconStyle func() types.IconStyle

	sink    render.Sink
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// Options configures a Controller
type Options struct {
	Catalog  *catalog.Catalog
	Overlays *overlay.Manager
	// IconStyle returns the persisted icon presentation, re-applied on every view
	IconStyle func() types.IconStyle
	Sink      render.Sink
	Metrics   *monitoring.Metrics
	Logger    *logging.Logger
}

// NewController creates a controller in the Off state with home in history
func NewController(opts Options) *Controller {
	if opts.Sink == nil {
		opts.Sink = render.Nop
	}
	if opts.IconStyle == nil {
		opts.IconStyle = types.DefaultIconStyle
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.MustNew()
	}
	return &Controller{
		power:     types.PowerOff,
		history:   []string{types.HomeScreen},
		catalog:   opts.Catalog,
		overlays:  opts.Overlays,
		iconStyle: opts.IconStyle,
		sink:      opts.Sink,
		metrics:   opts.Metrics,
		logger:    opts.Logger.Component("navigation"),
	}
}

// Power returns the screen-power state
func (c *Controller) Power() types.PowerState {
	return c.power
}

// SetPower moves to state and shows its surface
func (c *Controller) SetPower(state types.PowerState) {
	if c.power == state {
		return
	}
	from := c.power
	c.power = state
	c.sink.Render(render.Event{Kind: render.KindSurface, Target: string(state.Surface()), Data: state})
	c.metrics.RecordPowerTransition(from.String(), state.String())
	c.logger.Debug("power state", zap.Stringer("from", from), zap.Stringer("to", state))
}

// ShowApp opens appID. It is ignored unless the device is unlocked and the
// id is known. It reports whether the view changed.
func (c *Controller) ShowApp(appID string) bool {
	if c.power != types.PowerUnlocked {
		c.logger.Debug("show app ignored while not unlocked", zap.String("app", appID), zap.Stringer("power", c.power))
		return false
	}
	if !c.known(appID) {
		c.logger.Debug("show app ignored for unknown id", zap.String("app", appID))
		return false
	}

	c.overlays.DeactivateAll()
	c.show(appID)
	c.push(appID)
	if appID == types.RecentAppsView {
		c.sink.Render(render.Event{Kind: render.KindRecents, Data: c.Recents()})
	}
	c.sink.Render(render.Event{Kind: render.KindIconStyle, Data: c.iconStyle()})
	c.renderBack()
	c.metrics.RecordAppOpened(appID)
	return true
}

// NavigateBack pops the current view, skipping synthetic listings beneath
// it. At depth one it stays on home.
func (c *Controller) NavigateBack() {
	if c.power != types.PowerUnlocked {
		c.logger.Debug("back ignored while not unlocked", zap.Stringer("power", c.power))
		return
	}

	if len(c.history) <= 1 {
		c.history = []string{types.HomeScreen}
	} else {
		c.history = c.history[:len(c.history)-1]
		for len(c.history) > 1 && types.IsSyntheticView(c.history[len(c.history)-1]) {
			c.history = c.history[:len(c.history)-1]
		}
	}

	c.overlays.DeactivateAll()
	c.show(c.history[len(c.history)-1])
	c.renderBack()
}

// GoHome resets history to home and shows it
func (c *Controller) GoHome() {
	c.history = []string{types.HomeScreen}
	c.overlays.DeactivateAll()
	c.show(types.HomeScreen)
	c.renderBack()
}

// ClearHistory empties the history and hides the open view
func (c *Controller) ClearHistory() {
	c.history = nil
	c.hideActive()
	c.renderBack()
}

// HideApps hides the open view without touching history
func (c *Controller) HideApps() {
	c.hideActive()
}

// BackEnabled reports whether back would leave the current view
func (c *Controller) BackEnabled() bool {
	return len(c.history) > 1
}

// History returns a copy of the app history, most recent last
func (c *Controller) History() []string {
	return append([]string{}, c.history...)
}

// ActiveApp returns the view currently shown, or "" when none is
func (c *Controller) ActiveApp() string {
	return c.active
}

// Recents lists distinct catalog apps from history, most recent first
func (c *Controller) Recents() []types.RecentApp {
	seen := make(map[string]bool, len(c.history))
	out := []types.RecentApp{}
	for i := len(c.history) - 1; i >= 0; i-- {
		id := c.history[i]
		if id == types.HomeScreen || types.IsSyntheticView(id) || seen[id] {
			continue
		}
		seen[id] = true

		entry := types.RecentApp{ID: id, DisplayName: id}
		if d, ok := c.catalog.Lookup(id); ok {
			entry.DisplayName = d.DisplayName
			entry.IconRef = d.IconRef
		}
		out = append(out, entry)
	}
	return out
}

func (c *Controller) known(appID string) bool {
	return appID == types.HomeScreen || types.IsSyntheticView(appID) || c.catalog.Has(appID)
}

func (c *Controller) push(appID string) {
	if appID == types.HomeScreen {
		c.history = []string{types.HomeScreen}
		return
	}
	if n := len(c.history); n > 0 && c.history[n-1] == appID {
		return
	}
	c.history = append(c.history, appID)
	if over := len(c.history) - MaxHistory; over > 0 {
		c.history = append([]string(nil), c.history[over:]...)
	}
}

func (c *Controller) show(appID string) {
	if c.active == appID {
		return
	}
	c.hideActive()
	c.active = appID
	c.sink.Render(render.Event{Kind: render.KindAppView, Target: appID, Data: render.Shown})
}

func (c *Controller) hideActive() {
	if c.active == "" {
		return
	}
	c.sink.Render(render.Event{Kind: render.KindAppView, Target: c.active, Data: render.Hidden})
	c.active = ""
}

func (c *Controller) renderBack() {
	c.sink.Render(render.Event{Kind: render.KindBackButton, Data: c.BackEnabled()})
}
