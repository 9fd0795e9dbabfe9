package device

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/GriffinCanCode/PocketOS/internal/domain/catalog"
	"github.com/GriffinCanCode/PocketOS/internal/domain/lockscreen"
	"github.com/GriffinCanCode/PocketOS/internal/domain/navigation"
	"github.com/GriffinCanCode/PocketOS/internal/domain/notification"
	"github.com/GriffinCanCode/PocketOS/internal/domain/overlay"
	"github.com/GriffinCanCode/PocketOS/internal/domain/power"
	"github.com/GriffinCanCode/PocketOS/internal/domain/theme"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/scheduler"
	"github.com/GriffinCanCode/PocketOS/internal/providers/ai"
	"github.com/GriffinCanCode/PocketOS/internal/providers/storage"
	"github.com/GriffinCanCode/PocketOS/internal/render"
	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"go.uber.org/zap"
)

var (
	ErrBusy          = errors.New("request already in progress")
	ErrScreenOff     = errors.New("screen is off")
	ErrNotOpenable   = errors.New("overlay cannot be opened directly")
	ErrClosed        = errors.New("device is closed")
	ErrNoAIService   = errors.New("no assistant service configured")
	ErrInvalidOption = errors.New("invalid setting")
)

// Options configures a Device
type Options struct {
	Clock   scheduler.Clock
	Store   storage.Store
	Catalog *catalog.Catalog
	Theme   *theme.Engine
	AI      ai.Service
	Sink    render.Sink
	Metrics *monitoring.Metrics
	Logger  *logging.Logger
}

// Device is the simulated handset. Every exported method is safe for
// concurrent use; state changes are serialized on one loop.
type Device struct {
	loop    *scheduler.Loop
	store   storage.Store
	catalog *catalog.Catalog
	themes  *theme.Engine
	ai      ai.Service

	overlays      *overlay.Manager
	nav           *navigation.Controller
	power         *power.Lifecycle
	notifications *notification.Center
	lockscreen    *lockscreen.Manager

	theme     types.ThemeState
	vars      theme.Variables
	language  string
	iconStyle types.IconStyle
	volume    int
	volumeHUD *scheduler.Slot
	appStatus map[string]string

	chat         []ai.Message
	chatBusy     bool
	imageBusy    bool
	lastImage    *ai.ImageResult
	asyncCtx     context.Context
	cancelAsync  context.CancelFunc
	async        sync.WaitGroup
	closed       bool
	initializers sync.Once

	sink    render.Sink
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// New assembles a device in the Off state. Call Start to restore settings
// and boot.
func New(opts Options) (*Device, error) {
	if opts.Store == nil {
		opts.Store = storage.NewMemory()
	}
	if opts.Catalog == nil {
		c, err := catalog.Builtin()
		if err != nil {
			return nil, err
		}
		opts.Catalog = c
	}
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}
	if opts.Sink == nil {
		opts.Sink = render.Nop
	}

	loop := scheduler.NewLoop(opts.Clock)
	sink := render.Stamp(opts.Sink, loop.Now)
	logger := opts.Logger.Component("device")
	ctx, cancel := context.WithCancel(context.Background())

	d := &Device{
		loop:        loop,
		store:       opts.Store,
		catalog:     opts.Catalog,
		themes:      opts.Theme,
		ai:          opts.AI,
		theme:       types.DefaultTheme(),
		language:    types.DefaultLanguage,
		iconStyle:   types.DefaultIconStyle(),
		volume:      types.VolumeDefault,
		volumeHUD:   loop.NewSlot("volume-indicator"),
		appStatus:   make(map[string]string),
		asyncCtx:    ctx,
		cancelAsync: cancel,
		sink:        sink,
		metrics:     opts.Metrics,
		logger:      logger,
	}
	d.vars, _ = d.themes.Resolve(d.theme.Accent, d.theme.Mode)
	d.chat = []ai.Message{{Role: ai.RoleSystem, Content: systemPrompt}}

	d.overlays = overlay.NewManager(sink, opts.Metrics, opts.Logger)
	d.notifications = notification.NewCenter(loop, sink, opts.Metrics, opts.Logger)
	d.lockscreen = lockscreen.NewManager(opts.Store, sink, opts.Metrics, opts.Logger)
	d.nav = navigation.NewController(navigation.Options{
		Catalog:   opts.Catalog,
		Overlays:  d.overlays,
		IconStyle: func() types.IconStyle { return d.iconStyle },
		Sink:      sink,
		Metrics:   opts.Metrics,
		Logger:    opts.Logger,
	})
	d.power = power.NewLifecycle(loop, d.nav, d.overlays, d.notifications, sink, opts.Logger)
	d.power.OnLocked = d.lockscreen.Render

	return d, nil
}

// Start restores persisted settings, runs app initializers once, and boots
func (d *Device) Start(ctx context.Context) {
	d.loop.Do(func() { d.restore(ctx) })
	d.initializers.Do(func() { d.runInitializers(ctx) })
	d.loop.Do(d.power.Boot)
}

// Close stops every timer and waits for in-flight assistant calls
func (d *Device) Close() {
	d.loop.Do(func() {
		d.closed = true
		d.power.Stop()
		d.volumeHUD.Cancel()
		d.notifications.ClearPeek()
	})
	d.cancelAsync()
	d.async.Wait()
}

// Wait blocks until in-flight assistant calls have been applied
func (d *Device) Wait() {
	d.async.Wait()
}

// Catalog returns the app catalog
func (d *Device) Catalog() *catalog.Catalog {
	return d.catalog
}

// Now returns the device clock's time
func (d *Device) Now() time.Time {
	return d.loop.Now()
}

// Snapshot returns the whole visible state
func (d *Device) Snapshot() types.Snapshot {
	var s types.Snapshot
	d.loop.Do(func() {
		s = types.Snapshot{
			Power:         d.nav.Power(),
			Surface:       d.nav.Power().Surface(),
			ActiveApp:     d.nav.ActiveApp(),
			History:       d.nav.History(),
			BackEnabled:   d.nav.BackEnabled(),
			SystemMessage: d.power.SystemMessage(),
			Notifications: d.notifications.List(),
			Theme:         d.theme,
			Language:      d.language,
			IconStyle:     d.iconStyle,
			Volume:        d.volume,
			Flashlight:    d.power.Flashlight(),
			LockScreen:    d.lockscreen.Config(),
			Profiles:      d.lockscreen.Profiles(),
		}
		if kind, ok := d.overlays.Active(); ok {
			s.Overlay = &kind
		}
		if peek, ok := d.notifications.Peek(); ok {
			s.Peek = &peek
		}
	})
	return s
}

// ThemeVariables returns the display variables currently applied
func (d *Device) ThemeVariables() theme.Variables {
	var v theme.Variables
	d.loop.Do(func() { v = d.vars })
	return v
}

// AppStatus returns the status line an app initializer or request set
func (d *Device) AppStatus(appID string) string {
	var s string
	d.loop.Do(func() { s = d.appStatus[appID] })
	return s
}

// runInitializers calls each app's init hook in catalog order. Hooks run
// off the loop; the Env methods hop onto it.
func (d *Device) runInitializers(ctx context.Context) {
	env := &deviceEnv{d: d}
	for _, app := range d.catalog.All() {
		if app.Initializer == nil {
			continue
		}
		if err := app.Initializer.Init(ctx, env); err != nil {
			d.logger.Warn("app initializer failed", zap.String("app", app.ID), zap.Error(err))
		}
	}
}

// setStatus must run on the loop
func (d *Device) setStatus(appID, status string) {
	d.appStatus[appID] = status
	d.sink.Render(render.Event{Kind: render.KindAppStatus, Target: appID, Data: status})
}

// notify posts a notification, peeking it when locked. Must run on the loop.
func (d *Device) notify(title, message string) types.Notification {
	return d.notifications.Post(title, message, d.nav.Power() == types.PowerLocked)
}
