package power

import (
	"time"

	"github.com/GriffinCanCode/PocketOS/internal/domain/navigation"
	"github.com/GriffinCanCode/PocketOS/internal/domain/notification"
	"github.com/GriffinCanCode/PocketOS/internal/domain/overlay"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/scheduler"
	"github.com/GriffinCanCode/PocketOS/internal/render"
	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"go.uber.org/zap"
)

// Fixed gesture and transition timings
const (
	PowerHoldDuration  = 1000 * time.Millisecond
	LockHoldDuration   = 1200 * time.Millisecond
	SystemMessageDelay = 2000 * time.Millisecond
	BootDuration       = 3000 * time.Millisecond
	ClockInterval      = 1000 * time.Millisecond
)

// System message texts
const (
	ShuttingDownText = "Shutting down…"
	RestartingText   = "Restarting…"
)

// Lifecycle drives boot, shutdown, restart, screen toggling and the power
// and lock-screen hold gestures. Methods run on the device loop.
type Lifecycle struct {
	loop          *scheduler.Loop
	nav           *navigation.Controller
	overlays      *overlay.Manager
	notifications *notification.Center

	powerHold *scheduler.Slot
	lockHold  *scheduler.Slot
	delay     *scheduler.Slot
	lockClock *scheduler.Slot
	homeClock *scheduler.Slot

	holdFired     bool
	suppressClick bool
	flashlight    bool
	message       *types.SystemMessage

	// OnLocked runs whenever the lock screen becomes visible
	OnLocked func()

	sink   render.Sink
	logger *logging.Logger
}

// NewLifecycle wires a lifecycle over the navigation state
func NewLifecycle(loop *scheduler.Loop, nav *navigation.Controller, overlays *overlay.Manager,
	notifications *notification.Center, sink render.Sink, logger *logging.Logger) *Lifecycle {
	if sink == nil {
		sink = render.Nop
	}
	return &Lifecycle{
		loop:          loop,
		nav:           nav,
		overlays:      overlays,
		notifications: notifications,
		powerHold:     loop.NewSlot("power-hold"),
		lockHold:      loop.NewSlot("lock-hold"),
		delay:         loop.NewSlot("power-transition"),
		lockClock:     loop.NewSlot("lockscreen-clock"),
		homeClock:     loop.NewSlot("home-clock"),
		sink:          sink,
		logger:        logger.Component("power"),
	}
}

// ToggleScreen turns a lit screen off or an off screen on to the lock
// screen. It is ignored while booting or showing a system message.
func (l *Lifecycle) ToggleScreen() {
	switch l.nav.Power() {
	case types.PowerLocked, types.PowerUnlocked:
		l.screenOff()
	case types.PowerOff:
		l.overlays.DeactivateAll()
		l.showLocked()
	default:
		l.logger.Debug("toggle ignored", zap.Stringer("power", l.nav.Power()))
	}
}

// PowerDown starts the hold that opens the power menu. Only a lit screen
// has a power menu; elsewhere the press is resolved on release.
func (l *Lifecycle) PowerDown() {
	l.holdFired = false
	if !l.nav.Power().ScreenOn() {
		return
	}
	l.powerHold.After(PowerHoldDuration, func() {
		l.holdFired = true
		if err := l.overlays.Activate(types.OverlayPowerMenu); err != nil {
			l.logger.Warn("open power menu", zap.Error(err))
		}
	})
}

// PowerUp ends a press. A short press toggles the screen unless the power
// menu is showing.
func (l *Lifecycle) PowerUp() {
	l.powerHold.Cancel()
	fired := l.holdFired
	l.holdFired = false

	if fired || l.overlays.IsActive(types.OverlayPowerMenu) {
		return
	}
	l.ToggleScreen()
}

// Shutdown shows the shutdown message, then turns the device off
func (l *Lifecycle) Shutdown() {
	if !l.beginSystemMessage(ShuttingDownText, false) {
		return
	}
	l.delay.After(SystemMessageDelay, func() {
		l.endSystemMessage()
		l.nav.ClearHistory()
		l.screenOff()
	})
}

// Restart shows the restart message, then boots
func (l *Lifecycle) Restart() {
	if !l.beginSystemMessage(RestartingText, true) {
		return
	}
	l.delay.After(SystemMessageDelay, func() {
		l.endSystemMessage()
		l.Boot()
	})
}

// Boot shows the splash, then the lock screen with fresh clock tickers
func (l *Lifecycle) Boot() {
	l.cancelGestures()
	l.overlays.DeactivateAll()
	l.nav.HideApps()
	l.setFlashlight(false)
	l.notifications.ClearPeek()

	l.nav.SetPower(types.PowerBooting)
	l.activate(types.OverlayBootSplash)
	l.logger.Info("booting")

	l.delay.After(BootDuration, func() {
		l.overlays.DeactivateAll()
		l.showLocked()
		l.startClocks()
		l.logger.Info("boot complete")
	})
}

// LockPress starts the customize hold on the lock screen. Presses on
// interactive elements are ignored.
func (l *Lifecycle) LockPress(interactive bool) {
	l.suppressClick = false
	if interactive || l.nav.Power() != types.PowerLocked {
		return
	}
	l.lockHold.After(LockHoldDuration, func() {
		l.suppressClick = true
		l.activate(types.OverlayLockScreenCustomize)
	})
}

// LockRelease cancels a pending customize hold
func (l *Lifecycle) LockRelease() {
	l.lockHold.Cancel()
}

// LockLeave cancels a pending customize hold when the pointer leaves
func (l *Lifecycle) LockLeave() {
	l.lockHold.Cancel()
}

// LockClick unlocks to home unless the click ended a customize hold
func (l *Lifecycle) LockClick(interactive bool) {
	if interactive {
		return
	}
	if l.suppressClick {
		l.suppressClick = false
		return
	}
	if l.nav.Power() != types.PowerLocked || l.overlays.IsActive(types.OverlayLockScreenCustomize) {
		return
	}

	l.lockHold.Cancel()
	l.overlays.DeactivateAll()
	l.nav.SetPower(types.PowerUnlocked)
	l.setFlashlight(false)
	l.notifications.ClearPeek()
	l.nav.GoHome()
}

// Lock returns an unlocked device to the lock screen
func (l *Lifecycle) Lock() {
	if l.nav.Power() != types.PowerUnlocked {
		return
	}
	l.overlays.DeactivateAll()
	l.nav.HideApps()
	l.showLocked()
}

// ToggleFlashlight flips the flashlight while the screen is on. It returns
// the new state.
func (l *Lifecycle) ToggleFlashlight() bool {
	if l.nav.Power().ScreenOn() {
		l.setFlashlight(!l.flashlight)
	}
	return l.flashlight
}

// Flashlight reports whether the flashlight is on
func (l *Lifecycle) Flashlight() bool {
	return l.flashlight
}

// SystemMessage returns the message being shown, if any
func (l *Lifecycle) SystemMessage() *types.SystemMessage {
	if l.message == nil {
		return nil
	}
	m := *l.message
	return &m
}

// Stop cancels every timer the lifecycle owns
func (l *Lifecycle) Stop() {
	l.cancelGestures()
	l.delay.Cancel()
	l.stopClocks()
}

func (l *Lifecycle) screenOff() {
	l.cancelGestures()
	l.overlays.DeactivateAll()
	l.setFlashlight(false)
	l.notifications.ClearPeek()
	l.nav.HideApps()
	l.nav.SetPower(types.PowerOff)
	l.activate(types.OverlayScreenOff)
}

func (l *Lifecycle) showLocked() {
	l.nav.SetPower(types.PowerLocked)
	if l.OnLocked != nil {
		l.OnLocked()
	}
}

func (l *Lifecycle) beginSystemMessage(text string, spinner bool) bool {
	if !l.nav.Power().ScreenOn() {
		l.logger.Debug("system message ignored", zap.String("text", text), zap.Stringer("power", l.nav.Power()))
		return false
	}

	l.cancelGestures()
	l.overlays.DeactivateAll()
	l.stopClocks()
	l.nav.HideApps()

	l.message = &types.SystemMessage{Text: text, Spinner: spinner}
	l.nav.SetPower(types.PowerSystemMessage)
	l.activate(types.OverlaySystemMessage)
	l.sink.Render(render.Event{Kind: render.KindSystemMessage, Data: *l.message})
	return true
}

func (l *Lifecycle) endSystemMessage() {
	l.message = nil
	l.overlays.Deactivate(types.OverlaySystemMessage)
	l.sink.Render(render.Event{Kind: render.KindSystemMessage, Data: nil})
}

// startClocks replaces both tickers and renders the current time at once
func (l *Lifecycle) startClocks() {
	l.tick(render.ClockLockScreen)
	l.tick(render.ClockHomeWidget)
	l.lockClock.Every(ClockInterval, func() { l.tick(render.ClockLockScreen) })
	l.homeClock.Every(ClockInterval, func() { l.tick(render.ClockHomeWidget) })
}

func (l *Lifecycle) stopClocks() {
	l.lockClock.Cancel()
	l.homeClock.Cancel()
}

func (l *Lifecycle) tick(target string) {
	l.sink.Render(render.Event{Kind: render.KindClock, Target: target, Data: render.NewClockTick(l.loop.Now())})
}

func (l *Lifecycle) cancelGestures() {
	l.powerHold.Cancel()
	l.lockHold.Cancel()
	l.holdFired = false
	l.suppressClick = false
}

func (l *Lifecycle) setFlashlight(on bool) {
	if l.flashlight == on {
		return
	}
	l.flashlight = on
	l.sink.Render(render.Event{Kind: render.KindFlashlight, Data: on})
}

func (l *Lifecycle) activate(kind types.OverlayKind) {
	if err := l.overlays.Activate(kind); err != nil {
		l.logger.Warn("activate overlay", zap.String("kind", string(kind)), zap.Error(err))
	}
}
