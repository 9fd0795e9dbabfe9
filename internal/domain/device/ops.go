package device

import (
	"fmt"

	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"go.uber.org/zap"
)

// ShowApp opens an app view. It reports whether the view changed.
func (d *Device) ShowApp(appID string) bool {
	var ok bool
	d.loop.Do(func() { ok = d.nav.ShowApp(appID) })
	return ok
}

// NavigateBack returns to the previous view
func (d *Device) NavigateBack() {
	d.loop.Do(d.nav.NavigateBack)
}

// GoHome resets history to the home screen
func (d *Device) GoHome() {
	d.loop.Do(func() {
		if d.nav.Power() != types.PowerUnlocked {
			d.logger.Debug("home ignored while not unlocked")
			return
		}
		d.nav.GoHome()
	})
}

// Recents returns the derived recent-apps list
func (d *Device) Recents() []types.RecentApp {
	var out []types.RecentApp
	d.loop.Do(func() { out = d.nav.Recents() })
	return out
}

// ToggleScreen turns the screen off or on
func (d *Device) ToggleScreen() {
	d.loop.Do(d.power.ToggleScreen)
}

// PowerDown presses the power button
func (d *Device) PowerDown() {
	d.loop.Do(d.power.PowerDown)
}

// PowerUp releases the power button
func (d *Device) PowerUp() {
	d.loop.Do(d.power.PowerUp)
}

// Shutdown turns the device off after the shutdown message
func (d *Device) Shutdown() {
	d.loop.Do(d.power.Shutdown)
}

// Restart reboots the device
func (d *Device) Restart() {
	d.loop.Do(d.power.Restart)
}

// Boot runs the boot sequence
func (d *Device) Boot() {
	d.loop.Do(d.power.Boot)
}

// LockPress begins a press on the lock screen
func (d *Device) LockPress(interactive bool) {
	d.loop.Do(func() { d.power.LockPress(interactive) })
}

// LockRelease ends a press on the lock screen
func (d *Device) LockRelease() {
	d.loop.Do(d.power.LockRelease)
}

// LockLeave reports the pointer leaving the lock screen
func (d *Device) LockLeave() {
	d.loop.Do(d.power.LockLeave)
}

// LockClick clicks the lock screen
func (d *Device) LockClick(interactive bool) {
	d.loop.Do(func() { d.power.LockClick(interactive) })
}

// Lock returns to the lock screen
func (d *Device) Lock() {
	d.loop.Do(d.power.Lock)
}

// ToggleFlashlight flips the flashlight and returns its new state
func (d *Device) ToggleFlashlight() bool {
	var on bool
	d.loop.Do(func() { on = d.power.ToggleFlashlight() })
	return on
}

// OpenOverlay opens a user-openable overlay (notification shade, album art)
func (d *Device) OpenOverlay(kind types.OverlayKind) error {
	var err error
	d.loop.Do(func() {
		switch {
		case !kind.UserOpenable():
			err = fmt.Errorf("%w: %s", ErrNotOpenable, kind)
		case !d.nav.Power().ScreenOn():
			err = ErrScreenOff
		default:
			err = d.overlays.Activate(kind)
		}
	})
	return err
}

// CloseOverlay closes kind if it is showing. Only user-openable kinds and
// the power menu and customize sheet may be closed directly.
func (d *Device) CloseOverlay(kind types.OverlayKind) bool {
	var closed bool
	d.loop.Do(func() {
		switch kind {
		case types.OverlayBootSplash, types.OverlayScreenOff, types.OverlaySystemMessage:
			d.logger.Debug("close ignored for lifecycle overlay", zap.String("kind", string(kind)))
			return
		}
		closed = d.overlays.Deactivate(kind)
	})
	return closed
}

// PostNotification adds a notification, peeking it on the lock screen
func (d *Device) PostNotification(title, message string) types.Notification {
	var n types.Notification
	d.loop.Do(func() { n = d.notify(title, message) })
	return n
}

// ClearNotifications empties the shade
func (d *Device) ClearNotifications() {
	d.loop.Do(d.notifications.ClearAll)
}

// DismissNotification removes one notification
func (d *Device) DismissNotification(id string) bool {
	var ok bool
	d.loop.Do(func() { ok = d.notifications.Dismiss(id) })
	return ok
}

// SearchApps finds catalog apps by name
func (d *Device) SearchApps(query string, limit int) []types.AppSummary {
	return d.catalog.Search(query, limit)
}
