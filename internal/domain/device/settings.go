package device

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/GriffinCanCode/PocketOS/internal/domain/lockscreen"
	"github.com/GriffinCanCode/PocketOS/internal/providers/storage"
	"github.com/GriffinCanCode/PocketOS/internal/render"
	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"go.uber.org/zap"
)

// VolumeIndicatorDuration is how long the volume indicator stays up
const VolumeIndicatorDuration = 2000 * time.Millisecond

// SetTheme applies and persists an (accent, mode) pair. Unknown pairs are
// rejected and the current look is kept.
func (d *Device) SetTheme(ctx context.Context, accent types.Accent, mode types.Mode) error {
	var err error
	d.loop.Do(func() {
		vars, rerr := d.themes.Resolve(accent, mode)
		if rerr != nil {
			d.logger.Warn("theme not applied", zap.String("accent", string(accent)), zap.String("mode", string(mode)), zap.Error(rerr))
			err = rerr
			return
		}
		d.theme = types.ThemeState{Accent: accent, Mode: mode}
		d.vars = vars
		d.sink.Render(render.Event{Kind: render.KindTheme, Data: vars})
		d.persist(ctx, storage.KeyAccent, string(accent))
		d.persist(ctx, storage.KeyMode, string(mode))
	})
	return err
}

// SetLanguage switches the label language
func (d *Device) SetLanguage(ctx context.Context, lang string) error {
	if !slices.Contains(types.Languages, lang) {
		return fmt.Errorf("%w: language %q", ErrInvalidOption, lang)
	}
	d.loop.Do(func() {
		d.language = lang
		d.sink.Render(render.Event{Kind: render.KindLanguage, Data: lang})
		d.persist(ctx, storage.KeyLanguage, lang)
	})
	return nil
}

// SetIconStyle changes the home-screen icon shape and size
func (d *Device) SetIconStyle(ctx context.Context, shape, size string) error {
	if !slices.Contains(types.IconShapes, shape) {
		return fmt.Errorf("%w: icon shape %q", ErrInvalidOption, shape)
	}
	if !slices.Contains(types.IconSizes, size) {
		return fmt.Errorf("%w: icon size %q", ErrInvalidOption, size)
	}
	d.loop.Do(func() {
		d.iconStyle = types.IconStyle{Shape: shape, Size: size}
		d.sink.Render(render.Event{Kind: render.KindIconStyle, Data: d.iconStyle})
		d.persist(ctx, storage.KeyIconShape, shape)
		d.persist(ctx, storage.KeyIconSize, size)
	})
	return nil
}

// VolumeUp raises the volume one step and returns the new level
func (d *Device) VolumeUp(ctx context.Context) int {
	return d.changeVolume(ctx, types.VolumeStep)
}

// VolumeDown lowers the volume one step and returns the new level
func (d *Device) VolumeDown(ctx context.Context) int {
	return d.changeVolume(ctx, -types.VolumeStep)
}

func (d *Device) changeVolume(ctx context.Context, delta int) int {
	var level int
	d.loop.Do(func() {
		level = d.volume
		if !d.nav.Power().ScreenOn() {
			d.logger.Debug("volume ignored while screen is off")
			return
		}

		d.volume = min(max(d.volume+delta, types.VolumeMin), types.VolumeMax)
		level = d.volume
		if err := d.overlays.Activate(types.OverlayVolumeIndicator); err != nil {
			d.logger.Warn("show volume indicator", zap.Error(err))
		}
		d.sink.Render(render.Event{Kind: render.KindVolume, Data: level})
		d.volumeHUD.After(VolumeIndicatorDuration, func() {
			d.overlays.Deactivate(types.OverlayVolumeIndicator)
		})
		d.persist(ctx, storage.KeyVolume, strconv.Itoa(level))
	})
	return level
}

// LockScreenConfig returns the current lock-screen config
func (d *Device) LockScreenConfig() types.LockScreenConfig {
	var c types.LockScreenConfig
	d.loop.Do(func() { c = d.lockscreen.Config() })
	return c
}

// ApplyLockScreen merges p into the lock-screen config. A rejected update
// is reported as a notification and leaves the config unchanged.
func (d *Device) ApplyLockScreen(ctx context.Context, p lockscreen.Partial) error {
	var err error
	d.loop.Do(func() {
		if err = d.lockscreen.Apply(ctx, p); err != nil {
			d.rejected("Lock screen not updated", err)
		}
	})
	return err
}

// SaveLockScreenProfile stores the current lock-screen config under name
func (d *Device) SaveLockScreenProfile(ctx context.Context, name string) error {
	var err error
	d.loop.Do(func() {
		if err = d.lockscreen.SaveProfile(ctx, name); err != nil {
			d.rejected("Profile not saved", err)
		}
	})
	return err
}

// LoadLockScreenProfile applies a saved profile
func (d *Device) LoadLockScreenProfile(ctx context.Context, name string) error {
	var err error
	d.loop.Do(func() {
		if err = d.lockscreen.LoadProfile(ctx, name); err != nil {
			d.rejected("Profile not loaded", err)
		}
	})
	return err
}

// DeleteLockScreenProfile removes a profile once confirm approves. confirm
// runs on the device loop and must not call back into the device.
func (d *Device) DeleteLockScreenProfile(ctx context.Context, name string, confirm func(name string) bool) bool {
	var ok bool
	d.loop.Do(func() { ok = d.lockscreen.DeleteProfile(ctx, name, confirm) })
	return ok
}

// LockScreenProfiles lists saved profile names
func (d *Device) LockScreenProfiles() []string {
	var names []string
	d.loop.Do(func() { names = d.lockscreen.Profiles() })
	return names
}

// rejected surfaces a validation failure to the user. Must run on the loop.
func (d *Device) rejected(title string, err error) {
	d.logger.Warn(title, zap.Error(err))
	d.notify(title, err.Error())
}

// persist writes one setting. Failures are logged; the in-memory value
// stays applied. Must run on the loop.
func (d *Device) persist(ctx context.Context, key, value string) {
	if err := d.store.Set(ctx, key, value); err != nil {
		d.logger.Warn("persist setting", zap.String("key", key), zap.Error(err))
		return
	}
	d.metrics.RecordSettingChange(key)
}

// restore loads persisted settings; anything missing or invalid keeps its
// default. Must run on the loop.
func (d *Device) restore(ctx context.Context) {
	accent := types.Accent(storage.GetOr(ctx, d.store, storage.KeyAccent, string(d.theme.Accent)))
	mode := types.Mode(storage.GetOr(ctx, d.store, storage.KeyMode, string(d.theme.Mode)))
	if vars, err := d.themes.Resolve(accent, mode); err != nil {
		d.logger.Warn("persisted theme ignored", zap.Error(err))
	} else {
		d.theme = types.ThemeState{Accent: accent, Mode: mode}
		d.vars = vars
	}

	if lang := storage.GetOr(ctx, d.store, storage.KeyLanguage, d.language); slices.Contains(types.Languages, lang) {
		d.language = lang
	}

	shape := storage.GetOr(ctx, d.store, storage.KeyIconShape, d.iconStyle.Shape)
	size := storage.GetOr(ctx, d.store, storage.KeyIconSize, d.iconStyle.Size)
	if slices.Contains(types.IconShapes, shape) && slices.Contains(types.IconSizes, size) {
		d.iconStyle = types.IconStyle{Shape: shape, Size: size}
	}

	if raw, ok, err := d.store.Get(ctx, storage.KeyVolume); err == nil && ok {
		if v, err := strconv.Atoi(raw); err == nil && v >= types.VolumeMin && v <= types.VolumeMax {
			d.volume = v
		}
	}

	d.lockscreen.Restore(ctx)

	d.sink.Render(render.Event{Kind: render.KindTheme, Data: d.vars})
	d.sink.Render(render.Event{Kind: render.KindLanguage, Data: d.language})
	d.sink.Render(render.Event{Kind: render.KindIconStyle, Data: d.iconStyle})
	d.logger.Info("settings restored",
		zap.String("accent", string(d.theme.Accent)),
		zap.String("mode", string(d.theme.Mode)),
		zap.String("language", d.language),
		zap.Int("volume", d.volume))
}
