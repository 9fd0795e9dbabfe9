package lockscreen

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PocketOS/internal/providers/storage"
	"github.com/GriffinCanCode/PocketOS/internal/render"
	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"github.com/GriffinCanCode/PocketOS/internal/shared/utils"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

var (
	ErrInvalidPreset      = errors.New("preset index out of range")
	ErrInvalidEffect      = errors.New("invalid background effect")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrUnknownWidget      = errors.New("unknown widget")
	ErrEmptyName          = errors.New("profile name is empty")
	ErrProfileNotFound    = errors.New("profile not found")
)

// json uses sorted map keys so persisted values are stable
var json = sonic.ConfigStd

// Partial is a top-level update to the config. Nil fields are kept. The
// merge is shallow: a non-nil ActiveWidgets replaces the whole map, so
// widgets missing from it become inactive.
type Partial struct {
	PresetIndex      *int                    `json:"presetIndex,omitempty"`
	BackgroundEffect *types.BackgroundEffect `json:"backgroundEffect,omitempty"`
	ActiveWidgets    map[string]bool         `json:"activeWidgets,omitempty"`
	Orientation      *types.Orientation      `json:"orientation,omitempty"`
}

// Full wraps a complete config as a partial that replaces every field
func Full(c types.LockScreenConfig) Partial {
	c = c.Clone()
	return Partial{
		PresetIndex:      &c.PresetIndex,
		BackgroundEffect: &c.BackgroundEffect,
		ActiveWidgets:    c.ActiveWidgets,
		Orientation:      &c.Orientation,
	}
}

// View is the rendered lock screen
type View struct {
	Preset           Preset                 `json:"preset"`
	BackgroundEffect types.BackgroundEffect `json:"backgroundEffect"`
	Orientation      types.Orientation      `json:"orientation"`
	Widgets          []Widget               `json:"widgets"`
	DateWeather      bool                   `json:"dateWeather"`
}

// Manager owns the current lock-screen config and the named profiles.
// Methods run on the device loop.
type Manager struct {
	current  types.LockScreenConfig
	profiles map[string]types.LockScreenConfig

	store   storage.Store
	sink    render.Sink
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewManager creates a manager holding the default config
func NewManager(store storage.Store, sink render.Sink, metrics *monitoring.Metrics, logger *logging.Logger) *Manager {
	if sink == nil {
		sink = render.Nop
	}
	return &Manager{
		current:  DefaultConfig(),
		profiles: make(map[string]types.LockScreenConfig),
		store:    store,
		sink:     sink,
		metrics:  metrics,
		logger:   logger.Component("lockscreen"),
	}
}

// Restore loads the persisted config and profiles. Unreadable or invalid
// values fall back to defaults.
func (m *Manager) Restore(ctx context.Context) {
	if raw, ok, err := m.store.Get(ctx, storage.KeyLockScreenConfig); err != nil {
		m.logger.Warn("read lock screen config", zap.Error(err))
	} else if ok {
		var cfg types.LockScreenConfig
		if err := json.UnmarshalFromString(raw, &cfg); err != nil {
			m.logger.Warn("decode lock screen config", zap.Error(err))
		} else if err := validate(cfg); err != nil {
			m.logger.Warn("persisted lock screen config rejected", zap.Error(err))
		} else {
			m.current = cfg
		}
	}

	if raw, ok, err := m.store.Get(ctx, storage.KeyLockScreenProfiles); err != nil {
		m.logger.Warn("read lock screen profiles", zap.Error(err))
	} else if ok {
		var profiles map[string]types.LockScreenConfig
		if err := json.UnmarshalFromString(raw, &profiles); err != nil {
			m.logger.Warn("decode lock screen profiles", zap.Error(err))
		} else if profiles == nil {
			m.logger.Warn("persisted lock screen profiles are empty", zap.String("raw", raw))
		} else {
			m.profiles = profiles
		}
	}

	m.Render()
}

// Apply merges p over the current config, validates, renders and persists.
// On a validation error nothing changes.
func (m *Manager) Apply(ctx context.Context, p Partial) error {
	next := m.current.Clone()
	if p.PresetIndex != nil {
		next.PresetIndex = *p.PresetIndex
	}
	if p.BackgroundEffect != nil {
		next.BackgroundEffect = *p.BackgroundEffect
	}
	if p.ActiveWidgets != nil {
		next.ActiveWidgets = make(map[string]bool, len(p.ActiveWidgets))
		for k, v := range p.ActiveWidgets {
			next.ActiveWidgets[k] = v
		}
	}
	if p.Orientation != nil {
		next.Orientation = *p.Orientation
	}

	if err := validate(next); err != nil {
		return err
	}

	m.current = next
	m.Render()
	m.persist(ctx, storage.KeyLockScreenConfig, m.current)
	m.logger.Debug("lock screen applied",
		zap.Int("preset", next.PresetIndex),
		zap.String("orientation", string(next.Orientation)))
	return nil
}

// SaveProfile stores a snapshot of the current config under the trimmed name
func (m *Manager) SaveProfile(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if err := utils.ValidateName(name, "profile name", utils.MaxProfileNameLength); err != nil {
		return err
	}
	m.profiles[name] = m.current.Clone()
	m.persist(ctx, storage.KeyLockScreenProfiles, m.profiles)
	return nil
}

// LoadProfile applies a saved snapshot
func (m *Manager) LoadProfile(ctx context.Context, name string) error {
	snapshot, ok := m.profiles[strings.TrimSpace(name)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return m.Apply(ctx, Full(snapshot))
}

// DeleteProfile removes a profile once confirm approves. It reports whether
// a profile was deleted.
func (m *Manager) DeleteProfile(ctx context.Context, name string, confirm func(name string) bool) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if _, ok := m.profiles[name]; !ok {
		return false
	}
	if confirm == nil || !confirm(name) {
		return false
	}

	delete(m.profiles, name)
	m.persist(ctx, storage.KeyLockScreenProfiles, m.profiles)
	return true
}

// Config returns a copy of the current config
func (m *Manager) Config() types.LockScreenConfig {
	return m.current.Clone()
}

// Profiles returns the saved profile names, sorted
func (m *Manager) Profiles() []string {
	names := make([]string, 0, len(m.profiles))
	for name := range m.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile returns a copy of a saved snapshot
func (m *Manager) Profile(name string) (types.LockScreenConfig, bool) {
	c, ok := m.profiles[strings.TrimSpace(name)]
	if !ok {
		return types.LockScreenConfig{}, false
	}
	return c.Clone(), true
}

// Render pushes the current config to the render layer
func (m *Manager) Render() {
	m.sink.Render(render.Event{Kind: render.KindLockScreen, Data: BuildView(m.current)})
}

// BuildView computes what the lock screen shows for c. The widget row keeps
// catalog order and lists active widgets only.
func BuildView(c types.LockScreenConfig) View {
	v := View{
		Preset:           Presets[c.PresetIndex],
		BackgroundEffect: c.BackgroundEffect,
		Orientation:      c.Orientation,
		Widgets:          []Widget{},
		DateWeather:      c.ActiveWidgets[DateWeatherWidget],
	}
	for _, w := range Widgets {
		if c.ActiveWidgets[w.ID] {
			v.Widgets = append(v.Widgets, w)
		}
	}
	return v
}

func (m *Manager) persist(ctx context.Context, key string, v any) {
	raw, err := json.MarshalToString(v)
	if err != nil {
		m.logger.Warn("encode setting", zap.String("key", key), zap.Error(err))
		return
	}
	if err := m.store.Set(ctx, key, raw); err != nil {
		m.logger.Warn("persist setting", zap.String("key", key), zap.Error(err))
		return
	}
	m.metrics.RecordSettingChange(key)
}

func validate(c types.LockScreenConfig) error {
	if c.PresetIndex < 0 || c.PresetIndex >= len(Presets) {
		return fmt.Errorf("%w: %d", ErrInvalidPreset, c.PresetIndex)
	}
	if !c.BackgroundEffect.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidEffect, c.BackgroundEffect.Type)
	}
	if c.BackgroundEffect.Type != types.EffectNone && strings.TrimSpace(c.BackgroundEffect.Color) == "" {
		return fmt.Errorf("%w: %s needs a color", ErrInvalidEffect, c.BackgroundEffect.Type)
	}
	if !c.Orientation.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, c.Orientation)
	}
	for id := range c.ActiveWidgets {
		if !KnownWidget(id) {
			return fmt.Errorf("%w: %q", ErrUnknownWidget, id)
		}
	}
	return nil
}
