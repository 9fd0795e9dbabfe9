package lockscreen

import (
	"context"
	"strings"
	"testing"

	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PocketOS/internal/providers/storage"
	"github.com/GriffinCanCode/PocketOS/internal/render"
	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"github.com/GriffinCanCode/PocketOS/internal/shared/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newTestManager(t *testing.T) (*Manager, *storage.Memory, *render.Recorder) {
	t.Helper()
	store := storage.NewMemory()
	rec := render.NewRecorder()
	return NewManager(store, rec, nil, logging.NewNop()), store, rec
}

func TestApplyMergesAndPersists(t *testing.T) {
	ctx := context.Background()
	m, store, rec := newTestManager(t)

	err := m.Apply(ctx, Partial{
		PresetIndex:      ptr(3),
		BackgroundEffect: &types.BackgroundEffect{Type: types.EffectTint, Color: "#ff0000"},
	})
	require.NoError(t, err)

	cfg := m.Config()
	assert.Equal(t, 3, cfg.PresetIndex)
	assert.Equal(t, types.EffectTint, cfg.BackgroundEffect.Type)
	assert.Equal(t, types.OrientationPortrait, cfg.Orientation, "untouched fields are kept")
	assert.True(t, cfg.ActiveWidgets["battery"])

	raw, ok, err := store.Get(ctx, storage.KeyLockScreenConfig)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"presetIndex":3`)

	last, ok := rec.Last(render.KindLockScreen, "")
	require.True(t, ok)
	view := last.Data.(View)
	assert.Equal(t, "Mono", view.Preset.Name)
}

func TestApplyActiveWidgetsReplacesWholeMap(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)

	require.NoError(t, m.Apply(ctx, Partial{ActiveWidgets: map[string]bool{"music": true}}))

	assert.Equal(t, map[string]bool{"music": true}, m.Config().ActiveWidgets)
}

func TestApplyRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		partial Partial
		wantErr error
	}{
		{"negative preset", Partial{PresetIndex: ptr(-1)}, ErrInvalidPreset},
		{"preset past end", Partial{PresetIndex: ptr(len(Presets))}, ErrInvalidPreset},
		{"unknown effect", Partial{BackgroundEffect: &types.BackgroundEffect{Type: "blur"}}, ErrInvalidEffect},
		{"tint without color", Partial{BackgroundEffect: &types.BackgroundEffect{Type: types.EffectTint}}, ErrInvalidEffect},
		{"bad orientation", Partial{Orientation: ptr(types.Orientation("upside"))}, ErrInvalidOrientation},
		{"unknown widget", Partial{ActiveWidgets: map[string]bool{"stocks": true}}, ErrUnknownWidget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			m, store, rec := newTestManager(t)
			before := m.Config()

			err := m.Apply(ctx, tt.partial)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, m.Config())
			assert.Empty(t, rec.Events())
			assert.Empty(t, store.Keys())
		})
	}
}

func TestWidgetRowFollowsCatalogOrder(t *testing.T) {
	view := BuildView(types.LockScreenConfig{
		ActiveWidgets: map[string]bool{
			"alarm":           true,
			"battery":         true,
			"music":           false,
			DateWeatherWidget: true,
		},
		Orientation: types.OrientationLandscape,
	})

	ids := make([]string, 0, len(view.Widgets))
	for _, w := range view.Widgets {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{"battery", "alarm"}, ids)
	assert.True(t, view.DateWeather)
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)

	night := Partial{
		PresetIndex:      ptr(4),
		BackgroundEffect: &types.BackgroundEffect{Type: types.EffectOverlay, Color: "#000033"},
		ActiveWidgets:    map[string]bool{"alarm": true, "weather": true},
		Orientation:      ptr(types.OrientationLandscape),
	}
	require.NoError(t, m.Apply(ctx, night))
	snapshot := m.Config()
	require.NoError(t, m.SaveProfile(ctx, "  Night "))

	// Mutating the live config must not leak into the snapshot
	require.NoError(t, m.Apply(ctx, Partial{
		PresetIndex:   ptr(0),
		ActiveWidgets: map[string]bool{"battery": true},
		Orientation:   ptr(types.OrientationPortrait),
	}))

	require.NoError(t, m.LoadProfile(ctx, "Night"))
	assert.Equal(t, snapshot, m.Config())
}

func TestSaveProfile(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newTestManager(t)

	assert.ErrorIs(t, m.SaveProfile(ctx, "   "), ErrEmptyName)
	assert.ErrorIs(t, m.SaveProfile(ctx, strings.Repeat("x", utils.MaxProfileNameLength+1)), utils.ErrInvalidName)

	require.NoError(t, m.SaveProfile(ctx, "Work"))
	require.NoError(t, m.Apply(ctx, Partial{PresetIndex: ptr(2)}))
	require.NoError(t, m.SaveProfile(ctx, "Work"))

	work, ok := m.Profile("Work")
	require.True(t, ok)
	assert.Equal(t, 2, work.PresetIndex, "last write wins")
	assert.Equal(t, []string{"Work"}, m.Profiles())

	raw, ok, _ := store.Get(ctx, storage.KeyLockScreenProfiles)
	require.True(t, ok)
	assert.Contains(t, raw, `"Work"`)
}

func TestLoadProfileNotFound(t *testing.T) {
	m, _, _ := newTestManager(t)
	assert.ErrorIs(t, m.LoadProfile(context.Background(), "Nope"), ErrProfileNotFound)
}

func TestDeleteProfile(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)
	require.NoError(t, m.SaveProfile(ctx, "Gym"))

	yes := func(string) bool { return true }
	no := func(string) bool { return false }

	assert.False(t, m.DeleteProfile(ctx, "", yes))
	assert.False(t, m.DeleteProfile(ctx, "Missing", yes))
	assert.False(t, m.DeleteProfile(ctx, "Gym", no))
	assert.False(t, m.DeleteProfile(ctx, "Gym", nil))
	assert.Equal(t, []string{"Gym"}, m.Profiles())

	var asked string
	assert.True(t, m.DeleteProfile(ctx, "Gym", func(name string) bool { asked = name; return true }))
	assert.Equal(t, "Gym", asked)
	assert.Empty(t, m.Profiles())
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	first, store, _ := newTestManager(t)
	require.NoError(t, first.Apply(ctx, Partial{
		PresetIndex:   ptr(5),
		ActiveWidgets: map[string]bool{"steps": true},
	}))
	require.NoError(t, first.SaveProfile(ctx, "Run"))

	second := NewManager(store, nil, nil, logging.NewNop())
	second.Restore(ctx)

	assert.Equal(t, first.Config(), second.Config())
	assert.Equal(t, []string{"Run"}, second.Profiles())
}

func TestRestoreIgnoresCorruptValues(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		profiles string
	}{
		{"garbage", `{"presetIndex":99,"orientation":"portrait","backgroundEffect":{"type":"none"}}`, `not json`},
		{"null", `null`, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := storage.NewMemory()
			require.NoError(t, store.Set(ctx, storage.KeyLockScreenConfig, tt.config))
			require.NoError(t, store.Set(ctx, storage.KeyLockScreenProfiles, tt.profiles))

			m := NewManager(store, nil, nil, logging.NewNop())
			m.Restore(ctx)

			assert.Equal(t, DefaultConfig(), m.Config())
			assert.Empty(t, m.Profiles())

			require.NotPanics(t, func() {
				require.NoError(t, m.SaveProfile(ctx, "Night"))
			})
			assert.Equal(t, []string{"Night"}, m.Profiles())
		})
	}
}
