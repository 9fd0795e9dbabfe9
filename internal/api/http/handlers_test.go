package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GriffinCanCode/PocketOS/internal/domain/catalog"
	"github.com/GriffinCanCode/PocketOS/internal/domain/device"
	"github.com/GriffinCanCode/PocketOS/internal/domain/power"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/scheduler"
	"github.com/GriffinCanCode/PocketOS/internal/providers/ai"
	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAI struct {
	reply string
}

func (s stubAI) Chat(context.Context, []ai.Message) (string, error) {
	return s.reply, nil
}

func (s stubAI) GenerateImage(context.Context, string, ai.AspectRatio) (ai.ImageResult, error) {
	return ai.ImageResult{URL: "https://img.example/1.png"}, nil
}

type fixture struct {
	router *gin.Engine
	device *device.Device
	clock  *scheduler.FakeClock
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := scheduler.NewFakeClock(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	d, err := device.New(device.Options{
		Clock: clock,
		Catalog: catalog.MustNew(
			catalog.Descriptor{ID: "notes", DisplayName: "Notes"},
			catalog.Descriptor{ID: "maps", DisplayName: "Maps"},
		),
		AI:     stubAI{reply: "Hello!"},
		Logger: logging.NewNop(),
	})
	require.NoError(t, err)
	t.Cleanup(d.Close)

	d.Start(context.Background())
	clock.Advance(power.BootDuration)

	router := gin.New()
	NewHandlers(d, monitoring.NewMetrics(), logging.NewNop()).Register(router)
	return &fixture{router: router, device: d, clock: clock}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

type stateBody struct {
	Power     string   `json:"power"`
	Surface   string   `json:"surface"`
	ActiveApp string   `json:"active_app"`
	History   []string `json:"history"`
	Overlay   *string  `json:"overlay"`
	Volume    int      `json:"volume"`
}

func TestRootAndHealth(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PocketOS", decode[map[string]any](t, w)["service"])

	w = f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "locked", body["power"])
	assert.EqualValues(t, 2, body["apps"])
}

func TestUnlockAndOpenApp(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/lockscreen/click", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unlocked", decode[stateBody](t, w).Power)

	w = f.do(t, http.MethodPost, "/apps/notes/open", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Success bool      `json:"success"`
		State   stateBody `json:"state"`
	}](t, w)
	assert.True(t, body.Success)
	assert.Equal(t, "notes", body.State.ActiveApp)

	w = f.do(t, http.MethodPost, "/apps/unknown/open", nil)
	assert.False(t, decode[map[string]any](t, w)["success"].(bool))

	w = f.do(t, http.MethodPost, "/nav/back", nil)
	assert.Equal(t, []string{types.HomeScreen}, decode[stateBody](t, w).History)
}

func TestLockPressQueryValidation(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/lockscreen/press?interactive=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/lockscreen/press", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	f.clock.Advance(power.LockHoldDuration)
	f.do(t, http.MethodPost, "/lockscreen/release", nil)

	overlay := decode[stateBody](t, f.do(t, http.MethodGet, "/state", nil)).Overlay
	require.NotNil(t, overlay)
	assert.Equal(t, string(types.OverlayLockScreenCustomize), *overlay)
}

func TestOverlays(t *testing.T) {
	f := setup(t)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/overlays/bogus/open", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/overlays/power_menu/open", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/overlays/notification_shade/open", nil).Code)

	w := f.do(t, http.MethodPost, "/overlays/notification_shade/close", nil)
	assert.True(t, decode[map[string]bool](t, w)["closed"])

	f.do(t, http.MethodPost, "/power/toggle", nil)
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, "/overlays/album_art/open", nil).Code)
}

func TestNotifications(t *testing.T) {
	f := setup(t)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/notifications", map[string]string{}).Code)

	w := f.do(t, http.MethodPost, "/notifications", map[string]string{"title": "Hi", "message": "<b>there</b>"})
	require.Equal(t, http.StatusCreated, w.Code)
	n := decode[types.Notification](t, w)
	assert.Equal(t, "there", n.Message)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/notifications/"+n.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodDelete, "/notifications/"+n.ID, nil).Code)

	f.do(t, http.MethodPost, "/notifications", map[string]string{"title": "A"})
	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/notifications", nil).Code)
	body := decode[map[string]any](t, f.do(t, http.MethodGet, "/notifications", nil))
	assert.Empty(t, body["notifications"])
}

func TestSettings(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPut, "/settings/theme", map[string]string{"accent": "orange", "mode": "light"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.AccentOrange, f.device.Snapshot().Theme.Accent)

	w = f.do(t, http.MethodPut, "/settings/theme", map[string]string{"accent": "teal", "mode": "light"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPut, "/settings/language", map[string]string{"language": "es"}).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPut, "/settings/language", map[string]string{"language": "xx"}).Code)

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPut, "/settings/icons", map[string]string{"shape": "circle", "size": "large"}).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPut, "/settings/icons", map[string]string{"shape": "star", "size": "large"}).Code)

	w = f.do(t, http.MethodPost, "/settings/volume/up", nil)
	assert.Equal(t, 60, decode[map[string]int](t, w)["volume"])
}

func TestLockScreenProfiles(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPatch, "/lockscreen/config", map[string]any{"presetIndex": 99})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPatch, "/lockscreen/config", map[string]any{"presetIndex": 2, "orientation": "landscape"})
	require.Equal(t, http.StatusOK, w.Code)
	cfg := decode[struct {
		Config types.LockScreenConfig `json:"config"`
	}](t, w).Config
	assert.Equal(t, 2, cfg.PresetIndex)
	assert.Equal(t, types.OrientationLandscape, cfg.Orientation)

	assert.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/lockscreen/profiles", map[string]string{"name": "Work"}).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/lockscreen/profiles/Home/load", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/lockscreen/profiles/Work/load", nil).Code)

	w = f.do(t, http.MethodDelete, "/lockscreen/profiles/Work", nil)
	assert.False(t, decode[map[string]any](t, w)["deleted"].(bool), "deletion needs confirmation")

	w = f.do(t, http.MethodDelete, "/lockscreen/profiles/Work?confirm=true", nil)
	assert.True(t, decode[map[string]any](t, w)["deleted"].(bool))
}

func TestAssistant(t *testing.T) {
	f := setup(t)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/assistant/chat", map[string]string{"message": " "}).Code)

	w := f.do(t, http.MethodPost, "/assistant/chat", map[string]string{"message": "Hi"})
	require.Equal(t, http.StatusAccepted, w.Code)
	f.device.Wait()

	view := decode[device.ChatView](t, f.do(t, http.MethodGet, "/assistant/chat", nil))
	require.Len(t, view.Messages, 3)
	assert.Equal(t, "Hello!", view.Messages[2].Content)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/assistant/images/latest", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/assistant/images", map[string]string{"prompt": "cat", "aspect": "4:3"}).Code)
	assert.Equal(t, http.StatusAccepted, f.do(t, http.MethodPost, "/assistant/images", map[string]string{"prompt": "cat"}).Code)
	f.device.Wait()

	w = f.do(t, http.MethodGet, "/assistant/images/latest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://img.example/1.png", decode[ai.ImageResult](t, w).URL)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/assistant/chat", nil).Code)
}

func TestApps(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodGet, "/apps/search?q=nots", nil)
	require.Equal(t, http.StatusOK, w.Code)
	apps := decode[map[string][]types.AppSummary](t, w)["apps"]
	require.Len(t, apps, 1)
	assert.Equal(t, "notes", apps[0].ID)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/apps/search?q=n&limit=-1", nil).Code)
	assert.Len(t, decode[map[string][]types.AppSummary](t, f.do(t, http.MethodGet, "/apps", nil))["apps"], 2)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/apps/ghost/status", nil).Code)
}

func TestStreamLogs(t *testing.T) {
	f := setup(t)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/logs", map[string]any{"source": "ui"}).Code)

	w := f.do(t, http.MethodPost, "/logs", map[string]any{
		"source":  "ui",
		"entries": []map[string]any{{"level": "warn", "message": "slow frame", "context": map[string]any{"ms": 40}}},
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
