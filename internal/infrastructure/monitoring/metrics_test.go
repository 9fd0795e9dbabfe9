package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsIsolatedRegistries(t *testing.T) {
	// Two collectors must not collide on registration
	a := NewMetrics()
	b := NewMetrics()

	a.RecordPowerTransition("off", "booting")
	assert.Equal(t, 1.0, testutil.ToFloat64(a.PowerTransitions.WithLabelValues("off", "booting")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.PowerTransitions.WithLabelValues("off", "booting")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordPowerTransition("off", "booting")
		m.RecordOverlay("shade")
		m.RecordNotification("posted", 1)
		m.RecordAICall("chat", "ok", time.Second)
		m.IncWSConnections()
		_ = m.Snapshot()
	})
}

func TestSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordHTTPRequest("GET", "/api/state", "200", time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/apps/:id", "404", time.Millisecond)
	m.RecordNotification("posted", 1)
	m.RecordNotification("dismissed", 0)
	m.RecordAICall("chat", "ok", time.Second)
	m.IncWSConnections()

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.TotalRequests)
	assert.Equal(t, int64(1), s.TotalErrors)
	assert.Equal(t, int64(1), s.Notifications)
	assert.Equal(t, int64(1), s.AICalls)
	assert.Equal(t, int64(1), s.ActiveConnections)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.NotificationsShown))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(Middleware(m))
	r.GET("/apps/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/apps/notes", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/apps/:id", "204")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "pocketos_uptime_seconds"))
}
