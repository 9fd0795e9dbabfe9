package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. Every method is safe on a nil
// receiver so components can run without instrumentation.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Device metrics
	PowerTransitions   *prometheus.CounterVec
	OverlayActivations *prometheus.CounterVec
	AppsOpened         *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
	NotificationsShown prometheus.Gauge
	SettingsChanges    *prometheus.CounterVec

	// Assistant metrics
	AICalls    *prometheus.CounterVec
	AIDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	mu       sync.RWMutex
	snapshot MetricsSnapshot
}

// MetricsSnapshot holds current values for the JSON API
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"totalRequests"`
	TotalErrors       int64   `json:"totalErrors"`
	PowerTransitions  int64   `json:"powerTransitions"`
	Notifications     int64   `json:"notifications"`
	AICalls           int64   `json:"aiCalls"`
	ActiveConnections int64   `json:"activeConnections"`
	UptimeSeconds     float64 `json:"uptimeSeconds"`
}

// NewMetrics creates a collector backed by its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketos_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pocketos_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		PowerTransitions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketos_power_transitions_total",
				Help: "Power state transitions",
			},
			[]string{"from", "to"},
		),
		OverlayActivations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketos_overlay_activations_total",
				Help: "Overlay activations by kind",
			},
			[]string{"kind"},
		),
		AppsOpened: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketos_apps_opened_total",
				Help: "Views shown by app id",
			},
			[]string{"app"},
		),
		NotificationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketos_notifications_total",
				Help: "Notification events",
			},
			[]string{"event"},
		),
		NotificationsShown: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "pocketos_notifications_active",
				Help: "Notifications currently in the shade",
			},
		),
		SettingsChanges: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketos_settings_changes_total",
				Help: "Persisted setting changes by key",
			},
			[]string{"key"},
		),

		AICalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketos_ai_calls_total",
				Help: "Assistant backend calls",
			},
			[]string{"kind", "status"},
		),
		AIDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pocketos_ai_duration_seconds",
				Help:    "Assistant backend call duration in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"kind"},
		),

		WSConnections: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "pocketos_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pocketos_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	f.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "pocketos_uptime_seconds",
			Help: "Process uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordPowerTransition records a power state change
func (m *Metrics) RecordPowerTransition(from, to string) {
	if m == nil {
		return
	}
	m.PowerTransitions.WithLabelValues(from, to).Inc()
	m.mu.Lock()
	m.snapshot.PowerTransitions++
	m.mu.Unlock()
}

// RecordOverlay records an overlay activation
func (m *Metrics) RecordOverlay(kind string) {
	if m == nil {
		return
	}
	m.OverlayActivations.WithLabelValues(kind).Inc()
}

// RecordAppOpened records a view being shown
func (m *Metrics) RecordAppOpened(app string) {
	if m == nil {
		return
	}
	m.AppsOpened.WithLabelValues(app).Inc()
}

// RecordNotification records a notification event (posted, dismissed, cleared)
func (m *Metrics) RecordNotification(event string, active int) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(event).Inc()
	m.NotificationsShown.Set(float64(active))
	if event == "posted" {
		m.mu.Lock()
		m.snapshot.Notifications++
		m.mu.Unlock()
	}
}

// RecordSettingChange records a persisted setting write
func (m *Metrics) RecordSettingChange(key string) {
	if m == nil {
		return
	}
	m.SettingsChanges.WithLabelValues(key).Inc()
}

// RecordAICall records an assistant backend call
func (m *Metrics) RecordAICall(kind, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.AICalls.WithLabelValues(kind, status).Inc()
	m.AIDuration.WithLabelValues(kind).Observe(duration.Seconds())
	m.mu.Lock()
	m.snapshot.AICalls++
	m.mu.Unlock()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns the current summary values
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
