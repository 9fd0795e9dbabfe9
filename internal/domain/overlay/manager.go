package overlay

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PocketOS/internal/render"
	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"go.uber.org/zap"
)

// ErrUnknownKind is returned for overlay kinds outside the fixed set
var ErrUnknownKind = errors.New("unknown overlay kind")

// Manager keeps at most one navigational overlay active. Not safe for
// concurrent use; callers run it on the device loop.
type Manager struct {
	active  types.OverlayKind
	sink    render.Sink
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewManager creates a manager with nothing active
func NewManager(sink render.Sink, metrics *monitoring.Metrics, logger *logging.Logger) *Manager {
	if sink == nil {
		sink = render.Nop
	}
	return &Manager{
		sink:    sink,
		metrics: metrics,
		logger:  logger.Component("overlay"),
	}
}

// Activate deactivates every other kind, then shows kind
func (m *Manager) Activate(kind types.OverlayKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if m.active == kind {
		return nil
	}

	m.DeactivateAll()
	m.active = kind
	m.sink.Render(render.Event{Kind: render.KindOverlay, Target: string(kind), Data: render.Shown})
	m.metrics.RecordOverlay(string(kind))
	m.logger.Debug("overlay activated", zap.String("kind", string(kind)))
	return nil
}

// Deactivate hides kind if it is the active overlay. It reports whether
// anything changed.
func (m *Manager) Deactivate(kind types.OverlayKind) bool {
	if m.active == "" || m.active != kind {
		return false
	}
	m.hide()
	return true
}

// DeactivateAll hides whatever is active
func (m *Manager) DeactivateAll() {
	if m.active != "" {
		m.hide()
	}
}

// Active returns the active overlay, if any
func (m *Manager) Active() (types.OverlayKind, bool) {
	return m.active, m.active != ""
}

// IsActive reports whether kind is showing
func (m *Manager) IsActive(kind types.OverlayKind) bool {
	return m.active != "" && m.active == kind
}

func (m *Manager) hide() {
	kind := m.active
	m.active = ""
	m.sink.Render(render.Event{Kind: render.KindOverlay, Target: string(kind), Data: render.Hidden})
	m.logger.Debug("overlay deactivated", zap.String("kind", string(kind)))
}
