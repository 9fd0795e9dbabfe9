package types

import "fmt"

// PowerState is the screen-power lifecycle state
type PowerState int

const (
	PowerOff PowerState = iota
	PowerBooting
	PowerLocked
	PowerUnlocked
	PowerSystemMessage
)

// String returns the string representation of the state
func (s PowerState) String() string {
	switch s {
	case PowerOff:
		return "off"
	case PowerBooting:
		return "booting"
	case PowerLocked:
		return "locked"
	case PowerUnlocked:
		return "unlocked"
	case PowerSystemMessage:
		return "system_message"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name
func (s PowerState) MarshalText() ([]byte, error) {
	if s < PowerOff || s > PowerSystemMessage {
		return nil, fmt.Errorf("invalid power state %d", int(s))
	}
	return []byte(s.String()), nil
}

// ScreenOn reports whether the screen is lit and interactive
func (s PowerState) ScreenOn() bool {
	return s == PowerLocked || s == PowerUnlocked
}

// Surface returns the top-level surface the state displays
func (s PowerState) Surface() Surface {
	switch s {
	case PowerBooting:
		return SurfaceBootSplash
	case PowerLocked:
		return SurfaceLockScreen
	case PowerUnlocked:
		return SurfaceHome
	case PowerSystemMessage:
		return SurfaceSystemMessage
	default:
		return SurfaceScreenOff
	}
}

// Surface is a top-level display surface. Exactly one is visible.
type Surface string

const (
	SurfaceScreenOff     Surface = "screen_off"
	SurfaceBootSplash    Surface = "boot_splash"
	SurfaceLockScreen    Surface = "lock_screen"
	SurfaceHome          Surface = "home"
	SurfaceSystemMessage Surface = "system_message"
)

// SystemMessage is the text shown during shutdown and restart
type SystemMessage struct {
	Text    string `json:"text"`
	Spinner bool   `json:"spinner"`
}
