package render

import "time"

// Kind classifies a render event
type Kind string

const (
	KindSurface       Kind = "surface"
	KindOverlay       Kind = "overlay"
	KindSystemMessage Kind = "system_message"
	KindAppView       Kind = "app_view"
	KindBackButton    Kind = "back_button"
	KindRecents       Kind = "recents"
	KindIconStyle     Kind = "icon_style"
	KindTheme         Kind = "theme"
	KindLanguage      Kind = "language"
	KindLockScreen    Kind = "lockscreen"
	KindNotifications Kind = "notifications"
	KindPeek          Kind = "peek"
	KindClock         Kind = "clock"
	KindVolume        Kind = "volume"
	KindFlashlight    Kind = "flashlight"
	KindAppStatus     Kind = "app_status"
	KindChat          Kind = "chat"
	KindImage         Kind = "image"
)

// Event is one visual change. Target narrows the change to an element
// (an overlay kind, an app id, a clock name); Data carries the payload.
type Event struct {
	Kind   Kind      `json:"kind"`
	Target string    `json:"target,omitempty"`
	Data   any       `json:"data,omitempty"`
	At     time.Time `json:"at"`
}

// Visibility is the payload for show/hide events
type Visibility struct {
	Visible bool `json:"visible"`
}

// Shown and Hidden are the two visibility payloads
var (
	Shown  = Visibility{Visible: true}
	Hidden = Visibility{Visible: false}
)

// ClockTick is the payload of a clock event
type ClockTick struct {
	Time string `json:"time"`
	Date string `json:"date"`
}

// NewClockTick formats t for the lock-screen and home clocks
func NewClockTick(t time.Time) ClockTick {
	return ClockTick{Time: t.Format("15:04"), Date: t.Format("Monday, January 2")}
}

// Clock targets
const (
	ClockLockScreen = "lockscreen"
	ClockHomeWidget = "home_widget"
)
