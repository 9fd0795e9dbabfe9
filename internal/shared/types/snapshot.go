package types

// Snapshot is a read-only view of the whole device state
type Snapshot struct {
	Power         PowerState       `json:"power"`
	Surface       Surface          `json:"surface"`
	ActiveApp     string           `json:"active_app,omitempty"`
	History       []string         `json:"history"`
	BackEnabled   bool             `json:"back_enabled"`
	Overlay       *OverlayKind     `json:"overlay,omitempty"`
	SystemMessage *SystemMessage   `json:"system_message,omitempty"`
	Peek          *Notification    `json:"peek,omitempty"`
	Notifications []Notification   `json:"notifications"`
	Theme         ThemeState       `json:"theme"`
	Language      string           `json:"language"`
	IconStyle     IconStyle        `json:"icon_style"`
	Volume        int              `json:"volume"`
	Flashlight    bool             `json:"flashlight"`
	LockScreen    LockScreenConfig `json:"lock_screen"`
	Profiles      []string         `json:"profiles"`
}
