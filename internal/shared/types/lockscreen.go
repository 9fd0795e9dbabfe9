package types

// EffectType selects the lock-screen background effect
type EffectType string

const (
	EffectNone    EffectType = "none"
	EffectTint    EffectType = "tint"
	EffectOverlay EffectType = "overlay"
)

// Valid reports whether t is a known effect type
func (t EffectType) Valid() bool {
	return t == EffectNone || t == EffectTint || t == EffectOverlay
}

// BackgroundEffect is the lock-screen background treatment
type BackgroundEffect struct {
	Type  EffectType `json:"type"`
	Color string     `json:"color"`
}

// Orientation is the lock-screen clock layout
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// Valid reports whether o is a known orientation
func (o Orientation) Valid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// LockScreenConfig is the full lock-screen customization
type LockScreenConfig struct {
	PresetIndex      int              `json:"presetIndex"`
	BackgroundEffect BackgroundEffect `json:"backgroundEffect"`
	ActiveWidgets    map[string]bool  `json:"activeWidgets"`
	Orientation      Orientation      `json:"orientation"`
}

// Clone returns a deep copy
func (c LockScreenConfig) Clone() LockScreenConfig {
	out := c
	out.ActiveWidgets = make(map[string]bool, len(c.ActiveWidgets))
	for k, v := range c.ActiveWidgets {
		out.ActiveWidgets[k] = v
	}
	return out
}
