package types

// Accent is the theme accent color name
type Accent string

const (
	AccentBlue   Accent = "blue"
	AccentGreen  Accent = "green"
	AccentPurple Accent = "purple"
	AccentOrange Accent = "orange"
)

// Mode is the theme appearance mode
type Mode string

const (
	ModeDark        Mode = "dark"
	ModeLight       Mode = "light"
	ModeLiquidGlass Mode = "liquidGlass"
)

// ThemeState is the persisted theme selection
type ThemeState struct {
	Accent Accent `json:"accent"`
	Mode   Mode   `json:"mode"`
}

// DefaultTheme returns the theme used when nothing is persisted
func DefaultTheme() ThemeState {
	return ThemeState{Accent: AccentBlue, Mode: ModeDark}
}

// IconStyle is the persisted home-screen icon presentation
type IconStyle struct {
	Shape string `json:"shape"`
	Size  string `json:"size"`
}

// DefaultIconStyle returns the icon style used when nothing is persisted
func DefaultIconStyle() IconStyle {
	return IconStyle{Shape: "rounded", Size: "medium"}
}

// Icon style vocabularies
var (
	IconShapes = []string{"rounded", "circle", "square", "squircle"}
	IconSizes  = []string{"small", "medium", "large"}
)

// Languages supported by the label switch
var Languages = []string{"en", "es"}

// DefaultLanguage is used when nothing is persisted
const DefaultLanguage = "en"

// Volume bounds
const (
	VolumeMin     = 0
	VolumeMax     = 100
	VolumeStep    = 10
	VolumeDefault = 50
)
