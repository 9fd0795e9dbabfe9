package lockscreen

import "github.com/GriffinCanCode/PocketOS/internal/shared/types"

// Preset is a typography and color bundle for the lock-screen time and date
type Preset struct {
	Name       string `json:"name"`
	FontFamily string `json:"fontFamily"`
	FontWeight int    `json:"fontWeight"`
	TimeColor  string `json:"timeColor"`
	DateColor  string `json:"dateColor"`
}

// Presets is the fixed preset table; PresetIndex points into it
var Presets = []Preset{
	{Name: "Classic", FontFamily: "SF Pro Display", FontWeight: 300, TimeColor: "#ffffff", DateColor: "#ebebf5"},
	{Name: "Bold", FontFamily: "SF Pro Rounded", FontWeight: 800, TimeColor: "#ffffff", DateColor: "#ffffff"},
	{Name: "Serif", FontFamily: "New York", FontWeight: 500, TimeColor: "#f5e6c8", DateColor: "#e0cfa9"},
	{Name: "Mono", FontFamily: "SF Mono", FontWeight: 400, TimeColor: "#a6e3a1", DateColor: "#94e2d5"},
	{Name: "Neon", FontFamily: "SF Pro Display", FontWeight: 700, TimeColor: "#ff2d92", DateColor: "#64d2ff"},
	{Name: "Thin", FontFamily: "Helvetica Neue", FontWeight: 100, TimeColor: "#ffffff", DateColor: "#c7c7cc"},
}

// Widget is one entry of the lock-screen widget catalog
type Widget struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Content string `json:"content"`
}

// DateWeatherWidget is rendered beside the clock, outside the widget row
const DateWeatherWidget = "dateWeather"

// Widgets is the widget catalog in row order
var Widgets = []Widget{
	{ID: "battery", Label: "Battery", Content: "87%"},
	{ID: "weather", Label: "Weather", Content: "72° Sunny"},
	{ID: "calendar", Label: "Calendar", Content: "Team sync 10:00"},
	{ID: "music", Label: "Now Playing", Content: "Lo-fi Beats"},
	{ID: "steps", Label: "Steps", Content: "6,214"},
	{ID: "alarm", Label: "Alarm", Content: "07:00"},
}

// KnownWidget reports whether id may appear in ActiveWidgets
func KnownWidget(id string) bool {
	if id == DateWeatherWidget {
		return true
	}
	for _, w := range Widgets {
		if w.ID == id {
			return true
		}
	}
	return false
}

// DefaultConfig is the configuration used when nothing is persisted
func DefaultConfig() types.LockScreenConfig {
	return types.LockScreenConfig{
		PresetIndex:      0,
		BackgroundEffect: types.BackgroundEffect{Type: types.EffectNone},
		ActiveWidgets: map[string]bool{
			"battery":         true,
			"weather":         true,
			DateWeatherWidget: true,
		},
		Orientation: types.OrientationPortrait,
	}
}
