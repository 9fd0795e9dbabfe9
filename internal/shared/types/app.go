package types

// Reserved app identifiers. HomeScreen is the navigation base; the two view
// ids are synthetic listings rendered on demand.
const (
	HomeScreen     = "homeScreen"
	RecentAppsView = "recentAppsView"
	AllAppsView    = "allAppsView"
)

// IsSyntheticView reports whether id names a transient listing view
func IsSyntheticView(id string) bool {
	return id == RecentAppsView || id == AllAppsView
}

// AppSummary is the catalog entry exposed to the render layer and API
type AppSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IconRef     string `json:"icon_ref"`
	HeaderText  string `json:"header_text,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// RecentApp is one entry of the derived recents list
type RecentApp struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IconRef     string `json:"icon_ref"`
}
