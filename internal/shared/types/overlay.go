package types

// OverlayKind names a transient surface layered above the base screen
type OverlayKind string

const (
	OverlayNotificationShade   OverlayKind = "notification_shade"
	OverlayPowerMenu           OverlayKind = "power_menu"
	OverlayVolumeIndicator     OverlayKind = "volume_indicator"
	OverlaySystemMessage       OverlayKind = "system_message"
	OverlayBootSplash          OverlayKind = "boot_splash"
	OverlayScreenOff           OverlayKind = "screen_off"
	OverlayAlbumArt            OverlayKind = "album_art"
	OverlayLockScreenCustomize OverlayKind = "lockscreen_customize"
)

// OverlayKinds lists every overlay kind in display order
func OverlayKinds() []OverlayKind {
	return []OverlayKind{
		OverlayNotificationShade,
		OverlayPowerMenu,
		OverlayVolumeIndicator,
		OverlaySystemMessage,
		OverlayBootSplash,
		OverlayScreenOff,
		OverlayAlbumArt,
		OverlayLockScreenCustomize,
	}
}

// Valid reports whether k is a known overlay kind
func (k OverlayKind) Valid() bool {
	for _, known := range OverlayKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// UserOpenable reports whether the kind may be opened directly by a user
// gesture rather than by a power transition.
func (k OverlayKind) UserOpenable() bool {
	switch k {
	case OverlayNotificationShade, OverlayAlbumArt:
		return true
	default:
		return false
	}
}
