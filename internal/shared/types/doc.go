// Package types provides shared data structures for the PocketOS device core.
//
// Core Types:
//   - PowerState, Surface: screen-power lifecycle and the visible surface
//   - OverlayKind: transient surfaces layered over the base screen
//   - Notification: posted messages and the lock-screen peek
//   - ThemeState, IconStyle: persisted appearance settings
//   - LockScreenConfig: lock-screen customization and profile snapshots
//   - Snapshot: read-only view of the whole device
//
// Example Usage:
//
//	snap := device.Snapshot()
//	if snap.Power == types.PowerLocked {
//	    fmt.Println("showing", snap.Power.Surface())
//	}
package types
