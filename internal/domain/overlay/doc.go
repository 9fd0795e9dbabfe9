// Package overlay tracks the single navigational overlay shown above the
// base screen. Activating a kind hides whichever kind was showing.
package overlay
