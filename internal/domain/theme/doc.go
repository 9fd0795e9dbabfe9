// Package theme maps an (accent, mode) pair to display variables.
//
// Resolution is a pure lookup over the palette tables in palette.toml.
// Liquid glass mode renders translucent surfaces and borders instead of
// solid ones.
package theme
