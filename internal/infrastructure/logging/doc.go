// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Core components take a *Logger and derive a named child with Component,
// so every line carries the component that emitted it (navigation, power,
// lockscreen, ...).
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	nav := logger.Component("navigation")
//	nav.Debug("showing app", zap.String("app_id", "settings"))
package logging
