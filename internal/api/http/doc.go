// Package http exposes the PocketOS device as a JSON REST API using Gin.
//
// Inputs mirror the handset's physical and touch controls; every visual
// change they cause is also pushed on the WebSocket render stream.
//
// Endpoints:
//   - Health: /, /health, /state
//   - Apps: /apps, /apps/search, /apps/recents, /apps/:id/open, /apps/:id/status
//   - Navigation: /nav/back, /nav/home
//   - Power: /power/toggle, /power/press, /power/release, /power/shutdown, /power/restart, /power/lock
//   - Lock screen: /lockscreen/press, /lockscreen/click, /lockscreen/config, /lockscreen/profiles
//   - Overlays: /overlays/:kind/open, /overlays/:kind/close
//   - Notifications: /notifications, /notifications/:id
//   - Settings: /settings/theme, /settings/language, /settings/icons, /settings/volume/*
//   - Assistant: /assistant/chat, /assistant/images
//   - UI logs: /logs
//
// Example Usage:
//
//	handlers := http.NewHandlers(dev, metrics, logger)
//	handlers.Register(router)
package http
