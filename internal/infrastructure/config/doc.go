// Package config provides 12-factor configuration management for PocketOS.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override individual values for development.
//
// Configuration Sections:
//   - Server: HTTP control API (port, host)
//   - Storage: settings store backend (memory or sqlite) and path
//   - AI: chat and image generation endpoints
//   - Catalog: optional directory of extra app definitions
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting of the control API
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Device API on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, STORAGE_DRIVER, STORAGE_PATH, CATALOG_DIR
//   - AI_BASE_URL, AI_API_KEY, AI_CHAT_MODEL, AI_IMAGE_MODEL, AI_TIMEOUT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
