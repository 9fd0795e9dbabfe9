// Package middleware provides the HTTP middleware stack for the PocketOS API.
//
//   - CORS: cross-origin access for browser front ends
//   - RateLimit: per-IP token bucket, idle clients swept periodically
//   - GlobalRateLimit: one bucket for every caller
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
