// Package middleware provides HTTP middleware for the CyberProxy backend.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing for the browser frontend
//   - RateLimit: Per-IP token bucket rate limiting with idle eviction
//   - GlobalRateLimit: Single shared bucket for the whole service
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
package middleware
