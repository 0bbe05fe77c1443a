// Package monitoring provides Prometheus metrics for the session core.
//
// Exposed families:
//   - HTTP request counts, durations, and sizes (gin middleware)
//   - Session gauges: open tabs, active videos, groups, bookmarks
//   - Gateway counters: advisory/search outcomes and provider fallbacks
//   - WebSocket connection gauge
package monitoring
