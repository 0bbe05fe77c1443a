// Package http provides HTTP handlers and routing for the CyberProxy REST API.
//
// This package implements all HTTP endpoints using the Gin framework, covering
// tab management, video players, identity rotation, bookmarks, and tab groups.
//
// Endpoints:
//   - Health: / and /health
//   - Tabs: /tabs, /tabs/:id, /tabs/:id/focus, /tabs/move
//   - Search: /tabs/:id/search (async; results arrive via snapshot push)
//   - Identity: /tabs/:id/identity/rotate, /tabs/:id/identity/regenerate
//   - Videos: /tabs/:id/videos, /tabs/:id/videos/:video_id
//   - Bookmarks: /bookmarks, /bookmarks/:id/apply
//   - Groups: /groups, /groups/:id, /tabs/:id/group
//
// Mutations respond immediately; enrichment (advisory text, search results)
// is merged in asynchronously and reaches clients via the WebSocket snapshot
// stream rather than these endpoints.
//
// Example Usage:
//
//	handlers := http.NewHandlers(store, tabService)
//	router.GET("/health", handlers.Health)
//	router.POST("/tabs/:id/focus", handlers.FocusTab)
package http
