// Package main is the entry point for the CyberProxy backend server.
//
// This application backs the simulated multi-tab proxy browser frontend:
// it owns the tab session state, synthesizes per-tab network identities,
// and enriches tabs with AI advisory text and video search results.
//
// Architecture:
//
//	Frontend (browser UI) → Go Backend → Gemini API (advisory / search)
//
// The server provides:
//   - REST API for tabs, videos, identities, bookmarks, and groups
//   - WebSocket snapshot stream for real-time state updates
//   - Prometheus metrics
//   - Rate limiting and CORS
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	GEMINI_API_KEY=... ./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
