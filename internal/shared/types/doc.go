// Package types defines the shared data model for the CyberProxy session core.
//
// The model is deliberately plain: immutable-by-convention value types that are
// copied whole when they cross a package boundary. The session store never hands
// out live pointers into its own state; every accessor returns a deep copy and
// every mutation is a whole-object replacement.
//
// Key Types:
//   - NetworkIdentity: synthetic proxy identity (IP, location, ISP, latency)
//   - BrowserTab: per-tab aggregate with its ordered video collection
//   - VideoInstance: embedded player with an independently rotatable IP
//   - TabGroup: pure label; tabs reference it by ID, deletion ungroupes tabs
//   - ProxyBookmark: point-in-time snapshot of an identity, never a live reference
package types
