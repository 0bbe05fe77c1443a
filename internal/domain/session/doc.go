// Package session owns the browser session state: the ordered tab collection,
// the active-tab selector, tab groups, and saved proxy bookmarks.
//
// The Store is the only shared mutable state in the system. Every mutation is
// applied under one lock as a single whole-object transition, so no operation
// can partially observe another, and every accessor returns deep copies rather
// than live pointers.
//
// Invariants:
//   - Exactly one tab is active while the collection is non-empty
//   - The collection is never empty: closing the last tab is a no-op
//   - Precondition violations (unknown IDs, boundary moves) are silent no-ops,
//     never errors; they are routine UI races
//
// Close rule: when the active tab is closed, activation moves to the tab that
// now occupies the closed tab's index, clamped to the new last index.
//
// Presentation layers subscribe to full snapshots; they never mutate state
// directly.
package session
