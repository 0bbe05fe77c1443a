package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/cyberproxy/backend/internal/domain/identity"
	"github.com/cyberproxy/backend/internal/infrastructure/monitoring"
	"github.com/cyberproxy/backend/internal/shared/id"
	"github.com/cyberproxy/backend/internal/shared/types"
)

// DefaultTabURL is the synthetic internal address every tab points at
const DefaultTabURL = "https://cyberproxy.internal"

// Direction selects a neighbor for MoveTab
type Direction string

const (
	MoveLeft  Direction = "left"
	MoveRight Direction = "right"
)

// Store orchestrates tab lifecycle, groups, and bookmarks
type Store struct {
	mu        sync.RWMutex
	tabs      []*types.BrowserTab
	groups    []*types.TabGroup
	bookmarks []*types.ProxyBookmark

	identities *identity.Generator
	metrics    *monitoring.Metrics

	subMu   sync.Mutex
	subs    map[uint64]chan *types.Snapshot
	nextSub uint64
}

// NewStore creates a store seeded with the initial tab. The collection is
// never empty from this point on.
func NewStore(identities *identity.Generator) *Store {
	s := &Store{
		identities: identities,
		subs:       make(map[uint64]chan *types.Snapshot),
	}

	first := &types.BrowserTab{
		ID:            id.NewTabID().String(),
		Title:         "Global Hub 1",
		URL:           DefaultTabURL,
		Identity:      identities.Generate(),
		Videos:        []types.VideoInstance{},
		IsActive:      true,
		SearchResults: []types.SearchResult{},
		SearchSources: []string{},
		CreatedAt:     time.Now(),
	}
	s.tabs = []*types.BrowserTab{first}
	return s
}

// WithMetrics adds metrics tracking to the store
func (s *Store) WithMetrics(metrics *monitoring.Metrics) *Store {
	s.metrics = metrics
	return s
}

// AddTab creates a tab with a fresh identity, activates it, and appends it to
// the end of the ordered collection. groupID may be nil.
func (s *Store) AddTab(groupID *string) *types.BrowserTab {
	s.mu.Lock()

	if groupID != nil && s.findGroup(*groupID) == -1 {
		groupID = nil
	}

	tab := &types.BrowserTab{
		ID:            id.NewTabID().String(),
		Title:         fmt.Sprintf("Proxy Node %d", len(s.tabs)+1),
		URL:           DefaultTabURL,
		Identity:      s.identities.Generate(),
		Videos:        []types.VideoInstance{},
		IsActive:      true,
		GroupID:       groupID,
		SearchResults: []types.SearchResult{},
		SearchSources: []string{},
		CreatedAt:     time.Now(),
	}

	for _, t := range s.tabs {
		t.IsActive = false
	}
	s.tabs = append(s.tabs, tab)

	result := tab.Clone()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.TabsTotal.Inc()
	}
	s.publish()
	return result
}

// CloseTab removes the tab. No-op (returns false) when the ID is unknown or
// when it is the sole remaining tab. If the closed tab was active, the tab
// now at its index (clamped to the last) becomes active.
func (s *Store) CloseTab(tabID string) bool {
	s.mu.Lock()

	if len(s.tabs) <= 1 {
		s.mu.Unlock()
		return false
	}

	idx := s.findTab(tabID)
	if idx == -1 {
		s.mu.Unlock()
		return false
	}

	wasActive := s.tabs[idx].IsActive
	s.tabs = append(s.tabs[:idx], s.tabs[idx+1:]...)

	if wasActive {
		next := idx
		if next >= len(s.tabs) {
			next = len(s.tabs) - 1
		}
		s.tabs[next].IsActive = true
	}

	s.mu.Unlock()
	s.publish()
	return true
}

// SwitchTab activates exactly the named tab. Unknown IDs are a silent no-op.
func (s *Store) SwitchTab(tabID string) bool {
	s.mu.Lock()

	if s.findTab(tabID) == -1 {
		s.mu.Unlock()
		return false
	}

	for _, t := range s.tabs {
		t.IsActive = t.ID == tabID
	}

	s.mu.Unlock()
	s.publish()
	return true
}

// MoveTab swaps the tab at index with its immediate neighbor. Boundary moves
// (index 0 left, last index right) and invalid indices are no-ops.
func (s *Store) MoveTab(index int, direction Direction) bool {
	s.mu.Lock()

	target := index - 1
	if direction == MoveRight {
		target = index + 1
	}

	if index < 0 || index >= len(s.tabs) || target < 0 || target >= len(s.tabs) {
		s.mu.Unlock()
		return false
	}

	s.tabs[index], s.tabs[target] = s.tabs[target], s.tabs[index]

	s.mu.Unlock()
	s.publish()
	return true
}

// UpdateTab replaces the tab with the matching ID wholesale. The stored
// active flag is preserved, for the replaced tab and all others: activation
// changes only through SwitchTab/AddTab/CloseTab.
func (s *Store) UpdateTab(tab *types.BrowserTab) bool {
	if tab == nil {
		return false
	}

	s.mu.Lock()

	idx := s.findTab(tab.ID)
	if idx == -1 {
		s.mu.Unlock()
		return false
	}

	replacement := tab.Clone()
	replacement.IsActive = s.tabs[idx].IsActive
	s.tabs[idx] = replacement

	s.mu.Unlock()
	s.publish()
	return true
}

// Get returns a copy of the tab with the given ID
func (s *Store) Get(tabID string) (*types.BrowserTab, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.findTab(tabID)
	if idx == -1 {
		return nil, false
	}
	return s.tabs[idx].Clone(), true
}

// ActiveTab returns a copy of the currently active tab
func (s *Store) ActiveTab() *types.BrowserTab {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tabs {
		if t.IsActive {
			return t.Clone()
		}
	}
	// Unreachable while the invariant holds; fall back to the first tab
	return s.tabs[0].Clone()
}

// List returns copies of all tabs in display order
func (s *Store) List() []*types.BrowserTab {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tabs := make([]*types.BrowserTab, len(s.tabs))
	for i, t := range s.tabs {
		tabs[i] = t.Clone()
	}
	return tabs
}

// SaveBookmark snapshots the active tab's identity into a new bookmark.
// Duplicates are allowed. An empty name defaults to the identity's location.
func (s *Store) SaveBookmark(name string) *types.ProxyBookmark {
	s.mu.Lock()

	var active *types.BrowserTab
	for _, t := range s.tabs {
		if t.IsActive {
			active = t
			break
		}
	}

	if name == "" {
		name = active.Identity.Location()
	}

	bookmark := &types.ProxyBookmark{
		ID:       id.NewBookmarkID().String(),
		Name:     name,
		Identity: active.Identity,
	}
	s.bookmarks = append(s.bookmarks, bookmark)

	result := *bookmark
	s.mu.Unlock()
	s.publish()
	return &result
}

// ApplyBookmark replaces the active tab's identity with a copy of the
// bookmark's stored identity. Title, videos, and group are untouched.
func (s *Store) ApplyBookmark(bookmarkID string) bool {
	s.mu.Lock()

	var saved *types.ProxyBookmark
	for _, b := range s.bookmarks {
		if b.ID == bookmarkID {
			saved = b
			break
		}
	}
	if saved == nil {
		s.mu.Unlock()
		return false
	}

	for _, t := range s.tabs {
		if t.IsActive {
			t.Identity = saved.Identity
			break
		}
	}

	s.mu.Unlock()
	s.publish()
	return true
}

// Bookmarks returns copies of all saved bookmarks
func (s *Store) Bookmarks() []*types.ProxyBookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.ProxyBookmark, len(s.bookmarks))
	for i, b := range s.bookmarks {
		copied := *b
		out[i] = &copied
	}
	return out
}

// CreateGroup creates a tab group label
func (s *Store) CreateGroup(name, color string) *types.TabGroup {
	s.mu.Lock()

	group := &types.TabGroup{
		ID:    id.NewGroupID().String(),
		Name:  name,
		Color: color,
	}
	s.groups = append(s.groups, group)

	result := *group
	s.mu.Unlock()
	s.publish()
	return &result
}

// DeleteGroup removes the group. Member tabs become ungrouped, never deleted.
func (s *Store) DeleteGroup(groupID string) bool {
	s.mu.Lock()

	idx := s.findGroup(groupID)
	if idx == -1 {
		s.mu.Unlock()
		return false
	}

	s.groups = append(s.groups[:idx], s.groups[idx+1:]...)
	for _, t := range s.tabs {
		if t.GroupID != nil && *t.GroupID == groupID {
			t.GroupID = nil
		}
	}

	s.mu.Unlock()
	s.publish()
	return true
}

// AssignGroup sets or clears (groupID nil) a tab's group membership
func (s *Store) AssignGroup(tabID string, groupID *string) bool {
	s.mu.Lock()

	idx := s.findTab(tabID)
	if idx == -1 || (groupID != nil && s.findGroup(*groupID) == -1) {
		s.mu.Unlock()
		return false
	}

	if groupID == nil {
		s.tabs[idx].GroupID = nil
	} else {
		gid := *groupID
		s.tabs[idx].GroupID = &gid
	}

	s.mu.Unlock()
	s.publish()
	return true
}

// Groups returns copies of all groups
func (s *Store) Groups() []*types.TabGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.TabGroup, len(s.groups))
	for i, g := range s.groups {
		copied := *g
		out[i] = &copied
	}
	return out
}

// Stats returns store statistics
func (s *Store) Stats() types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statsLocked()
}

func (s *Store) statsLocked() types.Stats {
	stats := types.Stats{
		TotalTabs:      len(s.tabs),
		TotalGroups:    len(s.groups),
		TotalBookmarks: len(s.bookmarks),
	}
	for _, t := range s.tabs {
		stats.TotalVideos += len(t.Videos)
		if t.IsActive {
			tid := t.ID
			stats.ActiveTabID = &tid
		}
	}
	return stats
}

// Subscribe registers a snapshot channel. The current state is delivered
// immediately; afterwards a snapshot follows every mutation. Slow consumers
// miss intermediate snapshots rather than blocking the store.
func (s *Store) Subscribe() (uint64, <-chan *types.Snapshot) {
	ch := make(chan *types.Snapshot, 8)

	s.subMu.Lock()
	s.nextSub++
	token := s.nextSub
	s.subs[token] = ch
	s.subMu.Unlock()

	ch <- s.Snapshot()
	return token, ch
}

// Unsubscribe removes a subscriber and closes its channel
func (s *Store) Unsubscribe(token uint64) {
	s.subMu.Lock()
	if ch, ok := s.subs[token]; ok {
		delete(s.subs, token)
		close(ch)
	}
	s.subMu.Unlock()
}

// Snapshot captures the full session state as deep copies
func (s *Store) Snapshot() *types.Snapshot {
	s.mu.RLock()

	snap := &types.Snapshot{
		Tabs:      make([]*types.BrowserTab, len(s.tabs)),
		Groups:    make([]*types.TabGroup, len(s.groups)),
		Bookmarks: make([]*types.ProxyBookmark, len(s.bookmarks)),
		Stats:     s.statsLocked(),
	}
	for i, t := range s.tabs {
		snap.Tabs[i] = t.Clone()
	}
	for i, g := range s.groups {
		copied := *g
		snap.Groups[i] = &copied
	}
	for i, b := range s.bookmarks {
		copied := *b
		snap.Bookmarks[i] = &copied
	}

	s.mu.RUnlock()
	return snap
}

// publish fans the current snapshot out to subscribers and refreshes gauges
func (s *Store) publish() {
	snap := s.Snapshot()

	if s.metrics != nil {
		s.metrics.RecordSession(snap.Stats.TotalTabs, snap.Stats.TotalVideos, snap.Stats.TotalBookmarks)
	}

	s.subMu.Lock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
	s.subMu.Unlock()
}

// findTab returns the index of the tab with the given ID; caller holds mu
func (s *Store) findTab(tabID string) int {
	for i, t := range s.tabs {
		if t.ID == tabID {
			return i
		}
	}
	return -1
}

// findGroup returns the index of the group with the given ID; caller holds mu
func (s *Store) findGroup(groupID string) int {
	for i, g := range s.groups {
		if g.ID == groupID {
			return i
		}
	}
	return -1
}
