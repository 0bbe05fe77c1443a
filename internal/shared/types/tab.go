package types

import "time"

// PlaybackStatus represents video playback states
type PlaybackStatus string

const (
	StatusPlaying   PlaybackStatus = "playing"
	StatusPaused    PlaybackStatus = "paused"
	StatusBuffering PlaybackStatus = "buffering"
)

// VideoInstance represents an embedded player inside a tab.
//
// IP may diverge from the owning tab's identity: per-video rotation is
// independent of tab-level rotation.
type VideoInstance struct {
	ID     string         `json:"id"`
	URL    string         `json:"url"`
	Title  string         `json:"title"`
	Status PlaybackStatus `json:"status"`
	IP     string         `json:"ip"`

	// Stream metadata filled in asynchronously by the media probe, if enabled
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
}

// TabGroup is a purely decorative label for organizing tabs
type TabGroup struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SearchResult is a single video candidate returned by the advisory gateway
type SearchResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// BrowserTab is the per-tab aggregate owned by the session store.
//
// Invariants (enforced by the store):
//   - Exactly one tab has IsActive=true while the collection is non-empty
//   - The collection is never empty: closing the last tab is a no-op
//   - Videos keep insertion order across unrelated mutations
type BrowserTab struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	URL      string          `json:"url"`
	Identity NetworkIdentity `json:"identity"`
	Videos   []VideoInstance `json:"videos"`
	IsActive bool            `json:"is_active"`
	GroupID  *string         `json:"group_id,omitempty"`

	// Asynchronous enrichment state, merged in by the tab service
	Advisory      string         `json:"advisory"`
	Searching     bool           `json:"searching"`
	SearchResults []SearchResult `json:"search_results"`
	SearchSources []string       `json:"search_sources"`

	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a deep copy safe to hand outside the store
func (t *BrowserTab) Clone() *BrowserTab {
	c := *t
	if t.GroupID != nil {
		gid := *t.GroupID
		c.GroupID = &gid
	}
	if t.Videos != nil {
		c.Videos = make([]VideoInstance, len(t.Videos))
		copy(c.Videos, t.Videos)
	}
	if t.SearchResults != nil {
		c.SearchResults = make([]SearchResult, len(t.SearchResults))
		copy(c.SearchResults, t.SearchResults)
	}
	if t.SearchSources != nil {
		c.SearchSources = make([]string, len(t.SearchSources))
		copy(c.SearchSources, t.SearchSources)
	}
	return &c
}

// FindVideo returns the index of the video with the given ID, or -1
func (t *BrowserTab) FindVideo(id string) int {
	for i := range t.Videos {
		if t.Videos[i].ID == id {
			return i
		}
	}
	return -1
}

// Stats contains session store statistics
type Stats struct {
	TotalTabs      int     `json:"total_tabs"`
	TotalVideos    int     `json:"total_videos"`
	TotalGroups    int     `json:"total_groups"`
	TotalBookmarks int     `json:"total_bookmarks"`
	ActiveTabID    *string `json:"active_tab_id,omitempty"`
}

// Snapshot is the full session state pushed to presentation subscribers
// after every store mutation
type Snapshot struct {
	Tabs      []*BrowserTab    `json:"tabs"`
	Groups    []*TabGroup      `json:"groups"`
	Bookmarks []*ProxyBookmark `json:"bookmarks"`
	Stats     Stats            `json:"stats"`
}
