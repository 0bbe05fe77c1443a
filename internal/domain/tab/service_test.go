package tab

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberproxy/backend/internal/domain/identity"
	"github.com/cyberproxy/backend/internal/domain/session"
	"github.com/cyberproxy/backend/internal/shared/types"
)

// fakeGateway lets tests control exactly when each advisory/search call
// completes, keyed by IP and query respectively.
type fakeGateway struct {
	mu            sync.Mutex
	advice        string
	blockAdvice   bool
	adviceWaiters map[string]chan string
	searchWaiters map[string]chan types.SearchBatch
	searchCalls   int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		advice:        "all quiet",
		adviceWaiters: make(map[string]chan string),
		searchWaiters: make(map[string]chan types.SearchBatch),
	}
}

func (g *fakeGateway) Advisory(ctx context.Context, location, currentIP string) string {
	g.mu.Lock()
	if !g.blockAdvice {
		advice := g.advice
		g.mu.Unlock()
		return advice
	}
	ch := make(chan string, 1)
	g.adviceWaiters[currentIP] = ch
	g.mu.Unlock()
	return <-ch
}

func (g *fakeGateway) SearchCandidates(ctx context.Context, query string) types.SearchBatch {
	g.mu.Lock()
	g.searchCalls++
	ch := make(chan types.SearchBatch, 1)
	g.searchWaiters[query] = ch
	g.mu.Unlock()
	return <-ch
}

func (g *fakeGateway) searchStarted(query string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.searchWaiters[query]
	return ok
}

func (g *fakeGateway) resolveSearch(query string, batch types.SearchBatch) {
	g.mu.Lock()
	ch := g.searchWaiters[query]
	g.mu.Unlock()
	ch <- batch
}

func (g *fakeGateway) adviceStarted(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.adviceWaiters[ip]
	return ok
}

func (g *fakeGateway) resolveAdvice(ip, text string) {
	g.mu.Lock()
	ch := g.adviceWaiters[ip]
	g.mu.Unlock()
	ch <- text
}

func (g *fakeGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.searchCalls
}

func newTestService() (*Service, *session.Store, *fakeGateway) {
	gen := identity.NewWithSeed(3)
	store := session.NewStore(gen)
	gw := newFakeGateway()
	return NewService(store, gw, gen, nil), store, gw
}

func seedTabID(store *session.Store) string {
	return store.List()[0].ID
}

func TestDirectURLBypassesProvider(t *testing.T) {
	svc, store, gw := newTestService()
	tabID := seedTabID(store)

	svc.Search(tabID, "https://example.com/v.mp4")

	tab, _ := store.Get(tabID)
	require.Len(t, tab.Videos, 1)
	assert.Equal(t, "https://example.com/v.mp4", tab.Videos[0].URL)
	assert.Equal(t, 0, gw.calls(), "provider must not be called for direct URLs")
	assert.False(t, tab.Searching)
}

func TestAddVideoDefaults(t *testing.T) {
	svc, store, _ := newTestService()
	tabID := seedTabID(store)

	video, ok := svc.AddVideo(tabID, "https://example.com/a.mp4", "")
	require.True(t, ok)

	tab, _ := store.Get(tabID)
	assert.Equal(t, "Stream Source 1", video.Title)
	assert.Equal(t, tab.Identity.IP, video.IP)
	assert.Equal(t, types.StatusPlaying, video.Status)

	second, _ := svc.AddVideo(tabID, "https://example.com/b.mp4", "")
	assert.Equal(t, "Stream Source 2", second.Title)
	assert.NotEqual(t, video.ID, second.ID)
}

func TestAddVideoUnknownTab(t *testing.T) {
	svc, _, _ := newTestService()

	_, ok := svc.AddVideo("tab_ghost", "u", "")
	assert.False(t, ok)
}

func TestQuickLaunchUsesSampleTable(t *testing.T) {
	svc, store, _ := newTestService()
	tabID := seedTabID(store)

	video, ok := svc.QuickLaunch(tabID)
	require.True(t, ok)
	assert.Contains(t, identity.SampleStreams, video.URL)
}

func TestRemoveVideo(t *testing.T) {
	svc, store, _ := newTestService()
	tabID := seedTabID(store)

	a, _ := svc.AddVideo(tabID, "u1", "")
	b, _ := svc.AddVideo(tabID, "u2", "")

	require.True(t, svc.RemoveVideo(tabID, a.ID))
	assert.False(t, svc.RemoveVideo(tabID, "vid_ghost"))

	tab, _ := store.Get(tabID)
	require.Len(t, tab.Videos, 1)
	assert.Equal(t, b.ID, tab.Videos[0].ID)
}

func TestRotateVideoIPChangesOnlyThatIP(t *testing.T) {
	svc, store, _ := newTestService()
	tabID := seedTabID(store)

	a, _ := svc.AddVideo(tabID, "u1", "")
	svc.AddVideo(tabID, "u2", "")

	before, _ := store.Get(tabID)
	require.True(t, svc.RotateVideoIP(tabID, a.ID))
	after, _ := store.Get(tabID)

	assert.NotEqual(t, before.Videos[0].IP, after.Videos[0].IP)

	// Everything except the targeted IP is identical
	assert.Equal(t, before.Videos[0].ID, after.Videos[0].ID)
	assert.Equal(t, before.Videos[0].URL, after.Videos[0].URL)
	assert.Equal(t, before.Videos[0].Title, after.Videos[0].Title)
	assert.Equal(t, before.Videos[0].Status, after.Videos[0].Status)
	assert.Equal(t, before.Videos[1], after.Videos[1])
	assert.Equal(t, before.Identity, after.Identity)
	assert.Equal(t, before.Title, after.Title)
}

func TestSetPlayback(t *testing.T) {
	svc, store, _ := newTestService()
	tabID := seedTabID(store)

	a, _ := svc.AddVideo(tabID, "u", "")
	require.True(t, svc.SetPlayback(tabID, a.ID, types.StatusPaused))

	tab, _ := store.Get(tabID)
	assert.Equal(t, types.StatusPaused, tab.Videos[0].Status)
}

func TestRotateIdentityKeepsLocation(t *testing.T) {
	svc, store, _ := newTestService()
	tabID := seedTabID(store)

	before, _ := store.Get(tabID)
	require.True(t, svc.RotateIdentity(tabID))
	after, _ := store.Get(tabID)

	assert.Equal(t, before.Identity.Country, after.Identity.Country)
	assert.Equal(t, before.Identity.City, after.Identity.City)
	assert.Equal(t, before.Identity.ISP, after.Identity.ISP)
	assert.Equal(t, before.Identity.LatencyMs, after.Identity.LatencyMs)
	assert.NotEqual(t, before.Identity.IP, after.Identity.IP)
}

func TestRegenerateIdentityReplacesWholesale(t *testing.T) {
	svc, store, _ := newTestService()
	tabID := seedTabID(store)

	svc.AddVideo(tabID, "u", "")
	before, _ := store.Get(tabID)

	require.True(t, svc.RegenerateIdentity(tabID))
	after, _ := store.Get(tabID)

	assert.NotEqual(t, before.Identity.IP, after.Identity.IP)
	// Videos are untouched by identity changes
	assert.Equal(t, before.Videos, after.Videos)
}

func TestOpenShowsPlaceholderUntilAdviceLands(t *testing.T) {
	svc, store, gw := newTestService()
	gw.blockAdvice = true

	tab := svc.Open(nil)
	assert.Equal(t, AdvisoryPlaceholder, tab.Advisory)

	require.Eventually(t, func() bool {
		return gw.adviceStarted(tab.Identity.IP)
	}, time.Second, 5*time.Millisecond)

	gw.resolveAdvice(tab.Identity.IP, "use the Frankfurt relay")

	require.Eventually(t, func() bool {
		current, ok := store.Get(tab.ID)
		return ok && current.Advisory == "use the Frankfurt relay"
	}, time.Second, 5*time.Millisecond)
}

func TestAdvisoryForClosedTabIsDropped(t *testing.T) {
	svc, store, gw := newTestService()
	gw.blockAdvice = true

	tab := svc.Open(nil)
	require.Eventually(t, func() bool {
		return gw.adviceStarted(tab.Identity.IP)
	}, time.Second, 5*time.Millisecond)

	require.True(t, store.CloseTab(tab.ID))
	gw.resolveAdvice(tab.Identity.IP, "too late")

	// The merge must observe the missing tab and drop the result
	time.Sleep(50 * time.Millisecond)
	_, ok := store.Get(tab.ID)
	assert.False(t, ok)
	assert.Len(t, store.List(), 1)
}

func TestOverlappingSearchesLatestWins(t *testing.T) {
	svc, store, gw := newTestService()
	tabID := seedTabID(store)

	svc.Search(tabID, "first")
	require.Eventually(t, func() bool { return gw.searchStarted("first") }, time.Second, 5*time.Millisecond)

	svc.Search(tabID, "second")
	require.Eventually(t, func() bool { return gw.searchStarted("second") }, time.Second, 5*time.Millisecond)

	// The second (newest) request resolves first and wins
	gw.resolveSearch("second", types.SearchBatch{
		Results: []types.SearchResult{{Title: "winner", URL: "w"}},
		Sources: []string{"src-2"},
	})

	require.Eventually(t, func() bool {
		tab, _ := store.Get(tabID)
		return !tab.Searching && len(tab.SearchResults) == 1 && tab.SearchResults[0].Title == "winner"
	}, time.Second, 5*time.Millisecond)

	// The superseded first response must be discarded, not merged
	gw.resolveSearch("first", types.SearchBatch{
		Results: []types.SearchResult{{Title: "stale", URL: "s"}},
		Sources: []string{"src-1"},
	})

	time.Sleep(50 * time.Millisecond)
	tab, _ := store.Get(tabID)
	require.Len(t, tab.SearchResults, 1)
	assert.Equal(t, "winner", tab.SearchResults[0].Title)
	assert.Equal(t, []string{"src-2"}, tab.SearchSources)
	assert.False(t, tab.Searching)
}

func TestSearchMarksSearching(t *testing.T) {
	svc, store, gw := newTestService()
	tabID := seedTabID(store)

	svc.Search(tabID, "pending")
	tab, _ := store.Get(tabID)
	assert.True(t, tab.Searching)

	require.Eventually(t, func() bool { return gw.searchStarted("pending") }, time.Second, 5*time.Millisecond)
	gw.resolveSearch("pending", types.SearchBatch{Results: []types.SearchResult{}, Sources: []string{}})

	require.Eventually(t, func() bool {
		tab, _ := store.Get(tabID)
		return !tab.Searching
	}, time.Second, 5*time.Millisecond)
}
