//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cyberproxy/backend/internal/domain/advisory"
	"github.com/cyberproxy/backend/internal/shared/types"
	"github.com/cyberproxy/backend/tests/helpers/testutil"
)

func do(t *testing.T, env *testutil.Env, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestTabLifecycle(t *testing.T) {
	env := testutil.NewEnv(t, testutil.NewMockProvider(t))

	// Seed tab exists from the start
	w := do(t, env, http.MethodGet, "/tabs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listing struct {
		Tabs  []types.BrowserTab `json:"tabs"`
		Stats types.Stats        `json:"stats"`
	}
	decode(t, w, &listing)
	require.Len(t, listing.Tabs, 1)
	assert.Equal(t, "Global Hub 1", listing.Tabs[0].Title)
	assert.True(t, listing.Tabs[0].IsActive)

	seedID := listing.Tabs[0].ID

	// Open a second tab; it becomes active
	w = do(t, env, http.MethodPost, "/tabs", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var opened struct {
		Tab types.BrowserTab `json:"tab"`
	}
	decode(t, w, &opened)
	assert.Equal(t, "Proxy Node 2", opened.Tab.Title)
	assert.True(t, opened.Tab.IsActive)

	// Focus back on the seed tab
	w = do(t, env, http.MethodPost, "/tabs/"+seedID+"/focus", nil)
	require.Equal(t, http.StatusOK, w.Code)

	active := env.Store.ActiveTab()
	require.NotNil(t, active)
	assert.Equal(t, seedID, active.ID)

	// Close the second tab
	w = do(t, env, http.MethodDelete, "/tabs/"+opened.Tab.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Closing the last remaining tab is refused
	w = do(t, env, http.MethodDelete, "/tabs/"+seedID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var closed struct {
		Success bool `json:"success"`
	}
	decode(t, w, &closed)
	assert.False(t, closed.Success)
	assert.Len(t, env.Store.List(), 1)
}

func TestVideoFlow(t *testing.T) {
	env := testutil.NewEnv(t, testutil.NewMockProvider(t))
	tabID := env.Store.List()[0].ID

	w := do(t, env, http.MethodPost, "/tabs/"+tabID+"/videos", map[string]string{
		"url": "https://example.com/feed.m3u8",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var added struct {
		Video types.VideoInstance `json:"video"`
	}
	decode(t, w, &added)
	assert.Equal(t, "Stream Source 1", added.Video.Title)
	assert.Equal(t, types.StatusPlaying, added.Video.Status)

	// Quick launch picks a built-in sample
	w = do(t, env, http.MethodPost, "/tabs/"+tabID+"/videos/quick", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// Pause the first video
	w = do(t, env, http.MethodPut, "/tabs/"+tabID+"/videos/"+added.Video.ID+"/playback", map[string]string{
		"status": "paused",
	})
	require.Equal(t, http.StatusOK, w.Code)

	tab, _ := env.Store.Get(tabID)
	assert.Equal(t, types.StatusPaused, tab.Videos[0].Status)

	// Rotate its IP
	w = do(t, env, http.MethodPost, "/tabs/"+tabID+"/videos/"+added.Video.ID+"/rotate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rotated, _ := env.Store.Get(tabID)
	assert.NotEqual(t, added.Video.IP, rotated.Videos[0].IP)

	// Remove it
	w = do(t, env, http.MethodDelete, "/tabs/"+tabID+"/videos/"+added.Video.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	final, _ := env.Store.Get(tabID)
	assert.Len(t, final.Videos, 1)
}

func TestBookmarkFlow(t *testing.T) {
	env := testutil.NewEnv(t, testutil.NewMockProvider(t))

	w := do(t, env, http.MethodPost, "/bookmarks", map[string]string{"name": "fast route"})
	require.Equal(t, http.StatusCreated, w.Code)

	var saved struct {
		Bookmark types.ProxyBookmark `json:"bookmark"`
	}
	decode(t, w, &saved)
	assert.Equal(t, "fast route", saved.Bookmark.Name)

	// Open a fresh tab and apply the bookmark onto it
	do(t, env, http.MethodPost, "/tabs", nil)

	w = do(t, env, http.MethodPost, "/bookmarks/"+saved.Bookmark.ID+"/apply", nil)
	require.Equal(t, http.StatusOK, w.Code)

	active := env.Store.ActiveTab()
	require.NotNil(t, active)
	assert.Equal(t, saved.Bookmark.Identity.IP, active.Identity.IP)
	assert.Equal(t, saved.Bookmark.Identity.Country, active.Identity.Country)
}

func TestGroupFlow(t *testing.T) {
	env := testutil.NewEnv(t, testutil.NewMockProvider(t))

	w := do(t, env, http.MethodPost, "/groups", map[string]string{
		"name":  "work",
		"color": "#ff8800",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Group types.TabGroup `json:"group"`
	}
	decode(t, w, &created)

	// New tab assigned to the group at creation
	w = do(t, env, http.MethodPost, "/tabs", map[string]*string{"group_id": &created.Group.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	var opened struct {
		Tab types.BrowserTab `json:"tab"`
	}
	decode(t, w, &opened)
	require.NotNil(t, opened.Tab.GroupID)
	assert.Equal(t, created.Group.ID, *opened.Tab.GroupID)

	// Deleting the group detaches its tabs
	w = do(t, env, http.MethodDelete, "/groups/"+created.Group.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	tab, _ := env.Store.Get(opened.Tab.ID)
	assert.Nil(t, tab.GroupID)
}

func TestSearchMergesProviderResults(t *testing.T) {
	provider := new(testutil.MockProvider)
	provider.On("GenerateText", mock.Anything, mock.Anything).Return("stable route", nil).Maybe()
	provider.On("GenerateSearch", mock.Anything, mock.Anything).Return(
		"```json\n[{\"title\":\"City Cam\",\"url\":\"https://example.com/cam\"}]\n```",
		[]string{"https://example.com/about"},
		nil,
	)

	env := testutil.NewEnv(t, provider)
	tabID := env.Store.List()[0].ID

	w := do(t, env, http.MethodPost, "/tabs/"+tabID+"/search", map[string]string{"query": "city cams"})
	require.Equal(t, http.StatusAccepted, w.Code)

	require.Eventually(t, func() bool {
		tab, _ := env.Store.Get(tabID)
		return !tab.Searching && len(tab.SearchResults) == 1
	}, 2*time.Second, 10*time.Millisecond)

	tab, _ := env.Store.Get(tabID)
	assert.Equal(t, "City Cam", tab.SearchResults[0].Title)
	assert.Equal(t, []string{"https://example.com/about"}, tab.SearchSources)
}

func TestAdvisoryFallsBackWithoutProvider(t *testing.T) {
	env := testutil.NewEnv(t, nil)

	w := do(t, env, http.MethodPost, "/tabs", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var opened struct {
		Tab types.BrowserTab `json:"tab"`
	}
	decode(t, w, &opened)

	require.Eventually(t, func() bool {
		tab, _ := env.Store.Get(opened.Tab.ID)
		return tab != nil && tab.Advisory == advisory.FallbackAdvice
	}, 2*time.Second, 10*time.Millisecond)
}

func TestValidationErrors(t *testing.T) {
	env := testutil.NewEnv(t, testutil.NewMockProvider(t))

	w := do(t, env, http.MethodPost, "/tabs/bad%20id/focus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, env, http.MethodPost, "/tabs/move", map[string]interface{}{
		"index":     0,
		"direction": "up",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, env, http.MethodGet, "/tabs/tab_missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
