package tab

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cyberproxy/backend/internal/domain/identity"
	"github.com/cyberproxy/backend/internal/domain/media"
	"github.com/cyberproxy/backend/internal/domain/session"
	"github.com/cyberproxy/backend/internal/infrastructure/logging"
	"github.com/cyberproxy/backend/internal/shared/id"
	"github.com/cyberproxy/backend/internal/shared/types"
)

// AdvisoryPlaceholder is shown until the first advisory response lands
const AdvisoryPlaceholder = "Analyzing network environment..."

// Gateway is the advisory/search surface the service depends on.
// Implementations never fail; they degrade internally.
type Gateway interface {
	Advisory(ctx context.Context, location, currentIP string) string
	SearchCandidates(ctx context.Context, query string) types.SearchBatch
}

// Prober fetches stream metadata; optional
type Prober interface {
	Inspect(ctx context.Context, url string) (*media.StreamInfo, error)
}

// Service drives tab enrichment and video management
type Service struct {
	store      *session.Store
	gateway    Gateway
	identities *identity.Generator
	probe      Prober
	logger     *logging.Logger

	// mu serializes read-modify-write merges against the store and guards
	// the per-tab sequence counters
	mu        sync.Mutex
	searchSeq map[string]uint64
	adviceSeq map[string]uint64
}

// NewService creates a tab service
func NewService(store *session.Store, gateway Gateway, identities *identity.Generator, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{
		store:      store,
		gateway:    gateway,
		identities: identities,
		logger:     logger,
		searchSeq:  make(map[string]uint64),
		adviceSeq:  make(map[string]uint64),
	}
}

// WithProbe enables stream metadata probing for new videos
func (s *Service) WithProbe(probe Prober) *Service {
	s.probe = probe
	return s
}

// Open creates a tab and kicks off its initial advisory fetch
func (s *Service) Open(groupID *string) *types.BrowserTab {
	tab := s.store.AddTab(groupID)
	s.seedPlaceholder(tab.ID)
	s.RefreshAdvisory(tab.ID)

	tab, _ = s.store.Get(tab.ID)
	return tab
}

// RefreshAdvisory requests advisory text for the tab's current identity.
// Fire-and-forget: the newest issued request wins, late responses for
// superseded identities or closed tabs are dropped.
func (s *Service) RefreshAdvisory(tabID string) {
	tab, ok := s.store.Get(tabID)
	if !ok {
		return
	}

	s.mu.Lock()
	s.adviceSeq[tabID]++
	seq := s.adviceSeq[tabID]
	s.mu.Unlock()

	location := tab.Identity.Location()
	ip := tab.Identity.IP

	go func() {
		text := s.gateway.Advisory(context.Background(), location, ip)

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.adviceSeq[tabID] != seq {
			return
		}
		current, ok := s.store.Get(tabID)
		if !ok {
			return
		}
		current.Advisory = text
		s.store.UpdateTab(current)
	}()
}

// Search resolves a query into the tab's candidate list. Direct URLs bypass
// the provider entirely and become a video immediately. Overlapping searches
// follow latest-request-wins.
func (s *Service) Search(tabID, query string) {
	if isDirectURL(query) {
		s.AddVideo(tabID, query, "")
		return
	}

	s.mu.Lock()
	s.searchSeq[tabID]++
	seq := s.searchSeq[tabID]

	tab, ok := s.store.Get(tabID)
	if !ok {
		s.mu.Unlock()
		return
	}
	tab.Searching = true
	s.store.UpdateTab(tab)
	s.mu.Unlock()

	go func() {
		batch := s.gateway.SearchCandidates(context.Background(), query)

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.searchSeq[tabID] != seq {
			// Superseded by a newer search; the newer request owns the
			// searching flag and the result list.
			return
		}
		current, ok := s.store.Get(tabID)
		if !ok {
			return
		}
		current.Searching = false
		current.SearchResults = batch.Results
		current.SearchSources = batch.Sources
		s.store.UpdateTab(current)
	}()
}

// AddVideo appends a video with a fresh ID and the tab's current IP
func (s *Service) AddVideo(tabID, url, title string) (*types.VideoInstance, bool) {
	s.mu.Lock()

	tab, ok := s.store.Get(tabID)
	if !ok {
		s.mu.Unlock()
		return nil, false
	}

	if title == "" {
		title = fmt.Sprintf("Stream Source %d", len(tab.Videos)+1)
	}

	video := types.VideoInstance{
		ID:     id.NewVideoID().String(),
		URL:    url,
		Title:  title,
		Status: types.StatusPlaying,
		IP:     tab.Identity.IP,
	}
	tab.Videos = append(tab.Videos, video)
	s.store.UpdateTab(tab)
	s.mu.Unlock()

	if s.probe != nil {
		go s.probeVideo(tabID, video.ID, url)
	}
	return &video, true
}

// QuickLaunch adds a video from the sample stream table
func (s *Service) QuickLaunch(tabID string) (*types.VideoInstance, bool) {
	return s.AddVideo(tabID, s.identities.SampleStream(), "")
}

// RemoveVideo removes exactly the matching video; no-op if not found
func (s *Service) RemoveVideo(tabID, videoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tab, ok := s.store.Get(tabID)
	if !ok {
		return false
	}
	idx := tab.FindVideo(videoID)
	if idx == -1 {
		return false
	}

	tab.Videos = append(tab.Videos[:idx], tab.Videos[idx+1:]...)
	return s.store.UpdateTab(tab)
}

// RotateVideoIP replaces only the targeted video's IP; playback state and
// every other field stay untouched
func (s *Service) RotateVideoIP(tabID, videoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tab, ok := s.store.Get(tabID)
	if !ok {
		return false
	}
	idx := tab.FindVideo(videoID)
	if idx == -1 {
		return false
	}

	tab.Videos[idx].IP = s.identities.GenerateIP()
	return s.store.UpdateTab(tab)
}

// SetPlayback updates a video's playback status
func (s *Service) SetPlayback(tabID, videoID string, status types.PlaybackStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tab, ok := s.store.Get(tabID)
	if !ok {
		return false
	}
	idx := tab.FindVideo(videoID)
	if idx == -1 {
		return false
	}

	tab.Videos[idx].Status = status
	return s.store.UpdateTab(tab)
}

// RotateIdentity swaps the tab identity's IP while keeping country, city,
// ISP, and latency fixed: a lightweight new circuit. A fresh advisory fetch
// follows.
func (s *Service) RotateIdentity(tabID string) bool {
	s.mu.Lock()

	tab, ok := s.store.Get(tabID)
	if !ok {
		s.mu.Unlock()
		return false
	}

	tab.Identity.IP = s.identities.GenerateIP()
	updated := s.store.UpdateTab(tab)
	s.mu.Unlock()

	if updated {
		s.RefreshAdvisory(tabID)
	}
	return updated
}

// RegenerateIdentity replaces the whole identity with a fresh one
func (s *Service) RegenerateIdentity(tabID string) bool {
	s.mu.Lock()

	tab, ok := s.store.Get(tabID)
	if !ok {
		s.mu.Unlock()
		return false
	}

	tab.Identity = s.identities.Generate()
	updated := s.store.UpdateTab(tab)
	s.mu.Unlock()

	if updated {
		s.RefreshAdvisory(tabID)
	}
	return updated
}

// seedPlaceholder sets the advisory placeholder on a fresh tab
func (s *Service) seedPlaceholder(tabID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tab, ok := s.store.Get(tabID)
	if !ok {
		return
	}
	tab.Advisory = AdvisoryPlaceholder
	s.store.UpdateTab(tab)
}

// probeVideo merges stream metadata if the tab and video still exist
func (s *Service) probeVideo(tabID, videoID, url string) {
	info, err := s.probe.Inspect(context.Background(), url)
	if err != nil {
		s.logger.Debug("stream probe failed",
			zap.String("url", url),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tab, ok := s.store.Get(tabID)
	if !ok {
		return
	}
	idx := tab.FindVideo(videoID)
	if idx == -1 {
		return
	}

	tab.Videos[idx].ContentType = info.ContentType
	tab.Videos[idx].SizeBytes = info.SizeBytes
	s.store.UpdateTab(tab)
}

// isDirectURL reports whether the search input is already a stream address
func isDirectURL(input string) bool {
	lower := strings.ToLower(strings.TrimSpace(input))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
