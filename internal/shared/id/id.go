// Package id provides centralized ID generation for the session core.
//
// All domain identifiers are prefixed ULIDs:
//   - Lexicographic sortability: tab order queries without timestamps
//   - Prefixed types: readable logs (tab_*, vid_*, grp_*, bmk_*)
//   - Zero reuse: a closed tab or removed video never shares an ID with a new one
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// TabID identifies a browser tab
type TabID string

// VideoID identifies a video instance within a tab
type VideoID string

// GroupID identifies a tab group
type GroupID string

// BookmarkID identifies a saved proxy preset
type BookmarkID string

const (
	TabPrefix      = "tab"
	VideoPrefix    = "vid"
	GroupPrefix    = "grp"
	BookmarkPrefix = "bmk"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator with secure entropy
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with custom entropy source.
// Useful for testing with deterministic entropy.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewTabID generates a new tab ID
func NewTabID() TabID {
	return TabID(Default().GenerateWithPrefix(TabPrefix))
}

// NewVideoID generates a new video ID
func NewVideoID() VideoID {
	return VideoID(Default().GenerateWithPrefix(VideoPrefix))
}

// NewGroupID generates a new group ID
func NewGroupID() GroupID {
	return GroupID(Default().GenerateWithPrefix(GroupPrefix))
}

// NewBookmarkID generates a new bookmark ID
func NewBookmarkID() BookmarkID {
	return BookmarkID(Default().GenerateWithPrefix(BookmarkPrefix))
}

// String methods for ID types
func (id TabID) String() string      { return string(id) }
func (id VideoID) String() string    { return string(id) }
func (id GroupID) String() string    { return string(id) }
func (id BookmarkID) String() string { return string(id) }

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// Parse parses a ULID string
func Parse(id string) (ulid.ULID, error) {
	return ulid.Parse(id)
}
