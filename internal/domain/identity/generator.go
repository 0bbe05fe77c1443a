package identity

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/cyberproxy/backend/internal/shared/types"
)

// Generator produces synthetic network identities from the reference tables.
// Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a time-seeded generator
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed creates a generator with a fixed seed for reproducible tests
func NewWithSeed(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate synthesizes a complete identity
func (g *Generator) Generate() types.NetworkIdentity {
	g.mu.Lock()
	defer g.mu.Unlock()

	country := Countries[g.rng.Intn(len(Countries))]
	return types.NetworkIdentity{
		IP:        g.ip(),
		Country:   country.Name,
		City:      country.Cities[g.rng.Intn(len(country.Cities))],
		ISP:       ISPs[g.rng.Intn(len(ISPs))],
		LatencyMs: MinLatencyMs + g.rng.Intn(MaxLatencyMs-MinLatencyMs+1),
	}
}

// GenerateIP synthesizes a dotted-quad address. Each octet is an independent
// uniform draw in [0, 255]; no validity filtering is applied.
func (g *Generator) GenerateIP() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ip()
}

// SampleStream picks a quick-launch stream URL
func (g *Generator) SampleStream() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return SampleStreams[g.rng.Intn(len(SampleStreams))]
}

func (g *Generator) ip() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		g.rng.Intn(256), g.rng.Intn(256), g.rng.Intn(256), g.rng.Intn(256))
}
