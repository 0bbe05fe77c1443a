package advisory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cyberproxy/backend/internal/domain/extract"
	"github.com/cyberproxy/backend/internal/infrastructure/logging"
	"github.com/cyberproxy/backend/internal/infrastructure/monitoring"
	"github.com/cyberproxy/backend/internal/infrastructure/resilience"
	"github.com/cyberproxy/backend/internal/shared/types"
)

// Fallback values returned when the provider cannot serve a request
const (
	// FallbackAdvice is returned on any provider failure
	FallbackAdvice = "Optimizing network routes for maximum throughput..."
	// StableAdvice is returned when the provider succeeds with empty text
	StableAdvice = "Connection stable. Monitoring traffic for anomalies."
)

// Provider exposes the two raw model operations. A nil Provider is treated as
// a permanently failing one (e.g. missing credential at startup).
type Provider interface {
	// GenerateText returns free text for the prompt
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateSearch returns the raw model text plus opaque grounding references
	GenerateSearch(ctx context.Context, prompt string) (string, []string, error)
}

// ProviderError wraps a failure from the external call
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Gateway applies the degrade-to-fallback policy around a Provider
type Gateway struct {
	provider Provider
	breaker  *resilience.Breaker
	timeout  time.Duration
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// NewGateway creates a gateway. provider may be nil when no credential is
// configured; every call then takes the fallback path.
func NewGateway(provider Provider, timeout time.Duration, logger *logging.Logger) *Gateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &Gateway{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
		breaker: resilience.New("ai-provider", resilience.Settings{
			MaxRequests: 2,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts resilience.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// WithMetrics adds metrics tracking to the gateway
func (g *Gateway) WithMetrics(metrics *monitoring.Metrics) *Gateway {
	g.metrics = metrics
	return g
}

// Advisory returns advisory text for the given virtual location. Never fails:
// provider errors of any kind degrade to FallbackAdvice.
func (g *Gateway) Advisory(ctx context.Context, location, currentIP string) string {
	prompt := fmt.Sprintf(
		"I am simulating a high-security browser. My current tab is proxied to %s with IP %s. "+
			"Provide a brief, technical 2-sentence advice on how to improve streaming performance "+
			"and anonymity for this specific route.",
		location, currentIP,
	)

	text, err := g.generateText(ctx, prompt)
	if err != nil {
		g.logger.Warn("advisory request degraded to fallback",
			zap.String("location", location),
			zap.Error(err),
		)
		g.recordAdvisory("fallback")
		return FallbackAdvice
	}

	g.recordAdvisory("ok")
	if strings.TrimSpace(text) == "" {
		return StableAdvice
	}
	return text
}

// SearchCandidates asks the provider for video candidates matching query.
// Never fails: any error at any stage yields an empty batch. Candidates
// missing a title or url are dropped individually rather than aborting the
// whole batch.
func (g *Gateway) SearchCandidates(ctx context.Context, query string) types.SearchBatch {
	empty := types.SearchBatch{Results: []types.SearchResult{}, Sources: []string{}}

	prompt := fmt.Sprintf(
		"Search for direct video stream URLs (mp4, webm) or high-quality video hosting pages "+
			"related to: %q. Return a JSON array of objects with 'title' and 'url' properties. "+
			"Try to find direct .mp4 links if possible, otherwise use source page links.",
		query,
	)

	raw, sources, err := g.generateSearch(ctx, prompt)
	if err != nil {
		g.logger.Warn("search request degraded to empty batch",
			zap.String("query", query),
			zap.Error(err),
		)
		g.recordSearch("fallback")
		return empty
	}

	if strings.TrimSpace(raw) == "" {
		raw = "[]"
	}

	value, err := extract.JSON(raw)
	if err != nil {
		g.logger.Warn("search response had no parseable JSON", zap.String("query", query))
		g.recordSearch("fallback")
		return empty
	}

	items, ok := value.([]interface{})
	if !ok {
		g.logger.Warn("search response was not a JSON array", zap.String("query", query))
		g.recordSearch("fallback")
		return empty
	}

	results := make([]types.SearchResult, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		title, _ := obj["title"].(string)
		url, _ := obj["url"].(string)
		if title == "" || url == "" {
			continue
		}
		results = append(results, types.SearchResult{Title: title, URL: url})
	}

	if sources == nil {
		sources = []string{}
	}

	g.recordSearch("ok")
	return types.SearchBatch{Results: results, Sources: sources}
}

func (g *Gateway) generateText(ctx context.Context, prompt string) (string, error) {
	if g.provider == nil {
		return "", &ProviderError{Op: "generate", Err: errNoProvider}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.provider.GenerateText(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

type searchReply struct {
	text    string
	sources []string
}

func (g *Gateway) generateSearch(ctx context.Context, prompt string) (string, []string, error) {
	if g.provider == nil {
		return "", nil, &ProviderError{Op: "search", Err: errNoProvider}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.breaker.Execute(func() (interface{}, error) {
		text, sources, err := g.provider.GenerateSearch(ctx, prompt)
		if err != nil {
			return nil, err
		}
		return searchReply{text: text, sources: sources}, nil
	})
	if err != nil {
		return "", nil, err
	}

	reply := result.(searchReply)
	return reply.text, reply.sources, nil
}

func (g *Gateway) recordAdvisory(outcome string) {
	if g.metrics != nil {
		g.metrics.RecordAdvisory(outcome)
	}
}

func (g *Gateway) recordSearch(outcome string) {
	if g.metrics != nil {
		g.metrics.RecordSearch(outcome)
	}
}
