// Package media inspects stream URLs for display metadata.
//
// The probe is a best-effort enrichment: a HEAD request for content type and
// length, behind a rate limiter and a circuit breaker. Playback itself is a
// passthrough to the client's media element and is out of scope here.
package media

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/cyberproxy/backend/internal/infrastructure/resilience"
)

// StreamInfo is the metadata merged back into a video instance
type StreamInfo struct {
	ContentType string
	SizeBytes   int64
}

// Probe fetches stream metadata over HTTP
type Probe struct {
	client  *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
}

// NewProbe creates a probe with a retryable transport
func NewProbe(timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "CyberProxy-Probe/1.0").
		SetTransport(retryClient.HTTPClient.Transport)

	return &Probe{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(5), 10),
		breaker: resilience.New("media-probe", resilience.Settings{
			MaxRequests: 2,
			Timeout:     30 * time.Second,
		}),
	}
}

// Inspect issues a HEAD request for the URL's metadata
func (p *Probe) Inspect(ctx context.Context, url string) (*StreamInfo, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := p.breaker.Execute(func() (interface{}, error) {
		resp, err := p.client.R().SetContext(ctx).Head(url)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("probe %s: status %d", url, resp.StatusCode())
		}
		return &StreamInfo{
			ContentType: resp.Header().Get("Content-Type"),
			SizeBytes:   resp.RawResponse.ContentLength,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*StreamInfo), nil
}
