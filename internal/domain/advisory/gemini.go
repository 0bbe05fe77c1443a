package advisory

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

var (
	errNoProvider = errors.New("no provider configured")

	// ErrMissingAPIKey indicates the GEMINI_API_KEY credential is absent
	ErrMissingAPIKey = errors.New("missing API key")
)

// Gemini implements Provider over the google.golang.org/genai SDK
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed provider. Returns ErrMissingAPIKey when
// apiKey is empty; callers treat that the same as any provider failure and
// run the gateway with a nil provider.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &ProviderError{Op: "init", Err: err}
	}

	return &Gemini{client: client, model: model}, nil
}

// GenerateText runs a plain text generation
func (p *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.7)),
			TopP:        genai.Ptr(float32(0.9)),
		})
	if err != nil {
		return "", &ProviderError{Op: "generate", Err: err}
	}
	return resp.Text(), nil
}

// GenerateSearch runs a grounded generation constrained to a JSON array of
// {title, url} objects and surfaces the grounding chunks as opaque sources.
func (p *Gemini) GenerateSearch(ctx context.Context, prompt string) (string, []string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title": {Type: genai.TypeString},
						"url":   {Type: genai.TypeString},
					},
					Required: []string{"title", "url"},
				},
			},
		})
	if err != nil {
		return "", nil, &ProviderError{Op: "search", Err: err}
	}

	return resp.Text(), groundingSources(resp), nil
}

// groundingSources flattens grounding chunk URIs from the first candidate
func groundingSources(resp *genai.GenerateContentResponse) []string {
	var sources []string
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return sources
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web != nil && chunk.Web.URI != "" {
			sources = append(sources, chunk.Web.URI)
		}
	}
	return sources
}
