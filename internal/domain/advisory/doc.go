// Package advisory wraps the external generative-AI provider.
//
// Both operations are non-critical enrichments, so neither ever propagates a
// provider failure to its caller: a missing credential, a network error, an
// open circuit, or a malformed response all degrade to a fixed fallback value
// and a logged warning. The gateway boundary is where the error taxonomy of
// the provider (ProviderError, extraction failures) terminates.
//
// Components:
//   - Provider: the two raw model operations (text, search)
//   - Gemini: concrete Provider over google.golang.org/genai
//   - Gateway: fallback policy, timeout, circuit breaker, metrics
package advisory
