// Package resilience implements a circuit breaker for outbound calls.
//
// The advisory gateway and the media probe wrap their provider calls in a
// breaker so that a misbehaving upstream degrades to the fallback path fast
// instead of queueing timeouts.
package resilience
