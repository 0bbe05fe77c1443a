// Package identity synthesizes network identities for proxy sessions.
//
// All data is synthetic: IPs are four independent uniform byte draws with no
// validity filtering, locations and ISPs come from fixed reference tables, and
// latency is uniform in [10, 159] ms. The generator is randomized by design;
// NewWithSeed exists so tests can pin the sequence.
package identity
