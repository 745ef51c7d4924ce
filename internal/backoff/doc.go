// Package backoff computes the delay between reconnection attempts.
//
// The policy is deterministic exponential doubling capped at a maximum:
// no jitter, so the reconnect schedule is reproducible in tests.
package backoff
