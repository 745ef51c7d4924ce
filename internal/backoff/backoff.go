package backoff

import (
	"time"

	"github.com/jpillora/backoff"
)

// Policy computes reconnection delays. The zero value is unusable; use
// NewPolicy so the base and cap are always set.
type Policy struct {
	base time.Duration
	max  time.Duration
}

// NewPolicy creates a policy with the given base delay and cap.
func NewPolicy(base, max time.Duration) Policy {
	return Policy{base: base, max: max}
}

// Delay returns min(max, base * 2^attempt). Attempt 0 is the first retry
// and yields exactly the base delay.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	b := backoff.Backoff{
		Min:    p.base,
		Max:    p.max,
		Factor: 2,
		Jitter: false,
	}
	return b.ForAttempt(float64(attempt))
}
