package live

import (
	"errors"
	"time"

	"github.com/quantdash/livefeed/internal/event"
)

// Errors
var (
	ErrBadOrigin = errors.New("origin must be an http, https, ws or wss URL")
)

// MessageHandler receives every valid envelope, in arrival order.
type MessageHandler func(event.Envelope)

// StatusHandler receives every status transition, in the order entered.
type StatusHandler func(Status)

// Config configures a live client. Immutable for the client's lifetime.
type Config struct {
	URL                  string        // WebSocket URL (e.g. wss://dash.example.com/ws/live)
	HeartbeatInterval    time.Duration // Interval between outbound ping frames
	MaxReconnectAttempts int           // Retries before settling at disconnected
	ReconnectBaseDelay   time.Duration // Backoff delay for the first retry
	ReconnectMaxDelay    time.Duration // Backoff cap
}

// DefaultConfig returns the tunable knobs at their standard values.
func DefaultConfig() Config {
	return Config{
		HeartbeatInterval:    30 * time.Second,
		MaxReconnectAttempts: 10,
		ReconnectBaseDelay:   1 * time.Second,
		ReconnectMaxDelay:    30 * time.Second,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = d.HeartbeatInterval
	}
	if c.MaxReconnectAttempts == 0 {
		c.MaxReconnectAttempts = d.MaxReconnectAttempts
	}
	if c.ReconnectBaseDelay == 0 {
		c.ReconnectBaseDelay = d.ReconnectBaseDelay
	}
	if c.ReconnectMaxDelay == 0 {
		c.ReconnectMaxDelay = d.ReconnectMaxDelay
	}
}
