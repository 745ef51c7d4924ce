package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that required fields are set and values are sane.
func (c *Config) Validate() error {
	if c.Server.Origin == "" {
		return errors.New("server.origin is required")
	}
	if !hasScheme(c.Server.Origin) {
		return fmt.Errorf("server.origin must be an http(s) or ws(s) URL, got %q", c.Server.Origin)
	}

	if c.Live.HeartbeatInterval <= 0 {
		return errors.New("live.heartbeat_interval must be positive")
	}
	if c.Live.MaxReconnectAttempts < 1 {
		return errors.New("live.max_reconnect_attempts must be >= 1")
	}
	if c.Live.ReconnectBaseDelay <= 0 {
		return errors.New("live.reconnect_base_delay must be positive")
	}
	if c.Live.ReconnectMaxDelay < c.Live.ReconnectBaseDelay {
		return errors.New("live.reconnect_max_delay must be >= live.reconnect_base_delay")
	}

	if c.Journal.Enabled {
		if err := c.Journal.Database.validate("journal.database"); err != nil {
			return err
		}
		if c.Journal.BatchSize < 1 {
			return errors.New("journal.batch_size must be >= 1")
		}
	}

	return nil
}

func hasScheme(origin string) bool {
	for _, scheme := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(origin, scheme) {
			return true
		}
	}
	return false
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	return nil
}
