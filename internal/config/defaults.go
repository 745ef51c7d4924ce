package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultHeartbeatInterval    = 30 * time.Second
	DefaultMaxReconnectAttempts = 10
	DefaultReconnectBaseDelay   = 1 * time.Second
	DefaultReconnectMaxDelay    = 30 * time.Second
	DefaultJournalBatchSize     = 100
	DefaultJournalFlushInterval = 1 * time.Second
	DefaultDBPort               = 5432
	DefaultDBSSLMode            = "prefer"
	DefaultMaxConns             = 4
	DefaultMinConns             = 1
	DefaultLogLevel             = "info"
)

func (c *Config) applyDefaults() {
	if c.Live.HeartbeatInterval == 0 {
		c.Live.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if c.Live.MaxReconnectAttempts == 0 {
		c.Live.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	}
	if c.Live.ReconnectBaseDelay == 0 {
		c.Live.ReconnectBaseDelay = DefaultReconnectBaseDelay
	}
	if c.Live.ReconnectMaxDelay == 0 {
		c.Live.ReconnectMaxDelay = DefaultReconnectMaxDelay
	}

	if c.Journal.BatchSize == 0 {
		c.Journal.BatchSize = DefaultJournalBatchSize
	}
	if c.Journal.FlushInterval == 0 {
		c.Journal.FlushInterval = DefaultJournalFlushInterval
	}
	applyDBDefaults(&c.Journal.Database)

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
