package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "livefeed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	yaml := `
server:
  origin: https://dash.example.com
live:
  heartbeat_interval: 15s
  max_reconnect_attempts: 5
  reconnect_base_delay: 500ms
  reconnect_max_delay: 10s
log:
  level: debug
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Origin != "https://dash.example.com" {
		t.Errorf("Server.Origin = %q, want %q", cfg.Server.Origin, "https://dash.example.com")
	}
	if cfg.Live.HeartbeatInterval != 15*time.Second {
		t.Errorf("Live.HeartbeatInterval = %v, want 15s", cfg.Live.HeartbeatInterval)
	}
	if cfg.Live.MaxReconnectAttempts != 5 {
		t.Errorf("Live.MaxReconnectAttempts = %d, want 5", cfg.Live.MaxReconnectAttempts)
	}
	if cfg.Live.ReconnectBaseDelay != 500*time.Millisecond {
		t.Errorf("Live.ReconnectBaseDelay = %v, want 500ms", cfg.Live.ReconnectBaseDelay)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_JOURNAL_PASSWORD", "secret123")

	yaml := `
server:
  origin: https://dash.example.com
journal:
  enabled: true
  database:
    host: localhost
    name: livefeed
    user: journal
    password: ${TEST_JOURNAL_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Journal.Database.Password != "secret123" {
		t.Errorf("Journal.Database.Password = %q, want secret123", cfg.Journal.Database.Password)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
server:
  origin: http://localhost:8000
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Live.HeartbeatInterval != DefaultHeartbeatInterval {
		t.Errorf("HeartbeatInterval = %v, want %v", cfg.Live.HeartbeatInterval, DefaultHeartbeatInterval)
	}
	if cfg.Live.MaxReconnectAttempts != DefaultMaxReconnectAttempts {
		t.Errorf("MaxReconnectAttempts = %d, want %d", cfg.Live.MaxReconnectAttempts, DefaultMaxReconnectAttempts)
	}
	if cfg.Live.ReconnectBaseDelay != DefaultReconnectBaseDelay {
		t.Errorf("ReconnectBaseDelay = %v, want %v", cfg.Live.ReconnectBaseDelay, DefaultReconnectBaseDelay)
	}
	if cfg.Live.ReconnectMaxDelay != DefaultReconnectMaxDelay {
		t.Errorf("ReconnectMaxDelay = %v, want %v", cfg.Live.ReconnectMaxDelay, DefaultReconnectMaxDelay)
	}
	if cfg.Journal.Database.Port != DefaultDBPort {
		t.Errorf("Journal.Database.Port = %d, want %d", cfg.Journal.Database.Port, DefaultDBPort)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Server.Origin = "https://dash.example.com"
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing origin", func(c *Config) { c.Server.Origin = "" }, true},
		{"bad origin scheme", func(c *Config) { c.Server.Origin = "ftp://x" }, true},
		{"zero heartbeat", func(c *Config) { c.Live.HeartbeatInterval = 0 }, true},
		{"zero attempts", func(c *Config) { c.Live.MaxReconnectAttempts = 0 }, true},
		{"max below base", func(c *Config) {
			c.Live.ReconnectBaseDelay = 10 * time.Second
			c.Live.ReconnectMaxDelay = 1 * time.Second
		}, true},
		{"journal enabled without host", func(c *Config) { c.Journal.Enabled = true }, true},
		{"journal enabled complete", func(c *Config) {
			c.Journal.Enabled = true
			c.Journal.Database.Host = "localhost"
			c.Journal.Database.Name = "livefeed"
			c.Journal.Database.User = "journal"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadAndValidate_MissingFile(t *testing.T) {
	if _, err := LoadAndValidate(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadAndValidate succeeded for a missing file")
	}
}
