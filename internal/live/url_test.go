package live

import "testing"

func TestDeriveURL(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{"http origin", "http://localhost:8000", "ws://localhost:8000/ws/live"},
		{"https origin", "https://dash.example.com", "wss://dash.example.com/ws/live"},
		{"trailing slash", "https://dash.example.com/", "wss://dash.example.com/ws/live"},
		{"origin with path", "https://dash.example.com/app", "wss://dash.example.com/app/ws/live"},
		{"already ws", "ws://localhost:8000", "ws://localhost:8000/ws/live"},
		{"query stripped", "https://dash.example.com?token=abc", "wss://dash.example.com/ws/live"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveURL(tt.origin)
			if err != nil {
				t.Fatalf("DeriveURL(%q) failed: %v", tt.origin, err)
			}
			if got != tt.want {
				t.Errorf("DeriveURL(%q) = %q, want %q", tt.origin, got, tt.want)
			}
		})
	}
}

func TestDeriveURL_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		origin string
	}{
		{"empty", ""},
		{"no scheme", "dash.example.com"},
		{"wrong scheme", "ftp://dash.example.com"},
		{"scheme only", "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DeriveURL(tt.origin); err == nil {
				t.Errorf("DeriveURL(%q) succeeded, want error", tt.origin)
			}
		})
	}
}
