package live

import (
	"fmt"
	"net/url"
	"strings"
)

// DeriveURL turns a dashboard origin into the live stream endpoint: the
// scheme swaps http→ws (https→wss) and the fixed /ws/live path is appended.
// No query parameters are attached; the handshake relies on the session
// already being trusted.
func DeriveURL(origin string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil {
		return "", fmt.Errorf("parse origin: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
		// Already a websocket URL.
	default:
		return "", ErrBadOrigin
	}
	if u.Host == "" {
		return "", ErrBadOrigin
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws/live"
	u.RawQuery = ""
	u.Fragment = ""

	return u.String(), nil
}
