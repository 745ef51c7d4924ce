package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Errors
var (
	ErrMissingType = errors.New("envelope missing event_type")
)

// Type is an event type tag from the backend.
type Type string

// Known event types. The backend emits both the _CHANGE and _CHANGED spelling
// for regime and allocation events; the subsystem keeps them distinct and
// passes both through untouched.
const (
	TypeTradeOpened         Type = "TRADE_OPENED"
	TypeTradeClosed         Type = "TRADE_CLOSED"
	TypePriceUpdate         Type = "PRICE_UPDATE"
	TypeRegimeChange        Type = "REGIME_CHANGE"
	TypeRegimeChanged       Type = "REGIME_CHANGED"
	TypeAllocationChange    Type = "ALLOCATION_CHANGE"
	TypeAllocationChanged   Type = "ALLOCATION_CHANGED"
	TypeStrategyUpdate      Type = "STRATEGY_UPDATE"
	TypeAccountUpdate       Type = "ACCOUNT_UPDATE"
	TypeKillSwitchTriggered Type = "KILL_SWITCH_TRIGGERED"
	TypeDailyLimitHit       Type = "DAILY_LIMIT_HIT"
	TypeHeartbeat           Type = "HEARTBEAT"
)

// Envelope is the wire wrapper around every inbound live message.
type Envelope struct {
	Type      Type           `json:"event_type"`
	Data      map[string]any `json:"data"`
	Timestamp string         `json:"timestamp"`
}

// PingFrame is the outbound heartbeat payload. It deliberately does not
// carry an event_type key so the server never confuses it with an envelope.
var PingFrame = []byte(`{"type":"ping"}`)

// Parse decodes a raw text frame into an Envelope. Frames that are not JSON
// objects, or that lack an event_type, are rejected; callers drop them.
func Parse(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("parse envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, ErrMissingType
	}
	return env, nil
}

// AccountFields are the optional numeric fields an ACCOUNT_UPDATE envelope
// may carry. A nil pointer means the field was absent or not a number.
type AccountFields struct {
	Equity  *float64
	Balance *float64
}

// AccountUpdate extracts equity and balance from an ACCOUNT_UPDATE envelope.
// ok is false for every other event type.
func (e Envelope) AccountUpdate() (AccountFields, bool) {
	if e.Type != TypeAccountUpdate {
		return AccountFields{}, false
	}
	return AccountFields{
		Equity:  numericField(e.Data, "equity"),
		Balance: numericField(e.Data, "balance"),
	}, true
}

// numericField returns a pointer to the value if the key holds a JSON number.
// Strings, booleans, nulls and absent keys all return nil.
func numericField(data map[string]any, key string) *float64 {
	v, ok := data[key]
	if !ok {
		return nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}
