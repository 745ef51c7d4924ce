package event

import (
	"errors"
	"testing"
)

func TestParse_ValidEnvelope(t *testing.T) {
	raw := []byte(`{"event_type":"TRADE_OPENED","data":{"symbol":"EURUSD","size":0.5},"timestamp":"2025-06-01T12:00:00Z"}`)

	env, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if env.Type != TypeTradeOpened {
		t.Errorf("Type = %s, want TRADE_OPENED", env.Type)
	}
	if env.Timestamp != "2025-06-01T12:00:00Z" {
		t.Errorf("Timestamp = %s, want 2025-06-01T12:00:00Z", env.Timestamp)
	}
	if env.Data["symbol"] != "EURUSD" {
		t.Errorf("Data[symbol] = %v, want EURUSD", env.Data["symbol"])
	}
}

func TestParse_UnknownTypePreserved(t *testing.T) {
	raw := []byte(`{"event_type":"FUTURE_THING","data":{},"timestamp":"2025-06-01T12:00:00Z"}`)

	env, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if env.Type != Type("FUTURE_THING") {
		t.Errorf("Type = %s, want FUTURE_THING", env.Type)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "this is not json"},
		{"empty", ""},
		{"json array", `[1,2,3]`},
		{"missing event_type", `{"data":{},"timestamp":"2025-06-01T12:00:00Z"}`},
		{"empty event_type", `{"event_type":"","data":{}}`},
		{"data not an object", `{"event_type":"PRICE_UPDATE","data":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.raw)
			}
		})
	}
}

func TestParse_MissingTypeSentinel(t *testing.T) {
	_, err := Parse([]byte(`{"data":{}}`))
	if !errors.Is(err, ErrMissingType) {
		t.Errorf("err = %v, want ErrMissingType", err)
	}
}

func TestAccountUpdate_BothFields(t *testing.T) {
	env := Envelope{
		Type: TypeAccountUpdate,
		Data: map[string]any{"equity": 1500.25, "balance": 1400.0},
	}

	fields, ok := env.AccountUpdate()
	if !ok {
		t.Fatal("AccountUpdate returned ok=false for ACCOUNT_UPDATE")
	}
	if fields.Equity == nil || *fields.Equity != 1500.25 {
		t.Errorf("Equity = %v, want 1500.25", fields.Equity)
	}
	if fields.Balance == nil || *fields.Balance != 1400.0 {
		t.Errorf("Balance = %v, want 1400.0", fields.Balance)
	}
}

func TestAccountUpdate_PartialAndNonNumeric(t *testing.T) {
	env := Envelope{
		Type: TypeAccountUpdate,
		Data: map[string]any{"equity": 1500.25, "balance": "1400"},
	}

	fields, ok := env.AccountUpdate()
	if !ok {
		t.Fatal("AccountUpdate returned ok=false")
	}
	if fields.Equity == nil || *fields.Equity != 1500.25 {
		t.Errorf("Equity = %v, want 1500.25", fields.Equity)
	}
	if fields.Balance != nil {
		t.Errorf("Balance = %v, want nil for string value", fields.Balance)
	}
}

func TestAccountUpdate_WrongType(t *testing.T) {
	env := Envelope{
		Type: TypePriceUpdate,
		Data: map[string]any{"equity": 1500.25},
	}

	if _, ok := env.AccountUpdate(); ok {
		t.Error("AccountUpdate returned ok=true for PRICE_UPDATE")
	}
}
