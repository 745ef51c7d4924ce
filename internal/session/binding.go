package session

import "github.com/quantdash/livefeed/internal/live"

// BindingState tracks a consumer's attachment to the shared client.
type BindingState int

const (
	// BindingUninitialized: created (or the session ended) and no callbacks
	// are registered yet.
	BindingUninitialized BindingState = iota

	// BindingBound: callbacks are registered on an authenticated session's client.
	BindingBound

	// BindingUnbound: the binding was closed; it never re-attaches.
	BindingUnbound
)

// Binding attaches one consumer's callbacks to the shared client. Bindings
// survive session changes: an open binding re-registers on the next
// authenticated session's client automatically. Each binding is its own
// subscription, so several bindings may share one handler function and each
// still receives every event.
type Binding struct {
	m         *Manager
	onMessage live.MessageHandler
	onStatus  live.StatusHandler
	cancels   []func()
	state     BindingState
}

// Bind attaches callbacks to the shared client. Either handler may be nil.
// If no session is active yet, the callbacks register as soon as one starts.
func (m *Manager) Bind(onMessage live.MessageHandler, onStatus live.StatusHandler) *Binding {
	b := &Binding{m: m, onMessage: onMessage, onStatus: onStatus}

	m.mu.Lock()
	m.bindings[b] = struct{}{}
	if m.client != nil {
		b.registerLocked(m.client)
	}
	m.mu.Unlock()

	return b
}

// Close detaches this binding's callbacks. The connection itself is
// process-wide and stays up for other consumers; Close never disconnects.
func (b *Binding) Close() {
	m := b.m

	m.mu.Lock()
	defer m.mu.Unlock()

	if b.state == BindingUnbound {
		return
	}
	delete(m.bindings, b)
	b.unregisterLocked()
	b.state = BindingUnbound
}

// State returns the binding's current attachment state.
func (b *Binding) State() BindingState {
	b.m.mu.Lock()
	defer b.m.mu.Unlock()
	return b.state
}

// registerLocked attaches the callbacks to a client. Caller holds m.mu.
func (b *Binding) registerLocked(c live.Client) {
	if b.onMessage != nil {
		b.cancels = append(b.cancels, c.SubscribeMessage(b.onMessage))
	}
	if b.onStatus != nil {
		b.cancels = append(b.cancels, c.SubscribeStatus(b.onStatus))
	}
	b.state = BindingBound
}

// unregisterLocked cancels this binding's subscriptions. Caller holds m.mu.
func (b *Binding) unregisterLocked() {
	for _, cancel := range b.cancels {
		cancel()
	}
	b.cancels = nil
	if b.state == BindingBound {
		b.state = BindingUninitialized
	}
}
