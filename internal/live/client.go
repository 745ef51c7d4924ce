package live

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quantdash/livefeed/internal/backoff"
	"github.com/quantdash/livefeed/internal/event"
)

const (
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 5 * time.Second
)

// Client maintains exactly one live connection to the dashboard backend.
type Client interface {
	// Connect starts connecting. No-op while already connecting or connected.
	Connect()

	// Disconnect tears down the connection and cancels all timers. A later
	// Connect starts over with a fresh attempt counter.
	Disconnect()

	// Status returns the current connection status.
	Status() Status

	// OnMessage registers a callback for every valid inbound envelope.
	// Registrations are keyed by code pointer: adding the same function
	// twice dispatches once, and the same method on two different receivers
	// is one key, not two. Use SubscribeMessage for per-receiver callbacks.
	OnMessage(fn MessageHandler)

	// OffMessage removes a previously registered message callback.
	OffMessage(fn MessageHandler)

	// OnStatus registers a callback for every status transition, with the
	// same identity rules as OnMessage.
	OnStatus(fn StatusHandler)

	// OffStatus removes a previously registered status callback.
	OffStatus(fn StatusHandler)

	// SubscribeMessage registers a message callback and returns a cancel
	// func that removes exactly this registration. Unlike OnMessage, every
	// call adds a subscriber, so the same method on several receivers stays
	// several subscribers.
	SubscribeMessage(fn MessageHandler) (cancel func())

	// SubscribeStatus is SubscribeMessage for status transitions.
	SubscribeStatus(fn StatusHandler) (cancel func())
}

// client implements the Client interface.
type client struct {
	cfg    Config
	policy backoff.Policy
	logger *slog.Logger

	// Write serialization
	writeMu sync.Mutex

	// State. gen invalidates goroutines and timers from a previous
	// Connect/Disconnect cycle; a stray timer firing with an old gen is a no-op.
	mu        sync.Mutex
	status    Status
	conn      *websocket.Conn
	done      chan struct{} // closed when the current connection is torn down
	reconnect *time.Timer
	attempts  int
	closed    bool // Disconnect was requested; the close handler must not reconnect
	gen       int

	messageSubs registry[MessageHandler]
	statusSubs  registry[StatusHandler]
}

// NewClient creates a live client. Zero config fields fall back to defaults.
func NewClient(cfg Config, logger *slog.Logger) Client {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.applyDefaults()

	return &client{
		cfg:    cfg,
		policy: backoff.NewPolicy(cfg.ReconnectBaseDelay, cfg.ReconnectMaxDelay),
		logger: logger,
	}
}

// Connect starts connecting. Idempotent while connecting or connected.
func (c *client) Connect() {
	c.mu.Lock()
	if c.status == StatusConnecting || c.status == StatusConnected {
		c.mu.Unlock()
		return
	}
	c.closed = false
	c.attempts = 0
	c.gen++
	gen := c.gen
	c.status = StatusConnecting
	c.mu.Unlock()

	c.notifyStatus(StatusConnecting)
	go c.dial(gen)
}

// Disconnect closes the transport, cancels the heartbeat and any pending
// reconnect, and settles at disconnected.
func (c *client) Disconnect() {
	c.mu.Lock()
	c.closed = true
	c.gen++
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	c.closeDoneLocked()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		conn.Close()
	}

	c.transition(StatusDisconnected)
}

// Status returns the current connection status.
func (c *client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *client) OnMessage(fn MessageHandler) {
	if fn == nil {
		return
	}
	c.messageSubs.add(fn)
}

func (c *client) OffMessage(fn MessageHandler) {
	if fn == nil {
		return
	}
	c.messageSubs.remove(fn)
}

func (c *client) OnStatus(fn StatusHandler) {
	if fn == nil {
		return
	}
	c.statusSubs.add(fn)
}

func (c *client) OffStatus(fn StatusHandler) {
	if fn == nil {
		return
	}
	c.statusSubs.remove(fn)
}

func (c *client) SubscribeMessage(fn MessageHandler) func() {
	if fn == nil {
		return func() {}
	}
	return c.messageSubs.subscribe(fn)
}

func (c *client) SubscribeStatus(fn StatusHandler) func() {
	if fn == nil {
		return func() {}
	}
	return c.statusSubs.subscribe(fn)
}

// dial opens the transport and, on success, starts the read and heartbeat
// loops. Failures route into the reconnect path.
func (c *client) dial(gen int) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(c.cfg.URL, nil)

	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		if err == nil {
			conn.Close()
		}
		return
	}
	if err != nil {
		c.mu.Unlock()
		c.connectionLost(gen, err)
		return
	}
	c.conn = conn
	c.attempts = 0
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	c.logger.Debug("websocket connected", "url", c.cfg.URL)
	c.setStatusIf(gen, StatusConnected)

	go c.readLoop(conn, gen)
	go c.heartbeatLoop(conn, done)
}

// readLoop reads frames until the connection fails, dispatching valid
// envelopes to message subscribers in registration order.
func (c *client) readLoop(conn *websocket.Conn, gen int) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.connectionLost(gen, err)
			return
		}

		env, perr := event.Parse(data)
		if perr != nil {
			// Malformed frames never crash the client or reach subscribers.
			c.logger.Debug("dropping malformed frame", "error", perr)
			continue
		}

		c.notifyMessage(env)
	}
}

// heartbeatLoop sends an application-level ping while the connection lives.
// Send failures are skipped silently; the read loop owns failure recovery.
func (c *client) heartbeatLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(c.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			c.writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := conn.WriteMessage(websocket.TextMessage, event.PingFrame)
			c.writeMu.Unlock()
			if err != nil {
				c.logger.Debug("heartbeat skipped", "error", err)
			}
		}
	}
}

// connectionLost handles transport failure: either schedules a backoff-delayed
// retry or, with attempts exhausted, settles at disconnected. Failures after
// an intentional Disconnect (stale gen) are ignored.
func (c *client) connectionLost(gen int, cause error) {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.closeDoneLocked()

	if c.attempts >= c.cfg.MaxReconnectAttempts {
		c.mu.Unlock()
		c.logger.Warn("reconnect attempts exhausted",
			"max_attempts", c.cfg.MaxReconnectAttempts,
			"error", cause,
		)
		c.setStatusIf(gen, StatusDisconnected)
		return
	}

	attempt := c.attempts
	c.attempts++
	delay := c.policy.Delay(attempt)

	// Move to connecting before the timer is armed; a redial that finishes
	// quickly must not have its connected status overwritten here. gen was
	// verified above under this same lock hold.
	changed := c.status != StatusConnecting
	c.status = StatusConnecting
	c.reconnect = time.AfterFunc(delay, func() { c.redial(gen) })
	c.mu.Unlock()

	if changed {
		c.notifyStatus(StatusConnecting)
	}
	c.logger.Info("connection lost, reconnect scheduled",
		"attempt", attempt+1,
		"delay", delay,
		"error", cause,
	)
}

// redial runs when the reconnect timer fires.
func (c *client) redial(gen int) {
	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		return
	}
	c.reconnect = nil
	c.mu.Unlock()

	c.dial(gen)
}

// transition moves to a new status and notifies status subscribers. Setting
// the current status again is not a transition and dispatches nothing.
func (c *client) transition(s Status) {
	c.mu.Lock()
	if c.status == s {
		c.mu.Unlock()
		return
	}
	c.status = s
	c.mu.Unlock()

	c.notifyStatus(s)
}

// setStatusIf is transition guarded against a stale connect cycle: a
// goroutine that lost a race with Connect/Disconnect must not move the
// status.
func (c *client) setStatusIf(gen int, s Status) {
	c.mu.Lock()
	if gen != c.gen || c.status == s {
		c.mu.Unlock()
		return
	}
	c.status = s
	c.mu.Unlock()

	c.notifyStatus(s)
}

// notifyStatus dispatches synchronously, isolating each callback so one
// panicking subscriber cannot block delivery to the rest.
func (c *client) notifyStatus(s Status) {
	for _, fn := range c.statusSubs.snapshot() {
		c.invokeStatus(fn, s)
	}
}

func (c *client) invokeStatus(fn StatusHandler, s Status) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("status subscriber panicked", "status", s, "panic", r)
		}
	}()
	fn(s)
}

func (c *client) notifyMessage(env event.Envelope) {
	for _, fn := range c.messageSubs.snapshot() {
		c.invokeMessage(fn, env)
	}
}

func (c *client) invokeMessage(fn MessageHandler, env event.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("message subscriber panicked", "event_type", env.Type, "panic", r)
		}
	}()
	fn(env)
}

// closeDoneLocked stops the heartbeat loop for the current connection.
// Must be called with c.mu held.
func (c *client) closeDoneLocked() {
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
}
