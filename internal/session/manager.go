package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/quantdash/livefeed/internal/live"
	"github.com/quantdash/livefeed/internal/store"
)

// Manager owns the process-wide live client. The client is constructed
// lazily on the first authenticated session and dropped on logout, so each
// session starts with a fresh attempt counter and fresh registries.
type Manager struct {
	newClient func() live.Client
	store     *store.Store
	logger    *slog.Logger

	mu          sync.Mutex
	client      live.Client
	sessionID   string
	detachStore []func()
	bindings    map[*Binding]struct{}
}

// NewManager creates a manager. newClient is invoked once per authenticated
// session to build the client.
func NewManager(newClient func() live.Client, st *store.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		newClient: newClient,
		store:     st,
		logger:    logger,
		bindings:  make(map[*Binding]struct{}),
	}
}

// SetAuthenticated tells the manager whether the user session is trusted.
// Becoming authenticated constructs the client if needed, registers the
// store callbacks, and connects; connecting again on an already-authenticated
// session is an idempotent nudge (it also restarts a client that settled at
// disconnected after exhausting its reconnect attempts). Becoming
// unauthenticated disconnects and drops the client.
func (m *Manager) SetAuthenticated(authenticated bool) {
	if authenticated {
		m.start()
		return
	}
	m.stop()
}

func (m *Manager) start() {
	m.mu.Lock()
	if m.client == nil {
		m.client = m.newClient()
		m.sessionID = uuid.NewString()
		m.detachStore = []func(){
			m.client.SubscribeMessage(m.store.AddEvent),
			m.client.SubscribeStatus(m.store.SetStatus),
		}
		for b := range m.bindings {
			b.registerLocked(m.client)
		}
		m.logger.Info("live session started", "session_id", m.sessionID)
	}
	client := m.client
	m.mu.Unlock()

	client.Connect()
}

func (m *Manager) stop() {
	m.mu.Lock()
	client := m.client
	sessionID := m.sessionID
	detach := m.detachStore
	m.client = nil
	m.sessionID = ""
	m.detachStore = nil
	m.mu.Unlock()

	if client == nil {
		return
	}

	// Disconnect while callbacks are still registered so the store and every
	// open binding observe the final disconnected status, then detach them
	// from the dying client.
	client.Disconnect()

	m.mu.Lock()
	for _, cancel := range detach {
		cancel()
	}
	if m.client == nil {
		// Skip if a new session already started; the bindings now belong to
		// the new client and the old one is dropped wholesale.
		for b := range m.bindings {
			b.unregisterLocked()
		}
	}
	m.mu.Unlock()

	m.logger.Info("live session ended", "session_id", sessionID)
}

// Client returns the current client, or nil while unauthenticated.
func (m *Manager) Client() live.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client
}

// Store returns the live state store.
func (m *Manager) Store() *store.Store {
	return m.store
}

// SessionID returns the id of the current authenticated session, if any.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// Authenticated reports whether a session is active.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client != nil
}
