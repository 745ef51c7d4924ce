package store

import (
	"sync"

	"github.com/quantdash/livefeed/internal/event"
	"github.com/quantdash/livefeed/internal/live"
)

// Capacity is the maximum number of retained events. Inserting beyond it
// evicts the oldest.
const Capacity = 50

// Store is the live application state observed by the UI layer.
type Store struct {
	mu        sync.RWMutex
	status    live.Status
	lastEvent *event.Envelope
	events    []event.Envelope
	equity    *float64
	balance   *float64
}

// New creates an empty store: disconnected, no events, no account figures.
func New() *Store {
	return &Store{}
}

// AddEvent records an envelope: prepends it to the event list, trims to
// Capacity, and sets it as the last event. ACCOUNT_UPDATE envelopes also
// update equity and balance when the payload carries them as numbers;
// absent or non-numeric fields leave the prior values untouched.
func (s *Store) AddEvent(env event.Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append([]event.Envelope{env}, s.events...)
	if len(s.events) > Capacity {
		s.events = s.events[:Capacity]
	}
	s.lastEvent = &env

	if fields, ok := env.AccountUpdate(); ok {
		if fields.Equity != nil {
			s.equity = fields.Equity
		}
		if fields.Balance != nil {
			s.balance = fields.Balance
		}
	}
}

// SetStatus overwrites the connection status. No history is kept.
func (s *Store) SetStatus(status live.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// ClearEvents empties the event list and clears the last event. Status,
// equity and balance are unaffected.
func (s *Store) ClearEvents() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.lastEvent = nil
}

// Reset returns the store to its initial empty state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = live.StatusDisconnected
	s.lastEvent = nil
	s.events = nil
	s.equity = nil
	s.balance = nil
}

// Status returns the current connection status.
func (s *Store) Status() live.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// LastEvent returns the most recently received envelope, if any.
func (s *Store) LastEvent() (event.Envelope, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastEvent == nil {
		return event.Envelope{}, false
	}
	return *s.lastEvent, true
}

// Events returns a copy of the retained events, newest first.
func (s *Store) Events() []event.Envelope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]event.Envelope, len(s.events))
	copy(out, s.events)
	return out
}

// Equity returns the latest account equity, if one has been received.
func (s *Store) Equity() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.equity == nil {
		return 0, false
	}
	return *s.equity, true
}

// Balance returns the latest account balance, if one has been received.
func (s *Store) Balance() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.balance == nil {
		return 0, false
	}
	return *s.balance, true
}
