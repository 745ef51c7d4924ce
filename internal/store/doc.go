// Package store holds the bounded, derived live state the dashboard renders:
// connection status, the most recent events (newest first, capped), and the
// scalar account figures extracted from ACCOUNT_UPDATE envelopes.
//
// The store only mutates state. It owns no timers and performs no I/O.
package store
