// Package session binds the live client's lifetime to the application's
// authentication state.
//
// A Manager lazily constructs one process-wide client when the session
// becomes authenticated, wires the live state store into it, and tears the
// client down on logout. UI consumers attach through Bindings, which
// subscribe and unsubscribe callbacks on the shared client without ever
// owning the connection: closing a binding never disconnects.
package session
