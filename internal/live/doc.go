// Package live implements the real-time update client for the dashboard.
//
// The client:
//   - Maintains a single WebSocket connection to the backend's /ws/live endpoint
//   - Reconnects automatically with capped exponential backoff
//   - Sends an application-level heartbeat while connected
//   - Parses inbound frames into event envelopes and fans them out to
//     registered message subscribers; status transitions fan out the same way
//
// Malformed frames are dropped and connection failures surface only through
// the status channel. Nothing in this package panics or errors to its caller
// during normal operation; dashboard widgets degrade to a "disconnected"
// badge instead of crashing.
//
// Callbacks register in one of two ways. OnMessage/OnStatus treat the
// callback's code pointer as its identity, so a duplicate add is a no-op
// and Off needs only the function itself. That identity cannot tell the
// same method on two receivers apart, so consumers that fan one handler out
// across instances use SubscribeMessage/SubscribeStatus, which key each
// registration by the returned cancel func instead.
package live
