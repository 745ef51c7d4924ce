// Package journal optionally persists received live events to PostgreSQL.
//
// The writer registers as one more message subscriber on the live client and
// batches envelopes into the live_events table, flushing on size or on a
// timer. Journal failures never feed back into the delivery path.
package journal
