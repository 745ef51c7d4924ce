// Package event defines the envelope wrapper around every inbound live
// message and the closed set of event type tags the dashboard backend emits.
//
// The envelope payload is opaque to the delivery subsystem except for the
// numeric fields carried by ACCOUNT_UPDATE, which the live state store
// extracts into scalar values.
package event
