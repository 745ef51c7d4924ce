package live

// Status is the observable connection state. Transitions follow
// disconnected→connecting→connected→{disconnected|connecting}; connecting
// settles at disconnected once reconnect attempts are exhausted.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
)

func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "unknown"
	}
}
