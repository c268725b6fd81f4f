package station

// Event is a connection-state notification delivered to registered
// receivers. It carries no payload; call IsConnected or Address for
// current detail.
type Event uint8

const (
	// EventConnected fires when the station acquires a network address.
	EventConnected Event = iota

	// EventDisconnected fires when an established connection is lost.
	EventDisconnected
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventConnected:
		return "CONNECTED"
	case EventDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}
