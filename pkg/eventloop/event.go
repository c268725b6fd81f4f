package eventloop

import "net/netip"

// Category groups related driver events.
type Category uint8

const (
	// CategoryInterface covers interface and association lifecycle events.
	CategoryInterface Category = iota + 1

	// CategoryAddress covers network address events.
	CategoryAddress
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryInterface:
		return "INTERFACE"
	case CategoryAddress:
		return "ADDRESS"
	default:
		return "UNKNOWN"
	}
}

// Kind identifies a specific driver event within a category.
type Kind uint16

const (
	// KindInterfaceStarted: the interface has been brought up and may
	// begin association attempts.
	KindInterfaceStarted Kind = iota + 1

	// KindInterfaceReady: the radio subsystem finished its self-setup.
	// Informational.
	KindInterfaceReady

	// KindStationConnected: link-layer association succeeded. No address
	// is available yet.
	KindStationConnected

	// KindStationDisconnected: the association was lost or an association
	// attempt failed.
	KindStationDisconnected

	// KindAddressAcquired: the station obtained a usable network address.
	KindAddressAcquired
)

// KindAny is a registration wildcard matching every kind in a category.
const KindAny Kind = 0xFFFF

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInterfaceStarted:
		return "INTERFACE_STARTED"
	case KindInterfaceReady:
		return "INTERFACE_READY"
	case KindStationConnected:
		return "STATION_CONNECTED"
	case KindStationDisconnected:
		return "STATION_DISCONNECTED"
	case KindAddressAcquired:
		return "ADDRESS_ACQUIRED"
	case KindAny:
		return "ANY"
	default:
		return "UNKNOWN"
	}
}

// Event is a single driver lifecycle event.
type Event struct {
	// Category is the event category.
	Category Category

	// Kind is the event kind within the category.
	Kind Kind

	// Addr carries the acquired address for KindAddressAcquired events.
	// Zero for all other kinds.
	Addr netip.Addr
}

// Handler receives dispatched events.
//
// HandleEvent is invoked on the loop's dispatch goroutine; implementations
// must not block for long, as they delay every later event.
type Handler interface {
	HandleEvent(ev Event)
}
