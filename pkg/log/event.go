package log

import (
	"time"

	"github.com/wifista-project/wifista-go/pkg/eventloop"
)

// Event represents a single captured link event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the connect session (UUID, assigned per
	// Connect call).
	SessionID string `cbor:"2,keyasint,omitempty"`

	// SSID is the configured network name.
	SSID string `cbor:"3,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (exactly one of these is set).
	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"`
	Driver      *DriverEventData  `cbor:"11,keyasint,omitempty"`
	Drop        *DropEventData    `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Category classifies a captured event.
type Category uint8

const (
	// CategoryState is a connection-state transition.
	CategoryState Category = 1

	// CategoryDriver is a raw driver event.
	CategoryDriver Category = 2

	// CategoryDelivery is a notification-delivery event (drops).
	CategoryDelivery Category = 3

	// CategoryError is a soft error absorbed by the handler.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "state"
	case CategoryDriver:
		return "driver"
	case CategoryDelivery:
		return "delivery"
	case CategoryError:
		return "error"
	default:
		return "unknown"
	}
}

// LinkState is the connection state recorded in state-change events.
type LinkState uint8

const (
	// LinkDown means the station has no usable address.
	LinkDown LinkState = 0

	// LinkUp means the station has acquired an address.
	LinkUp LinkState = 1
)

// String returns the state name.
func (s LinkState) String() string {
	switch s {
	case LinkDown:
		return "DOWN"
	case LinkUp:
		return "UP"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent records a connected-flag transition.
type StateChangeEvent struct {
	// From is the state before the transition.
	From LinkState `cbor:"1,keyasint"`

	// To is the state after the transition.
	To LinkState `cbor:"2,keyasint"`

	// Addr is the acquired address for transitions to LinkUp.
	Addr string `cbor:"3,keyasint,omitempty"`
}

// DriverEventData records a raw driver event as dispatched by the event
// loop.
type DriverEventData struct {
	// EventCategory is the driver event category.
	EventCategory eventloop.Category `cbor:"1,keyasint"`

	// EventKind is the driver event kind.
	EventKind eventloop.Kind `cbor:"2,keyasint"`

	// Addr is the acquired address for address events.
	Addr string `cbor:"3,keyasint,omitempty"`
}

// DropEventData records a notification dropped at a full receiver queue.
type DropEventData struct {
	// Notification is the name of the dropped notification value.
	Notification string `cbor:"1,keyasint"`

	// Receiver is the index of the receiver whose queue was full.
	Receiver int `cbor:"2,keyasint"`

	// Capacity is the receiver queue capacity.
	Capacity int `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData records a soft error absorbed inside the handler or a
// fatal error surfaced from a lifecycle operation.
type ErrorEventData struct {
	// Op names the operation that failed.
	Op string `cbor:"1,keyasint"`

	// Message is the error text.
	Message string `cbor:"2,keyasint"`

	// Code is the driver error code, when the failure originated in the
	// driver.
	Code int32 `cbor:"3,keyasint,omitempty"`
}

// NewStateChangeEvent builds a state-transition event.
func NewStateChangeEvent(sessionID, ssid string, from, to LinkState, addr string) Event {
	return Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		SSID:      ssid,
		Category:  CategoryState,
		StateChange: &StateChangeEvent{
			From: from,
			To:   to,
			Addr: addr,
		},
	}
}

// NewDriverEvent builds a raw driver event record.
func NewDriverEvent(sessionID, ssid string, ev eventloop.Event) Event {
	data := &DriverEventData{
		EventCategory: ev.Category,
		EventKind:     ev.Kind,
	}
	if ev.Addr.IsValid() {
		data.Addr = ev.Addr.String()
	}
	return Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		SSID:      ssid,
		Category:  CategoryDriver,
		Driver:    data,
	}
}

// NewDropEvent builds a dropped-notification record.
func NewDropEvent(sessionID, ssid, notification string, receiver, capacity int) Event {
	return Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		SSID:      ssid,
		Category:  CategoryDelivery,
		Drop: &DropEventData{
			Notification: notification,
			Receiver:     receiver,
			Capacity:     capacity,
		},
	}
}

// NewErrorEvent builds an error record. code is zero when the failure did
// not originate in the driver.
func NewErrorEvent(sessionID, ssid, op, message string, code int32) Event {
	return Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		SSID:      ssid,
		Category:  CategoryError,
		Error: &ErrorEventData{
			Op:      op,
			Message: message,
			Code:    code,
		},
	}
}
