// Package station manages the lifecycle of a station-mode wireless
// network interface: initialization, connection, disconnection, automatic
// reconnection on link loss, thread-safe connection-state query, and
// fan-out notification of state changes to registered receivers.
//
// # Usage
//
//	loop := eventloop.New()
//	client := station.New(drv, netif, loop)
//
//	if err := client.Init(station.Config{SSID: "lab", Password: "secret123"}); err != nil {
//	    // fatal: a driver or interface-subsystem step failed
//	}
//
//	events, _ := client.RegisterEventReceiver(4)
//	if err := client.Connect(); err != nil { ... }
//
//	for ev := range events {
//	    switch ev {
//	    case station.EventConnected: ...
//	    case station.EventDisconnected: ...
//	    }
//	}
//
// # Connected Means Addressed
//
// The client reports connected only once the station has acquired a
// usable network address. Link-layer association alone is not enough: a
// station can associate to an access point and still never obtain an
// address (authentication or DHCP failure), and consumers care about
// usability, not radio association.
//
// # Concurrency
//
// IsConnected may be called from any goroutine. The connected flag is
// guarded by a mutex whose critical sections are all O(1); the driver
// event handler mutates it from the event loop's dispatch goroutine,
// Disconnect forces it false from the caller's goroutine.
//
// Receiver registration is guarded by its own lock, distinct from the
// state lock, so registering remains safe while notifications are being
// fanned out. Notifications are delivered to each receiver queue in
// transition order; a full queue drops that one notification for that
// receiver (logged), and never blocks delivery to the others.
//
// # Reconnection
//
// On link loss the handler immediately issues a driver reconnect request.
// A failed request is logged, not fatal: the next disconnect event
// re-triggers the attempt, so the link keeps retrying for as long as it
// stays down.
package station
