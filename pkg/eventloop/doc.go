// Package eventloop implements the event-dispatch subsystem that delivers
// radio driver lifecycle events to registered handlers.
//
// # Delivery Model
//
// A Loop owns a single dispatch goroutine. Events posted with Post are
// queued and delivered one at a time, in post order; a handler always
// runs to completion before the next event is dispatched. This serial,
// in-order guarantee is what lets the station lifecycle manager mutate
// its connection state from handler context without further ordering
// machinery.
//
// # Registration
//
// Handlers register for an (event category, event kind) pair. KindAny
// matches every kind within the category. Registration identity is the
// exact (category, kind, handler) triple, so unregistering removes only
// the matching registration. Registering the same triple twice fails
// with ErrAlreadyRegistered.
//
// Registration and unregistration are safe to call concurrently with a
// running loop; handler set changes take effect for the next dispatched
// event.
package eventloop
