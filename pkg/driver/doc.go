// Package driver defines the radio driver and network-interface abstractions
// consumed by the station lifecycle manager.
//
// The manager never talks to radio hardware directly. It is programmed
// against two small capability interfaces:
//
//   - Driver: the station-mode radio driver (init, mode, config, start,
//     stop, connect). Real hardware bindings and the simulated driver in
//     the sim subpackage both implement it.
//   - Netif: the network-interface subsystem (one-time init plus creation
//     of the default station interface object).
//
// # Error Codes
//
// Driver operations fail with an *Error carrying an ErrorCode. Codes model
// the numeric error space of embedded radio SDKs so callers can log and
// surface the underlying cause without depending on a concrete driver.
//
// # Asynchronous Outcomes
//
// Start and Connect only begin work. Association, address acquisition and
// link loss are reported asynchronously through the event loop (see the
// eventloop package); none of the Driver methods block on radio I/O.
package driver
