// Package sim provides a simulated radio driver and network-interface
// subsystem for development and tests.
//
// The simulated driver implements driver.Driver against an in-memory
// access point. Start posts the interface lifecycle events a real driver
// would, Connect runs an asynchronous association attempt that ends in
// either station-connected followed by address-acquired, or in
// station-disconnected when failures are injected. Failed attempts are
// paced with exponential backoff the way real firmware spreads its
// retries.
//
// Failure injection and the timing knobs live in Config; with a zero
// Config the driver associates and acquires an address after short
// default delays, which keeps example binaries snappy and tests fast.
package sim
