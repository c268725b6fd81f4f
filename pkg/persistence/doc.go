// Package persistence stores link runtime state to disk.
//
// The link-state file records diagnostics that survive a restart: when
// the station last held an address, how often it connected and
// disconnected, and how many notifications were dropped at full receiver
// queues. It exists for operators and post-mortem tooling; the lifecycle
// manager itself never reads it.
//
// Credentials are deliberately not part of the state file. The SSID and
// passphrase live wherever the application keeps its configuration.
//
// State is stored as JSON with a format version for forward migration.
package persistence
