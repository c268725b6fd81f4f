package station

import (
	"log/slog"

	"github.com/wifista-project/wifista-go/pkg/log"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithLogger sets the operational logger. When a logger is supplied, its
// verbosity is the caller's concern and the Verbosity option has no
// effect.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.ownLevel = false
	}
}

// WithVerbosity sets the log level applied to the client's default logger
// when Init runs. The default is slog.LevelError.
func WithVerbosity(level slog.Level) Option {
	return func(c *Client) {
		c.verbosity = level
	}
}

// WithCapture sets the link-event capture logger. The default discards
// all events.
func WithCapture(capture log.Logger) Option {
	return func(c *Client) {
		if capture != nil {
			c.capture = capture
		}
	}
}

// WithMaxReceivers caps how many event receivers may be registered.
// The default is DefaultMaxReceivers.
func WithMaxReceivers(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxReceivers = n
		}
	}
}
