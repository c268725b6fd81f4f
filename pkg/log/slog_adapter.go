package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes link events to an slog.Logger.
// Useful for development when you want to see link events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("category", event.Category.String()),
	}

	if event.SSID != "" {
		attrs = append(attrs, slog.String("ssid", event.SSID))
	}

	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("from", event.StateChange.From.String()),
			slog.String("to", event.StateChange.To.String()),
		)
		if event.StateChange.Addr != "" {
			attrs = append(attrs, slog.String("addr", event.StateChange.Addr))
		}
	case event.Driver != nil:
		attrs = append(attrs,
			slog.String("event_category", event.Driver.EventCategory.String()),
			slog.String("event_kind", event.Driver.EventKind.String()),
		)
		if event.Driver.Addr != "" {
			attrs = append(attrs, slog.String("addr", event.Driver.Addr))
		}
	case event.Drop != nil:
		attrs = append(attrs,
			slog.String("notification", event.Drop.Notification),
			slog.Int("receiver", event.Drop.Receiver),
			slog.Int("capacity", event.Drop.Capacity),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("op", event.Error.Op),
			slog.String("error", event.Error.Message),
		)
		if event.Error.Code != 0 {
			attrs = append(attrs, slog.Int("code", int(event.Error.Code)))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "link event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
