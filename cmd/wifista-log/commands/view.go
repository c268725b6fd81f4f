// Package commands implements the wifista-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/wifista-project/wifista-go/pkg/log"
)

// BuildFilter assembles a log filter from CLI flag values. Empty values
// leave the corresponding criterion unset.
func BuildFilter(session, ssid, category, timeStart, timeEnd string) (*log.Filter, error) {
	filter := &log.Filter{
		SessionID: session,
		SSID:      ssid,
	}

	if category != "" {
		c, err := parseCategoryFlag(category)
		if err != nil {
			return nil, err
		}
		filter.Category = &c
	}

	if timeStart != "" {
		t, err := time.Parse(time.RFC3339, timeStart)
		if err != nil {
			return nil, fmt.Errorf("invalid time-start: %w", err)
		}
		filter.TimeStart = &t
	}

	if timeEnd != "" {
		t, err := time.Parse(time.RFC3339, timeEnd)
		if err != nil {
			return nil, fmt.Errorf("invalid time-end: %w", err)
		}
		filter.TimeEnd = &t
	}

	return filter, nil
}

func parseCategoryFlag(s string) (log.Category, error) {
	switch s {
	case "state":
		return log.CategoryState, nil
	case "driver":
		return log.CategoryDriver, nil
	case "delivery":
		return log.CategoryDelivery, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category: %s (want state, driver, delivery or error)", s)
	}
}

// RunView reads the log file and writes matching events to w in
// human-readable form.
func RunView(path string, filter *log.Filter, w io.Writer) error {
	reader, err := log.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll(filter)
	if err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}

	for _, event := range events {
		formatEvent(w, event)
	}
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session:id] CATEGORY Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	session := shortenSessionID(event.SessionID)

	var typeLabel string
	switch {
	case event.StateChange != nil:
		typeLabel = "StateChange"
	case event.Driver != nil:
		typeLabel = "DriverEvent"
	case event.Drop != nil:
		typeLabel = "Drop"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [session:%s] %-8s %s\n", ts, session, event.Category, typeLabel)

	switch {
	case event.StateChange != nil:
		sc := event.StateChange
		fmt.Fprintf(w, "  Transition: %s -> %s\n", sc.From, sc.To)
		if sc.Addr != "" {
			fmt.Fprintf(w, "  Address: %s\n", sc.Addr)
		}
	case event.Driver != nil:
		d := event.Driver
		fmt.Fprintf(w, "  Event: %s/%s\n", d.EventCategory, d.EventKind)
		if d.Addr != "" {
			fmt.Fprintf(w, "  Address: %s\n", d.Addr)
		}
	case event.Drop != nil:
		dr := event.Drop
		fmt.Fprintf(w, "  Notification: %s\n", dr.Notification)
		fmt.Fprintf(w, "  Receiver: %d (capacity %d)\n", dr.Receiver, dr.Capacity)
	case event.Error != nil:
		e := event.Error
		fmt.Fprintf(w, "  Op: %s\n", e.Op)
		fmt.Fprintf(w, "  Message: %s\n", e.Message)
		if e.Code != 0 {
			fmt.Fprintf(w, "  Code: 0x%X\n", e.Code)
		}
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
