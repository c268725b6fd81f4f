package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/wifista-project/wifista-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Sessions         map[string]*SessionStats
	Transitions      int
	Drops            int
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single connect session.
type SessionStats struct {
	FirstSeen   time.Time
	LastSeen    time.Time
	Events      int
	SSID        string
	Ups         int
	Downs       int
	LastAddress string
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Sessions:         make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		session, ok := stats.Sessions[event.SessionID]
		if !ok {
			session = &SessionStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Sessions[event.SessionID] = session
		}
		session.Events++
		if event.Timestamp.Before(session.FirstSeen) {
			session.FirstSeen = event.Timestamp
		}
		if event.Timestamp.After(session.LastSeen) {
			session.LastSeen = event.Timestamp
		}
		if event.SSID != "" {
			session.SSID = event.SSID
		}

		switch {
		case event.StateChange != nil:
			stats.Transitions++
			if event.StateChange.To == log.LinkUp {
				session.Ups++
				session.LastAddress = event.StateChange.Addr
			} else {
				session.Downs++
			}
		case event.Drop != nil:
			stats.Drops++
		case event.Error != nil:
			stats.Errors++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintf(w, "Total events: %d\n", stats.TotalEvents)

	if !stats.TimeRange.Start.IsZero() {
		duration := stats.TimeRange.End.Sub(stats.TimeRange.Start)
		fmt.Fprintf(w, "Time range:   %s .. %s (%s)\n",
			stats.TimeRange.Start.UTC().Format(time.RFC3339),
			stats.TimeRange.End.UTC().Format(time.RFC3339),
			duration.Round(time.Millisecond))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Events by category:")
	categories := make([]log.Category, 0, len(stats.EventsByCategory))
	for c := range stats.EventsByCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	for _, c := range categories {
		fmt.Fprintf(w, "  %-10s %d\n", c, stats.EventsByCategory[c])
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Transitions: %d\n", stats.Transitions)
	fmt.Fprintf(w, "Drops:       %d\n", stats.Drops)
	fmt.Fprintf(w, "Errors:      %d\n", stats.Errors)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))

	ids := make([]string, 0, len(stats.Sessions))
	for id := range stats.Sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return stats.Sessions[ids[i]].FirstSeen.Before(stats.Sessions[ids[j]].FirstSeen)
	})

	for _, id := range ids {
		s := stats.Sessions[id]
		fmt.Fprintf(w, "  %s\n", shortenSessionID(id))
		if s.SSID != "" {
			fmt.Fprintf(w, "    SSID:   %s\n", s.SSID)
		}
		fmt.Fprintf(w, "    Events: %d (up %d, down %d)\n", s.Events, s.Ups, s.Downs)
		if s.LastAddress != "" {
			fmt.Fprintf(w, "    Last address: %s\n", s.LastAddress)
		}
	}
}
