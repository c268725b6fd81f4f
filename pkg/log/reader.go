package log

import (
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter specifies criteria for filtering log events.
// Empty/nil fields match all events for that criterion.
type Filter struct {
	// SessionID filters by exact session ID match.
	SessionID string

	// SSID filters by network name.
	SSID string

	// Category filters by event category.
	Category *Category

	// TimeStart filters events at or after this time.
	TimeStart *time.Time

	// TimeEnd filters events before this time.
	TimeEnd *time.Time
}

// matches returns true if the event matches all filter criteria.
func (f *Filter) matches(event Event) bool {
	if f.SessionID != "" && event.SessionID != f.SessionID {
		return false
	}
	if f.SSID != "" && event.SSID != f.SSID {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// Reader reads link events from a CBOR log stream.
type Reader struct {
	decoder *cbor.Decoder
	closer  io.Closer
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{decoder: NewDecoder(r)}
}

// OpenFile opens a .wlog file for reading.
func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{decoder: NewDecoder(f), closer: f}, nil
}

// Next returns the next event in the stream. It returns io.EOF when the
// stream is exhausted.
func (r *Reader) Next() (Event, error) {
	var event Event
	if err := r.decoder.Decode(&event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// ReadAll reads every event matching the filter. A nil filter matches
// everything.
func (r *Reader) ReadAll(f *Filter) ([]Event, error) {
	var events []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		if f == nil || f.matches(event) {
			events = append(events, event)
		}
	}
}

// Close closes the underlying file, if the Reader owns one.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
