package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// LinkState contains the persisted runtime state of a station link.
type LinkState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// InterfaceName is the platform name of the station interface.
	InterfaceName string `json:"interface_name,omitempty"`

	// LastConnectedAt is when the station last acquired an address.
	LastConnectedAt time.Time `json:"last_connected_at,omitempty"`

	// LastAddress is the last acquired network address.
	LastAddress string `json:"last_address,omitempty"`

	// ConnectCount is how many times the link came up.
	ConnectCount uint64 `json:"connect_count,omitempty"`

	// DisconnectCount is how many times the link went down.
	DisconnectCount uint64 `json:"disconnect_count,omitempty"`

	// DroppedNotifications counts notifications lost at full receiver
	// queues.
	DroppedNotifications uint64 `json:"dropped_notifications,omitempty"`
}

// LinkStateStore manages persistence of link state to a JSON file.
type LinkStateStore struct {
	mu   sync.Mutex
	path string
}

// NewLinkStateStore creates a new link state store.
func NewLinkStateStore(path string) *LinkStateStore {
	return &LinkStateStore{path: path}
}

// Save persists the link state to disk.
func (s *LinkStateStore) Save(state *LinkState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the link state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *LinkStateStore) Load() (*LinkState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &LinkState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Clear removes the state file.
func (s *LinkStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
