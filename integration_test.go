package wifista_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/wifista-project/wifista-go/pkg/driver/sim"
	"github.com/wifista-project/wifista-go/pkg/eventloop"
	"github.com/wifista-project/wifista-go/pkg/log"
	"github.com/wifista-project/wifista-go/pkg/persistence"
	"github.com/wifista-project/wifista-go/pkg/station"
)

const eventTimeout = 5 * time.Second

func waitEvent(t *testing.T, events <-chan station.Event, want station.Event) {
	t.Helper()
	select {
	case got := <-events:
		if got != want {
			t.Fatalf("event = %v, want %v", got, want)
		}
	case <-time.After(eventTimeout):
		t.Fatalf("timed out waiting for %v", want)
	}
}

// TestE2E_ConnectLifecycle drives the full stack through the real event
// loop: initialize, connect, observe the address, disconnect.
func TestE2E_ConnectLifecycle(t *testing.T) {
	loop := eventloop.New()
	drv := sim.New(loop, sim.Config{})
	client := station.New(drv, sim.NewNetif(), loop)

	if err := client.Init(station.Config{SSID: "lab", Password: "secret123"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer loop.Close()

	events, err := client.RegisterEventReceiver(4)
	if err != nil {
		t.Fatalf("RegisterEventReceiver: %v", err)
	}

	if err := client.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	waitEvent(t, events, station.EventConnected)

	if !client.IsConnected() {
		t.Error("IsConnected() = false after connected notification")
	}
	if addr := client.Address(); addr != sim.DefaultAddr {
		t.Errorf("Address() = %v, want %v", addr, sim.DefaultAddr)
	}

	if err := client.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Disconnect")
	}
}

// TestE2E_Reconnect verifies that a dropped link is reestablished
// without caller involvement.
func TestE2E_Reconnect(t *testing.T) {
	loop := eventloop.New()
	drv := sim.New(loop, sim.Config{})
	client := station.New(drv, sim.NewNetif(), loop)

	if err := client.Init(station.Config{SSID: "lab", Password: "secret123"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer loop.Close()

	events, err := client.RegisterEventReceiver(4)
	if err != nil {
		t.Fatalf("RegisterEventReceiver: %v", err)
	}

	if err := client.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	waitEvent(t, events, station.EventConnected)

	if !drv.DropLink() {
		t.Fatal("DropLink() = false with link up")
	}

	waitEvent(t, events, station.EventDisconnected)
	waitEvent(t, events, station.EventConnected)

	if !client.IsConnected() {
		t.Error("IsConnected() = false after reconnect")
	}

	if err := client.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
}

// TestE2E_RetriedAssociation verifies that failed association attempts
// are retried until one succeeds.
func TestE2E_RetriedAssociation(t *testing.T) {
	loop := eventloop.New()
	drv := sim.New(loop, sim.Config{
		FailAssociations: 2,
		Backoff: sim.BackoffConfig{
			Initial:    time.Millisecond,
			Max:        5 * time.Millisecond,
			Multiplier: 2.0,
		},
	})
	client := station.New(drv, sim.NewNetif(), loop)

	if err := client.Init(station.Config{SSID: "lab", Password: "secret123"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer loop.Close()

	events, err := client.RegisterEventReceiver(4)
	if err != nil {
		t.Fatalf("RegisterEventReceiver: %v", err)
	}

	if err := client.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	waitEvent(t, events, station.EventConnected)

	// Two failed attempts plus the successful one
	if calls := drv.ConnectCalls(); calls < 3 {
		t.Errorf("ConnectCalls() = %d, want >= 3", calls)
	}

	if err := client.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
}

// TestE2E_Capture verifies that a full lifecycle leaves a readable
// event trail in the capture file.
func TestE2E_Capture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "e2e.wlog")
	fl, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}

	loop := eventloop.New()
	drv := sim.New(loop, sim.Config{})
	client := station.New(drv, sim.NewNetif(), loop, station.WithCapture(fl))

	if err := client.Init(station.Config{SSID: "lab", Password: "secret123"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer loop.Close()

	events, err := client.RegisterEventReceiver(4)
	if err != nil {
		t.Fatalf("RegisterEventReceiver: %v", err)
	}

	if err := client.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	waitEvent(t, events, station.EventConnected)

	if err := client.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if err := fl.Close(); err != nil {
		t.Fatalf("Close capture: %v", err)
	}

	reader, err := log.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer reader.Close()

	all, err := reader.ReadAll(nil)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("capture file is empty")
	}

	var ups, drivers int
	for _, ev := range all {
		if ev.StateChange != nil && ev.StateChange.To == log.LinkUp {
			ups++
			if ev.StateChange.Addr != sim.DefaultAddr.String() {
				t.Errorf("captured address = %q, want %q", ev.StateChange.Addr, sim.DefaultAddr)
			}
		}
		if ev.Driver != nil {
			drivers++
		}
	}
	if ups != 1 {
		t.Errorf("captured up transitions = %d, want 1", ups)
	}
	if drivers == 0 {
		t.Error("no raw driver events captured")
	}
}

// TestE2E_PersistedStatistics exercises the link-state store the way the
// device command uses it.
func TestE2E_PersistedStatistics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := persistence.NewLinkStateStore(path)

	loop := eventloop.New()
	drv := sim.New(loop, sim.Config{})
	client := station.New(drv, sim.NewNetif(), loop)

	if err := client.Init(station.Config{SSID: "lab", Password: "secret123"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer loop.Close()

	events, err := client.RegisterEventReceiver(4)
	if err != nil {
		t.Fatalf("RegisterEventReceiver: %v", err)
	}

	if err := client.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	waitEvent(t, events, station.EventConnected)

	state := &persistence.LinkState{
		Version:         persistence.StateVersion,
		InterfaceName:   sim.InterfaceName,
		ConnectCount:    1,
		LastConnectedAt: time.Now(),
		LastAddress:     client.Address().String(),
	}
	if err := store.Save(state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := client.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil state")
	}
	if loaded.ConnectCount != 1 {
		t.Errorf("ConnectCount = %d, want 1", loaded.ConnectCount)
	}
	if loaded.LastAddress != sim.DefaultAddr.String() {
		t.Errorf("LastAddress = %q, want %q", loaded.LastAddress, sim.DefaultAddr)
	}
}
