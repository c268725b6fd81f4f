package station

import (
	"net/netip"
	"strings"
	"sync"
	"testing"

	"github.com/wifista-project/wifista-go/pkg/driver"
	"github.com/wifista-project/wifista-go/pkg/eventloop"
)

// fakeDriver records driver calls and fails on demand.
type fakeDriver struct {
	mu sync.Mutex

	initCalls    int
	startCalls   int
	stopCalls    int
	connectCalls int
	modes        []driver.Mode
	configs      []driver.StationConfig

	failInit      error
	failSetMode   error
	failSetConfig error
	failStart     error
	failStop      error
	failConnect   error
}

func (d *fakeDriver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.initCalls++
	return d.failInit
}

func (d *fakeDriver) SetMode(mode driver.Mode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.modes = append(d.modes, mode)
	return d.failSetMode
}

func (d *fakeDriver) SetConfig(cfg driver.StationConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.configs = append(d.configs, cfg)
	return d.failSetConfig
}

func (d *fakeDriver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.startCalls++
	return d.failStart
}

func (d *fakeDriver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopCalls++
	return d.failStop
}

func (d *fakeDriver) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connectCalls++
	return d.failConnect
}

func (d *fakeDriver) counts() (inits, starts, stops, connects int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initCalls, d.startCalls, d.stopCalls, d.connectCalls
}

// fakeNetif is a recording Netif implementation.
type fakeNetif struct {
	initCalls   int
	createCalls int
	failInit    error
	failCreate  error
}

type fakeInterface struct{}

func (fakeInterface) Name() string { return "wl-test0" }

func (n *fakeNetif) Init() error {
	n.initCalls++
	return n.failInit
}

func (n *fakeNetif) CreateDefaultStationInterface() (driver.Interface, error) {
	n.createCalls++
	if n.failCreate != nil {
		return nil, n.failCreate
	}
	return fakeInterface{}, nil
}

var testConfig = Config{SSID: "lab", Password: "secret123"}

// newTestClient returns an initialized client over fakes plus the loop,
// which the test must close.
func newTestClient(t *testing.T, opts ...Option) (*Client, *fakeDriver, *eventloop.Loop) {
	t.Helper()
	drv := &fakeDriver{}
	loop := eventloop.New()
	t.Cleanup(func() { loop.Close() })

	c := New(drv, &fakeNetif{}, loop, opts...)
	if err := c.Init(testConfig); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	return c, drv, loop
}

func addrEvent(s string) eventloop.Event {
	return eventloop.Event{
		Category: eventloop.CategoryAddress,
		Kind:     eventloop.KindAddressAcquired,
		Addr:     netip.MustParseAddr(s),
	}
}

func interfaceEvent(kind eventloop.Kind) eventloop.Event {
	return eventloop.Event{Category: eventloop.CategoryInterface, Kind: kind}
}

func TestInitProgramsDriver(t *testing.T) {
	drv := &fakeDriver{}
	netif := &fakeNetif{}
	loop := eventloop.New()
	defer loop.Close()

	c := New(drv, netif, loop)
	if err := c.Init(testConfig); err != nil {
		t.Fatalf("Init() = %v", err)
	}

	if netif.initCalls != 1 || netif.createCalls != 1 {
		t.Errorf("netif calls = (%d init, %d create), want (1, 1)", netif.initCalls, netif.createCalls)
	}
	if inits, _, _, _ := drv.counts(); inits != 1 {
		t.Errorf("driver Init calls = %d, want 1", inits)
	}
	if len(drv.modes) != 1 || drv.modes[0] != driver.ModeStation {
		t.Errorf("modes = %v, want [STATION]", drv.modes)
	}
	if len(drv.configs) != 1 {
		t.Fatalf("configs = %d entries, want 1", len(drv.configs))
	}

	cfg := drv.configs[0]
	if cfg.SSID != "lab" || cfg.Passphrase != "secret123" {
		t.Errorf("programmed (%q, %q), want (lab, secret123)", cfg.SSID, cfg.Passphrase)
	}
	if cfg.MinAuthMode != driver.AuthWPA2PSK {
		t.Errorf("MinAuthMode = %v, want WPA2_PSK", cfg.MinAuthMode)
	}
	if cfg.PSK == ([32]byte{}) {
		t.Error("PSK was not derived")
	}

	if c.IsConnected() {
		t.Error("IsConnected() = true after Init, want false")
	}
}

func TestInitFailuresNameTheStep(t *testing.T) {
	derr := driver.NewError("init", driver.CodeNoMem)

	tests := []struct {
		name    string
		mutate  func(*fakeDriver, *fakeNetif)
		wantSub string
	}{
		{"netif", func(d *fakeDriver, n *fakeNetif) { n.failInit = derr }, "netif init"},
		{"create interface", func(d *fakeDriver, n *fakeNetif) { n.failCreate = derr }, "create station interface"},
		{"driver init", func(d *fakeDriver, n *fakeNetif) { d.failInit = derr }, "driver init"},
		{"set mode", func(d *fakeDriver, n *fakeNetif) { d.failSetMode = derr }, "set mode"},
		{"set config", func(d *fakeDriver, n *fakeNetif) { d.failSetConfig = derr }, "set config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv := &fakeDriver{}
			netif := &fakeNetif{}
			loop := eventloop.New()
			defer loop.Close()
			tt.mutate(drv, netif)

			c := New(drv, netif, loop)
			err := c.Init(testConfig)
			if err == nil {
				t.Fatal("Init() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not name step %q", err, tt.wantSub)
			}
			if !strings.Contains(err.Error(), driver.CodeNoMem.String()) {
				t.Errorf("error %q does not carry the driver code", err)
			}

			// A failed Init must leave the client unusable.
			if cerr := c.Connect(); cerr != ErrNotInitialized {
				t.Errorf("Connect() after failed Init = %v, want ErrNotInitialized", cerr)
			}
		})
	}
}

func TestInitRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty ssid", Config{Password: "secret123"}},
		{"oversized ssid", Config{SSID: strings.Repeat("s", 33), Password: "secret123"}},
		{"oversized password", Config{SSID: "lab", Password: strings.Repeat("p", 65)}},
		{"short passphrase", Config{SSID: "lab", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv := &fakeDriver{}
			loop := eventloop.New()
			defer loop.Close()
			c := New(drv, &fakeNetif{}, loop)
			if err := c.Init(tt.cfg); err == nil {
				t.Error("Init() = nil, want error")
			}
		})
	}
}

func TestInitTwice(t *testing.T) {
	c, _, _ := newTestClient(t)
	if err := c.Init(testConfig); err != ErrAlreadyInitialized {
		t.Errorf("second Init() = %v, want ErrAlreadyInitialized", err)
	}
}

func TestConnectDisconnectBeforeInit(t *testing.T) {
	drv := &fakeDriver{}
	loop := eventloop.New()
	defer loop.Close()
	c := New(drv, &fakeNetif{}, loop)

	if err := c.Connect(); err != ErrNotInitialized {
		t.Errorf("Connect() = %v, want ErrNotInitialized", err)
	}
	if err := c.Disconnect(); err != ErrNotInitialized {
		t.Errorf("Disconnect() = %v, want ErrNotInitialized", err)
	}
	if _, starts, stops, _ := drv.counts(); starts != 0 || stops != 0 {
		t.Errorf("driver mutated before init: %d starts, %d stops", starts, stops)
	}
}

func TestConnectStartsDriverOnce(t *testing.T) {
	c, drv, _ := newTestClient(t)

	if err := c.Connect(); err != nil {
		t.Fatalf("Connect() = %v", err)
	}
	if _, starts, _, _ := drv.counts(); starts != 1 {
		t.Errorf("Start calls = %d, want 1", starts)
	}

	// Bring the link up, then call Connect again: idempotent, no second
	// start and no duplicate registration.
	c.HandleEvent(addrEvent("192.168.4.17"))
	if !c.IsConnected() {
		t.Fatal("IsConnected() = false after address acquired")
	}
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect() while connected = %v", err)
	}
	if _, starts, _, _ := drv.counts(); starts != 1 {
		t.Errorf("Start calls after idempotent Connect = %d, want 1", starts)
	}
}

func TestConnectFailsAtDriverStart(t *testing.T) {
	c, drv, _ := newTestClient(t)
	drv.failStart = driver.NewError("start", driver.CodeConnFail)

	err := c.Connect()
	if err == nil {
		t.Fatal("Connect() = nil, want error")
	}
	if !strings.Contains(err.Error(), "driver start") {
		t.Errorf("error %q does not name the failing step", err)
	}
	if !strings.Contains(err.Error(), driver.CodeConnFail.String()) {
		t.Errorf("error %q does not carry the driver code", err)
	}
}

func TestDisconnect(t *testing.T) {
	c, drv, _ := newTestClient(t)

	// Disconnected already: no stop call.
	if err := c.Disconnect(); err != nil {
		t.Fatalf("Disconnect() while disconnected = %v", err)
	}
	if _, _, stops, _ := drv.counts(); stops != 0 {
		t.Errorf("Stop calls = %d, want 0", stops)
	}

	if err := c.Connect(); err != nil {
		t.Fatalf("Connect() = %v", err)
	}
	c.HandleEvent(addrEvent("192.168.4.17"))

	if err := c.Disconnect(); err != nil {
		t.Fatalf("Disconnect() = %v", err)
	}
	if _, _, stops, _ := drv.counts(); stops != 1 {
		t.Errorf("Stop calls = %d, want 1", stops)
	}
	if c.IsConnected() {
		t.Error("IsConnected() = true after Disconnect")
	}
	if c.Address().IsValid() {
		t.Error("Address() still valid after Disconnect")
	}

	// A second Disconnect is a no-op.
	if err := c.Disconnect(); err != nil {
		t.Fatalf("second Disconnect() = %v", err)
	}
	if _, _, stops, _ := drv.counts(); stops != 1 {
		t.Errorf("Stop calls after idempotent Disconnect = %d, want 1", stops)
	}
}

func TestHandlerReactionTable(t *testing.T) {
	t.Run("InterfaceStartedIssuesConnect", func(t *testing.T) {
		c, drv, _ := newTestClient(t)
		c.HandleEvent(interfaceEvent(eventloop.KindInterfaceStarted))
		if _, _, _, connects := drv.counts(); connects != 1 {
			t.Errorf("Connect calls = %d, want 1", connects)
		}
		if c.IsConnected() {
			t.Error("interface started must not change connection state")
		}
	})

	t.Run("InformationalEventsChangeNothing", func(t *testing.T) {
		c, drv, _ := newTestClient(t)
		c.HandleEvent(interfaceEvent(eventloop.KindInterfaceReady))
		c.HandleEvent(interfaceEvent(eventloop.KindStationConnected))
		if c.IsConnected() {
			t.Error("informational events must not set connected")
		}
		if _, _, _, connects := drv.counts(); connects != 0 {
			t.Errorf("Connect calls = %d, want 0", connects)
		}
	})

	t.Run("AddressAcquiredConnects", func(t *testing.T) {
		c, _, _ := newTestClient(t)
		events, err := c.RegisterEventReceiver(2)
		if err != nil {
			t.Fatalf("RegisterEventReceiver() = %v", err)
		}

		c.HandleEvent(addrEvent("10.0.0.9"))
		if !c.IsConnected() {
			t.Fatal("IsConnected() = false after address acquired")
		}
		if got := c.Address(); got != netip.MustParseAddr("10.0.0.9") {
			t.Errorf("Address() = %v, want 10.0.0.9", got)
		}
		if got := <-events; got != EventConnected {
			t.Errorf("received %v, want CONNECTED", got)
		}

		// A renewed address while connected fires no duplicate event.
		c.HandleEvent(addrEvent("10.0.0.10"))
		select {
		case ev := <-events:
			t.Errorf("duplicate notification %v for renewed address", ev)
		default:
		}
		if got := c.Address(); got != netip.MustParseAddr("10.0.0.10") {
			t.Errorf("Address() = %v, want renewed 10.0.0.10", got)
		}
	})

	t.Run("StationDisconnectedReconnects", func(t *testing.T) {
		c, drv, _ := newTestClient(t)
		events, err := c.RegisterEventReceiver(2)
		if err != nil {
			t.Fatalf("RegisterEventReceiver() = %v", err)
		}

		c.HandleEvent(addrEvent("10.0.0.9"))
		<-events

		c.HandleEvent(interfaceEvent(eventloop.KindStationDisconnected))
		if c.IsConnected() {
			t.Error("IsConnected() = true after station disconnected")
		}
		if got := <-events; got != EventDisconnected {
			t.Errorf("received %v, want DISCONNECTED", got)
		}
		if _, _, _, connects := drv.counts(); connects != 1 {
			t.Errorf("reconnect attempts = %d, want 1", connects)
		}
	})

	t.Run("DisconnectedWhileDownFiresNothing", func(t *testing.T) {
		c, drv, _ := newTestClient(t)
		events, err := c.RegisterEventReceiver(2)
		if err != nil {
			t.Fatalf("RegisterEventReceiver() = %v", err)
		}

		// e.g. a failed association attempt before any address
		c.HandleEvent(interfaceEvent(eventloop.KindStationDisconnected))
		select {
		case ev := <-events:
			t.Errorf("notification %v fired for a transition that did not happen", ev)
		default:
		}
		if _, _, _, connects := drv.counts(); connects != 1 {
			t.Errorf("reconnect attempts = %d, want 1", connects)
		}
	})

	t.Run("ReconnectFailureIssoft", func(t *testing.T) {
		c, drv, _ := newTestClient(t)
		drv.failConnect = driver.NewError("connect", driver.CodeConnFail)

		c.HandleEvent(addrEvent("10.0.0.9"))
		c.HandleEvent(interfaceEvent(eventloop.KindStationDisconnected))

		// The failure is absorbed; state still reflects the disconnect.
		if c.IsConnected() {
			t.Error("IsConnected() = true after disconnect with failed reconnect")
		}
		if _, _, _, connects := drv.counts(); connects != 1 {
			t.Errorf("reconnect attempts = %d, want 1", connects)
		}
	})
}

func TestRegisterEventReceiver(t *testing.T) {
	t.Run("ZeroSize", func(t *testing.T) {
		c, _, _ := newTestClient(t)
		if _, err := c.RegisterEventReceiver(0); err != ErrInvalidQueueSize {
			t.Errorf("RegisterEventReceiver(0) = %v, want ErrInvalidQueueSize", err)
		}
	})

	t.Run("NegativeSize", func(t *testing.T) {
		c, _, _ := newTestClient(t)
		if _, err := c.RegisterEventReceiver(-1); err != ErrInvalidQueueSize {
			t.Errorf("RegisterEventReceiver(-1) = %v, want ErrInvalidQueueSize", err)
		}
	})

	t.Run("ReceiverCap", func(t *testing.T) {
		c, _, _ := newTestClient(t, WithMaxReceivers(2))
		for i := 0; i < 2; i++ {
			if _, err := c.RegisterEventReceiver(1); err != nil {
				t.Fatalf("RegisterEventReceiver() #%d = %v", i, err)
			}
		}
		if _, err := c.RegisterEventReceiver(1); err != ErrResourceExhausted {
			t.Errorf("RegisterEventReceiver() over cap = %v, want ErrResourceExhausted", err)
		}
	})
}

func TestFullReceiverDropsWithoutBlocking(t *testing.T) {
	c, _, _ := newTestClient(t)

	full, err := c.RegisterEventReceiver(1)
	if err != nil {
		t.Fatalf("RegisterEventReceiver() = %v", err)
	}
	healthy, err := c.RegisterEventReceiver(4)
	if err != nil {
		t.Fatalf("RegisterEventReceiver() = %v", err)
	}

	// Two transitions; the size-1 queue is never drained, so its second
	// notification is dropped. If the handler blocked, this test would
	// hang.
	c.HandleEvent(addrEvent("10.0.0.9"))
	c.HandleEvent(interfaceEvent(eventloop.KindStationDisconnected))

	if got := len(full); got != 1 {
		t.Errorf("full receiver holds %d events, want 1", got)
	}
	if got := <-full; got != EventConnected {
		t.Errorf("full receiver first event = %v, want CONNECTED", got)
	}

	if got := len(healthy); got != 2 {
		t.Fatalf("healthy receiver holds %d events, want 2", got)
	}
	if got := <-healthy; got != EventConnected {
		t.Errorf("healthy receiver event 1 = %v, want CONNECTED", got)
	}
	if got := <-healthy; got != EventDisconnected {
		t.Errorf("healthy receiver event 2 = %v, want DISCONNECTED", got)
	}
}

func TestConcurrentIsConnected(t *testing.T) {
	c, _, _ := newTestClient(t)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					_ = c.IsConnected()
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		c.HandleEvent(addrEvent("10.0.0.9"))
		c.HandleEvent(interfaceEvent(eventloop.KindStationDisconnected))
	}
	close(stop)
	wg.Wait()

	if c.IsConnected() {
		t.Error("IsConnected() = true after final disconnect")
	}
}
