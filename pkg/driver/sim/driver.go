package sim

import (
	"log/slog"
	"net/netip"
	"sync"
	"time"

	"github.com/wifista-project/wifista-go/pkg/driver"
	"github.com/wifista-project/wifista-go/pkg/eventloop"
)

// Default timing for the simulated link.
const (
	// DefaultAssocDelay is the delay before association completes.
	DefaultAssocDelay = 5 * time.Millisecond

	// DefaultAcquireDelay is the delay between association and address
	// acquisition.
	DefaultAcquireDelay = 5 * time.Millisecond
)

// DefaultAddr is the address the simulated station acquires.
var DefaultAddr = netip.MustParseAddr("192.168.4.2")

// Config controls the behavior of the simulated driver.
type Config struct {
	// Addr is the address acquired on a successful connection.
	// Zero value: DefaultAddr.
	Addr netip.Addr

	// AssocDelay is how long an association attempt takes.
	// Zero value: DefaultAssocDelay.
	AssocDelay time.Duration

	// AcquireDelay is how long address acquisition takes after
	// association. Zero value: DefaultAcquireDelay.
	AcquireDelay time.Duration

	// FailConnects makes the first N Connect calls fail synchronously
	// with CONN_FAIL, exercising the caller's soft-error path.
	FailConnects int

	// FailAssociations makes the first N association attempts end in a
	// station-disconnected event instead of associating.
	FailAssociations int

	// Backoff paces failed association retries.
	Backoff BackoffConfig
}

// Driver is a simulated station-mode radio driver. It implements
// driver.Driver against an in-memory access point, reporting outcomes
// through the event loop the way real hardware bindings would.
type Driver struct {
	loop   *eventloop.Loop
	logger *slog.Logger
	cfg    Config

	mu            sync.Mutex
	inited        bool
	mode          driver.Mode
	stationConfig driver.StationConfig
	haveConfig    bool
	started       bool
	associated    bool
	connectCalls  int
	assocAttempts int
	stopc         chan struct{}

	backoff *Backoff
	wg      sync.WaitGroup
}

// Option configures the simulated driver.
type Option func(*Driver)

// WithLogger sets the operational logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// New creates a simulated driver that reports events on loop.
func New(loop *eventloop.Loop, cfg Config, opts ...Option) *Driver {
	if !cfg.Addr.IsValid() {
		cfg.Addr = DefaultAddr
	}
	if cfg.AssocDelay <= 0 {
		cfg.AssocDelay = DefaultAssocDelay
	}
	if cfg.AcquireDelay <= 0 {
		cfg.AcquireDelay = DefaultAcquireDelay
	}

	d := &Driver{
		loop:    loop,
		logger:  slog.Default(),
		cfg:     cfg,
		backoff: NewBackoffWithConfig(cfg.Backoff),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init allocates the simulated driver.
func (d *Driver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inited = true
	return nil
}

// SetMode selects the radio mode. Only ModeStation is simulated.
func (d *Driver) SetMode(mode driver.Mode) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.inited {
		return driver.NewError("set_mode", driver.CodeInvalidState)
	}
	if mode != driver.ModeStation {
		return driver.NewError("set_mode", driver.CodeInvalidArg)
	}
	d.mode = mode
	return nil
}

// SetConfig programs the station configuration.
func (d *Driver) SetConfig(cfg driver.StationConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.inited || d.mode != driver.ModeStation {
		return driver.NewError("set_config", driver.CodeInvalidState)
	}
	if cfg.SSID == "" || len(cfg.SSID) > driver.MaxSSIDLen {
		return driver.NewError("set_config", driver.CodeInvalidArg)
	}
	d.stationConfig = cfg
	d.haveConfig = true
	return nil
}

// Start brings the simulated interface up. It posts the interface-ready
// and interface-started events asynchronously.
func (d *Driver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.inited || !d.haveConfig {
		return driver.NewError("start", driver.CodeInvalidState)
	}
	if d.started {
		return nil
	}
	d.started = true
	d.stopc = make(chan struct{})

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.post(eventloop.Event{Category: eventloop.CategoryInterface, Kind: eventloop.KindInterfaceReady})
		d.post(eventloop.Event{Category: eventloop.CategoryInterface, Kind: eventloop.KindInterfaceStarted})
	}()
	return nil
}

// Stop tears the simulated interface down and cancels any in-flight
// association attempt.
func (d *Driver) Stop() error {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return driver.NewError("stop", driver.CodeNotStarted)
	}
	d.started = false
	d.associated = false
	close(d.stopc)
	d.mu.Unlock()

	d.wg.Wait()
	return nil
}

// Connect begins an asynchronous association attempt.
func (d *Driver) Connect() error {
	d.mu.Lock()

	if !d.started {
		d.mu.Unlock()
		return driver.NewError("connect", driver.CodeNotStarted)
	}

	d.connectCalls++
	if d.connectCalls <= d.cfg.FailConnects {
		d.mu.Unlock()
		return driver.NewError("connect", driver.CodeConnFail)
	}

	stopc := d.stopc
	d.wg.Add(1)
	d.mu.Unlock()

	go d.associate(stopc)
	return nil
}

// DropLink simulates link loss: the access point disappears and the
// driver reports station-disconnected. It returns false when there is no
// association to drop.
func (d *Driver) DropLink() bool {
	d.mu.Lock()
	if !d.started || !d.associated {
		d.mu.Unlock()
		return false
	}
	d.associated = false
	d.mu.Unlock()

	d.post(eventloop.Event{Category: eventloop.CategoryInterface, Kind: eventloop.KindStationDisconnected})
	return true
}

// ConnectCalls returns how many Connect calls the driver has seen.
func (d *Driver) ConnectCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connectCalls
}

// associate runs one association attempt.
func (d *Driver) associate(stopc chan struct{}) {
	defer d.wg.Done()

	d.mu.Lock()
	d.assocAttempts++
	failing := d.assocAttempts <= d.cfg.FailAssociations
	delay := d.cfg.AssocDelay
	d.mu.Unlock()

	if failing {
		delay += d.backoff.Next()
	}
	if !sleepUntil(stopc, delay) {
		return
	}

	if failing {
		d.logger.Debug("simulated association failed", "attempt", d.backoff.Attempts())
		d.post(eventloop.Event{Category: eventloop.CategoryInterface, Kind: eventloop.KindStationDisconnected})
		return
	}

	d.backoff.Reset()
	d.mu.Lock()
	d.associated = true
	addr := d.cfg.Addr
	d.mu.Unlock()

	d.post(eventloop.Event{Category: eventloop.CategoryInterface, Kind: eventloop.KindStationConnected})

	if !sleepUntil(stopc, d.cfg.AcquireDelay) {
		return
	}
	d.post(eventloop.Event{Category: eventloop.CategoryAddress, Kind: eventloop.KindAddressAcquired, Addr: addr})
}

// post delivers an event to the loop, logging delivery failures.
func (d *Driver) post(ev eventloop.Event) {
	if err := d.loop.Post(ev); err != nil {
		d.logger.Debug("event post failed", "kind", ev.Kind, "error", err)
	}
}

// sleepUntil waits for the delay unless stopc closes first.
func sleepUntil(stopc chan struct{}, delay time.Duration) bool {
	select {
	case <-stopc:
		return false
	case <-time.After(delay):
		return true
	}
}

// Compile-time interface satisfaction check.
var _ driver.Driver = (*Driver)(nil)
