package station

import (
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/wifista-project/wifista-go/pkg/driver"
	"github.com/wifista-project/wifista-go/pkg/eventloop"
	"github.com/wifista-project/wifista-go/pkg/log"
	"github.com/wifista-project/wifista-go/pkg/wpa"
)

const (
	// DefaultMaxReceivers is the default cap on registered event
	// receivers.
	DefaultMaxReceivers = 16

	// DefaultQueueSize is the receiver queue size used when callers have
	// no reason to pick another.
	DefaultQueueSize = 1
)

// Client manages a single station-mode wireless interface. Construct one
// instance per interface with New; the zero value is not usable.
//
// All methods are safe for concurrent use. See the package documentation
// for the locking discipline.
type Client struct {
	drv   driver.Driver
	netif driver.Netif
	loop  *eventloop.Loop

	logger    *slog.Logger
	level     *slog.LevelVar
	ownLevel  bool
	verbosity slog.Level
	capture   log.Logger

	// mu guards the connection state. Every critical section is O(1).
	mu          sync.Mutex
	initialized bool
	connected   bool
	addr        netip.Addr
	config      Config
	sessionID   string

	iface driver.Interface

	// recvMu guards the receiver registry, separately from mu, so
	// registration never contends with the state flag and fan-out never
	// holds the state lock.
	recvMu       sync.Mutex
	receivers    []chan Event
	maxReceivers int
}

// New creates a client over the given driver, interface subsystem and
// event loop. The client does not own the loop; the caller closes it
// after the client is no longer in use.
func New(drv driver.Driver, netif driver.Netif, loop *eventloop.Loop, opts ...Option) *Client {
	level := new(slog.LevelVar)
	level.Set(slog.LevelError)

	c := &Client{
		drv:          drv,
		netif:        netif,
		loop:         loop,
		level:        level,
		ownLevel:     true,
		verbosity:    slog.LevelError,
		capture:      log.NoopLogger{},
		maxReceivers: DefaultMaxReceivers,
	}
	c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("component", "station")

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init performs the one-time setup of the interface: it applies the
// configured log verbosity, initializes the interface subsystem and the
// event loop, creates the default station interface, initializes the
// radio driver and programs it with the network name and credential,
// requiring WPA2-PSK as the minimum authentication mode.
//
// Any platform non-volatile storage the driver depends on must be
// initialized by the caller before Init; this precondition is not
// enforced in code.
//
// A failing step aborts Init with an error naming the step and wrapping
// the underlying driver error. There is no retry and no rollback of the
// steps already completed.
func (c *Client) Init(cfg Config) error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return ErrAlreadyInitialized
	}
	c.mu.Unlock()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("station init: %w", err)
	}

	if c.ownLevel {
		c.level.Set(c.verbosity)
	}

	if err := c.netif.Init(); err != nil {
		return fmt.Errorf("station init: netif init: %w", err)
	}
	if err := c.loop.Start(); err != nil {
		return fmt.Errorf("station init: event loop start: %w", err)
	}
	iface, err := c.netif.CreateDefaultStationInterface()
	if err != nil {
		return fmt.Errorf("station init: create station interface: %w", err)
	}
	if err := c.drv.Init(); err != nil {
		return fmt.Errorf("station init: driver init: %w", err)
	}

	psk, err := wpa.DerivePSK(cfg.Password, cfg.SSID)
	if err != nil {
		return fmt.Errorf("station init: derive psk: %w", err)
	}

	if err := c.drv.SetMode(driver.ModeStation); err != nil {
		return fmt.Errorf("station init: set mode: %w", err)
	}
	if err := c.drv.SetConfig(driver.StationConfig{
		SSID:        cfg.SSID,
		Passphrase:  cfg.Password,
		PSK:         psk,
		MinAuthMode: driver.AuthWPA2PSK,
	}); err != nil {
		return fmt.Errorf("station init: set config: %w", err)
	}

	c.mu.Lock()
	c.config = cfg
	c.iface = iface
	c.initialized = true
	c.mu.Unlock()

	c.logger.Debug("initialized", "ssid", cfg.SSID, "interface", iface.Name())
	return nil
}

// Connect registers the driver event handler and starts the driver. The
// connection itself completes asynchronously; receivers observe
// EventConnected once an address is acquired.
//
// Connect is idempotent: it is a no-op while connected. It fails with
// ErrNotInitialized before Init. A registration or start failure aborts
// the call; an already-completed registration is not unwound.
func (c *Client) Connect() error {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		return ErrNotInitialized
	}
	if c.connected {
		c.mu.Unlock()
		return nil
	}
	c.sessionID = uuid.NewString()
	session := c.sessionID
	ssid := c.config.SSID
	c.mu.Unlock()

	c.logger.Debug("connecting", "ssid", ssid, "session_id", session)

	if err := c.loop.RegisterHandler(eventloop.CategoryInterface, eventloop.KindAny, c); err != nil {
		return fmt.Errorf("station connect: register interface handler: %w", err)
	}
	if err := c.loop.RegisterHandler(eventloop.CategoryAddress, eventloop.KindAddressAcquired, c); err != nil {
		return fmt.Errorf("station connect: register address handler: %w", err)
	}
	if err := c.drv.Start(); err != nil {
		return fmt.Errorf("station connect: driver start: %w", err)
	}
	return nil
}

// Disconnect stops the driver, removes both handler registrations and
// forces the connection state to disconnected. Stop runs first so no
// event arrives for an interface the handler no longer manages.
//
// Disconnect is idempotent: it is a no-op while disconnected. It fails
// with ErrNotInitialized before Init.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		return ErrNotInitialized
	}
	if !c.connected {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.drv.Stop(); err != nil {
		return fmt.Errorf("station disconnect: driver stop: %w", err)
	}
	if err := c.loop.UnregisterHandler(eventloop.CategoryInterface, eventloop.KindAny, c); err != nil {
		return fmt.Errorf("station disconnect: unregister interface handler: %w", err)
	}
	if err := c.loop.UnregisterHandler(eventloop.CategoryAddress, eventloop.KindAddressAcquired, c); err != nil {
		return fmt.Errorf("station disconnect: unregister address handler: %w", err)
	}

	c.setConnected(false, netip.Addr{})
	c.logger.Debug("disconnected")
	return nil
}

// IsConnected reports whether the station currently holds a usable
// network address.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Address returns the acquired network address, or the zero Addr while
// disconnected.
func (c *Client) Address() netip.Addr {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addr
}

// RegisterEventReceiver creates a bounded receiver queue holding up to
// size events and registers it for connection-state notifications. The
// returned channel is owned by the caller, who is responsible for
// draining it; the client keeps only a delivery handle and never closes
// the channel.
//
// A size of zero or less fails with ErrInvalidQueueSize. Registration
// beyond the receiver cap fails with ErrResourceExhausted. Receivers
// cannot be unregistered.
func (c *Client) RegisterEventReceiver(size int) (<-chan Event, error) {
	if size <= 0 {
		return nil, ErrInvalidQueueSize
	}

	c.recvMu.Lock()
	defer c.recvMu.Unlock()

	if len(c.receivers) >= c.maxReceivers {
		return nil, ErrResourceExhausted
	}
	ch := make(chan Event, size)
	c.receivers = append(c.receivers, ch)
	return ch, nil
}

// setConnected updates the guarded connection state.
func (c *Client) setConnected(connected bool, addr netip.Addr) {
	c.mu.Lock()
	c.connected = connected
	c.addr = addr
	c.mu.Unlock()
}

// session returns the current session ID and SSID for capture records.
func (c *Client) session() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID, c.config.SSID
}

// fireEvent delivers ev to every registered receiver without blocking.
// A receiver whose queue is full loses this one notification; the drop
// is logged and delivery to the remaining receivers continues.
func (c *Client) fireEvent(ev Event) {
	c.recvMu.Lock()
	receivers := make([]chan Event, len(c.receivers))
	copy(receivers, c.receivers)
	c.recvMu.Unlock()

	for i, q := range receivers {
		select {
		case q <- ev:
		default:
			c.logger.Error("could not fire event, receiver queue is full",
				"event", ev, "receiver", i)
			session, ssid := c.session()
			c.capture.Log(log.NewDropEvent(session, ssid, ev.String(), i, cap(q)))
		}
	}
}
