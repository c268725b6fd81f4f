package sim

import (
	"sync"

	"github.com/wifista-project/wifista-go/pkg/driver"
)

// InterfaceName is the platform name of the simulated station interface.
const InterfaceName = "wl-sim0"

// Netif is the simulated network-interface subsystem.
type Netif struct {
	mu     sync.Mutex
	inited bool
}

// NewNetif creates a simulated interface subsystem.
func NewNetif() *Netif {
	return &Netif{}
}

// Init performs the one-time subsystem initialization.
func (n *Netif) Init() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.inited = true
	return nil
}

// CreateDefaultStationInterface creates the simulated station interface.
func (n *Netif) CreateDefaultStationInterface() (driver.Interface, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.inited {
		return nil, driver.NewError("netif_create", driver.CodeInvalidState)
	}
	return netifHandle{}, nil
}

type netifHandle struct{}

// Name returns the platform interface name.
func (netifHandle) Name() string { return InterfaceName }

// Compile-time interface satisfaction check.
var _ driver.Netif = (*Netif)(nil)
