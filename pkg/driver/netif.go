package driver

// Interface is an opaque handle to a created network interface object.
// The lifecycle manager holds the handle but never inspects it; address
// assignment and routing belong to the platform networking stack.
type Interface interface {
	// Name returns the platform name of the interface.
	Name() string
}

// Netif is the network-interface subsystem capability.
type Netif interface {
	// Init performs the one-time initialization of the interface
	// subsystem.
	Init() error

	// CreateDefaultStationInterface creates the default station-mode
	// interface object bound to the radio driver.
	CreateDefaultStationInterface() (Interface, error)
}
