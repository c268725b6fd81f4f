package discovery

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// Advertiser provides mDNS presence advertising.
type Advertiser interface {
	// Advertise starts advertising the presence service. A second call
	// replaces the previous advertisement.
	Advertise(info *PresenceInfo) error

	// Update updates the TXT records of a running advertisement.
	Update(info *PresenceInfo) error

	// Stop withdraws the advertisement.
	Stop()
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to advertise on.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{
		Interface: "",
		TTL:       120 * time.Second,
	}
}

// MDNSAdvertiser implements the Advertiser interface using zeroconf.
type MDNSAdvertiser struct {
	config AdvertiserConfig

	mu     sync.Mutex
	server *zeroconf.Server
}

// NewMDNSAdvertiser creates a new mDNS advertiser.
func NewMDNSAdvertiser(config AdvertiserConfig) (*MDNSAdvertiser, error) {
	return &MDNSAdvertiser{config: config}, nil
}

// getInterfaces returns the network interfaces to use for advertising.
// Returns nil to use all interfaces.
func (a *MDNSAdvertiser) getInterfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}

	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// Advertise starts advertising the presence service.
func (a *MDNSAdvertiser) Advertise(info *PresenceInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Stop existing if any
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	txtStrings := TXTRecordsToStrings(EncodePresenceTXT(info))

	port := info.Port
	if port == 0 {
		port = DefaultPort
	}

	server, err := zeroconf.Register(
		info.InstanceName,
		ServiceTypePresence,
		Domain,
		port,
		txtStrings,
		a.getInterfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register presence service: %w", err)
	}

	a.server = server
	return nil
}

// Update updates the TXT records of the running advertisement.
func (a *MDNSAdvertiser) Update(info *PresenceInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return fmt.Errorf("presence service not advertised")
	}

	a.server.SetText(TXTRecordsToStrings(EncodePresenceTXT(info)))
	return nil
}

// Stop withdraws the advertisement.
func (a *MDNSAdvertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}

// Compile-time interface satisfaction check.
var _ Advertiser = (*MDNSAdvertiser)(nil)
