package discovery

import "errors"

// Service constants for presence advertising.
const (
	// ServiceTypePresence is the mDNS service type for station presence.
	ServiceTypePresence = "_wifista._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// DefaultPort is advertised when the application exposes no real
	// service port.
	DefaultPort = 5540

	// MaxInstanceNameLen is the DNS label limit for instance names.
	MaxInstanceNameLen = 63
)

// TXT record keys.
const (
	// TXTKeySerial is the device serial number.
	TXTKeySerial = "serial"

	// TXTKeyModel is the device model name.
	TXTKeyModel = "model"

	// TXTKeyInterface is the platform name of the station interface.
	TXTKeyInterface = "if"

	// TXTKeyAddress is the acquired network address.
	TXTKeyAddress = "addr"
)

// Discovery errors.
var (
	ErrMissingRequired     = errors.New("missing required field")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
)

// PresenceInfo describes the advertised station.
type PresenceInfo struct {
	// InstanceName is the mDNS instance name, at most 63 bytes.
	InstanceName string

	// Serial is the device serial number (required).
	Serial string

	// Model is the device model name.
	Model string

	// InterfaceName is the platform name of the station interface.
	InterfaceName string

	// Address is the acquired network address in textual form. The
	// Presence runner fills it in when the link comes up.
	Address string

	// Port is the advertised service port. Zero means DefaultPort.
	Port int
}

// Validate checks the advertised fields.
func (i *PresenceInfo) Validate() error {
	if i.InstanceName == "" || i.Serial == "" {
		return ErrMissingRequired
	}
	if len(i.InstanceName) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
