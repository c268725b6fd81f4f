package driver

// Field length limits imposed by the radio driver's configuration records.
const (
	// MaxSSIDLen is the maximum SSID length in bytes.
	MaxSSIDLen = 32

	// MaxPassphraseLen is the maximum passphrase length in bytes.
	MaxPassphraseLen = 64
)

// Mode selects the radio operating mode.
type Mode uint8

const (
	// ModeNone means the radio is not configured.
	ModeNone Mode = iota

	// ModeStation makes the device associate to an access point as a client.
	ModeStation

	// ModeAccessPoint makes the device act as an access point.
	// Present for completeness; the lifecycle manager only uses ModeStation.
	ModeAccessPoint
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "NONE"
	case ModeStation:
		return "STATION"
	case ModeAccessPoint:
		return "ACCESS_POINT"
	default:
		return "UNKNOWN"
	}
}

// AuthMode identifies a link-layer authentication scheme.
type AuthMode uint8

const (
	// AuthOpen is an open network without authentication.
	AuthOpen AuthMode = iota

	// AuthWEP is legacy WEP authentication.
	AuthWEP

	// AuthWPAPSK is WPA with a pre-shared key.
	AuthWPAPSK

	// AuthWPA2PSK is WPA2 with a pre-shared key.
	AuthWPA2PSK

	// AuthWPA3PSK is WPA3 with a pre-shared key (SAE).
	AuthWPA3PSK
)

// String returns the auth mode name.
func (a AuthMode) String() string {
	switch a {
	case AuthOpen:
		return "OPEN"
	case AuthWEP:
		return "WEP"
	case AuthWPAPSK:
		return "WPA_PSK"
	case AuthWPA2PSK:
		return "WPA2_PSK"
	case AuthWPA3PSK:
		return "WPA3_PSK"
	default:
		return "UNKNOWN"
	}
}

// StationConfig programs the driver for station-mode operation.
type StationConfig struct {
	// SSID is the network name to associate to.
	SSID string

	// Passphrase is the pre-shared credential in its textual form.
	Passphrase string

	// PSK is the derived 256-bit pairwise master key. Drivers that accept
	// a precomputed key use it and skip their own derivation.
	PSK [32]byte

	// MinAuthMode is the weakest authentication scheme the station will
	// accept from an access point.
	MinAuthMode AuthMode
}

// Driver is the station-mode radio driver capability.
//
// Methods return nil on success or an *Error carrying the driver error
// code. All methods are expected to return promptly; long-running radio
// work completes asynchronously and is reported via the event loop.
type Driver interface {
	// Init allocates driver resources. Must be called before any other
	// method.
	Init() error

	// SetMode selects the radio operating mode.
	SetMode(mode Mode) error

	// SetConfig programs the station configuration. Valid only after
	// SetMode(ModeStation).
	SetConfig(cfg StationConfig) error

	// Start brings the interface up. The driver reports readiness with an
	// interface-started event.
	Start() error

	// Stop tears the interface down, dropping any association.
	Stop() error

	// Connect begins an association attempt with the configured network.
	// The outcome arrives as station-connected / station-disconnected
	// events followed by address acquisition.
	Connect() error
}
