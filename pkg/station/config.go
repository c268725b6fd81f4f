package station

import (
	"errors"
	"fmt"

	"github.com/wifista-project/wifista-go/pkg/driver"
)

// Config holds the network credentials the client is initialized with.
// The value is immutable after Init.
type Config struct {
	// SSID is the network name, at most driver.MaxSSIDLen bytes.
	SSID string

	// Password is the pre-shared credential, at most
	// driver.MaxPassphraseLen bytes. A 64-character value is treated as a
	// raw hex-encoded key (see the wpa package).
	Password string
}

// Validate checks the config against the driver's field length limits.
func (c Config) Validate() error {
	if c.SSID == "" {
		return errors.New("ssid is required")
	}
	if len(c.SSID) > driver.MaxSSIDLen {
		return fmt.Errorf("ssid exceeds %d bytes", driver.MaxSSIDLen)
	}
	if len(c.Password) > driver.MaxPassphraseLen {
		return fmt.Errorf("password exceeds %d bytes", driver.MaxPassphraseLen)
	}
	return nil
}
