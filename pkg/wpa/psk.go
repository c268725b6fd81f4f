// Package wpa derives WPA2 pre-shared keys from textual passphrases.
//
// IEEE 802.11i defines the pairwise master key for PSK networks as
//
//	PSK = PBKDF2-SHA1(passphrase, ssid, 4096 iterations, 256 bits)
//
// Deriving the key once up front keeps the passphrase out of the driver
// configuration hot path and lets drivers that accept a raw key skip
// their own derivation.
package wpa

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/pbkdf2"

	"github.com/wifista-project/wifista-go/pkg/driver"
)

// Passphrase length limits from IEEE 802.11i Annex H.
const (
	// MinPassphraseLen is the minimum passphrase length.
	MinPassphraseLen = 8

	// MaxPassphraseLen is the maximum passphrase length. A 64-character
	// value is interpreted as the hex encoding of a raw 256-bit key.
	MaxPassphraseLen = 64
)

// pbkdf2Iterations is the iteration count fixed by the standard.
const pbkdf2Iterations = 4096

// Validation errors.
var (
	ErrInvalidSSID       = errors.New("ssid must be 1-32 bytes")
	ErrInvalidPassphrase = errors.New("passphrase must be 8-63 characters or 64 hex digits")
)

// DerivePSK derives the 256-bit pairwise master key for the given
// passphrase and SSID. A 64-character passphrase is decoded as a raw hex
// key instead of being run through PBKDF2, matching supplicant behavior.
func DerivePSK(passphrase, ssid string) ([32]byte, error) {
	var psk [32]byte

	if len(ssid) == 0 || len(ssid) > driver.MaxSSIDLen {
		return psk, ErrInvalidSSID
	}
	if len(passphrase) < MinPassphraseLen || len(passphrase) > MaxPassphraseLen {
		return psk, ErrInvalidPassphrase
	}

	if len(passphrase) == MaxPassphraseLen {
		raw, err := hex.DecodeString(passphrase)
		if err != nil {
			return psk, ErrInvalidPassphrase
		}
		copy(psk[:], raw)
		return psk, nil
	}

	key := pbkdf2.Key([]byte(passphrase), []byte(ssid), pbkdf2Iterations, len(psk), sha1.New)
	copy(psk[:], key)
	return psk, nil
}
