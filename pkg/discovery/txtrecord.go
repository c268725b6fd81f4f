package discovery

import (
	"fmt"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodePresenceTXT creates TXT records for presence advertising.
func EncodePresenceTXT(info *PresenceInfo) TXTRecordMap {
	txt := make(TXTRecordMap)

	// Required fields
	txt[TXTKeySerial] = info.Serial

	// Optional fields
	if info.Model != "" {
		txt[TXTKeyModel] = info.Model
	}
	if info.InterfaceName != "" {
		txt[TXTKeyInterface] = info.InterfaceName
	}
	if info.Address != "" {
		txt[TXTKeyAddress] = info.Address
	}

	return txt
}

// DecodePresenceTXT parses presence TXT records.
func DecodePresenceTXT(txt TXTRecordMap) (*PresenceInfo, error) {
	serial, ok := txt[TXTKeySerial]
	if !ok || serial == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeySerial)
	}

	return &PresenceInfo{
		Serial:        serial,
		Model:         txt[TXTKeyModel],
		InterfaceName: txt[TXTKeyInterface],
		Address:       txt[TXTKeyAddress],
	}, nil
}

// TXTRecordsToStrings converts a TXT record map to "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	out := make([]string, 0, len(txt))
	for k, v := range txt {
		out = append(out, k+"="+v)
	}
	return out
}

// StringsToTXTRecords parses "key=value" strings into a TXT record map.
// Entries without '=' are ignored.
func StringsToTXTRecords(records []string) TXTRecordMap {
	txt := make(TXTRecordMap, len(records))
	for _, r := range records {
		k, v, ok := strings.Cut(r, "=")
		if !ok {
			continue
		}
		txt[k] = v
	}
	return txt
}
