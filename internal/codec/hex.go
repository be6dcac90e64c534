package codec

import (
	"encoding/hex"
	"strings"
)

// ToHex encodes bytes as lowercase hex without separators.
func ToHex(data []byte) string {
	return hex.EncodeToString(data)
}

// FromHex decodes hex in either case. Whitespace is ignored.
func FromHex(s string) ([]byte, error) {
	return hex.DecodeString(StripSpace(s))
}

// FormatHex renders each byte as two hex digits joined by sep.
func FormatHex(data []byte, sep string) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = hex.EncodeToString([]byte{b})
	}
	return strings.Join(parts, sep)
}

// StripSpace removes every whitespace character from s.
func StripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
