package aestrace

import (
	"github.com/aestrace/aestrace-go/internal/keyinput"
	"github.com/aestrace/aestrace-go/internal/keyschedule"
	"github.com/aestrace/aestrace-go/internal/padding"
)

// KeyEncoding says how ParseKey reads a key string.
type KeyEncoding = keyinput.Encoding

// Supported key encodings.
const (
	KeyAuto = keyinput.Auto
	KeyHex  = keyinput.Hex
	KeyText = keyinput.Text
)

// ParseKeyEncoding accepts "auto", "hex" or "text".
func ParseKeyEncoding(s string) (KeyEncoding, error) {
	return keyinput.ParseEncoding(s)
}

// ParseKey decodes s and fits it to kl, zero-padding or truncating.
func ParseKey(s string, enc KeyEncoding, kl KeyLength) ([]byte, error) {
	return keyinput.Parse(s, enc, kl)
}

// ExpandKey returns the kl.Rounds()+1 round keys for key.
func ExpandKey(key []byte, kl KeyLength) ([]State, error) {
	schedule, err := keyschedule.Expand(key, kl)
	if err != nil {
		return nil, err
	}
	return append([]State(nil), schedule...), nil
}

// ExplainKeySchedule returns, per round key, how each of its words was
// derived.
func ExplainKeySchedule(key []byte, kl KeyLength) ([]RoundDerivation, error) {
	return keyschedule.Explain(key, kl)
}

// RemovePadding strips PKCS7 or ANSI X.923 padding. With NoPadding the data
// is returned unchanged.
func RemovePadding(data []byte, scheme Padding) ([]byte, error) {
	return padding.Unpad(data, scheme)
}
