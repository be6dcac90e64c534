// Package keyinput turns user-supplied key material into AES keys of a given
// length: parsed from hex or text, freshly generated, or derived from a
// passphrase.
package keyinput

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/aestrace/aestrace-go/internal/codec"
	"github.com/aestrace/aestrace-go/internal/errdefs"
	"github.com/aestrace/aestrace-go/internal/keyschedule"
	"golang.org/x/crypto/hkdf"
)

// HKDFContext is the HKDF info string used by Derive for domain separation.
const HKDFContext = "aestrace:key:v1"

// randReader is the source Generate falls back to when given a nil reader.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

// Encoding says how a key string should be read.
type Encoding int

const (
	// Auto reads the string as hex when it is valid hex, else as text.
	Auto Encoding = iota
	// Hex requires an even number of hex digits; whitespace is ignored.
	Hex
	// Text uses the UTF-8 bytes of the string.
	Text
)

func (e Encoding) String() string {
	switch e {
	case Auto:
		return "auto"
	case Hex:
		return "hex"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding accepts "auto", "hex" or "text" in any case.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "hex":
		return Hex, nil
	case "text", "utf8", "utf-8":
		return Text, nil
	}
	return 0, fmt.Errorf("%w: unknown encoding %q", errdefs.ErrInvalidKeyEncoding, s)
}

// Parse decodes s according to enc and fits the result to kl: shorter input
// is zero-padded, longer input is truncated.
func Parse(s string, enc Encoding, kl keyschedule.KeyLength) ([]byte, error) {
	if !kl.Valid() {
		return nil, fmt.Errorf("%w: %d", errdefs.ErrUnknownKeyLength, int(kl))
	}

	raw, err := decode(s, enc)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty key", errdefs.ErrInvalidKeyEncoding)
	}
	return Fit(raw, kl), nil
}

func decode(s string, enc Encoding) ([]byte, error) {
	switch enc {
	case Hex:
		b, err := codec.FromHex(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errdefs.ErrInvalidKeyEncoding, err)
		}
		return b, nil
	case Text:
		if !utf8.ValidString(s) {
			return nil, fmt.Errorf("%w: key text is not valid UTF-8", errdefs.ErrInvalidKeyEncoding)
		}
		return []byte(s), nil
	case Auto:
		if b, err := codec.FromHex(s); err == nil && len(b) > 0 {
			return b, nil
		}
		return decode(s, Text)
	}
	return nil, fmt.Errorf("%w: unknown encoding %d", errdefs.ErrInvalidKeyEncoding, int(enc))
}

// Fit returns a copy of key zero-padded or truncated to kl bytes.
func Fit(key []byte, kl keyschedule.KeyLength) []byte {
	out := make([]byte, kl.Bytes())
	copy(out, key)
	return out
}

// Generate reads a random key of length kl from r. A nil r uses crypto/rand.
func Generate(r io.Reader, kl keyschedule.KeyLength) ([]byte, error) {
	if !kl.Valid() {
		return nil, fmt.Errorf("%w: %d", errdefs.ErrUnknownKeyLength, int(kl))
	}
	if r == nil {
		r = randReader
	}
	if r == nil {
		r = rand.Reader
	}

	key := make([]byte, kl.Bytes())
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// Derive stretches a passphrase into a key of length kl with HKDF-SHA-512.
// An empty salt is replaced by a block of zeros.
func Derive(passphrase, salt []byte, kl keyschedule.KeyLength) ([]byte, error) {
	if !kl.Valid() {
		return nil, fmt.Errorf("%w: %d", errdefs.ErrUnknownKeyLength, int(kl))
	}
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("%w: empty passphrase", errdefs.ErrInvalidKeyEncoding)
	}
	if len(salt) == 0 {
		salt = make([]byte, sha512.Size)
	}

	reader := hkdf.New(sha512.New, passphrase, salt, []byte(HKDFContext))
	key := make([]byte, kl.Bytes())
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}
