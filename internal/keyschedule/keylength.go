package keyschedule

import (
	"fmt"
	"strings"

	"github.com/aestrace/aestrace-go/internal/errdefs"
)

// KeyLength selects the AES variant by key size in bits.
type KeyLength int

const (
	// AES128 uses a 16-byte key and 10 rounds.
	AES128 KeyLength = 128
	// AES192 uses a 24-byte key and 12 rounds.
	AES192 KeyLength = 192
	// AES256 uses a 32-byte key and 14 rounds.
	AES256 KeyLength = 256
)

// Valid reports whether k is one of the three AES key lengths.
func (k KeyLength) Valid() bool {
	switch k {
	case AES128, AES192, AES256:
		return true
	}
	return false
}

// Bytes returns the key size in bytes.
func (k KeyLength) Bytes() int {
	return int(k) / 8
}

// Words returns Nk, the key size in 32-bit words.
func (k KeyLength) Words() int {
	return int(k) / 32
}

// Rounds returns Nr, the number of cipher rounds.
func (k KeyLength) Rounds() int {
	switch k {
	case AES128:
		return 10
	case AES192:
		return 12
	case AES256:
		return 14
	}
	return 0
}

func (k KeyLength) String() string {
	if !k.Valid() {
		return fmt.Sprintf("KeyLength(%d)", int(k))
	}
	return fmt.Sprintf("AES-%d", int(k))
}

// ParseKeyLength accepts "128", "AES-128", "aes128" and the same forms for
// 192 and 256.
func ParseKeyLength(s string) (KeyLength, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "aes")
	v = strings.TrimPrefix(v, "-")
	switch v {
	case "128":
		return AES128, nil
	case "192":
		return AES192, nil
	case "256":
		return AES256, nil
	}
	return 0, fmt.Errorf("%w: %q", errdefs.ErrUnknownKeyLength, s)
}

// ForKeySize returns the key length whose key is n bytes long.
func ForKeySize(n int) (KeyLength, error) {
	switch n {
	case 16:
		return AES128, nil
	case 24:
		return AES192, nil
	case 32:
		return AES256, nil
	}
	return 0, fmt.Errorf("%w: %d bytes", errdefs.ErrInvalidKeySize, n)
}
