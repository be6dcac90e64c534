// Package modes prepares the state that enters the cipher rounds and
// finishes the state that leaves them, for ECB, CBC and CTR.
//
// Only one block is ever processed, so CBC chaining reduces to a single
// XOR with the IV and CTR never increments its counter.
package modes

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/aestrace/aestrace-go/internal/block"
	"github.com/aestrace/aestrace-go/internal/errdefs"
)

// Mode is a block cipher mode of operation.
type Mode int

const (
	// ECB encrypts the block directly.
	ECB Mode = iota
	// CBC XORs the IV into the block before encryption.
	CBC
	// CTR encrypts the counter block and XORs the result into the plaintext.
	CTR
)

func (m Mode) String() string {
	switch m {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	case CTR:
		return "CTR"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ECB || m == CBC || m == CTR
}

// NeedsIV reports whether the mode consumes an IV or counter block.
func (m Mode) NeedsIV() bool {
	return m == CBC || m == CTR
}

// ParseMode accepts "ECB", "CBC" and "CTR" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ECB":
		return ECB, nil
	case "CBC":
		return CBC, nil
	case "CTR":
		return CTR, nil
	}
	return 0, fmt.Errorf("%w: %q", errdefs.ErrUnknownMode, s)
}

// PreRound returns the state fed into round 0.
func PreRound(m Mode, plain, iv block.State) (block.State, error) {
	switch m {
	case ECB:
		return plain, nil
	case CBC:
		return block.XOR(plain, iv), nil
	case CTR:
		return iv, nil
	}
	return block.State{}, fmt.Errorf("%w: %v", errdefs.ErrUnknownMode, m)
}

// PostRound returns the ciphertext given the output of the last round.
func PostRound(m Mode, encrypted, plain block.State) (block.State, error) {
	switch m {
	case ECB, CBC:
		return encrypted, nil
	case CTR:
		return block.XOR(encrypted, plain), nil
	}
	return block.State{}, fmt.Errorf("%w: %v", errdefs.ErrUnknownMode, m)
}

// NewIV reads a fresh IV from r, or from crypto/rand when r is nil.
func NewIV(r io.Reader) (block.State, error) {
	if r == nil {
		r = rand.Reader
	}
	var iv block.State
	if _, err := io.ReadFull(r, iv[:]); err != nil {
		return iv, fmt.Errorf("failed to read IV: %w", err)
	}
	return iv, nil
}

// IVFromBytes validates a caller-supplied IV.
func IVFromBytes(b []byte) (block.State, error) {
	if len(b) != block.Size {
		var zero block.State
		return zero, fmt.Errorf("%w: got %d, want %d", errdefs.ErrInvalidIVSize, len(b), block.Size)
	}
	return block.FromBytes(b)
}
