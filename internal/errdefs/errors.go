// Package errdefs provides the error values shared by the engine packages and
// re-exported by the public aestrace package.
package errdefs

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidKeyEncoding is returned when a key string is neither valid
	// hex nor usable as text bytes.
	ErrInvalidKeyEncoding = errors.New("invalid key encoding")

	// ErrInvalidKeySize is returned when key material does not match the
	// selected key length.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrIncompleteRoundConstants is returned when the round constant table
	// does not cover every round the key length needs.
	ErrIncompleteRoundConstants = errors.New("incomplete round constant table")

	// ErrInvalidPadLength is returned when the stored pad length is 0 or
	// larger than the block or the data.
	ErrInvalidPadLength = errors.New("invalid pad length")

	// ErrBlockSizeMismatch is returned when input cannot be turned into
	// exactly one 16-byte block.
	ErrBlockSizeMismatch = errors.New("block size mismatch")

	// ErrInvalidIVSize is returned when a supplied IV is not 16 bytes.
	ErrInvalidIVSize = errors.New("invalid IV size")

	// ErrUnknownMode is returned for a mode name outside ECB, CBC and CTR.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrUnknownPadding is returned for an unrecognized padding scheme.
	ErrUnknownPadding = errors.New("unknown padding scheme")

	// ErrUnknownKeyLength is returned for a key length other than 128, 192 or 256 bits.
	ErrUnknownKeyLength = errors.New("unknown key length")

	// ErrSignatureVerificationFailed is returned when a transcript signature
	// does not verify.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")
)

// PadLengthError reports the offending pad byte found while unpadding.
type PadLengthError struct {
	Value  byte
	Length int
}

func (e *PadLengthError) Error() string {
	return fmt.Sprintf("invalid pad length %d for %d bytes of data", e.Value, e.Length)
}

// Is implements errors.Is for sentinel error matching.
func (e *PadLengthError) Is(target error) bool {
	return target == ErrInvalidPadLength
}

// BlockSizeError reports input that is not exactly one block.
type BlockSizeError struct {
	Got  int
	Want int
}

func (e *BlockSizeError) Error() string {
	return fmt.Sprintf("block size mismatch: got %d bytes, want %d", e.Got, e.Want)
}

// Is implements errors.Is for sentinel error matching.
func (e *BlockSizeError) Is(target error) bool {
	return target == ErrBlockSizeMismatch
}

// RoundConstantsError reports how many round constants a key length needs
// against how many the table provides. Index 0 of a table is a placeholder,
// so a table covering round r has r+1 entries.
type RoundConstantsError struct {
	KeyBits int
	Need    int
	Have    int
}

func (e *RoundConstantsError) Error() string {
	return fmt.Sprintf("AES-%d needs round constants up to index %d, table has %d entries",
		e.KeyBits, e.Need, e.Have)
}

// Is implements errors.Is for sentinel error matching.
func (e *RoundConstantsError) Is(target error) bool {
	return target == ErrIncompleteRoundConstants
}
