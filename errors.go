package aestrace

import (
	"errors"
	"fmt"

	"github.com/aestrace/aestrace-go/internal/errdefs"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidKeyEncoding is returned when a key string is neither valid
	// hex nor usable as text.
	ErrInvalidKeyEncoding = errdefs.ErrInvalidKeyEncoding

	// ErrInvalidKeySize is returned when the key does not match the key length.
	ErrInvalidKeySize = errdefs.ErrInvalidKeySize

	// ErrIncompleteRoundConstants is returned when the round constant table
	// is too short for the key length.
	ErrIncompleteRoundConstants = errdefs.ErrIncompleteRoundConstants

	// ErrInvalidPadLength is returned when padding cannot be removed.
	ErrInvalidPadLength = errdefs.ErrInvalidPadLength

	// ErrBlockSizeMismatch is returned when the plaintext cannot be made
	// into exactly one block.
	ErrBlockSizeMismatch = errdefs.ErrBlockSizeMismatch

	// ErrInvalidIVSize is returned when a supplied IV is not 16 bytes.
	ErrInvalidIVSize = errdefs.ErrInvalidIVSize

	// ErrUnknownMode is returned for an unsupported mode.
	ErrUnknownMode = errdefs.ErrUnknownMode

	// ErrUnknownPadding is returned for an unsupported padding scheme.
	ErrUnknownPadding = errdefs.ErrUnknownPadding

	// ErrUnknownKeyLength is returned for a key length other than 128, 192 or 256.
	ErrUnknownKeyLength = errdefs.ErrUnknownKeyLength

	// ErrSignatureVerificationFailed is returned when a transcript signature
	// does not verify.
	ErrSignatureVerificationFailed = errdefs.ErrSignatureVerificationFailed

	// ErrInvalidConfig is matched by every ConfigError.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEncryptionFailed is matched by every StageError.
	ErrEncryptionFailed = errors.New("encryption failed")
)

// Typed errors raised by the engine packages.
type (
	// PadLengthError carries the offending pad byte.
	PadLengthError = errdefs.PadLengthError
	// BlockSizeError carries the received and expected sizes.
	BlockSizeError = errdefs.BlockSizeError
	// RoundConstantsError carries how many round constants were needed.
	RoundConstantsError = errdefs.RoundConstantsError
)

// AESTraceError is implemented by the errors Run returns.
type AESTraceError interface {
	error
	AESTraceError() // marker method
}

// ConfigError reports a rejected run parameter.
type ConfigError struct {
	Field string // "mode", "padding", "key length", "key", "iv"
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// AESTraceError implements the AESTraceError interface.
func (e *ConfigError) AESTraceError() {}

// StageError reports a failure inside the pipeline.
type StageError struct {
	Stage string // "padding", "key expansion", "mode"
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("encryption failed at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *StageError) Is(target error) bool {
	return target == ErrEncryptionFailed
}

// AESTraceError implements the AESTraceError interface.
func (e *StageError) AESTraceError() {}
