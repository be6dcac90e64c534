package aestrace

import (
	"github.com/aestrace/aestrace-go/internal/block"
	"github.com/aestrace/aestrace-go/internal/keyschedule"
	"github.com/aestrace/aestrace-go/internal/modes"
	"github.com/aestrace/aestrace-go/internal/padding"
	"github.com/aestrace/aestrace-go/internal/trace"
)

// BlockSize is the AES block size in bytes.
const BlockSize = block.Size

// Mode is a block cipher mode of operation.
type Mode = modes.Mode

// Supported modes.
const (
	ECB = modes.ECB
	CBC = modes.CBC
	CTR = modes.CTR
)

// Padding is a padding scheme.
type Padding = padding.Scheme

// Supported padding schemes.
const (
	PKCS7     = padding.PKCS7
	ANSIX923  = padding.ANSIX923
	NoPadding = padding.None
)

// KeyLength is the AES key size in bits.
type KeyLength = keyschedule.KeyLength

// Supported key lengths.
const (
	AES128 = keyschedule.AES128
	AES192 = keyschedule.AES192
	AES256 = keyschedule.AES256
)

// State is a 16-byte AES state in FIPS-197 column-major order.
type State = block.State

// Trace is the ordered list of recorded steps.
type Trace = trace.Trace

// Step is one recorded snapshot. Use a type switch on the trace package's
// concrete step types, or Kind, to inspect variant details.
type Step = trace.Step

// StepKind tags a Step variant.
type StepKind = trace.Kind

// RoundDerivation explains how one round key was built.
type RoundDerivation = keyschedule.RoundDerivation

// ParseMode accepts "ECB", "CBC" or "CTR" in any case.
func ParseMode(s string) (Mode, error) {
	return modes.ParseMode(s)
}

// ParsePadding accepts "PKCS7", "ANSI X.923" (or "x923") and "None".
func ParsePadding(s string) (Padding, error) {
	return padding.ParseScheme(s)
}

// ParseKeyLength accepts "128", "AES-128" and similar forms.
func ParseKeyLength(s string) (KeyLength, error) {
	return keyschedule.ParseKeyLength(s)
}
