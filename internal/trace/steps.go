package trace

import (
	"fmt"

	"github.com/aestrace/aestrace-go/internal/block"
	"github.com/aestrace/aestrace-go/internal/padding"
)

// Kind tags the variant of a Step.
type Kind int

const (
	KindPlaintext Kind = iota
	KindPadding
	KindIV
	KindCounter
	KindIVXOR
	KindAddRoundKey
	KindSubBytes
	KindShiftRows
	KindMixColumns
	KindCounterXOR
	KindCiphertext
)

var kindNames = map[Kind]string{
	KindPlaintext:   "plaintext",
	KindPadding:     "padding",
	KindIV:          "iv",
	KindCounter:     "counter",
	KindIVXOR:       "iv-xor",
	KindAddRoundKey: "add-round-key",
	KindSubBytes:    "sub-bytes",
	KindShiftRows:   "shift-rows",
	KindMixColumns:  "mix-columns",
	KindCounterXOR:  "counter-xor",
	KindCiphertext:  "ciphertext",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown step kind %q", s)
}

// Step is one recorded snapshot. The set of implementations is closed; switch
// on the concrete type (or Kind) to reach variant-specific fields.
type Step interface {
	Kind() Kind
	Label() string
	State() block.State
	Highlighted() []int
	Narrative() string

	isStep()
}

func all() []int     { return append([]int(nil), block.AllIndices...) }
func shifted() []int { return append([]int(nil), block.ShiftedIndices...) }

// PlaintextStep is the input block before anything else happens. Inputs
// shorter than a block are shown zero-filled.
type PlaintextStep struct {
	Bytes  block.State
	Length int
	Text   string
}

func (s PlaintextStep) Kind() Kind         { return KindPlaintext }
func (s PlaintextStep) Label() string      { return "Original Plaintext" }
func (s PlaintextStep) State() block.State { return s.Bytes }
func (s PlaintextStep) Highlighted() []int { return nil }
func (s PlaintextStep) isStep()            {}
func (s PlaintextStep) Narrative() string {
	return fmt.Sprintf("The plaintext %q (%d bytes) is converted to bytes and laid out column by column as a 4x4 matrix.",
		s.Text, s.Length)
}

// PaddingStep shows the block after padding bytes were appended.
type PaddingStep struct {
	Padded block.State
	Scheme padding.Scheme
	Added  int
}

func (s PaddingStep) Kind() Kind         { return KindPadding }
func (s PaddingStep) Label() string      { return "After " + s.Scheme.String() + " Padding" }
func (s PaddingStep) State() block.State { return s.Padded }
func (s PaddingStep) isStep()            {}
func (s PaddingStep) Highlighted() []int {
	idx := make([]int, 0, s.Added)
	for i := block.Size - s.Added; i < block.Size; i++ {
		idx = append(idx, i)
	}
	return idx
}
func (s PaddingStep) Narrative() string {
	switch s.Scheme {
	case padding.ANSIX923:
		return fmt.Sprintf("ANSI X.923 padding adds %d null bytes and puts the pad length 0x%02x in the last byte.",
			s.Added-1, s.Added)
	case padding.PKCS7:
		return fmt.Sprintf("PKCS7 padding appends %d bytes, each holding the pad length 0x%02x.", s.Added, s.Added)
	default:
		return fmt.Sprintf("%s leaves the data unchanged.", s.Scheme)
	}
}

// IVStep shows the CBC initialization vector.
type IVStep struct {
	IV block.State
}

func (s IVStep) Kind() Kind         { return KindIV }
func (s IVStep) Label() string      { return "Initialization Vector (IV)" }
func (s IVStep) State() block.State { return s.IV }
func (s IVStep) Highlighted() []int { return nil }
func (s IVStep) isStep()            {}
func (s IVStep) Narrative() string {
	return "For CBC mode a 16-byte IV is mixed into the plaintext before encryption."
}

// CounterStep shows the CTR counter block, which is what gets encrypted.
type CounterStep struct {
	Counter block.State
}

func (s CounterStep) Kind() Kind         { return KindCounter }
func (s CounterStep) Label() string      { return "Counter Value" }
func (s CounterStep) State() block.State { return s.Counter }
func (s CounterStep) Highlighted() []int { return nil }
func (s CounterStep) isStep()            {}
func (s CounterStep) Narrative() string {
	return "In CTR mode the counter block is encrypted instead of the plaintext."
}

// IVXORStep shows the CBC pre-round state.
type IVXORStep struct {
	Result block.State
}

func (s IVXORStep) Kind() Kind         { return KindIVXOR }
func (s IVXORStep) Label() string      { return "Initial State XOR IV" }
func (s IVXORStep) State() block.State { return s.Result }
func (s IVXORStep) Highlighted() []int { return all() }
func (s IVXORStep) isStep()            {}
func (s IVXORStep) Narrative() string {
	return "In CBC mode the plaintext is XORed with the IV before the first round key is applied."
}

// AddRoundKeyStep is the only step that carries key material.
type AddRoundKeyStep struct {
	Round    int
	Result   block.State
	RoundKey block.State
}

func (s AddRoundKeyStep) Kind() Kind         { return KindAddRoundKey }
func (s AddRoundKeyStep) State() block.State { return s.Result }
func (s AddRoundKeyStep) Highlighted() []int { return all() }
func (s AddRoundKeyStep) isStep()            {}
func (s AddRoundKeyStep) Label() string {
	if s.Round == 0 {
		return "After Initial AddRoundKey"
	}
	return fmt.Sprintf("Round %d - After AddRoundKey", s.Round)
}
func (s AddRoundKeyStep) Narrative() string {
	if s.Round == 0 {
		return "The state is XORed with the initial round key (Round Key 0)."
	}
	return fmt.Sprintf("The state is XORed with Round Key %d.", s.Round)
}

// SubBytesStep shows the state after S-box substitution.
type SubBytesStep struct {
	Round  int
	Result block.State
}

func (s SubBytesStep) Kind() Kind         { return KindSubBytes }
func (s SubBytesStep) Label() string      { return fmt.Sprintf("Round %d - After SubBytes", s.Round) }
func (s SubBytesStep) State() block.State { return s.Result }
func (s SubBytesStep) Highlighted() []int { return all() }
func (s SubBytesStep) isStep()            {}
func (s SubBytesStep) Narrative() string {
	return "Each byte is replaced by its S-box entry. This is the only non-linear operation in AES."
}

// ShiftRowsStep shows the state after the row rotation.
type ShiftRowsStep struct {
	Round  int
	Result block.State
}

func (s ShiftRowsStep) Kind() Kind         { return KindShiftRows }
func (s ShiftRowsStep) Label() string      { return fmt.Sprintf("Round %d - After ShiftRows", s.Round) }
func (s ShiftRowsStep) State() block.State { return s.Result }
func (s ShiftRowsStep) Highlighted() []int { return shifted() }
func (s ShiftRowsStep) isStep()            {}
func (s ShiftRowsStep) Narrative() string {
	return "Row 0 stays put; rows 1, 2 and 3 rotate left by 1, 2 and 3 positions."
}

// MixColumnsStep shows the state after column mixing.
type MixColumnsStep struct {
	Round  int
	Result block.State
}

func (s MixColumnsStep) Kind() Kind         { return KindMixColumns }
func (s MixColumnsStep) Label() string      { return fmt.Sprintf("Round %d - After MixColumns", s.Round) }
func (s MixColumnsStep) State() block.State { return s.Result }
func (s MixColumnsStep) Highlighted() []int { return all() }
func (s MixColumnsStep) isStep()            {}
func (s MixColumnsStep) Narrative() string {
	return "Each column is multiplied by a fixed matrix over GF(2^8), spreading every byte across its column."
}

// CounterXORStep shows the CTR keystream XORed into the plaintext.
type CounterXORStep struct {
	Result block.State
}

func (s CounterXORStep) Kind() Kind         { return KindCounterXOR }
func (s CounterXORStep) Label() string      { return "Plaintext XOR Encrypted Counter" }
func (s CounterXORStep) State() block.State { return s.Result }
func (s CounterXORStep) Highlighted() []int { return all() }
func (s CounterXORStep) isStep()            {}
func (s CounterXORStep) Narrative() string {
	return "In CTR mode the encrypted counter is XORed with the plaintext to produce the ciphertext."
}

// CiphertextStep is always the last step of a trace.
type CiphertextStep struct {
	Result block.State
	Suite  string
	Mode   string
}

func (s CiphertextStep) Kind() Kind         { return KindCiphertext }
func (s CiphertextStep) Label() string      { return "Final Ciphertext" }
func (s CiphertextStep) State() block.State { return s.Result }
func (s CiphertextStep) Highlighted() []int { return nil }
func (s CiphertextStep) isStep()            {}
func (s CiphertextStep) Narrative() string {
	return fmt.Sprintf("The final encrypted output using %s in %s mode.", s.Suite, s.Mode)
}

// RoundKey returns the round key attached to s, if any.
func RoundKey(s Step) (block.State, bool) {
	if ark, ok := s.(AddRoundKeyStep); ok {
		return ark.RoundKey, true
	}
	return block.State{}, false
}

// Round returns the cipher round s belongs to, or -1 for steps outside the rounds.
func Round(s Step) int {
	switch v := s.(type) {
	case AddRoundKeyStep:
		return v.Round
	case SubBytesStep:
		return v.Round
	case ShiftRowsStep:
		return v.Round
	case MixColumnsStep:
		return v.Round
	}
	return -1
}
