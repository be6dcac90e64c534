// Package block implements the AES state and the four round transforms.
//
// A State is 16 bytes laid out as in FIPS-197: byte i sits in row i%4 and
// column i/4, so each column is four consecutive bytes. State is an array,
// so assigning or passing it always copies; every transform returns a new
// value and never touches its input.
package block

import (
	"encoding/hex"
	"strings"

	"github.com/aestrace/aestrace-go/internal/errdefs"
	"github.com/aestrace/aestrace-go/internal/tables"
)

// Size is the AES block size in bytes.
const Size = 16

// State is one 16-byte AES block.
type State [Size]byte

var (
	// AllIndices highlights every cell of the state.
	AllIndices = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}

	// ShiftedIndices highlights the cells ShiftRows moves (rows 1 to 3).
	ShiftedIndices = []int{1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15}
)

// FromBytes copies exactly Size bytes into a State.
func FromBytes(b []byte) (State, error) {
	var s State
	if len(b) != Size {
		return s, &errdefs.BlockSizeError{Got: len(b), Want: Size}
	}
	copy(s[:], b)
	return s, nil
}

// Bytes returns a fresh slice holding the state.
func (s State) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, s[:])
	return out
}

// Hex returns the state as lowercase hex without separators.
func (s State) Hex() string {
	return hex.EncodeToString(s[:])
}

// Row returns row r of the matrix.
func (s State) Row(r int) [4]byte {
	return [4]byte{s[r], s[r+4], s[r+8], s[r+12]}
}

// Column returns column c of the matrix.
func (s State) Column(c int) [4]byte {
	return [4]byte{s[4*c], s[4*c+1], s[4*c+2], s[4*c+3]}
}

// Matrix returns the state as four rows, ready for rendering.
func (s State) Matrix() [4][4]byte {
	var m [4][4]byte
	for r := 0; r < 4; r++ {
		m[r] = s.Row(r)
	}
	return m
}

// String renders the matrix one row per line as two-digit hex.
func (s State) String() string {
	var sb strings.Builder
	for r, row := range s.Matrix() {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, b := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(hex.EncodeToString([]byte{b}))
		}
	}
	return sb.String()
}

// SubBytes replaces every byte with its S-box entry.
func SubBytes(s State) State {
	var out State
	for i, b := range s {
		out[i] = tables.SBox[b]
	}
	return out
}

// ShiftRows rotates row r left by r positions.
func ShiftRows(s State) State {
	var out State
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r+4*c] = s[r+4*((c+r)%4)]
		}
	}
	return out
}

// MixColumns multiplies every column by the fixed MDS matrix.
func MixColumns(s State) State {
	var out State
	for c := 0; c < 4; c++ {
		i := 4 * c
		a, b, cc, d := s[i], s[i+1], s[i+2], s[i+3]
		out[i] = tables.Mul2[a] ^ tables.Mul3[b] ^ cc ^ d
		out[i+1] = a ^ tables.Mul2[b] ^ tables.Mul3[cc] ^ d
		out[i+2] = a ^ b ^ tables.Mul2[cc] ^ tables.Mul3[d]
		out[i+3] = tables.Mul3[a] ^ b ^ cc ^ tables.Mul2[d]
	}
	return out
}

// AddRoundKey XORs the round key into the state.
func AddRoundKey(s, roundKey State) State {
	return XOR(s, roundKey)
}

// XOR returns the byte-wise XOR of a and b.
func XOR(a, b State) State {
	var out State
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}
