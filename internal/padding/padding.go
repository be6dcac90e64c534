// Package padding implements PKCS7 and ANSI X.923 padding over 16-byte blocks.
package padding

import (
	"fmt"
	"strings"

	"github.com/aestrace/aestrace-go/internal/block"
	"github.com/aestrace/aestrace-go/internal/errdefs"
)

// Scheme selects a padding scheme.
type Scheme int

const (
	// PKCS7 appends p bytes of value p.
	PKCS7 Scheme = iota
	// ANSIX923 appends p-1 zero bytes followed by p.
	ANSIX923
	// None leaves the data untouched.
	None
)

func (s Scheme) String() string {
	switch s {
	case PKCS7:
		return "PKCS7"
	case ANSIX923:
		return "ANSI X.923"
	case None:
		return "None"
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// Valid reports whether s is a known scheme.
func (s Scheme) Valid() bool {
	return s == PKCS7 || s == ANSIX923 || s == None
}

// ParseScheme accepts the scheme names case-insensitively, with or without
// punctuation ("pkcs7", "ansi-x923", "ANSI X.923", "none").
func ParseScheme(s string) (Scheme, error) {
	v := strings.ToLower(s)
	v = strings.NewReplacer(" ", "", "-", "", "_", "", ".", "").Replace(v)
	switch v {
	case "pkcs7", "pkcs#7":
		return PKCS7, nil
	case "ansix923", "x923":
		return ANSIX923, nil
	case "none", "nopadding":
		return None, nil
	}
	return 0, fmt.Errorf("%w: %q", errdefs.ErrUnknownPadding, s)
}

// Pad returns a padded copy of data whose length is a multiple of the block
// size. PKCS7 and ANSI X.923 always add between 1 and 16 bytes.
func Pad(data []byte, scheme Scheme) ([]byte, error) {
	p := block.Size - len(data)%block.Size
	out := make([]byte, len(data), len(data)+p)
	copy(out, data)

	switch scheme {
	case PKCS7:
		for i := 0; i < p; i++ {
			out = append(out, byte(p))
		}
	case ANSIX923:
		out = append(out, make([]byte, p-1)...)
		out = append(out, byte(p))
	case None:
	default:
		return nil, fmt.Errorf("%w: %v", errdefs.ErrUnknownPadding, scheme)
	}
	return out, nil
}

// Unpad strips the padding added by Pad. The final byte is the pad length
// and must lie in [1, 16] and not exceed the data length.
func Unpad(data []byte, scheme Scheme) ([]byte, error) {
	if scheme == None {
		return append([]byte(nil), data...), nil
	}
	if scheme != PKCS7 && scheme != ANSIX923 {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrUnknownPadding, scheme)
	}

	n := len(data)
	if n == 0 {
		return nil, &errdefs.PadLengthError{Value: 0, Length: 0}
	}

	last := data[n-1]
	p := int(last)
	if p < 1 || p > block.Size || p > n {
		return nil, &errdefs.PadLengthError{Value: last, Length: n}
	}

	for i := n - p; i < n-1; i++ {
		want := byte(0)
		if scheme == PKCS7 {
			want = last
		}
		if data[i] != want {
			return nil, fmt.Errorf("%w: byte %d is 0x%02x, want 0x%02x",
				errdefs.ErrInvalidPadLength, i, data[i], want)
		}
	}

	return append([]byte(nil), data[:n-p]...), nil
}

// Block turns data into exactly one cipher block. A 16-byte input is used
// as-is; a shorter input is padded when the scheme allows it. Anything else
// would need a second block and is rejected. padded reports whether bytes
// were added.
func Block(data []byte, scheme Scheme) (s block.State, padded bool, err error) {
	switch {
	case len(data) == block.Size:
		s, err = block.FromBytes(data)
		return s, false, err
	case len(data) < block.Size && scheme != None:
		out, err := Pad(data, scheme)
		if err != nil {
			return s, false, err
		}
		s, err = block.FromBytes(out)
		return s, true, err
	}
	return s, false, &errdefs.BlockSizeError{Got: len(data), Want: block.Size}
}
