package codec

import (
	"fmt"
	"strings"
)

// ToBinary renders each byte as eight '0'/'1' characters, most significant
// bit first, with no separators.
func ToBinary(data []byte) string {
	var sb strings.Builder
	sb.Grow(8 * len(data))
	for _, b := range data {
		fmt.Fprintf(&sb, "%08b", b)
	}
	return sb.String()
}

// FromBinary parses the output of ToBinary. Whitespace is ignored.
func FromBinary(s string) ([]byte, error) {
	s = StripSpace(s)
	if len(s)%8 != 0 {
		return nil, fmt.Errorf("binary string length %d is not a multiple of 8", len(s))
	}

	out := make([]byte, len(s)/8)
	for i := range out {
		var b byte
		for _, c := range s[8*i : 8*i+8] {
			b <<= 1
			switch c {
			case '0':
			case '1':
				b |= 1
			default:
				return nil, fmt.Errorf("invalid binary digit %q at byte %d", c, i)
			}
		}
		out[i] = b
	}
	return out, nil
}
