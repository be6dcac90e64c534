package codec

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestRenderings_Agree(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"single byte", []byte{0x42}},
		{"binary mixed", []byte{0x00, 0xff, 0x7f, 0x80}},
		{"ciphertext", []byte{0x30, 0x48, 0x4b, 0x8f, 0x8c, 0x6b, 0xb0, 0x9c, 0xa3, 0xf9, 0x4c, 0x6f, 0x84, 0xf0, 0x30, 0x5e}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromHex, err := FromHex(ToHex(tt.data))
			if err != nil {
				t.Fatalf("FromHex() error = %v", err)
			}
			fromB64, err := FromBase64(ToBase64(tt.data))
			if err != nil {
				t.Fatalf("FromBase64() error = %v", err)
			}
			fromBin, err := FromBinary(ToBinary(tt.data))
			if err != nil {
				t.Fatalf("FromBinary() error = %v", err)
			}
			fromURL, err := FromBase64URL(ToBase64URL(tt.data))
			if err != nil {
				t.Fatalf("FromBase64URL() error = %v", err)
			}

			for name, got := range map[string][]byte{"hex": fromHex, "base64": fromB64, "binary": fromBin, "base64url": fromURL} {
				if !bytes.Equal(got, tt.data) {
					t.Errorf("%s round trip = %x, want %x", name, got, tt.data)
				}
			}
		})
	}
}

func TestToHex_KnownCiphertext(t *testing.T) {
	data := []byte{0x30, 0x48, 0x4b, 0x8f, 0x8c, 0x6b, 0xb0, 0x9c, 0xa3, 0xf9, 0x4c, 0x6f, 0x84, 0xf0, 0x30, 0x5e}

	if got, want := ToHex(data), "30484b8f8c6bb09ca3f94c6f84f0305e"; got != want {
		t.Errorf("ToHex() = %s, want %s", got, want)
	}
	if got, want := ToBase64(data), "MEhLj4xrsJyj+UxvhPAwXg=="; got != want {
		t.Errorf("ToBase64() = %s, want %s", got, want)
	}
	if got := ToBinary(data[:2]); got != "0011000001001000" {
		t.Errorf("ToBinary() = %s, want 0011000001001000", got)
	}
}

func TestFromHex_UppercaseAndSpaces(t *testing.T) {
	got, err := FromHex("30 48 4B 8F")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0x30, 0x48, 0x4b, 0x8f}) {
		t.Errorf("FromHex() = %x", got)
	}
}

func TestFromBinary_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"short", "0101"},
		{"bad digit", "0101010a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromBinary(tt.input); err == nil {
				t.Error("expected error for invalid input")
			}
		})
	}
}

func TestFormatHex(t *testing.T) {
	if got := FormatHex([]byte{0x09, 0xcf, 0x4f}, " "); got != "09 cf 4f" {
		t.Errorf("FormatHex() = %q", got)
	}
	if got := FormatHex(nil, ", "); got != "" {
		t.Errorf("FormatHex(nil) = %q", got)
	}
}

func TestBase64URL_NoPadding(t *testing.T) {
	for _, data := range [][]byte{[]byte("a"), []byte("ab")} {
		if encoded := ToBase64URL(data); strings.Contains(encoded, "=") {
			t.Errorf("encoded string contains padding: %s", encoded)
		}
	}
}

// Example_renderings shows the three ciphertext renderings.
func Example_renderings() {
	data := []byte{0xde, 0xad}
	fmt.Println(ToHex(data))
	fmt.Println(ToBase64(data))
	fmt.Println(ToBinary(data))
	// Output:
	// dead
	// 3q0=
	// 1101111010101101
}
