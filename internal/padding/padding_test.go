package padding

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/aestrace/aestrace-go/internal/block"
	"github.com/aestrace/aestrace-go/internal/errdefs"
)

func TestPad_PKCS7(t *testing.T) {
	out, err := Pad([]byte("Hello, AES!"), PKCS7)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte("Hello, AES!"), 5, 5, 5, 5, 5)
	if !bytes.Equal(out, want) {
		t.Errorf("Pad() = %x, want %x", out, want)
	}
}

func TestPad_ANSIX923(t *testing.T) {
	out, err := Pad([]byte("Hello, AES!"), ANSIX923)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte("Hello, AES!"), 0, 0, 0, 0, 5)
	if !bytes.Equal(out, want) {
		t.Errorf("Pad() = %x, want %x", out, want)
	}
}

func TestPad_FullBlock(t *testing.T) {
	data := bytes.Repeat([]byte{0xaa}, block.Size)

	for _, scheme := range []Scheme{PKCS7, ANSIX923} {
		t.Run(scheme.String(), func(t *testing.T) {
			out, err := Pad(data, scheme)
			if err != nil {
				t.Fatal(err)
			}
			if len(out) != 2*block.Size {
				t.Fatalf("len = %d, want %d", len(out), 2*block.Size)
			}
			if out[len(out)-1] != block.Size {
				t.Errorf("last byte = %d, want %d", out[len(out)-1], block.Size)
			}
		})
	}
}

func TestPad_DoesNotAlias(t *testing.T) {
	data := make([]byte, 4, 32)
	out, err := Pad(data, PKCS7)
	if err != nil {
		t.Fatal(err)
	}
	out[0] = 0xff
	if data[0] != 0 {
		t.Error("Pad() wrote into the caller's backing array")
	}
}

func TestPadUnpad_RoundTrip(t *testing.T) {
	for _, scheme := range []Scheme{PKCS7, ANSIX923} {
		for n := 1; n <= block.Size; n++ {
			t.Run(fmt.Sprintf("%v/%d", scheme, n), func(t *testing.T) {
				data := make([]byte, n)
				for i := range data {
					data[i] = byte(i*7 + 1)
				}

				padded, err := Pad(data, scheme)
				if err != nil {
					t.Fatal(err)
				}
				if len(padded)%block.Size != 0 {
					t.Fatalf("padded length %d not a multiple of %d", len(padded), block.Size)
				}

				got, err := Unpad(padded, scheme)
				if err != nil {
					t.Fatalf("Unpad() error = %v", err)
				}
				if !bytes.Equal(got, data) {
					t.Errorf("Unpad(Pad(x)) = %x, want %x", got, data)
				}
			})
		}
	}
}

func TestUnpad_InvalidLength(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		scheme Scheme
	}{
		{"empty", []byte{}, ANSIX923},
		{"zero pad byte", append(make([]byte, 15), 0x00), ANSIX923},
		{"pad byte above block size", append(make([]byte, 15), 0x11), ANSIX923},
		{"pad byte above data length", []byte{0x00, 0x00, 0x05}, ANSIX923},
		{"pkcs7 zero", append(make([]byte, 15), 0x00), PKCS7},
		{"pkcs7 too large", append(make([]byte, 31), 0x20), PKCS7},
		{"pkcs7 inconsistent", []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 3, 4, 3, 3}, PKCS7},
		{"x923 nonzero filler", []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 0, 9, 0, 4}, ANSIX923},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unpad(tt.data, tt.scheme)
			if !errors.Is(err, errdefs.ErrInvalidPadLength) {
				t.Errorf("expected ErrInvalidPadLength, got %v", err)
			}
		})
	}
}

func TestUnpad_None(t *testing.T) {
	data := []byte{1, 2, 3}
	got, err := Unpad(data, None)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Unpad(None) = %x, want %x", got, data)
	}
}

func TestBlock(t *testing.T) {
	full := bytes.Repeat([]byte{0x41}, block.Size)

	tests := []struct {
		name       string
		data       []byte
		scheme     Scheme
		wantPadded bool
		wantErr    bool
	}{
		{"full block pkcs7", full, PKCS7, false, false},
		{"full block none", full, None, false, false},
		{"short pkcs7", []byte("Hello, AES!"), PKCS7, true, false},
		{"short x923", []byte("Hello, AES!"), ANSIX923, true, false},
		{"empty pkcs7", nil, PKCS7, true, false},
		{"short none", []byte("Hello, AES!"), None, false, true},
		{"long pkcs7", make([]byte, 17), PKCS7, false, true},
		{"long none", make([]byte, 32), None, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, padded, err := Block(tt.data, tt.scheme)
			if tt.wantErr {
				if !errors.Is(err, errdefs.ErrBlockSizeMismatch) {
					t.Errorf("expected ErrBlockSizeMismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Block() error = %v", err)
			}
			if padded != tt.wantPadded {
				t.Errorf("padded = %v, want %v", padded, tt.wantPadded)
			}
			if !bytes.Equal(s[:len(tt.data)], tt.data) {
				t.Errorf("block prefix = %x, want %x", s[:len(tt.data)], tt.data)
			}
		})
	}
}

func TestParseScheme(t *testing.T) {
	tests := []struct {
		in   string
		want Scheme
	}{
		{"PKCS7", PKCS7},
		{"pkcs7", PKCS7},
		{"ANSI X.923", ANSIX923},
		{"ansi-x923", ANSIX923},
		{"x923", ANSIX923},
		{"None", None},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScheme(tt.in)
			if err != nil {
				t.Fatalf("ParseScheme() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseScheme() = %v, want %v", got, tt.want)
			}
			if again, err := ParseScheme(got.String()); err != nil || again != got {
				t.Errorf("ParseScheme(%q) = %v, %v", got.String(), again, err)
			}
		})
	}

	if _, err := ParseScheme("iso10126"); !errors.Is(err, errdefs.ErrUnknownPadding) {
		t.Errorf("expected ErrUnknownPadding, got %v", err)
	}
}
