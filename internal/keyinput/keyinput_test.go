package keyinput

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/aestrace/aestrace-go/internal/errdefs"
	"github.com/aestrace/aestrace-go/internal/keyschedule"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		enc  Encoding
		kl   keyschedule.KeyLength
		want string
	}{
		{"text exact", "7b0dd452e211631d", Text, keyschedule.AES128, "37623064643435326532313136333164"},
		{"hex exact", "000102030405060708090a0b0c0d0e0f", Hex, keyschedule.AES128, "000102030405060708090a0b0c0d0e0f"},
		{"hex with spaces", "00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f", Hex, keyschedule.AES128, "000102030405060708090a0b0c0d0e0f"},
		{"hex short zero padded", "ff", Hex, keyschedule.AES128, "ff000000000000000000000000000000"},
		{"text truncated", "abcdefghijklmnopqrstuvwxyz", Text, keyschedule.AES128, "6162636465666768696a6b6c6d6e6f70"},
		{"auto picks hex", "2b7e151628aed2a6abf7158809cf4f3c", Auto, keyschedule.AES128, "2b7e151628aed2a6abf7158809cf4f3c"},
		{"auto falls back to text", "secret", Auto, keyschedule.AES128, "73656372657400000000000000000000"},
		{"aes-256 pads", "0a", Hex, keyschedule.AES256, "0a00000000000000000000000000000000000000000000000000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in, tt.enc, tt.kl)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if hex.EncodeToString(got) != tt.want {
				t.Errorf("Parse() = %x, want %s", got, tt.want)
			}
			if len(got) != tt.kl.Bytes() {
				t.Errorf("len = %d, want %d", len(got), tt.kl.Bytes())
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		enc  Encoding
		kl   keyschedule.KeyLength
		want error
	}{
		{"odd hex", "abc", Hex, keyschedule.AES128, errdefs.ErrInvalidKeyEncoding},
		{"non hex", "zz", Hex, keyschedule.AES128, errdefs.ErrInvalidKeyEncoding},
		{"bad utf8", string([]byte{0xff, 0xfe}), Text, keyschedule.AES128, errdefs.ErrInvalidKeyEncoding},
		{"empty", "", Auto, keyschedule.AES128, errdefs.ErrInvalidKeyEncoding},
		{"unknown encoding", "00", Encoding(9), keyschedule.AES128, errdefs.ErrInvalidKeyEncoding},
		{"bad key length", "00", Hex, keyschedule.KeyLength(100), errdefs.ErrUnknownKeyLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in, tt.enc, tt.kl)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want Encoding
	}{
		{"", Auto},
		{"auto", Auto},
		{"HEX", Hex},
		{"text", Text},
		{"utf-8", Text},
	}
	for _, tt := range tests {
		got, err := ParseEncoding(tt.in)
		if err != nil {
			t.Fatalf("ParseEncoding(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseEncoding(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseEncoding("base32"); !errors.Is(err, errdefs.ErrInvalidKeyEncoding) {
		t.Errorf("ParseEncoding(base32) error = %v", err)
	}
}

func TestFit_DoesNotAlias(t *testing.T) {
	in := bytes.Repeat([]byte{1}, 16)
	out := Fit(in, keyschedule.AES128)
	out[0] = 9
	if in[0] != 1 {
		t.Error("Fit() aliased its input")
	}
}

func TestGenerate(t *testing.T) {
	src := bytes.NewReader(bytes.Repeat([]byte{0x42}, 64))
	key, err := Generate(src, keyschedule.AES192)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !bytes.Equal(key, bytes.Repeat([]byte{0x42}, 24)) {
		t.Errorf("Generate() = %x", key)
	}
}

func TestGenerate_FallbackReader(t *testing.T) {
	restore := SetRandReaderForTesting(bytes.NewReader(bytes.Repeat([]byte{0x07}, 32)))
	defer restore()

	key, err := Generate(nil, keyschedule.AES256)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !bytes.Equal(key, bytes.Repeat([]byte{0x07}, 32)) {
		t.Errorf("Generate() = %x, want the injected bytes", key)
	}
}

func TestGenerate_ShortReader(t *testing.T) {
	_, err := Generate(bytes.NewReader([]byte{1, 2, 3}), keyschedule.AES128)
	if err == nil {
		t.Fatal("Generate() with a short reader should fail")
	}
}

func TestDerive(t *testing.T) {
	got, err := Derive([]byte("correct horse"), nil, keyschedule.AES128)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if want := "bb4641685200b62f1c7c7a4fa91b0b83"; hex.EncodeToString(got) != want {
		t.Errorf("Derive() = %x, want %s", got, want)
	}

	long, err := Derive([]byte("correct horse"), nil, keyschedule.AES256)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if want := "bb4641685200b62f1c7c7a4fa91b0b83436dfb0fe4d9483cda32620b8f45463d"; hex.EncodeToString(long) != want {
		t.Errorf("Derive() = %x, want %s", long, want)
	}

	salted, err := Derive([]byte("correct horse"), []byte("salt"), keyschedule.AES128)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if bytes.Equal(salted, got) {
		t.Error("salt did not change the derived key")
	}
}

func TestDerive_Errors(t *testing.T) {
	if _, err := Derive(nil, nil, keyschedule.AES128); !errors.Is(err, errdefs.ErrInvalidKeyEncoding) {
		t.Errorf("Derive(empty) error = %v", err)
	}
	if _, err := Derive([]byte("x"), nil, keyschedule.KeyLength(0)); !errors.Is(err, errdefs.ErrUnknownKeyLength) {
		t.Errorf("Derive(bad length) error = %v", err)
	}
}
