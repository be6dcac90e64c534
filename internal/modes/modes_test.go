package modes

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aestrace/aestrace-go/internal/block"
	"github.com/aestrace/aestrace-go/internal/errdefs"
)

func fill(b byte) block.State {
	var s block.State
	for i := range s {
		s[i] = b + byte(i)
	}
	return s
}

func TestPreRound(t *testing.T) {
	plain := fill(0x10)
	iv := fill(0xa0)

	tests := []struct {
		mode Mode
		want block.State
	}{
		{ECB, plain},
		{CBC, block.XOR(plain, iv)},
		{CTR, iv},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got, err := PreRound(tt.mode, plain, iv)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("PreRound() = %s, want %s", got.Hex(), tt.want.Hex())
			}
		})
	}
}

func TestPostRound(t *testing.T) {
	plain := fill(0x10)
	encrypted := fill(0x77)

	for _, m := range []Mode{ECB, CBC} {
		got, err := PostRound(m, encrypted, plain)
		if err != nil {
			t.Fatal(err)
		}
		if got != encrypted {
			t.Errorf("PostRound(%v) = %s, want %s", m, got.Hex(), encrypted.Hex())
		}
	}

	got, err := PostRound(CTR, encrypted, plain)
	if err != nil {
		t.Fatal(err)
	}
	if got != block.XOR(encrypted, plain) {
		t.Errorf("PostRound(CTR) = %s", got.Hex())
	}
}

func TestCTR_Symmetric(t *testing.T) {
	plain := fill(0x10)
	keystream := fill(0x5c)

	ct, err := PostRound(CTR, keystream, plain)
	if err != nil {
		t.Fatal(err)
	}
	back, err := PostRound(CTR, keystream, ct)
	if err != nil {
		t.Fatal(err)
	}
	if back != plain {
		t.Errorf("applying the keystream twice = %s, want %s", back.Hex(), plain.Hex())
	}
}

func TestUnknownMode(t *testing.T) {
	if _, err := PreRound(Mode(9), block.State{}, block.State{}); !errors.Is(err, errdefs.ErrUnknownMode) {
		t.Errorf("PreRound: expected ErrUnknownMode, got %v", err)
	}
	if _, err := PostRound(Mode(9), block.State{}, block.State{}); !errors.Is(err, errdefs.ErrUnknownMode) {
		t.Errorf("PostRound: expected ErrUnknownMode, got %v", err)
	}
	if _, err := ParseMode("OFB"); !errors.Is(err, errdefs.ErrUnknownMode) {
		t.Errorf("ParseMode: expected ErrUnknownMode, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ECB, CBC, CTR} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if got, err := ParseMode(" ctr "); err != nil || got != CTR {
		t.Errorf("ParseMode(\" ctr \") = %v, %v", got, err)
	}
}

func TestNeedsIV(t *testing.T) {
	if ECB.NeedsIV() {
		t.Error("ECB should not need an IV")
	}
	if !CBC.NeedsIV() || !CTR.NeedsIV() {
		t.Error("CBC and CTR need an IV")
	}
}

func TestNewIV_FromReader(t *testing.T) {
	src := bytes.NewReader(bytes.Repeat([]byte{0x42}, 32))
	iv, err := NewIV(src)
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range iv {
		if b != 0x42 {
			t.Fatalf("iv[%d] = %#02x, want 0x42", i, b)
		}
	}
}

func TestNewIV_ShortReader(t *testing.T) {
	_, err := NewIV(bytes.NewReader([]byte{1, 2, 3}))
	if err == nil {
		t.Error("expected error from short reader")
	}
}

func TestNewIV_Default(t *testing.T) {
	a, err := NewIV(nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewIV(nil)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two random IVs should differ")
	}
}

func TestIVFromBytes(t *testing.T) {
	if _, err := IVFromBytes(make([]byte, 12)); !errors.Is(err, errdefs.ErrInvalidIVSize) {
		t.Errorf("expected ErrInvalidIVSize, got %v", err)
	}
	iv, err := IVFromBytes(bytes.Repeat([]byte{7}, 16))
	if err != nil {
		t.Fatal(err)
	}
	if iv[15] != 7 {
		t.Errorf("iv[15] = %d, want 7", iv[15])
	}
}
