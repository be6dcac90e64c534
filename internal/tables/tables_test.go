package tables

import "testing"

// gmul multiplies two field elements bit by bit, reducing by x^8+x^4+x^3+x+1.
func gmul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

func TestMulTables(t *testing.T) {
	for i := 0; i < 256; i++ {
		if got, want := Mul2[i], gmul(byte(i), 2); got != want {
			t.Errorf("Mul2[%#02x] = %#02x, want %#02x", i, got, want)
		}
		if got, want := Mul3[i], gmul(byte(i), 3); got != want {
			t.Errorf("Mul3[%#02x] = %#02x, want %#02x", i, got, want)
		}
	}
}

func TestSBox_IsPermutation(t *testing.T) {
	var seen [256]bool
	for i, v := range SBox {
		if seen[v] {
			t.Fatalf("SBox value %#02x repeated at index %d", v, i)
		}
		seen[v] = true
	}

	// Spot checks from FIPS-197 Figure 7.
	tests := []struct {
		in, out byte
	}{
		{0x00, 0x63},
		{0x53, 0xed},
		{0xff, 0x16},
		{0x19, 0xd4},
	}
	for _, tt := range tests {
		if SBox[tt.in] != tt.out {
			t.Errorf("SBox[%#02x] = %#02x, want %#02x", tt.in, SBox[tt.in], tt.out)
		}
	}
}

func TestRcon_Doubles(t *testing.T) {
	if Rcon[0] != 0x00 {
		t.Errorf("Rcon[0] = %#02x, want placeholder 0x00", Rcon[0])
	}
	if Rcon[1] != 0x01 {
		t.Errorf("Rcon[1] = %#02x, want 0x01", Rcon[1])
	}
	for i := 2; i < len(Rcon); i++ {
		if want := Mul2[Rcon[i-1]]; Rcon[i] != want {
			t.Errorf("Rcon[%d] = %#02x, want %#02x", i, Rcon[i], want)
		}
	}
}
