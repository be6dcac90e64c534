package errdefs

import (
	"errors"
	"fmt"
	"testing"
)

func TestTypedErrors_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "pad length",
			err:      &PadLengthError{Value: 0, Length: 16},
			expected: "invalid pad length 0 for 16 bytes of data",
		},
		{
			name:     "block size",
			err:      &BlockSizeError{Got: 11, Want: 16},
			expected: "block size mismatch: got 11 bytes, want 16",
		},
		{
			name:     "round constants",
			err:      &RoundConstantsError{KeyBits: 128, Need: 10, Have: 8},
			expected: "AES-128 needs round constants up to index 10, table has 8 entries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTypedErrors_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		{"pad length matches", &PadLengthError{Value: 17}, ErrInvalidPadLength, true},
		{"pad length does not match block size", &PadLengthError{Value: 17}, ErrBlockSizeMismatch, false},
		{"block size matches", &BlockSizeError{Got: 20, Want: 16}, ErrBlockSizeMismatch, true},
		{"round constants matches", &RoundConstantsError{}, ErrIncompleteRoundConstants, true},
		{"round constants does not match key size", &RoundConstantsError{}, ErrInvalidKeySize, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.expected {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.expected)
			}
		})
	}
}

func TestTypedErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("unpad: %w", &PadLengthError{Value: 0, Length: 16})

	if !errors.Is(err, ErrInvalidPadLength) {
		t.Error("wrapped PadLengthError should match ErrInvalidPadLength")
	}

	var padErr *PadLengthError
	if !errors.As(err, &padErr) {
		t.Fatal("errors.As should find *PadLengthError")
	}
	if padErr.Length != 16 {
		t.Errorf("Length = %d, want 16", padErr.Length)
	}
}
