// Package reference encrypts with the standard library AES implementation so
// the tracing engine's output can be checked against it.
package reference

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/aestrace/aestrace-go/internal/block"
	"github.com/aestrace/aestrace-go/internal/codec"
	"github.com/aestrace/aestrace-go/internal/errdefs"
	"github.com/aestrace/aestrace-go/internal/keyschedule"
	"github.com/aestrace/aestrace-go/internal/modes"
	"github.com/aestrace/aestrace-go/internal/padding"
)

// Formats holds the same ciphertext in every rendering.
type Formats struct {
	Raw    []byte
	Base64 string
	Hex    string
	Binary string
}

// NewFormats renders ct.
func NewFormats(ct []byte) *Formats {
	return &Formats{
		Raw:    append([]byte(nil), ct...),
		Base64: codec.ToBase64(ct),
		Hex:    codec.ToHex(ct),
		Binary: codec.ToBinary(ct),
	}
}

// FirstBlock returns the leading 16 bytes of the ciphertext, which is what a
// single-block engine produces for the same input.
func (f *Formats) FirstBlock() []byte {
	if len(f.Raw) < block.Size {
		return append([]byte(nil), f.Raw...)
	}
	return append([]byte(nil), f.Raw[:block.Size]...)
}

// Encrypt pads plaintext with scheme and encrypts every block in the given
// mode. For CTR the IV is the initial counter block.
func Encrypt(plaintext []byte, keyHex string, mode modes.Mode, scheme padding.Scheme, kl keyschedule.KeyLength, ivHex string) (*Formats, error) {
	key, err := codec.FromHex(keyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errdefs.ErrInvalidKeyEncoding, err)
	}
	if !kl.Valid() {
		return nil, fmt.Errorf("%w: %d", errdefs.ErrUnknownKeyLength, int(kl))
	}
	if len(key) != kl.Bytes() {
		return nil, fmt.Errorf("%w: got %d, want %d", errdefs.ErrInvalidKeySize, len(key), kl.Bytes())
	}

	var iv []byte
	if mode.NeedsIV() {
		if iv, err = codec.FromHex(ivHex); err != nil {
			return nil, fmt.Errorf("%w: %v", errdefs.ErrInvalidIVSize, err)
		}
		if len(iv) != aes.BlockSize {
			return nil, fmt.Errorf("%w: got %d, want %d", errdefs.ErrInvalidIVSize, len(iv), aes.BlockSize)
		}
	}

	data, err := padding.Pad(plaintext, scheme)
	if err != nil {
		return nil, err
	}
	if mode != modes.CTR && len(data)%aes.BlockSize != 0 {
		return nil, &errdefs.BlockSizeError{Got: len(data), Want: aes.BlockSize}
	}

	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	out := make([]byte, len(data))
	switch mode {
	case modes.ECB:
		for i := 0; i < len(data); i += aes.BlockSize {
			c.Encrypt(out[i:i+aes.BlockSize], data[i:i+aes.BlockSize])
		}
	case modes.CBC:
		cipher.NewCBCEncrypter(c, iv).CryptBlocks(out, data)
	case modes.CTR:
		cipher.NewCTR(c, iv).XORKeyStream(out, data)
	default:
		return nil, fmt.Errorf("%w: %v", errdefs.ErrUnknownMode, mode)
	}

	return NewFormats(out), nil
}
