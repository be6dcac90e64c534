package transcript

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/aestrace/aestrace-go/internal/codec"
	"github.com/aestrace/aestrace-go/internal/errdefs"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
)

const (
	// SeedSize is the size of a signer seed in bytes.
	SeedSize = mldsa65.SeedSize
	// PublicKeySize is the size of an ML-DSA-65 public key in bytes.
	PublicKeySize = mldsa65.PublicKeySize
	// SignatureSize is the size of an ML-DSA-65 signature in bytes.
	SignatureSize = mldsa65.SignatureSize
)

// randReader is the random source used by GenerateSigner when given nil.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

// Signer is an ML-DSA-65 key pair together with the seed it came from.
type Signer struct {
	seed [SeedSize]byte
	pk   *mldsa65.PublicKey
	sk   *mldsa65.PrivateKey
}

// GenerateSigner reads a fresh seed from r. A nil r uses crypto/rand.
func GenerateSigner(r io.Reader) (*Signer, error) {
	if r == nil {
		r = randReader
	}
	if r == nil {
		r = rand.Reader
	}

	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("failed to generate signing seed: %w", err)
	}
	return SignerFromSeed(seed)
}

// SignerFromSeed deterministically rebuilds a signer.
func SignerFromSeed(seed []byte) (*Signer, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: signing seed is %d bytes, want %d", errdefs.ErrInvalidKeySize, len(seed), SeedSize)
	}

	s := &Signer{}
	copy(s.seed[:], seed)
	s.pk, s.sk = mldsa65.NewKeyFromSeed(&s.seed)
	return s, nil
}

// Seed returns a copy of the seed.
func (s *Signer) Seed() []byte {
	return append([]byte(nil), s.seed[:]...)
}

// PublicKey returns the packed public key.
func (s *Signer) PublicKey() []byte {
	// MarshalBinary never fails for keys built by NewKeyFromSeed
	b, _ := s.pk.MarshalBinary()
	return b
}

// Sign fills in the signature fields of doc.
func Sign(doc *Document, s *Signer) error {
	msg, err := doc.Canonical()
	if err != nil {
		return err
	}

	sig := make([]byte, SignatureSize)
	mldsa65.SignTo(s.sk, msg, nil, false, sig)

	doc.Sig = codec.ToBase64URL(sig)
	doc.SignerPk = codec.ToBase64URL(s.PublicKey())
	return nil
}

// Verify checks the signature on doc against the embedded public key.
func Verify(doc *Document) error {
	if !doc.Signed() {
		return fmt.Errorf("%w: transcript is not signed", errdefs.ErrSignatureVerificationFailed)
	}

	pkBytes, err := codec.FromBase64URL(doc.SignerPk)
	if err != nil {
		return fmt.Errorf("decode signer_pk: %w", err)
	}
	sig, err := codec.FromBase64URL(doc.Sig)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}

	var pk mldsa65.PublicKey
	if err := pk.UnmarshalBinary(pkBytes); err != nil {
		return fmt.Errorf("unmarshal public key: %w", err)
	}

	msg, err := doc.Canonical()
	if err != nil {
		return err
	}
	if !mldsa65.Verify(&pk, msg, nil, sig) {
		return errdefs.ErrSignatureVerificationFailed
	}
	return nil
}

// VerifyWithKey is Verify plus a check that the document was signed by the
// holder of publicKey.
func VerifyWithKey(doc *Document, publicKey []byte) error {
	if doc.SignerPk != codec.ToBase64URL(publicKey) {
		return fmt.Errorf("%w: signer public key mismatch", errdefs.ErrSignatureVerificationFailed)
	}
	return Verify(doc)
}
