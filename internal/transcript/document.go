// Package transcript exports an encryption trace as a JSON document that can
// be signed with ML-DSA-65 and verified later.
package transcript

import (
	"encoding/json"
	"fmt"

	"github.com/aestrace/aestrace-go/internal/block"
	"github.com/aestrace/aestrace-go/internal/codec"
	"github.com/aestrace/aestrace-go/internal/trace"
)

// Version is the document format version.
const Version = 1

// Context is prepended to the canonical document before signing.
const Context = "aestrace:transcript:v1"

// Document is the exported form of one run.
type Document struct {
	// V is the document format version.
	V int `json:"v"`
	// ID identifies the run the document was exported from.
	ID string `json:"id,omitempty"`
	// Suite names the cipher, e.g. "AES-128".
	Suite string `json:"suite"`
	// Mode is "ECB", "CBC" or "CTR".
	Mode string `json:"mode"`
	// Padding is the padding scheme name.
	Padding string `json:"padding"`
	// KeyLength is the key size in bits.
	KeyLength int `json:"key_length"`
	// IV is the hex IV or counter block, empty for ECB.
	IV string `json:"iv,omitempty"`
	// Ciphertext holds the final block in every rendering.
	Ciphertext Ciphertext `json:"ciphertext"`
	// Steps is the recorded trace in order.
	Steps []Step `json:"steps"`
	// Sig is the ML-DSA-65 signature (base64url), empty when unsigned.
	Sig string `json:"sig,omitempty"`
	// SignerPk is the signer's ML-DSA-65 public key (base64url).
	SignerPk string `json:"signer_pk,omitempty"`
}

// Ciphertext renders the output block.
type Ciphertext struct {
	Hex    string `json:"hex"`
	Base64 string `json:"base64"`
	Binary string `json:"binary"`
}

// Step is one trace record.
type Step struct {
	Index       int    `json:"index"`
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	Round       int    `json:"round"`
	State       string `json:"state"`
	Highlighted []int  `json:"highlighted,omitempty"`
	Narrative   string `json:"narrative"`
	RoundKey    string `json:"round_key,omitempty"`
}

// Header carries the run parameters that are not part of the trace itself.
type Header struct {
	ID         string
	Suite      string
	Mode       string
	Padding    string
	KeyLength  int
	IV         []byte
	Ciphertext []byte
}

// New builds an unsigned document from a finished trace.
func New(h Header, tr *trace.Trace) *Document {
	doc := &Document{
		V:         Version,
		ID:        h.ID,
		Suite:     h.Suite,
		Mode:      h.Mode,
		Padding:   h.Padding,
		KeyLength: h.KeyLength,
		Ciphertext: Ciphertext{
			Hex:    codec.ToHex(h.Ciphertext),
			Base64: codec.ToBase64(h.Ciphertext),
			Binary: codec.ToBinary(h.Ciphertext),
		},
		Steps: make([]Step, 0, tr.Len()),
	}
	if len(h.IV) > 0 {
		doc.IV = codec.ToHex(h.IV)
	}

	for i, s := range tr.Steps() {
		st := s.State()
		step := Step{
			Index:       i,
			Kind:        s.Kind().String(),
			Label:       s.Label(),
			Round:       trace.Round(s),
			State:       st.Hex(),
			Highlighted: s.Highlighted(),
			Narrative:   s.Narrative(),
		}
		if rk, ok := trace.RoundKey(s); ok {
			step.RoundKey = rk.Hex()
		}
		doc.Steps = append(doc.Steps, step)
	}
	return doc
}

// StateOf decodes the state of step i.
func (d *Document) StateOf(i int) (block.State, error) {
	if i < 0 || i >= len(d.Steps) {
		return block.State{}, fmt.Errorf("step %d out of range [0, %d)", i, len(d.Steps))
	}
	b, err := codec.FromHex(d.Steps[i].State)
	if err != nil {
		return block.State{}, fmt.Errorf("decode state of step %d: %w", i, err)
	}
	return block.FromBytes(b)
}

// Signed reports whether the document carries a signature.
func (d *Document) Signed() bool {
	return d.Sig != "" && d.SignerPk != ""
}

// Canonical returns the bytes that are signed: the JSON encoding of the
// document with both signature fields blank, prefixed with Context.
func (d *Document) Canonical() ([]byte, error) {
	unsigned := *d
	unsigned.Sig = ""
	unsigned.SignerPk = ""

	body, err := json.Marshal(&unsigned)
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}
	return append([]byte(Context), body...), nil
}

// Marshal encodes the document as indented JSON.
func (d *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal decodes a document and checks its version.
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	if doc.V != Version {
		return nil, fmt.Errorf("unsupported transcript version %d", doc.V)
	}
	return &doc, nil
}
