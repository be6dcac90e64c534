package aestrace

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/hashicorp/go-uuid"

	"github.com/aestrace/aestrace-go/internal/block"
	"github.com/aestrace/aestrace-go/internal/codec"
	"github.com/aestrace/aestrace-go/internal/keyschedule"
	"github.com/aestrace/aestrace-go/internal/modes"
	"github.com/aestrace/aestrace-go/internal/padding"
	"github.com/aestrace/aestrace-go/internal/trace"
	"github.com/aestrace/aestrace-go/internal/transcript"
)

// Ciphertext is the output block in every rendering.
type Ciphertext struct {
	Raw    []byte
	Hex    string
	Base64 string
	Binary string
}

func newCiphertext(s block.State) Ciphertext {
	raw := s.Bytes()
	return Ciphertext{
		Raw:    raw,
		Hex:    codec.ToHex(raw),
		Base64: codec.ToBase64(raw),
		Binary: codec.ToBinary(raw),
	}
}

// Result is the outcome of a successful Run.
type Result struct {
	// ID is a random UUID identifying this run.
	ID string
	// Trace holds every recorded step, ending with the ciphertext.
	Trace *Trace
	// Ciphertext is the encrypted block.
	Ciphertext Ciphertext
	// IV is the IV (CBC) or counter block (CTR) used; nil for ECB.
	IV []byte
	// Mode, Padding and KeyLength echo the run parameters.
	Mode      Mode
	Padding   Padding
	KeyLength KeyLength
	// Rounds is the number of cipher rounds (10, 12 or 14).
	Rounds int
	// Padded reports whether padding bytes were added to the plaintext.
	Padded bool
}

// Transcript exports the result as an unsigned transcript document.
func (r *Result) Transcript() *transcript.Document {
	return transcript.New(transcript.Header{
		ID:         r.ID,
		Suite:      r.KeyLength.String(),
		Mode:       r.Mode.String(),
		Padding:    r.Padding.String(),
		KeyLength:  int(r.KeyLength),
		IV:         r.IV,
		Ciphertext: r.Ciphertext.Raw,
	}, r.Trace)
}

// Run encrypts one block and records every intermediate state.
//
// The plaintext must be exactly 16 bytes, or shorter with a padding scheme
// other than NoPadding. The key must be kl.Bytes() long. CBC and CTR use the
// IV from WithIV, or a random one. The run ID is drawn from the WithRandReader
// source after the IV, so a seeded source reproduces the whole result. Nothing is returned on error, not even a
// partial trace.
func Run(plaintext, key []byte, mode Mode, pad Padding, kl KeyLength, opts ...Option) (*Result, error) {
	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger.Named("aestrace")

	if err := validate(key, mode, pad, kl); err != nil {
		return nil, err
	}

	plain, padded, err := padding.Block(plaintext, pad)
	if err != nil {
		return nil, &StageError{Stage: "padding", Err: err}
	}

	var iv block.State
	if mode.NeedsIV() {
		if iv, err = resolveIV(cfg); err != nil {
			return nil, &ConfigError{Field: "iv", Err: err}
		}
	}

	var schedule keyschedule.Schedule
	if cfg.customRcon {
		schedule, err = keyschedule.ExpandWithConstants(key, kl, cfg.rcon)
	} else {
		schedule, err = keyschedule.Expand(key, kl)
	}
	if err != nil {
		return nil, &StageError{Stage: "key expansion", Err: err}
	}

	id, err := newRunID(cfg.randReader)
	if err != nil {
		return nil, &StageError{Stage: "run id", Err: err}
	}

	logger.Debug("starting encryption",
		"run_id", id,
		"mode", mode.String(),
		"padding", pad.String(),
		"key_length", kl.String(),
		"plaintext_len", len(plaintext),
	)

	rec := trace.NewRecorder(logger)
	state, err := encrypt(rec, plaintext, plain, padded, iv, schedule, mode, pad, kl)
	if err != nil {
		return nil, &StageError{Stage: "mode", Err: err}
	}

	res := &Result{
		ID:         id,
		Trace:      rec.Finish(),
		Ciphertext: newCiphertext(state),
		Mode:       mode,
		Padding:    pad,
		KeyLength:  kl,
		Rounds:     schedule.Rounds(),
		Padded:     padded,
	}
	if mode.NeedsIV() {
		res.IV = iv.Bytes()
	}

	logger.Debug("encryption finished", "steps", res.Trace.Len(), "ciphertext", res.Ciphertext.Hex)
	return res, nil
}

func validate(key []byte, mode Mode, pad Padding, kl KeyLength) error {
	if !mode.Valid() {
		return &ConfigError{Field: "mode", Err: fmt.Errorf("%w: %v", ErrUnknownMode, mode)}
	}
	if !pad.Valid() {
		return &ConfigError{Field: "padding", Err: fmt.Errorf("%w: %v", ErrUnknownPadding, pad)}
	}
	if !kl.Valid() {
		return &ConfigError{Field: "key length", Err: fmt.Errorf("%w: %d", ErrUnknownKeyLength, int(kl))}
	}
	if len(key) != kl.Bytes() {
		return &ConfigError{Field: "key", Err: fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(key), kl.Bytes())}
	}
	return nil
}

func newRunID(r io.Reader) (string, error) {
	if r == nil {
		return uuid.GenerateUUID()
	}
	return uuid.GenerateUUIDWithReader(r)
}

func resolveIV(cfg *runConfig) (block.State, error) {
	if cfg.iv != nil {
		return modes.IVFromBytes(cfg.iv)
	}
	return modes.NewIV(cfg.randReader)
}

// encrypt runs the recorded pipeline. Every input has been validated.
func encrypt(rec *trace.Recorder, raw []byte, plain block.State, padded bool, iv block.State,
	schedule keyschedule.Schedule, mode Mode, pad Padding, kl KeyLength) (block.State, error) {

	var shown block.State
	copy(shown[:], raw)
	rec.Record(trace.PlaintextStep{Bytes: shown, Length: len(raw), Text: displayText(raw)})

	if padded {
		rec.Record(trace.PaddingStep{Padded: plain, Scheme: pad, Added: block.Size - len(raw)})
	}

	switch mode {
	case modes.CBC:
		rec.Record(trace.IVStep{IV: iv})
	case modes.CTR:
		rec.Record(trace.CounterStep{Counter: iv})
	}

	state, err := modes.PreRound(mode, plain, iv)
	if err != nil {
		return block.State{}, err
	}
	if mode == modes.CBC {
		rec.Record(trace.IVXORStep{Result: state})
	}

	state = block.AddRoundKey(state, schedule[0])
	rec.Record(trace.AddRoundKeyStep{Round: 0, Result: state, RoundKey: schedule[0]})

	nr := schedule.Rounds()
	for r := 1; r <= nr; r++ {
		state = block.SubBytes(state)
		rec.Record(trace.SubBytesStep{Round: r, Result: state})

		state = block.ShiftRows(state)
		rec.Record(trace.ShiftRowsStep{Round: r, Result: state})

		if r < nr {
			state = block.MixColumns(state)
			rec.Record(trace.MixColumnsStep{Round: r, Result: state})
		}

		state = block.AddRoundKey(state, schedule[r])
		rec.Record(trace.AddRoundKeyStep{Round: r, Result: state, RoundKey: schedule[r]})
	}

	out, err := modes.PostRound(mode, state, plain)
	if err != nil {
		return block.State{}, err
	}
	if mode == modes.CTR {
		rec.Record(trace.CounterXORStep{Result: out})
	}

	rec.Record(trace.CiphertextStep{Result: out, Suite: kl.String(), Mode: mode.String()})
	return out, nil
}

// displayText renders the plaintext for narratives.
func displayText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	return codec.FormatHex(raw, " ")
}
