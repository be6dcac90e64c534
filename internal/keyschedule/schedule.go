// Package keyschedule expands an AES key into its round keys.
package keyschedule

import (
	"encoding/hex"
	"fmt"

	"github.com/aestrace/aestrace-go/internal/block"
	"github.com/aestrace/aestrace-go/internal/errdefs"
	"github.com/aestrace/aestrace-go/internal/tables"
)

// Word is one 32-bit column of key material.
type Word [4]byte

func (w Word) String() string {
	return hex.EncodeToString(w[:])
}

func (w Word) xor(o Word) Word {
	return Word{w[0] ^ o[0], w[1] ^ o[1], w[2] ^ o[2], w[3] ^ o[3]}
}

// rotWord rotates a word left by one byte.
func rotWord(w Word) Word {
	return Word{w[1], w[2], w[3], w[0]}
}

// subWord applies the S-box to each byte of a word.
func subWord(w Word) Word {
	return Word{tables.SBox[w[0]], tables.SBox[w[1]], tables.SBox[w[2]], tables.SBox[w[3]]}
}

// Schedule holds Nr+1 round keys; index 0 is the whitening key.
type Schedule []block.State

// Rounds returns Nr for the schedule.
func (s Schedule) Rounds() int {
	return len(s) - 1
}

// Expand derives the round keys for key using the standard constant table.
func Expand(key []byte, kl KeyLength) (Schedule, error) {
	return ExpandWithConstants(key, kl, tables.Rcon[:])
}

// ExpandWithConstants derives the round keys using rcon as the round
// constant table. The table must reach every index the key length uses;
// a short table is rejected before any word is computed.
func ExpandWithConstants(key []byte, kl KeyLength, rcon []byte) (Schedule, error) {
	words, err := expandWords(key, kl, rcon, nil)
	if err != nil {
		return nil, err
	}

	schedule := make(Schedule, kl.Rounds()+1)
	for r := range schedule {
		for j := 0; j < 4; j++ {
			copy(schedule[r][4*j:4*j+4], words[4*r+j][:])
		}
	}
	return schedule, nil
}

// RequiredConstants returns the highest round constant index kl uses.
func RequiredConstants(kl KeyLength) int {
	total := 4 * (kl.Rounds() + 1)
	return (total - 1) / kl.Words()
}

func checkInputs(key []byte, kl KeyLength, rcon []byte) error {
	if !kl.Valid() {
		return fmt.Errorf("%w: %d", errdefs.ErrUnknownKeyLength, int(kl))
	}
	if len(key) != kl.Bytes() {
		return fmt.Errorf("%w: got %d, want %d", errdefs.ErrInvalidKeySize, len(key), kl.Bytes())
	}
	if need := RequiredConstants(kl); len(rcon) <= need {
		return &errdefs.RoundConstantsError{KeyBits: int(kl), Need: need, Have: len(rcon)}
	}
	return nil
}

// expandWords runs the FIPS-197 word recurrence. visit, when set, is called
// once per word in order.
func expandWords(key []byte, kl KeyLength, rcon []byte, visit func(WordDerivation)) ([]Word, error) {
	if err := checkInputs(key, kl, rcon); err != nil {
		return nil, err
	}

	nk := kl.Words()
	total := 4 * (kl.Rounds() + 1)
	words := make([]Word, total)

	for i := 0; i < nk; i++ {
		copy(words[i][:], key[4*i:4*i+4])
		if visit != nil {
			visit(WordDerivation{Index: i, Kind: WordFromKey, Result: words[i]})
		}
	}

	for i := nk; i < total; i++ {
		d := WordDerivation{
			Index:    i,
			Kind:     WordXOR,
			Previous: words[i-1],
			Back:     words[i-nk],
		}
		temp := words[i-1]

		switch {
		case i%nk == 0:
			d.Kind = WordRotSubRcon
			d.Rotated = rotWord(temp)
			d.Substituted = subWord(d.Rotated)
			d.Rcon = rcon[i/nk]
			temp = d.Substituted
			temp[0] ^= d.Rcon
		case nk > 6 && i%nk == 4:
			d.Kind = WordSub
			d.Substituted = subWord(temp)
			temp = d.Substituted
		}

		d.Temp = temp
		words[i] = words[i-nk].xor(temp)
		d.Result = words[i]
		if visit != nil {
			visit(d)
		}
	}

	return words, nil
}
