package keyschedule

import (
	"fmt"
	"strings"

	"github.com/aestrace/aestrace-go/internal/block"
	"github.com/aestrace/aestrace-go/internal/tables"
)

// WordKind says how a schedule word was produced.
type WordKind int

const (
	// WordFromKey words are copied straight from the cipher key.
	WordFromKey WordKind = iota
	// WordRotSubRcon words start a key block: RotWord, SubWord, then Rcon.
	WordRotSubRcon
	// WordSub words get SubWord only (position 4 of an AES-256 key block).
	WordSub
	// WordXOR words are a plain XOR of two earlier words.
	WordXOR
)

func (k WordKind) String() string {
	switch k {
	case WordFromKey:
		return "key"
	case WordRotSubRcon:
		return "rot-sub-rcon"
	case WordSub:
		return "sub"
	case WordXOR:
		return "xor"
	}
	return fmt.Sprintf("WordKind(%d)", int(k))
}

// WordDerivation records how one schedule word was computed.
type WordDerivation struct {
	Index       int
	Kind        WordKind
	Previous    Word // w[i-1]
	Rotated     Word
	Substituted Word
	Rcon        byte
	Temp        Word // w[i-1] after the transformation
	Back        Word // w[i-Nk]
	Result      Word
}

// Narrative describes the derivation in one or more sentences.
func (d WordDerivation) Narrative() string {
	switch d.Kind {
	case WordFromKey:
		return fmt.Sprintf("w[%d] = %s is taken directly from the cipher key.", d.Index, d.Result)
	case WordRotSubRcon:
		var sb strings.Builder
		fmt.Fprintf(&sb, "w[%d]: take the previous word %s, ", d.Index, d.Previous)
		fmt.Fprintf(&sb, "rotate it to %s, ", d.Rotated)
		fmt.Fprintf(&sb, "substitute through the S-box to %s, ", d.Substituted)
		fmt.Fprintf(&sb, "XOR round constant 0x%02x into the first byte giving %s, ", d.Rcon, d.Temp)
		fmt.Fprintf(&sb, "then XOR with %s to get %s.", d.Back, d.Result)
		return sb.String()
	case WordSub:
		return fmt.Sprintf("w[%d]: substitute the previous word %s through the S-box to %s, then XOR with %s to get %s.",
			d.Index, d.Previous, d.Substituted, d.Back, d.Result)
	default:
		return fmt.Sprintf("w[%d] = %s XOR %s = %s.", d.Index, d.Previous, d.Back, d.Result)
	}
}

// RoundDerivation groups the four words that make up one round key.
type RoundDerivation struct {
	Round int
	Key   block.State
	Words [4]WordDerivation
}

// Explain expands key like Expand and returns, for every round key, the
// derivation of each of its words.
func Explain(key []byte, kl KeyLength) ([]RoundDerivation, error) {
	var derivations []WordDerivation
	_, err := expandWords(key, kl, tables.Rcon[:], func(d WordDerivation) {
		derivations = append(derivations, d)
	})
	if err != nil {
		return nil, err
	}

	rounds := make([]RoundDerivation, kl.Rounds()+1)
	for r := range rounds {
		rounds[r].Round = r
		for j := 0; j < 4; j++ {
			d := derivations[4*r+j]
			rounds[r].Words[j] = d
			copy(rounds[r].Key[4*j:4*j+4], d.Result[:])
		}
	}
	return rounds, nil
}
