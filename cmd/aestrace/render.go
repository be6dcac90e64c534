package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/ryanuber/columnize"

	aestrace "github.com/aestrace/aestrace-go"
	"github.com/aestrace/aestrace-go/internal/codec"
	"github.com/aestrace/aestrace-go/internal/trace"
)

const narrativeWidth = 72

// renderer formats traces for a terminal.
type renderer struct {
	highlight *color.Color
	label     *color.Color
}

func newRenderer(colorize bool) *renderer {
	r := &renderer{
		highlight: color.New(color.FgHiYellow, color.Bold),
		label:     color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{r.highlight, r.label} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// matrix renders the state as four rows of hex bytes. Highlighted cells are
// colored, or marked with '*' when color is off.
func (r *renderer) matrix(s aestrace.State, highlighted []int, colorize bool) string {
	hl := make(map[int]bool, len(highlighted))
	for _, i := range highlighted {
		hl[i] = true
	}

	var b strings.Builder
	for row := 0; row < 4; row++ {
		b.WriteString("    ")
		for col := 0; col < 4; col++ {
			i := row + 4*col
			cell := fmt.Sprintf("%02x", s[i])
			switch {
			case hl[i] && colorize:
				cell = r.highlight.Sprint(cell) + " "
			case hl[i]:
				cell += "*"
			default:
				cell += " "
			}
			b.WriteString(cell)
			if col < 3 {
				b.WriteString(" ")
			}
		}
		if row < 3 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// step renders one trace record.
func (r *renderer) step(i int, s trace.Step, colorize bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%02d] %s\n", i, r.label.Sprint(s.Label()))
	b.WriteString(r.matrix(s.State(), s.Highlighted(), colorize))
	b.WriteString("\n")
	if rk, ok := trace.RoundKey(s); ok {
		fmt.Fprintf(&b, "     round key: %s\n", codec.FormatHex(rk.Bytes(), " "))
	}
	for _, line := range strings.Split(wordwrap.WrapString(s.Narrative(), narrativeWidth), "\n") {
		b.WriteString("     ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// result renders every step followed by a summary table.
func (r *renderer) result(res *aestrace.Result, colorize bool) string {
	var b strings.Builder
	for i, s := range res.Trace.Steps() {
		b.WriteString(r.step(i, s, colorize))
		b.WriteString("\n")
	}
	b.WriteString(summary(res))
	return b.String()
}

func summary(res *aestrace.Result) string {
	lines := []string{
		"Field | Value",
		"Suite | " + res.KeyLength.String(),
		"Mode | " + res.Mode.String(),
		"Padding | " + res.Padding.String(),
	}
	if res.IV != nil {
		lines = append(lines, "IV | "+codec.ToHex(res.IV))
	}
	lines = append(lines,
		"Hex | "+res.Ciphertext.Hex,
		"Base64 | "+res.Ciphertext.Base64,
		"Binary | "+res.Ciphertext.Binary,
	)
	return columnize.SimpleFormat(lines)
}
