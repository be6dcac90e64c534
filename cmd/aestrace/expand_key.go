package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/cli"
	"github.com/posener/complete"
	"github.com/ryanuber/columnize"

	aestrace "github.com/aestrace/aestrace-go"
	"github.com/aestrace/aestrace-go/internal/codec"
)

var (
	_ cli.Command             = (*ExpandKeyCommand)(nil)
	_ cli.CommandAutocomplete = (*ExpandKeyCommand)(nil)
)

type ExpandKeyCommand struct {
	*BaseCommand

	keys        keyFlags
	flagExplain bool
}

func (c *ExpandKeyCommand) Synopsis() string {
	return "Print the round keys derived from a key"
}

func (c *ExpandKeyCommand) Help() string {
	helpText := `
Usage: aestrace expand-key [options]

  Runs the AES key schedule and prints one round key per line. With
  -explain, every word of the schedule is listed with how it was derived.

     $ aestrace expand-key -key=2b7e151628aed2a6abf7158809cf4f3c -explain

` + flagHelp(c.Flags())
	return strings.TrimSpace(helpText)
}

func (c *ExpandKeyCommand) Flags() *flag.FlagSet {
	f := newFlagSet("expand-key")
	c.keys.register(f)
	f.BoolVar(&c.flagExplain, "explain", false, "Show how each word was derived.")
	return f
}

func (c *ExpandKeyCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *ExpandKeyCommand) AutocompleteFlags() complete.Flags {
	return mergeFlags(c.keys.completions(), complete.Flags{"-explain": complete.PredictNothing})
}

func (c *ExpandKeyCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return exitUsage
	}
	if len(f.Args()) > 0 {
		c.UI.Error(fmt.Sprintf("Too many arguments (expected 0, got %d)", len(f.Args())))
		return exitUsage
	}

	key, kl, err := c.keys.resolve(c.settings())
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error reading key: %s", err))
		return exitUsage
	}

	if !c.flagExplain {
		schedule, err := aestrace.ExpandKey(key, kl)
		if err != nil {
			c.UI.Error(fmt.Sprintf("Error expanding key: %s", err))
			return exitFailure
		}
		lines := []string{"Round | Key"}
		for r, k := range schedule {
			lines = append(lines, fmt.Sprintf("%d | %s", r, codec.FormatHex(k.Bytes(), " ")))
		}
		c.UI.Output(columnize.SimpleFormat(lines))
		return exitOK
	}

	rounds, err := aestrace.ExplainKeySchedule(key, kl)
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error expanding key: %s", err))
		return exitFailure
	}
	lines := []string{"Word | Round | Value | Derivation"}
	for _, r := range rounds {
		for _, w := range r.Words {
			lines = append(lines, fmt.Sprintf("w[%d] | %d | %s | %s", w.Index, r.Round, w.Result, w.Narrative()))
		}
	}
	c.UI.Output(columnize.SimpleFormat(lines))
	return exitOK
}
