package main

import (
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/cli"
	"github.com/posener/complete"
	"github.com/ryanuber/columnize"

	aestrace "github.com/aestrace/aestrace-go"
	"github.com/aestrace/aestrace-go/internal/codec"
	"github.com/aestrace/aestrace-go/internal/reference"
)

var (
	_ cli.Command             = (*CheckCommand)(nil)
	_ cli.CommandAutocomplete = (*CheckCommand)(nil)
)

type CheckCommand struct {
	*BaseCommand

	keys   keyFlags
	cipher cipherFlags
}

func (c *CheckCommand) Synopsis() string {
	return "Compare the tracing engine with the standard library AES"
}

func (c *CheckCommand) Help() string {
	helpText := `
Usage: aestrace check [options] PLAINTEXT

  Encrypts PLAINTEXT with the tracing engine and with the Go standard
  library, then compares the first ciphertext block. Exits with status 2
  when they differ.

` + flagHelp(c.Flags())
	return strings.TrimSpace(helpText)
}

func (c *CheckCommand) Flags() *flag.FlagSet {
	f := newFlagSet("check")
	c.keys.register(f)
	c.cipher.register(f)
	return f
}

func (c *CheckCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictAnything
}

func (c *CheckCommand) AutocompleteFlags() complete.Flags {
	return mergeFlags(c.keys.completions(), c.cipher.completions())
}

func (c *CheckCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return exitUsage
	}

	plaintext, err := c.plaintextArg(f.Args())
	if err != nil {
		c.UI.Error(err.Error())
		return exitUsage
	}

	s := c.settings()
	key, kl, err := c.keys.resolve(s)
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error reading key: %s", err))
		return exitUsage
	}
	mode, pad, iv, err := c.cipher.resolve(s)
	if err != nil {
		c.UI.Error(err.Error())
		return exitUsage
	}

	opts := []aestrace.Option{aestrace.WithLogger(c.logger())}
	if iv != nil {
		opts = append(opts, aestrace.WithIV(iv))
	}
	if c.randReader != nil {
		opts = append(opts, aestrace.WithRandReader(c.randReader))
	}

	res, err := aestrace.Run(plaintext, key, mode, pad, kl, opts...)
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error encrypting: %s", err))
		return exitUsage
	}

	ref, err := reference.Encrypt(plaintext, codec.ToHex(key), mode, pad, kl, codec.ToHex(res.IV))
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error running reference encryption: %s", err))
		return exitFailure
	}

	want := ref.FirstBlock()
	match := bytes.Equal(res.Ciphertext.Raw, want)
	c.logger().Debug("parity check", "engine", res.Ciphertext.Hex, "reference", codec.ToHex(want), "match", match)

	lines := []string{
		"Source | Ciphertext",
		"engine | " + res.Ciphertext.Hex,
		"crypto/aes | " + codec.ToHex(want),
	}
	c.UI.Output(columnize.SimpleFormat(lines))

	if !match {
		c.UI.Error("Mismatch: the engine and crypto/aes disagree")
		return exitFailure
	}
	c.UI.Output("Match")
	return exitOK
}
