package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/cli"
	"github.com/posener/complete"

	aestrace "github.com/aestrace/aestrace-go"
	"github.com/aestrace/aestrace-go/internal/codec"
	"github.com/aestrace/aestrace-go/internal/transcript"
)

var (
	_ cli.Command             = (*EncryptCommand)(nil)
	_ cli.CommandAutocomplete = (*EncryptCommand)(nil)
)

type EncryptCommand struct {
	*BaseCommand

	keys   keyFlags
	cipher cipherFlags

	flagFormat      string
	flagSign        bool
	flagSigningSeed string
}

func (c *EncryptCommand) Synopsis() string {
	return "Encrypt one block and print every intermediate state"
}

func (c *EncryptCommand) Help() string {
	helpText := `
Usage: aestrace encrypt [options] PLAINTEXT

  Encrypts PLAINTEXT (at most 16 bytes, or "-" to read stdin) and prints
  the state after every AES step. Use -format=json to get a transcript
  document instead, and -sign to sign it with ML-DSA-65.

  Encrypt with a text key:

     $ aestrace encrypt -key-encoding=text -key=7b0dd452e211631d "Hello, AES!"

` + flagHelp(c.Flags())
	return strings.TrimSpace(helpText)
}

func (c *EncryptCommand) Flags() *flag.FlagSet {
	f := newFlagSet("encrypt")
	c.keys.register(f)
	c.cipher.register(f)
	f.StringVar(&c.flagFormat, "format", "text", "Output format: text or json.")
	f.BoolVar(&c.flagSign, "sign", false, "Sign the JSON transcript.")
	f.StringVar(&c.flagSigningSeed, "signing-seed", "", "Signing seed as hex. Defaults to "+EnvSigningSeed+".")
	return f
}

func (c *EncryptCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictAnything
}

func (c *EncryptCommand) AutocompleteFlags() complete.Flags {
	return mergeFlags(c.keys.completions(), c.cipher.completions(), complete.Flags{
		"-format":       complete.PredictSet("text", "json"),
		"-sign":         complete.PredictNothing,
		"-signing-seed": complete.PredictAnything,
	})
}

func (c *EncryptCommand) Run(args []string) int {
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

	if c.flagFormat != "text" && c.flagFormat != "json" {
		c.UI.Error(fmt.Sprintf("Unknown format %q (expected text or json)", c.flagFormat))
		return exitUsage
	}
	if c.flagSign && c.flagFormat != "json" {
		c.UI.Error("-sign requires -format=json")
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
		var cfgErr *aestrace.ConfigError
		if errors.As(err, &cfgErr) {
			return exitUsage
		}
		return exitFailure
	}

	if c.flagFormat == "text" {
		c.UI.Output(newRenderer(s.Color).result(res, s.Color))
		return exitOK
	}

	doc := res.Transcript()
	if c.flagSign {
		signer, err := c.signer(s)
		if err != nil {
			c.UI.Error(err.Error())
			return exitUsage
		}
		if err := transcript.Sign(doc, signer); err != nil {
			c.UI.Error(fmt.Sprintf("Error signing transcript: %s", err))
			return exitFailure
		}
	}

	out, err := doc.Marshal()
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error encoding transcript: %s", err))
		return exitFailure
	}
	c.UI.Output(string(out))
	return exitOK
}

func (c *EncryptCommand) signer(s *Settings) (*transcript.Signer, error) {
	seed := s.SigningSeed
	if c.flagSigningSeed != "" {
		b, err := codec.FromHex(c.flagSigningSeed)
		if err != nil {
			return nil, fmt.Errorf("invalid -signing-seed: %w", err)
		}
		seed = b
	}
	if seed == nil {
		return nil, fmt.Errorf("signing requires -signing-seed or %s (see \"aestrace keygen -type=signer\")", EnvSigningSeed)
	}
	return transcript.SignerFromSeed(seed)
}
