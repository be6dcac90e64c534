package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/cli"
	"github.com/posener/complete"

	aestrace "github.com/aestrace/aestrace-go"
	"github.com/aestrace/aestrace-go/internal/codec"
	"github.com/aestrace/aestrace-go/internal/keyinput"
	"github.com/aestrace/aestrace-go/internal/transcript"
)

var (
	_ cli.Command             = (*KeygenCommand)(nil)
	_ cli.CommandAutocomplete = (*KeygenCommand)(nil)
)

type KeygenCommand struct {
	*BaseCommand

	flagType      string
	flagKeyLength string
}

func (c *KeygenCommand) Synopsis() string {
	return "Generate an AES key or a transcript signing seed"
}

func (c *KeygenCommand) Help() string {
	helpText := `
Usage: aestrace keygen [options]

  Generates a random AES key (-type=aes, the default) and prints it as hex,
  or a signing seed (-type=signer) and prints the seed together with the
  matching ML-DSA-65 public key.

` + flagHelp(c.Flags())
	return strings.TrimSpace(helpText)
}

func (c *KeygenCommand) Flags() *flag.FlagSet {
	f := newFlagSet("keygen")
	f.StringVar(&c.flagType, "type", "aes", "What to generate: aes or signer.")
	f.StringVar(&c.flagKeyLength, "key-length", "", "AES key length in bits: 128, 192 or 256.")
	return f
}

func (c *KeygenCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *KeygenCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-type":       complete.PredictSet("aes", "signer"),
		"-key-length": predictLengths,
	}
}

func (c *KeygenCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return exitUsage
	}
	if len(f.Args()) > 0 {
		c.UI.Error(fmt.Sprintf("Too many arguments (expected 0, got %d)", len(f.Args())))
		return exitUsage
	}

	switch c.flagType {
	case "aes":
		kl := c.settings().KeyLength
		if c.flagKeyLength != "" {
			var err error
			if kl, err = aestrace.ParseKeyLength(c.flagKeyLength); err != nil {
				c.UI.Error(err.Error())
				return exitUsage
			}
		}
		key, err := keyinput.Generate(c.randReader, kl)
		if err != nil {
			c.UI.Error(fmt.Sprintf("Error generating key: %s", err))
			return exitFailure
		}
		c.UI.Output(codec.ToHex(key))
		return exitOK

	case "signer":
		signer, err := transcript.GenerateSigner(c.randReader)
		if err != nil {
			c.UI.Error(fmt.Sprintf("Error generating signer: %s", err))
			return exitFailure
		}
		c.UI.Output(fmt.Sprintf("Seed: %s", codec.ToHex(signer.Seed())))
		c.UI.Output(fmt.Sprintf("Public Key: %s", codec.ToBase64URL(signer.PublicKey())))
		c.UI.Info(fmt.Sprintf("Export the seed as %s to sign transcripts.", EnvSigningSeed))
		return exitOK
	}

	c.UI.Error(fmt.Sprintf("Unknown type %q (expected aes or signer)", c.flagType))
	return exitUsage
}
