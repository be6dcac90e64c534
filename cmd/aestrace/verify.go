package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/cli"
	"github.com/posener/complete"

	aestrace "github.com/aestrace/aestrace-go"
	"github.com/aestrace/aestrace-go/internal/codec"
	"github.com/aestrace/aestrace-go/internal/transcript"
)

var (
	_ cli.Command             = (*VerifyCommand)(nil)
	_ cli.CommandAutocomplete = (*VerifyCommand)(nil)
)

type VerifyCommand struct {
	*BaseCommand

	flagPublicKey string
}

func (c *VerifyCommand) Synopsis() string {
	return "Verify the signature on a transcript"
}

func (c *VerifyCommand) Help() string {
	helpText := `
Usage: aestrace verify [options] [FILE]

  Verifies a signed JSON transcript read from FILE, or from stdin when FILE
  is omitted or "-". With -public-key the transcript must also have been
  signed by that key.

     $ aestrace encrypt -format=json -sign -key=... "hi" | aestrace verify

` + flagHelp(c.Flags())
	return strings.TrimSpace(helpText)
}

func (c *VerifyCommand) Flags() *flag.FlagSet {
	f := newFlagSet("verify")
	f.StringVar(&c.flagPublicKey, "public-key", "", "Expected signer public key (base64url).")
	return f
}

func (c *VerifyCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictFiles("*.json")
}

func (c *VerifyCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{"-public-key": complete.PredictAnything}
}

func (c *VerifyCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return exitUsage
	}

	args = f.Args()
	if len(args) > 1 {
		c.UI.Error(fmt.Sprintf("Too many arguments (expected at most 1, got %d)", len(args)))
		return exitUsage
	}

	data, err := c.readInput(args)
	if err != nil {
		c.UI.Error(err.Error())
		return exitUsage
	}

	doc, err := transcript.Unmarshal(data)
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error reading transcript: %s", err))
		return exitUsage
	}

	if c.flagPublicKey != "" {
		pk, perr := codec.FromBase64URL(c.flagPublicKey)
		if perr != nil {
			c.UI.Error(fmt.Sprintf("Invalid -public-key: %s", perr))
			return exitUsage
		}
		err = transcript.VerifyWithKey(doc, pk)
	} else {
		err = transcript.Verify(doc)
	}
	if err != nil {
		if errors.Is(err, aestrace.ErrSignatureVerificationFailed) {
			c.UI.Error("Signature verification failed")
		} else {
			c.UI.Error(fmt.Sprintf("Error verifying transcript: %s", err))
		}
		return exitFailure
	}

	c.UI.Output(fmt.Sprintf("Signature OK (%s %s, %d steps, ciphertext %s)",
		doc.Suite, doc.Mode, len(doc.Steps), doc.Ciphertext.Hex))
	return exitOK
}

func (c *VerifyCommand) readInput(args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", args[0], err)
		}
		return data, nil
	}
	if c.Stdin == nil {
		return nil, errors.New("no stdin available")
	}
	data, err := io.ReadAll(c.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
