package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/cli"
	"github.com/hashicorp/go-hclog"
	"github.com/posener/complete"

	aestrace "github.com/aestrace/aestrace-go"
	"github.com/aestrace/aestrace-go/internal/codec"
	"github.com/aestrace/aestrace-go/internal/keyinput"
)

// Exit codes shared by all commands.
const (
	exitOK      = 0
	exitUsage   = 1
	exitFailure = 2
)

// BaseCommand carries what every command needs.
type BaseCommand struct {
	UI       cli.Ui
	Logger   hclog.Logger
	Settings *Settings
	Stdin    io.Reader

	// randReader feeds IV and key generation; nil means crypto/rand.
	randReader io.Reader
}

func (c *BaseCommand) settings() *Settings {
	if c.Settings == nil {
		return DefaultSettings()
	}
	return c.Settings
}

func (c *BaseCommand) logger() hclog.Logger {
	if c.Logger == nil {
		return hclog.NewNullLogger()
	}
	return c.Logger
}

func newFlagSet(name string) *flag.FlagSet {
	f := flag.NewFlagSet(name, flag.ContinueOnError)
	f.SetOutput(io.Discard)
	return f
}

func flagHelp(f *flag.FlagSet) string {
	var buf bytes.Buffer
	f.SetOutput(&buf)
	f.PrintDefaults()
	f.SetOutput(io.Discard)
	return "Options:\n\n" + buf.String()
}

var (
	predictModes     = complete.PredictSet("ECB", "CBC", "CTR")
	predictPaddings  = complete.PredictSet("PKCS7", "ANSIX923", "None")
	predictLengths   = complete.PredictSet("128", "192", "256")
	predictEncodings = complete.PredictSet("auto", "hex", "text")
)

// keyFlags selects the key: parsed from -key, or derived from -passphrase.
type keyFlags struct {
	key        string
	encoding   string
	keyLength  string
	passphrase string
	salt       string
}

func (k *keyFlags) register(f *flag.FlagSet) {
	f.StringVar(&k.key, "key", "", "The key, as hex or text (see -key-encoding). Short keys are zero-padded.")
	f.StringVar(&k.encoding, "key-encoding", "", "How to read -key: auto, hex or text.")
	f.StringVar(&k.keyLength, "key-length", "", "Key length in bits: 128, 192 or 256.")
	f.StringVar(&k.passphrase, "passphrase", "", "Derive the key from this passphrase with HKDF-SHA-512 instead of -key.")
	f.StringVar(&k.salt, "salt", "", "Salt for -passphrase.")
}

func (k *keyFlags) completions() complete.Flags {
	return complete.Flags{
		"-key":          complete.PredictAnything,
		"-key-encoding": predictEncodings,
		"-key-length":   predictLengths,
		"-passphrase":   complete.PredictAnything,
		"-salt":         complete.PredictAnything,
	}
}

func (k *keyFlags) length(s *Settings) (aestrace.KeyLength, error) {
	if k.keyLength == "" {
		return s.KeyLength, nil
	}
	return aestrace.ParseKeyLength(k.keyLength)
}

func (k *keyFlags) resolve(s *Settings) ([]byte, aestrace.KeyLength, error) {
	kl, err := k.length(s)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case k.key != "" && k.passphrase != "":
		return nil, 0, errors.New("-key and -passphrase are mutually exclusive")
	case k.passphrase != "":
		key, err := keyinput.Derive([]byte(k.passphrase), []byte(k.salt), kl)
		return key, kl, err
	case k.key == "":
		return nil, 0, errors.New("a key is required: use -key or -passphrase")
	}

	enc := s.KeyEncoding
	if k.encoding != "" {
		if enc, err = aestrace.ParseKeyEncoding(k.encoding); err != nil {
			return nil, 0, err
		}
	}
	key, err := aestrace.ParseKey(k.key, enc, kl)
	return key, kl, err
}

// cipherFlags selects mode, padding and IV.
type cipherFlags struct {
	mode    string
	padding string
	iv      string
}

func (c *cipherFlags) register(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", "", "Mode of operation: ECB, CBC or CTR.")
	f.StringVar(&c.padding, "padding", "", "Padding scheme: PKCS7, ANSIX923 or None.")
	f.StringVar(&c.iv, "iv", "", "IV or counter block as 32 hex digits. Random when omitted.")
}

func (c *cipherFlags) completions() complete.Flags {
	return complete.Flags{
		"-mode":    predictModes,
		"-padding": predictPaddings,
		"-iv":      complete.PredictAnything,
	}
}

func (c *cipherFlags) resolve(s *Settings) (aestrace.Mode, aestrace.Padding, []byte, error) {
	mode, pad := s.Mode, s.Padding
	var err error
	if c.mode != "" {
		if mode, err = aestrace.ParseMode(c.mode); err != nil {
			return 0, 0, nil, err
		}
	}
	if c.padding != "" {
		if pad, err = aestrace.ParsePadding(c.padding); err != nil {
			return 0, 0, nil, err
		}
	}

	var iv []byte
	if c.iv != "" {
		if iv, err = codec.FromHex(c.iv); err != nil {
			return 0, 0, nil, fmt.Errorf("%w: %v", aestrace.ErrInvalidIVSize, err)
		}
	}
	return mode, pad, iv, nil
}

func mergeFlags(sets ...complete.Flags) complete.Flags {
	out := complete.Flags{}
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// plaintextArg reads the single plaintext argument; "-" reads stdin.
func (c *BaseCommand) plaintextArg(args []string) ([]byte, error) {
	switch {
	case len(args) < 1:
		return nil, errors.New("Not enough arguments (expected 1, got 0)")
	case len(args) > 1:
		return nil, fmt.Errorf("Too many arguments (expected 1, got %d)", len(args))
	}
	if args[0] != "-" {
		return []byte(args[0]), nil
	}
	if c.Stdin == nil {
		return nil, errors.New("no stdin available")
	}
	data, err := io.ReadAll(c.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return []byte(strings.TrimRight(string(data), "\r\n")), nil
}
