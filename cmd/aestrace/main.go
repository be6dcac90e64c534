// Command aestrace encrypts a single AES block and prints every step.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/cli"
	"github.com/hashicorp/go-hclog"
)

// version is overridden at build time with -ldflags.
var version = "dev"

// exitFunc is the function called to exit the program.
// It can be overridden in tests.
var exitFunc = os.Exit

// Config holds the I/O and environment for the CLI.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Getenv looks up environment variables; nil disables the lookup.
	Getenv func(string) string
	// EnvFile is an optional .env file read before Getenv.
	EnvFile string
}

// DefaultConfig returns the default configuration using standard streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		EnvFile: ".env",
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exitFunc(1)
}

// run builds the command set and dispatches args[1:]. It returns the exit
// status of the command.
func run(args []string, cfg *Config) (int, error) {
	if cfg.Stdout == nil {
		cfg.Stdout = io.Discard
	}
	if cfg.Stderr == nil {
		cfg.Stderr = io.Discard
	}

	env, err := loadEnvironment(cfg.EnvFile, cfg.Getenv)
	if err != nil {
		return 1, err
	}
	settings, err := ParseSettings(env)
	if err != nil {
		return 1, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "aestrace",
		Level:  settings.LogLevel,
		Output: cfg.Stderr,
	})

	ui := &cli.BasicUi{
		Reader:      cfg.Stdin,
		Writer:      cfg.Stdout,
		ErrorWriter: cfg.Stderr,
	}
	base := &BaseCommand{
		UI:       ui,
		Logger:   logger,
		Settings: settings,
		Stdin:    cfg.Stdin,
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	c := cli.NewCLI("aestrace", version)
	c.Args = cmdArgs
	c.Commands = commands(base)
	c.HelpWriter = cfg.Stdout
	c.ErrorWriter = cfg.Stderr
	c.Autocomplete = true

	return c.Run()
}

func commands(base *BaseCommand) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"encrypt": func() (cli.Command, error) {
			return &EncryptCommand{BaseCommand: base}, nil
		},
		"expand-key": func() (cli.Command, error) {
			return &ExpandKeyCommand{BaseCommand: base}, nil
		},
		"check": func() (cli.Command, error) {
			return &CheckCommand{BaseCommand: base}, nil
		},
		"keygen": func() (cli.Command, error) {
			return &KeygenCommand{BaseCommand: base}, nil
		},
		"verify": func() (cli.Command, error) {
			return &VerifyCommand{BaseCommand: base}, nil
		},
	}
}
