package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-secure-stdlib/parseutil"
	"github.com/joho/godotenv"

	aestrace "github.com/aestrace/aestrace-go"
	"github.com/aestrace/aestrace-go/internal/codec"
	"github.com/aestrace/aestrace-go/internal/transcript"
)

// Environment variables read at startup. Flags override them.
const (
	EnvMode        = "AESTRACE_MODE"
	EnvPadding     = "AESTRACE_PADDING"
	EnvKeyLength   = "AESTRACE_KEY_LENGTH"
	EnvKeyEncoding = "AESTRACE_KEY_ENCODING"
	EnvLogLevel    = "AESTRACE_LOG_LEVEL"
	EnvSigningSeed = "AESTRACE_SIGNING_SEED"
	EnvColor       = "AESTRACE_COLOR"
)

var envKeys = []string{
	EnvMode,
	EnvPadding,
	EnvKeyLength,
	EnvKeyEncoding,
	EnvLogLevel,
	EnvSigningSeed,
	EnvColor,
}

// Settings are the defaults every command starts from.
type Settings struct {
	Mode        aestrace.Mode
	Padding     aestrace.Padding
	KeyLength   aestrace.KeyLength
	KeyEncoding aestrace.KeyEncoding
	LogLevel    hclog.Level
	SigningSeed []byte
	Color       bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		Mode:        aestrace.ECB,
		Padding:     aestrace.PKCS7,
		KeyLength:   aestrace.AES128,
		KeyEncoding: aestrace.KeyAuto,
		LogLevel:    hclog.Warn,
	}
}

// loadEnvironment collects the known variables from envFile (when it exists)
// and getenv. Values from getenv win.
func loadEnvironment(envFile string, getenv func(string) string) (map[string]string, error) {
	env := make(map[string]string)
	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			for _, k := range envKeys {
				if v, ok := fileEnv[k]; ok {
					env[k] = v
				}
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	if getenv != nil {
		for _, k := range envKeys {
			if v := getenv(k); v != "" {
				env[k] = v
			}
		}
	}
	return env, nil
}

// ParseSettings applies env on top of the defaults. Every invalid value is
// reported, not just the first.
func ParseSettings(env map[string]string) (*Settings, error) {
	s := DefaultSettings()
	var result *multierror.Error

	if v := strings.TrimSpace(env[EnvMode]); v != "" {
		m, err := aestrace.ParseMode(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", EnvMode, err))
		}
		s.Mode = m
	}
	if v := strings.TrimSpace(env[EnvPadding]); v != "" {
		p, err := aestrace.ParsePadding(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", EnvPadding, err))
		}
		s.Padding = p
	}
	if v := strings.TrimSpace(env[EnvKeyLength]); v != "" {
		kl, err := aestrace.ParseKeyLength(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", EnvKeyLength, err))
		}
		s.KeyLength = kl
	}
	if v := strings.TrimSpace(env[EnvKeyEncoding]); v != "" {
		enc, err := aestrace.ParseKeyEncoding(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", EnvKeyEncoding, err))
		}
		s.KeyEncoding = enc
	}
	if v := strings.TrimSpace(env[EnvLogLevel]); v != "" {
		level := hclog.LevelFromString(v)
		if level == hclog.NoLevel {
			result = multierror.Append(result, fmt.Errorf("%s: unknown log level %q", EnvLogLevel, v))
		} else {
			s.LogLevel = level
		}
	}
	if v := strings.TrimSpace(env[EnvSigningSeed]); v != "" {
		seed, err := codec.FromHex(v)
		switch {
		case err != nil:
			result = multierror.Append(result, fmt.Errorf("%s: %w", EnvSigningSeed, err))
		case len(seed) != transcript.SeedSize:
			result = multierror.Append(result, fmt.Errorf("%s: seed is %d bytes, want %d", EnvSigningSeed, len(seed), transcript.SeedSize))
		default:
			s.SigningSeed = seed
		}
	}
	if v := strings.TrimSpace(env[EnvColor]); v != "" {
		on, err := parseutil.ParseBool(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", EnvColor, err))
		}
		s.Color = on
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}
