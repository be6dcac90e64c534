package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"

	aestrace "github.com/aestrace/aestrace-go"
)

func TestParseSettings(t *testing.T) {
	cases := []struct {
		name     string
		env      map[string]string
		expected *Settings
	}{
		{
			"defaults",
			nil,
			DefaultSettings(),
		},
		{
			"all_set",
			map[string]string{
				EnvMode:        "ctr",
				EnvPadding:     "ansi-x923",
				EnvKeyLength:   "AES-256",
				EnvKeyEncoding: "hex",
				EnvLogLevel:    "trace",
				EnvSigningSeed: testSeed,
				EnvColor:       "true",
			},
			&Settings{
				Mode:        aestrace.CTR,
				Padding:     aestrace.ANSIX923,
				KeyLength:   aestrace.AES256,
				KeyEncoding: aestrace.KeyHex,
				LogLevel:    hclog.Trace,
				SigningSeed: bytes.Repeat([]byte{0xab}, 32),
				Color:       true,
			},
		},
		{
			"whitespace_ignored",
			map[string]string{EnvMode: "  ", EnvPadding: " none "},
			&Settings{
				Mode:        aestrace.ECB,
				Padding:     aestrace.NoPadding,
				KeyLength:   aestrace.AES128,
				KeyEncoding: aestrace.KeyAuto,
				LogLevel:    hclog.Warn,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSettings(tc.env)
			require.NoError(t, err)
			if diff := deep.Equal(got, tc.expected); diff != nil {
				t.Fatal(diff)
			}
		})
	}
}

func TestParseSettings_CollectsAllErrors(t *testing.T) {
	_, err := ParseSettings(map[string]string{
		EnvMode:        "OFB",
		EnvPadding:     "zero",
		EnvKeyLength:   "512",
		EnvKeyEncoding: "base32",
		EnvLogLevel:    "loud",
		EnvSigningSeed: "abcd",
		EnvColor:       "maybe",
	})
	require.Error(t, err)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "got %T", err)
	require.Len(t, merr.Errors, 7)
	require.ErrorIs(t, err, aestrace.ErrUnknownMode)
	require.ErrorIs(t, err, aestrace.ErrUnknownPadding)
	require.ErrorIs(t, err, aestrace.ErrUnknownKeyLength)
	require.ErrorIs(t, err, aestrace.ErrInvalidKeyEncoding)
}

func TestLoadEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("AESTRACE_MODE=CBC\nAESTRACE_PADDING=None\nUNRELATED=1\n"), 0o600))

	getenv := func(k string) string {
		if k == EnvMode {
			return "CTR"
		}
		return ""
	}

	env, err := loadEnvironment(path, getenv)
	require.NoError(t, err)
	if diff := deep.Equal(env, map[string]string{EnvMode: "CTR", EnvPadding: "None"}); diff != nil {
		t.Fatal(diff)
	}

	env, err = loadEnvironment(filepath.Join(dir, "missing.env"), nil)
	require.NoError(t, err)
	require.Empty(t, env)

	_, err = loadEnvironment(dir, nil)
	require.Error(t, err, "a directory is not a readable env file")
}
