package aestrace

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// runConfig holds configuration for a single Run.
type runConfig struct {
	iv         []byte
	randReader io.Reader
	logger     hclog.Logger
	rcon       []byte
	customRcon bool
}

// Option configures a Run.
type Option func(*runConfig)

func defaultRunConfig() *runConfig {
	return &runConfig{
		logger: hclog.NewNullLogger(),
	}
}

// WithIV sets the IV (CBC) or counter block (CTR). It must be 16 bytes.
// Without it a random block is drawn. ECB ignores it.
func WithIV(iv []byte) Option {
	return func(c *runConfig) {
		c.iv = append([]byte(nil), iv...)
	}
}

// WithRandReader sets the source used to draw a random IV and the run ID.
func WithRandReader(r io.Reader) Option {
	return func(c *runConfig) {
		c.randReader = r
	}
}

// WithLogger sets the logger. Run start and finish are logged at debug
// level and each recorded step at trace level.
func WithLogger(logger hclog.Logger) Option {
	return func(c *runConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRoundConstants replaces the round constant table used by the key
// schedule. Index 0 is a placeholder; the table must reach index 10 for
// AES-128, 8 for AES-192 and 7 for AES-256.
func WithRoundConstants(rcon []byte) Option {
	return func(c *runConfig) {
		c.rcon = append([]byte(nil), rcon...)
		c.customRcon = true
	}
}
