// Package build runs one complete table generation pass.
package build

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-lut/preset"
	"github.com/cwbudde/algo-lut/wave"
)

// ErrSampleRate is returned for a missing or invalid sample rate.
var ErrSampleRate = errors.New("build: sample rate must be a positive integer")

// Mode selects how the factory preset slots are seeded.
type Mode int

const (
	// ModeCombinatorial fills one slot per base-pattern mask.
	ModeCombinatorial Mode = iota
	// ModeBouncing fills a single "long bouncings" slot.
	ModeBouncing
)

// String returns the flag spelling of m.
func (m Mode) String() string {
	switch m {
	case ModeCombinatorial:
		return "combinatorial"
	case ModeBouncing:
		return "bouncing"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the flag spelling of a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "combinatorial":
		return ModeCombinatorial, nil
	case "bouncing":
		return ModeBouncing, nil
	default:
		return 0, fmt.Errorf("unknown preset mode %q (want combinatorial or bouncing)", s)
	}
}

// Config holds every input of a generation pass.
type Config struct {
	SampleRate     int
	WaveformSize   int
	CrossfadeSize  int
	CrossfadeScale float64
	Order          preset.TapOrder
	Mode           Mode
	Bouncing       preset.BouncingConfig
	BasePatterns   [preset.NumBasePatterns]preset.Pattern
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the reference configuration. SampleRate is left
// unset; it must come from the build target.
func DefaultConfig() Config {
	return Config{
		WaveformSize:   1024,
		CrossfadeSize:  17,
		CrossfadeScale: 1,
		Order:          preset.OrderAuthored,
		Mode:           ModeCombinatorial,
		Bouncing:       preset.DefaultBouncingConfig(),
		BasePatterns:   preset.DefaultBasePatterns(),
	}
}

// WithSampleRate sets the target sample rate in Hz.
func WithSampleRate(sampleRate int) Option {
	return func(cfg *Config) {
		cfg.SampleRate = sampleRate
	}
}

// WithWaveformSize sets the sine and raised-cosine resolution.
func WithWaveformSize(size int) Option {
	return func(cfg *Config) {
		cfg.WaveformSize = size
	}
}

// WithCrossfade sets the crossfade table length and gain.
func WithCrossfade(size int, scale float64) Option {
	return func(cfg *Config) {
		cfg.CrossfadeSize = size
		cfg.CrossfadeScale = scale
	}
}

// WithEqualPowerCrossfade scales the crossfade curves by [wave.EqualPowerScale].
func WithEqualPowerCrossfade() Option {
	return func(cfg *Config) {
		cfg.CrossfadeScale = wave.EqualPowerScale
	}
}

// WithOrder sets the tap order of combined presets.
func WithOrder(order preset.TapOrder) Option {
	return func(cfg *Config) {
		cfg.Order = order
	}
}

// WithMode sets the preset seeding mode.
func WithMode(mode Mode) Option {
	return func(cfg *Config) {
		cfg.Mode = mode
	}
}

// WithBasePatterns replaces the authored base patterns.
func WithBasePatterns(bases [preset.NumBasePatterns]preset.Pattern) Option {
	return func(cfg *Config) {
		cfg.BasePatterns = bases
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate checks the configuration before any table is produced.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrSampleRate, c.SampleRate)
	}
	if c.WaveformSize <= 0 {
		return fmt.Errorf("waveform size must be > 0: %d", c.WaveformSize)
	}
	if c.CrossfadeSize < 2 {
		return fmt.Errorf("crossfade size must be >= 2: %d", c.CrossfadeSize)
	}
	if c.Order != preset.OrderAuthored && c.Order != preset.OrderByTime {
		return fmt.Errorf("unknown tap order %d", int(c.Order))
	}
	if c.Mode != ModeCombinatorial && c.Mode != ModeBouncing {
		return fmt.Errorf("unknown preset mode %d", int(c.Mode))
	}
	return nil
}

// ParseSampleRate parses a sample rate as handed over by the build
// environment. Empty, non-integer and non-positive values are rejected.
func ParseSampleRate(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: not set", ErrSampleRate)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrSampleRate, s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrSampleRate, v)
	}
	return v, nil
}
