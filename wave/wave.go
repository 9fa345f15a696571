// Package wave samples closed-form curves into lookup tables.
//
// Every sample is evaluated directly from its index; no generator keeps
// running state between samples, so each table is a pure function of its
// size and options.
package wave

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// EqualPowerScale is the -3 dB gain applied to crossfade curves by targets
// whose mixer does not normalize the summed pair.
var EqualPowerScale = math.Pow(2, -0.5)

const (
	defaultOverGain   = 1.04
	defaultOverOffset = -0.02
)

// SineLen returns the length of a sine table requested with size.
func SineLen(size int) int {
	return size + size/4 + 1
}

// Sine returns one period of sin(θ) sampled at size points per period, plus
// a quarter period and one guard sample of overlap for interpolating readers.
// The table can be read as a cosine by offsetting the index by size/4.
func Sine(size int) ([]float64, error) {
	if err := validateSize("sine", size); err != nil {
		return nil, err
	}

	out := make([]float64, SineLen(size))
	step := 2 * math.Pi / float64(size)
	for i := range out {
		out[i] = math.Sin(step * float64(i))
	}
	return out, nil
}

// RaisedCosine returns 1 - (cos(πt)+1)/2 for t on [0,1] sampled at size+1
// points. The result rises monotonically from exactly 0 to exactly 1.
func RaisedCosine(size int) ([]float64, error) {
	if err := validateSize("raised cosine", size); err != nil {
		return nil, err
	}

	out := make([]float64, size+1)
	for i := range out {
		t := float64(i) / float64(size)
		out[i] = 1 - (math.Cos(math.Pi*t)+1)/2
	}
	return out, nil
}

// Option configures crossfade generation.
type Option func(*config)

type config struct {
	scale      float64
	overGain   float64
	overOffset float64
}

func defaultConfig() config {
	return config{
		scale:      1,
		overGain:   defaultOverGain,
		overOffset: defaultOverOffset,
	}
}

// WithScale multiplies both crossfade curves by a uniform gain, for example
// [EqualPowerScale].
func WithScale(scale float64) Option {
	return func(c *config) {
		c.scale = scale
	}
}

// WithOverextension sets the linear remap t' = gain*t + offset applied before
// clamping. The remap must reach past both ends of [0,1] so that the clamped
// endpoints land exactly on 0 and 1.
func WithOverextension(gain, offset float64) Option {
	return func(c *config) {
		c.overGain = gain
		c.overOffset = offset
	}
}

// Crossfade returns a complementary equal-power curve pair of length size.
// Before scaling, in rises from exactly 0 to exactly 1, out falls from exactly
// 1 to exactly 0, and in[i]^2 + out[i]^2 == 1 within rounding.
func Crossfade(size int, opts ...Option) (in, out []float64, err error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := validateCrossfade(size, cfg); err != nil {
		return nil, nil, err
	}

	in = make([]float64, size)
	out = make([]float64, size)
	for i := range in {
		t := float64(i) / float64(size-1)
		t = clamp(cfg.overGain*t+cfg.overOffset, 0, 1)
		in[i] = math.Sin(t * math.Pi / 2)
		// Evaluated on the mirrored parameter so that out[last] is exactly 0;
		// cos(π/2) is not representable as zero.
		out[i] = math.Sin((1 - t) * math.Pi / 2)
	}

	if cfg.scale != 1 {
		scaledIn := make([]float64, size)
		scaledOut := make([]float64, size)
		vecmath.ScaleBlock(scaledIn, in, cfg.scale)
		vecmath.ScaleBlock(scaledOut, out, cfg.scale)
		in, out = scaledIn, scaledOut
	}
	return in, out, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
