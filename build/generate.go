package build

import (
	"fmt"

	"github.com/cwbudde/algo-lut/lut"
	"github.com/cwbudde/algo-lut/preset"
	"github.com/cwbudde/algo-lut/wave"
)

// Waveform table names.
const (
	TableSine         = "sin"
	TableRaisedCosine = "raised_cos"
	TableXfadeIn      = "xfade_in"
	TableXfadeOut     = "xfade_out"
)

// Generate runs a full pass with the default config modified by opts.
func Generate(opts ...Option) (*lut.Registry, error) {
	return Run(ApplyOptions(opts...))
}

// Run validates cfg and produces every table. Either all tables are returned
// or none are.
func Run(cfg Config) (*lut.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	waves, err := Waveforms(cfg)
	if err != nil {
		return nil, fmt.Errorf("waveforms: %w", err)
	}
	presets, err := Presets(cfg)
	if err != nil {
		return nil, fmt.Errorf("presets: %w", err)
	}

	reg := lut.NewRegistry()
	if err := reg.Merge(waves); err != nil {
		return nil, err
	}
	if err := reg.Merge(presets); err != nil {
		return nil, err
	}
	return reg, nil
}

// Waveforms returns the sine, raised-cosine and crossfade tables.
func Waveforms(cfg Config) (*lut.Registry, error) {
	sine, err := wave.Sine(cfg.WaveformSize)
	if err != nil {
		return nil, err
	}
	rc, err := wave.RaisedCosine(cfg.WaveformSize)
	if err != nil {
		return nil, err
	}
	in, out, err := wave.Crossfade(cfg.CrossfadeSize, wave.WithScale(cfg.CrossfadeScale))
	if err != nil {
		return nil, err
	}

	reg := lut.NewRegistry()
	for _, t := range []lut.Table{
		{Name: TableSine, Values: sine},
		{Name: TableRaisedCosine, Values: rc},
		{Name: TableXfadeIn, Values: in},
		{Name: TableXfadeOut, Values: out},
	} {
		if err := reg.AddFloat(t.Name, t.Values); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Presets seeds the factory slots for cfg.Mode and serializes the bank.
func Presets(cfg Config) (*lut.Registry, error) {
	slots, err := seedSlots(cfg)
	if err != nil {
		return nil, err
	}
	return preset.Serialize(slots)
}

func seedSlots(cfg Config) ([]preset.Slot, error) {
	switch cfg.Mode {
	case ModeCombinatorial:
		c := preset.Combinator{SampleRate: cfg.SampleRate, Order: cfg.Order}
		return c.Combine(cfg.BasePatterns)
	case ModeBouncing:
		s, err := preset.BouncingSlot(cfg.Bouncing, cfg.SampleRate)
		if err != nil {
			return nil, err
		}
		return []preset.Slot{s}, nil
	default:
		return nil, fmt.Errorf("unknown preset mode %d", int(cfg.Mode))
	}
}
