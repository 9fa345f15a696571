// Command lutgen runs the lookup table generation pass for a firmware build
// and prints a summary of every produced table.
//
// Usage:
//
//	lutgen [flags]
//
// The sample rate is taken from -rate, or else from SAMPLE_RATE in the
// environment. A .env file is loaded first if present.
//
// Examples:
//
//	SAMPLE_RATE=48000 lutgen
//	lutgen -rate 32000 -xfade-scale equal-power
//	lutgen -rate 48000 -order time -analyze
//	lutgen -rate 48000 -mode bouncing
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/cwbudde/algo-lut/build"
	"github.com/cwbudde/algo-lut/lut"
	"github.com/cwbudde/algo-lut/measure/purity"
	"github.com/cwbudde/algo-lut/preset"
	"github.com/cwbudde/algo-lut/wave"
)

const sampleRateEnv = "SAMPLE_RATE"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet("lutgen", flag.ContinueOnError)
	fset.SetOutput(stderr)
	rate := fset.Int("rate", 0, "target sample rate in Hz (default $"+sampleRateEnv+")")
	size := fset.Int("size", 1024, "sine and raised-cosine resolution")
	xfadeSize := fset.Int("xfade-size", 17, "crossfade table length")
	xfadeScale := fset.String("xfade-scale", "1", "crossfade gain: a number or \"equal-power\"")
	order := fset.String("order", preset.OrderAuthored.String(), "combined tap order: authored or time")
	mode := fset.String("mode", build.ModeCombinatorial.String(), "preset seeding: combinatorial or bouncing")
	envFile := fset.String("env", ".env", "environment file loaded before reading "+sampleRateEnv)
	analyze := fset.Bool("analyze", false, "check waveform tables against their ideal forms")
	fset.Usage = func() {
		fmt.Fprintf(stderr, "Usage: lutgen [flags]\n\n")
		fmt.Fprintf(stderr, "Generates firmware lookup tables and prints their shapes.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fset.PrintDefaults()
	}
	if err := fset.Parse(args); err != nil {
		return 2
	}

	rateSet := false
	fset.Visit(func(f *flag.Flag) {
		if f.Name == "rate" {
			rateSet = true
		}
	})

	cfg, err := configure(*rate, rateSet, *size, *xfadeSize, *xfadeScale, *order, *mode, *envFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	reg, err := build.Run(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "error: generation failed: %v\n", err)
		return 1
	}

	if err := printSummary(stdout, reg); err != nil {
		fmt.Fprintf(stderr, "error: failed to write summary: %v\n", err)
		return 1
	}
	if *analyze {
		if err := printAnalysis(stdout, reg, cfg); err != nil {
			fmt.Fprintf(stderr, "error: analysis failed: %v\n", err)
			return 1
		}
	}
	return 0
}

func configure(rate int, rateSet bool, size, xfadeSize int, xfadeScale, order, mode, envFile string) (build.Config, error) {
	if rateSet {
		if rate <= 0 {
			return build.Config{}, fmt.Errorf("-rate: %w: %d", build.ErrSampleRate, rate)
		}
	} else {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return build.Config{}, fmt.Errorf("loading %s: %w", envFile, err)
			}
		}
		r, err := build.ParseSampleRate(os.Getenv(sampleRateEnv))
		if err != nil {
			return build.Config{}, fmt.Errorf("%s: %w", sampleRateEnv, err)
		}
		rate = r
	}

	scale := wave.EqualPowerScale
	if xfadeScale != "equal-power" {
		v, err := strconv.ParseFloat(xfadeScale, 64)
		if err != nil {
			return build.Config{}, fmt.Errorf("invalid -xfade-scale %q", xfadeScale)
		}
		scale = v
	}
	o, err := preset.ParseTapOrder(order)
	if err != nil {
		return build.Config{}, err
	}
	m, err := build.ParseMode(mode)
	if err != nil {
		return build.Config{}, err
	}

	return build.ApplyOptions(
		build.WithSampleRate(rate),
		build.WithWaveformSize(size),
		build.WithCrossfade(xfadeSize, scale),
		build.WithOrder(o),
		build.WithMode(m),
	), nil
}

func printSummary(w io.Writer, reg *lut.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Table\tRegistry\tLength\tMin\tMax\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-----\t--------\t------\t---\t---\n"); err != nil {
		return err
	}
	for _, t := range reg.FloatTables() {
		lo, hi := bounds(t.Values)
		if _, err := fmt.Fprintf(tw, "%s\tfloat\t%d\t%.6g\t%.6g\n", t.Name, len(t.Values), lo, hi); err != nil {
			return err
		}
	}
	for _, t := range reg.IntTables() {
		lo, hi := bounds(t.Values)
		if _, err := fmt.Fprintf(tw, "%s\tint16\t%d\t%d\t%d\n", t.Name, len(t.Values), lo, hi); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printAnalysis(w io.Writer, reg *lut.Registry, cfg build.Config) error {
	sine, _ := reg.Float(build.TableSine)
	res, err := purity.AnalyzeSine(sine, cfg.WaveformSize)
	if err != nil {
		return err
	}
	in, _ := reg.Float(build.TableXfadeIn)
	out, _ := reg.Float(build.TableXfadeOut)
	dev, err := purity.CrossfadeDeviation(in, out, cfg.CrossfadeScale)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nsine: fundamental %.3f dB, worst spur %.1f dB (bin %d)\n",
		res.FundamentalDB, res.WorstSpurDB, res.WorstSpurBin); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "crossfade: max equal-power deviation %.3g\n", dev)
	return err
}

func bounds[T float64 | int16](v []T) (lo, hi T) {
	if len(v) == 0 {
		return lo, hi
	}
	return slices.Min(v), slices.Max(v)
}
