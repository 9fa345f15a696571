// Package purity checks generated waveform tables against their ideal forms.
package purity

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

var (
	errShortTable       = errors.New("purity: table shorter than one period")
	errMismatchedLength = errors.New("purity: crossfade curves must have same length")
)

// SineResult describes the spectrum of one sine table period.
type SineResult struct {
	Period        int
	FundamentalDB float64 // level of bin 1, dB relative to a full-scale sine
	WorstSpurDB   float64 // strongest other bin, dB relative to the fundamental
	WorstSpurBin  int
}

// AnalyzeSine transforms the first period samples of table and reports how
// far energy leaks out of the fundamental bin. period must be a size the FFT
// backend accepts.
func AnalyzeSine(table []float64, period int) (SineResult, error) {
	if period < 4 || len(table) < period {
		return SineResult{}, fmt.Errorf("%w: %d samples, period %d", errShortTable, len(table), period)
	}

	plan, err := algofft.NewPlan64(period)
	if err != nil {
		return SineResult{}, fmt.Errorf("purity: failed to create FFT plan: %w", err)
	}
	in := make([]complex128, period)
	for i := range in {
		in[i] = complex(table[i], 0)
	}
	spec := make([]complex128, period)
	if err := plan.Forward(spec, in); err != nil {
		return SineResult{}, fmt.Errorf("purity: forward FFT: %w", err)
	}

	bins := period/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(spec[i])
		im[i] = imag(spec[i])
	}
	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	// A full-scale sine puts (period/2)^2 into bin 1.
	ref := float64(period) * float64(period) / 4
	res := SineResult{
		Period:        period,
		FundamentalDB: powerDB(power[1] / ref),
		WorstSpurDB:   math.Inf(-1),
	}
	for k, p := range power {
		if k == 1 {
			continue
		}
		if db := powerDB(p / power[1]); db > res.WorstSpurDB {
			res.WorstSpurDB = db
			res.WorstSpurBin = k
		}
	}
	return res, nil
}

// CrossfadeDeviation returns the largest deviation of in[i]^2 + out[i]^2 from
// scale^2 over the curve pair.
func CrossfadeDeviation(in, out []float64, scale float64) (float64, error) {
	if len(in) != len(out) {
		return 0, errMismatchedLength
	}
	if len(in) == 0 {
		return 0, nil
	}

	sum := make([]float64, len(in))
	vecmath.Power(sum, in, out)

	want := scale * scale
	maxDev := 0.0
	for _, v := range sum {
		maxDev = math.Max(maxDev, math.Abs(v-want))
	}
	return maxDev, nil
}

func powerDB(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(p)
}
