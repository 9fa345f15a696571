// Package preset compiles factory tap presets into fixed-capacity tables.
//
// Authored patterns are lists of [TapEvent] with times in seconds. A
// [Combinator] merges four base patterns under every 4-bit mask, and
// [Serialize] pads the resulting slots into the flat parallel arrays the
// firmware copies its factory bank from.
package preset

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"
)

// VelocityType selects how a tap's velocity shapes its output.
type VelocityType int16

const (
	VelocityAmp VelocityType = iota
	VelocityLowpass
	VelocityBandpass
)

// String returns the short name of the velocity type.
func (v VelocityType) String() string {
	switch v {
	case VelocityAmp:
		return "amp"
	case VelocityLowpass:
		return "lowpass"
	case VelocityBandpass:
		return "bandpass"
	default:
		return fmt.Sprintf("VelocityType(%d)", int16(v))
	}
}

// Valid reports whether v is a known velocity type.
func (v VelocityType) Valid() bool {
	return v >= VelocityAmp && v <= VelocityBandpass
}

var (
	// ErrInvalidTap is returned for taps outside their numeric domain.
	ErrInvalidTap = errors.New("preset: invalid tap")
	// ErrSampleRate is returned when a non-positive sample rate is used.
	ErrSampleRate = errors.New("preset: sample rate must be > 0")
)

// TapEvent is one scheduled delay-line read.
type TapEvent struct {
	Time     float64 // seconds, >= 0
	Velocity float64 // 0..1
	Type     VelocityType
	Pan      float64 // 0 (left) .. 1 (right)
}

// Validate checks the tap against its numeric domain.
func (e TapEvent) Validate() error {
	switch {
	case math.IsNaN(e.Time) || math.IsInf(e.Time, 0) || e.Time < 0:
		return fmt.Errorf("%w: time %v must be finite and >= 0", ErrInvalidTap, e.Time)
	case !inUnit(e.Velocity):
		return fmt.Errorf("%w: velocity %v outside [0,1]", ErrInvalidTap, e.Velocity)
	case !inUnit(e.Pan):
		return fmt.Errorf("%w: pan %v outside [0,1]", ErrInvalidTap, e.Pan)
	case !e.Type.Valid():
		return fmt.Errorf("%w: unknown velocity type %d", ErrInvalidTap, int16(e.Type))
	}
	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// Pattern is an ordered list of taps.
type Pattern []TapEvent

// Validate checks every tap of p.
func (p Pattern) Validate() error {
	for i, e := range p {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("tap %d: %w", i, err)
		}
	}
	return nil
}

// SortedByTime returns a copy of p in ascending time order. Taps with equal
// times keep their authored order.
func (p Pattern) SortedByTime() Pattern {
	out := append(Pattern(nil), p...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}

// Slot converts p into an unpadded slot with times in samples.
func (p Pattern) Slot(sampleRate int) (Slot, error) {
	if sampleRate <= 0 {
		return Slot{}, fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}

	seconds := make([]float64, len(p))
	s := Slot{
		Size:       len(p),
		Times:      make([]float64, len(p)),
		Velocities: make([]float64, len(p)),
		Pans:       make([]float64, len(p)),
		Types:      make([]VelocityType, len(p)),
	}
	for i, e := range p {
		seconds[i] = e.Time
		s.Velocities[i] = e.Velocity
		s.Pans[i] = e.Pan
		s.Types[i] = e.Type
	}
	vecmath.ScaleBlock(s.Times, seconds, float64(sampleRate))
	return s, nil
}
