package preset

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrSlotOverflow is returned when a slot holds more taps than fit.
	ErrSlotOverflow = errors.New("preset: slot exceeds tap capacity")
	// ErrShapeMismatch is returned when a slot's field sequences disagree on length.
	ErrShapeMismatch = errors.New("preset: slot field lengths disagree")
)

// Slot is one preset: Size real taps stored in parallel field sequences.
// Unpadded slots have fields of length Size; padded slots have fields of the
// bank capacity with zero entries past Size.
type Slot struct {
	Size       int
	Times      []float64 // samples
	Velocities []float64
	Pans       []float64
	Types      []VelocityType
}

// EmptySlot returns a padded slot of the given capacity with no taps.
func EmptySlot(capacity int) Slot {
	return Slot{
		Times:      make([]float64, capacity),
		Velocities: make([]float64, capacity),
		Pans:       make([]float64, capacity),
		Types:      make([]VelocityType, capacity),
	}
}

// Validate checks that s is an unpadded slot with consistent fields.
func (s Slot) Validate() error {
	if s.Size < 0 {
		return fmt.Errorf("%w: negative size %d", ErrShapeMismatch, s.Size)
	}
	lens := [...]int{len(s.Times), len(s.Velocities), len(s.Pans), len(s.Types)}
	names := [...]string{"times", "velocities", "pans", "types"}
	for i, n := range lens {
		if n != s.Size {
			return fmt.Errorf("%w: %s has %d entries, size is %d", ErrShapeMismatch, names[i], n, s.Size)
		}
	}
	return nil
}

// Pad returns a copy of s with every field padded with zeros to capacity.
// A slot that does not fit is an error; taps are never dropped.
func (s Slot) Pad(capacity int) (Slot, error) {
	if err := s.Validate(); err != nil {
		return Slot{}, err
	}
	if s.Size > capacity {
		return Slot{}, fmt.Errorf("%w: %d taps, capacity %d", ErrSlotOverflow, s.Size, capacity)
	}

	out := EmptySlot(capacity)
	out.Size = s.Size
	copy(out.Times, s.Times)
	copy(out.Velocities, s.Velocities)
	copy(out.Pans, s.Pans)
	copy(out.Types, s.Types)
	return out, nil
}

// Taps returns the real taps of s. Times are in samples.
func (s Slot) Taps() []TapEvent {
	n := min(s.Size, len(s.Times), len(s.Velocities), len(s.Pans), len(s.Types))
	out := make([]TapEvent, max(n, 0))
	for i := range out {
		out[i] = TapEvent{
			Time:     s.Times[i],
			Velocity: s.Velocities[i],
			Type:     s.Types[i],
			Pan:      s.Pans[i],
		}
	}
	return out
}

// Sanitize applies the guard the firmware runs when loading a slot: size is
// clamped to capacity, velocity and pan to [0,1], time to [0, maxTime] and the
// velocity type to the known range. NaN fields take the lower bound. The
// returned slot is unpadded.
func Sanitize(s Slot, capacity int, maxTime float64) Slot {
	taps := s.Taps()
	if len(taps) > capacity {
		taps = taps[:max(capacity, 0)]
	}
	out := Slot{
		Size:       len(taps),
		Times:      make([]float64, len(taps)),
		Velocities: make([]float64, len(taps)),
		Pans:       make([]float64, len(taps)),
		Types:      make([]VelocityType, len(taps)),
	}
	for i, e := range taps {
		out.Times[i] = clampFloat(e.Time, 0, maxTime)
		out.Velocities[i] = clampFloat(e.Velocity, 0, 1)
		out.Pans[i] = clampFloat(e.Pan, 0, 1)
		out.Types[i] = min(max(e.Type, VelocityAmp), VelocityBandpass)
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
