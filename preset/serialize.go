package preset

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-lut/lut"
)

// Factory bank geometry.
const (
	MaxTaps  = 32
	BankSize = 6 * 4 // 6 buttons, 4 banks
)

// Table names of the serialized bank.
const (
	TableTimes      = "preset_times"
	TableVelocities = "preset_velos"
	TablePans       = "preset_pans"
	TableTypes      = "preset_types"
	TableSizes      = "preset_sizes"
)

var (
	// ErrBankOverflow is returned when more slots are given than the bank holds.
	ErrBankOverflow = errors.New("preset: too many slots for bank")
	// ErrMissingTable is returned by Unflatten when a bank table is absent.
	ErrMissingTable = errors.New("preset: missing bank table")
	// ErrTableLength is returned by Unflatten when a bank table has the wrong length.
	ErrTableLength = errors.New("preset: bank table has wrong length")
)

// Layout is the geometry of a serialized bank.
type Layout struct {
	MaxTaps  int
	BankSize int
}

// DefaultLayout returns the factory bank geometry.
func DefaultLayout() Layout {
	return Layout{MaxTaps: MaxTaps, BankSize: BankSize}
}

// PadBank pads every slot to l.MaxTaps and appends empty slots until the bank
// holds exactly l.BankSize slots.
func (l Layout) PadBank(slots []Slot) ([]Slot, error) {
	if l.MaxTaps <= 0 || l.BankSize <= 0 {
		return nil, fmt.Errorf("invalid bank layout %d taps x %d slots", l.MaxTaps, l.BankSize)
	}
	if len(slots) > l.BankSize {
		return nil, fmt.Errorf("%w: %d slots, bank holds %d", ErrBankOverflow, len(slots), l.BankSize)
	}

	bank := make([]Slot, 0, l.BankSize)
	for i, s := range slots {
		p, err := s.Pad(l.MaxTaps)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		bank = append(bank, p)
	}
	for len(bank) < l.BankSize {
		bank = append(bank, EmptySlot(l.MaxTaps))
	}
	return bank, nil
}

// Serialize pads slots into a bank and flattens it slot-major into the five
// bank tables. Nothing is returned on error.
func (l Layout) Serialize(slots []Slot) (*lut.Registry, error) {
	bank, err := l.PadBank(slots)
	if err != nil {
		return nil, err
	}

	n := l.BankSize * l.MaxTaps
	times := make([]float64, 0, n)
	velos := make([]float64, 0, n)
	pans := make([]float64, 0, n)
	types := make([]int16, 0, n)
	sizes := make([]int, 0, l.BankSize)
	for _, s := range bank {
		sizes = append(sizes, s.Size)
		times = append(times, s.Times...)
		velos = append(velos, s.Velocities...)
		pans = append(pans, s.Pans...)
		for _, t := range s.Types {
			types = append(types, int16(t))
		}
	}

	reg := lut.NewRegistry()
	for _, step := range []func() error{
		func() error { return reg.AddFloat(TableTimes, times) },
		func() error { return reg.AddFloat(TableVelocities, velos) },
		func() error { return reg.AddFloat(TablePans, pans) },
		func() error { return reg.AddInt(TableTypes, types) },
		func() error { return reg.AddInt16FromInts(TableSizes, sizes) },
	} {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Serialize flattens slots with the factory layout.
func Serialize(slots []Slot) (*lut.Registry, error) {
	return DefaultLayout().Serialize(slots)
}

// Unflatten reads a bank back from its tables the way the firmware restores
// factory slots. The returned slots are unpadded.
func (l Layout) Unflatten(reg *lut.Registry) ([]Slot, error) {
	n := l.BankSize * l.MaxTaps
	floats := make(map[string][]float64, 3)
	for _, name := range []string{TableTimes, TableVelocities, TablePans} {
		v, ok := reg.Float(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingTable, name)
		}
		if len(v) != n {
			return nil, fmt.Errorf("%w: %s has %d entries, want %d", ErrTableLength, name, len(v), n)
		}
		floats[name] = v
	}
	types, ok := reg.Int(TableTypes)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingTable, TableTypes)
	}
	if len(types) != n {
		return nil, fmt.Errorf("%w: %s has %d entries, want %d", ErrTableLength, TableTypes, len(types), n)
	}
	sizes, ok := reg.Int(TableSizes)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingTable, TableSizes)
	}
	if len(sizes) != l.BankSize {
		return nil, fmt.Errorf("%w: %s has %d entries, want %d", ErrTableLength, TableSizes, len(sizes), l.BankSize)
	}

	slots := make([]Slot, l.BankSize)
	for i := range slots {
		size := int(sizes[i])
		if size < 0 || size > l.MaxTaps {
			return nil, fmt.Errorf("slot %d: %w: %d taps, capacity %d", i, ErrSlotOverflow, size, l.MaxTaps)
		}
		base := i * l.MaxTaps
		s := Slot{
			Size:       size,
			Times:      append([]float64(nil), floats[TableTimes][base:base+size]...),
			Velocities: append([]float64(nil), floats[TableVelocities][base:base+size]...),
			Pans:       append([]float64(nil), floats[TablePans][base:base+size]...),
			Types:      make([]VelocityType, size),
		}
		for j := range size {
			s.Types[j] = VelocityType(types[base+j])
		}
		slots[i] = s
	}
	return slots, nil
}
