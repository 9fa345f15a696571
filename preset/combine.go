package preset

import "fmt"

// NumMasks is the number of base-pattern combinations.
const NumMasks = 1 << NumBasePatterns

// TapOrder selects the tap order of a combined slot.
type TapOrder int

const (
	// OrderAuthored keeps the concatenation in base-pattern order. This is
	// what shipped firmware tables contain.
	OrderAuthored TapOrder = iota
	// OrderByTime sorts the combined taps by ascending time.
	OrderByTime
)

// String returns the flag spelling of o.
func (o TapOrder) String() string {
	switch o {
	case OrderAuthored:
		return "authored"
	case OrderByTime:
		return "time"
	default:
		return fmt.Sprintf("TapOrder(%d)", int(o))
	}
}

// ParseTapOrder parses the flag spelling of a TapOrder.
func ParseTapOrder(s string) (TapOrder, error) {
	switch s {
	case "authored":
		return OrderAuthored, nil
	case "time":
		return OrderByTime, nil
	default:
		return 0, fmt.Errorf("unknown tap order %q (want authored or time)", s)
	}
}

// Combinator merges base patterns under every mask.
type Combinator struct {
	SampleRate int
	Order      TapOrder
}

// Merge returns the concatenation, in index order, of every base pattern
// whose bit is set in mask.
func Merge(bases [NumBasePatterns]Pattern, mask int) Pattern {
	var out Pattern
	for i, p := range bases {
		if mask&(1<<i) != 0 {
			out = append(out, p...)
		}
	}
	return out
}

// Combine returns NumMasks unpadded slots; slot m holds the merge of the
// base patterns selected by mask m.
func (c Combinator) Combine(bases [NumBasePatterns]Pattern) ([]Slot, error) {
	if c.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSampleRate, c.SampleRate)
	}
	for i, p := range bases {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("base pattern %d: %w", i, err)
		}
	}

	slots := make([]Slot, 0, NumMasks)
	for mask := range NumMasks {
		p := Merge(bases, mask)
		if c.Order == OrderByTime {
			p = p.SortedByTime()
		}
		s, err := p.Slot(c.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("mask %d: %w", mask, err)
		}
		slots = append(slots, s)
	}
	return slots, nil
}
