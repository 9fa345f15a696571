// Package lut holds named lookup tables produced by an offline generation pass.
//
// A [Registry] keeps two independent namespaces: floating-point tables and
// 16-bit integer tables. Both are append-only; a registered table can never be
// replaced or removed, and all accessors return copies.
package lut

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyName is returned when a table is registered without a name.
	ErrEmptyName = errors.New("lut: table name must not be empty")
	// ErrDuplicateName is returned when a name is already taken in a registry.
	ErrDuplicateName = errors.New("lut: duplicate table name")
	// ErrIntRange is returned when an integer value does not fit in int16.
	ErrIntRange = errors.New("lut: value out of int16 range")
)

// Table is a named sequence of floating-point samples.
type Table struct {
	Name   string
	Values []float64
}

// IntTable is a named sequence of 16-bit integer samples.
type IntTable struct {
	Name   string
	Values []int16
}

// Registry stores float and int tables under unique names.
type Registry struct {
	floats    []Table
	ints      []IntTable
	floatByID map[string]int
	intByID   map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		floatByID: make(map[string]int),
		intByID:   make(map[string]int),
	}
}

// AddFloat registers a copy of values under name in the float registry.
func (r *Registry) AddFloat(name string, values []float64) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, ok := r.floatByID[name]; ok {
		return fmt.Errorf("%w: float table %q", ErrDuplicateName, name)
	}
	r.appendFloat(name, values)
	return nil
}

func (r *Registry) appendFloat(name string, values []float64) {
	r.floatByID[name] = len(r.floats)
	r.floats = append(r.floats, Table{Name: name, Values: append([]float64(nil), values...)})
}

// AddInt registers a copy of values under name in the int registry.
func (r *Registry) AddInt(name string, values []int16) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, ok := r.intByID[name]; ok {
		return fmt.Errorf("%w: int table %q", ErrDuplicateName, name)
	}
	r.appendInt(name, values)
	return nil
}

func (r *Registry) appendInt(name string, values []int16) {
	r.intByID[name] = len(r.ints)
	r.ints = append(r.ints, IntTable{Name: name, Values: append([]int16(nil), values...)})
}

// AddInt16FromInts narrows values to int16 and registers them under name.
// Nothing is registered if any value is out of range.
func (r *Registry) AddInt16FromInts(name string, values []int) error {
	out := make([]int16, len(values))
	for i, v := range values {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return fmt.Errorf("%w: %q[%d] = %d", ErrIntRange, name, i, v)
		}
		out[i] = int16(v)
	}
	return r.AddInt(name, out)
}

// Float returns a copy of the float table registered under name.
func (r *Registry) Float(name string) ([]float64, bool) {
	i, ok := r.floatByID[name]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), r.floats[i].Values...), true
}

// Int returns a copy of the int table registered under name.
func (r *Registry) Int(name string) ([]int16, bool) {
	i, ok := r.intByID[name]
	if !ok {
		return nil, false
	}
	return append([]int16(nil), r.ints[i].Values...), true
}

// FloatTables returns all float tables in registration order.
func (r *Registry) FloatTables() []Table {
	out := make([]Table, len(r.floats))
	for i, t := range r.floats {
		out[i] = Table{Name: t.Name, Values: append([]float64(nil), t.Values...)}
	}
	return out
}

// IntTables returns all int tables in registration order.
func (r *Registry) IntTables() []IntTable {
	out := make([]IntTable, len(r.ints))
	for i, t := range r.ints {
		out[i] = IntTable{Name: t.Name, Values: append([]int16(nil), t.Values...)}
	}
	return out
}

// Names returns the float table names followed by the int table names, each
// in registration order. A name registered in both namespaces appears twice.
func (r *Registry) Names() []string {
	out := make([]string, 0, r.Len())
	for _, t := range r.floats {
		out = append(out, t.Name)
	}
	for _, t := range r.ints {
		out = append(out, t.Name)
	}
	return out
}

// Len returns the total number of registered tables.
func (r *Registry) Len() int {
	return len(r.floats) + len(r.ints)
}

// Merge appends every table of other to r. On a name collision r is left
// unchanged and an error wrapping ErrDuplicateName is returned.
func (r *Registry) Merge(other *Registry) error {
	if other == nil {
		return nil
	}
	for _, t := range other.floats {
		if _, ok := r.floatByID[t.Name]; ok {
			return fmt.Errorf("%w: float table %q", ErrDuplicateName, t.Name)
		}
	}
	for _, t := range other.ints {
		if _, ok := r.intByID[t.Name]; ok {
			return fmt.Errorf("%w: int table %q", ErrDuplicateName, t.Name)
		}
	}
	for _, t := range other.floats {
		r.appendFloat(t.Name, t.Values)
	}
	for _, t := range other.ints {
		r.appendInt(t.Name, t.Values)
	}
	return nil
}
