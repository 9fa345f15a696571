package build

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-lut/internal/testutil"
	"github.com/cwbudde/algo-lut/preset"
	"github.com/cwbudde/algo-lut/wave"
)

func TestGenerateReferenceShapes(t *testing.T) {
	reg, err := Generate(WithSampleRate(48000))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	floats := map[string]int{
		TableSine:              1281,
		TableRaisedCosine:      1025,
		TableXfadeIn:           17,
		TableXfadeOut:          17,
		preset.TableTimes:      768,
		preset.TableVelocities: 768,
		preset.TablePans:       768,
	}
	for name, n := range floats {
		v, ok := reg.Float(name)
		if !ok {
			t.Fatalf("missing float table %q", name)
		}
		if len(v) != n {
			t.Fatalf("%s len = %d, want %d", name, len(v), n)
		}
		testutil.RequireFinite(t, v)
	}

	ints := map[string]int{
		preset.TableTypes: 768,
		preset.TableSizes: 24,
	}
	for name, n := range ints {
		v, ok := reg.Int(name)
		if !ok {
			t.Fatalf("missing int table %q", name)
		}
		if len(v) != n {
			t.Fatalf("%s len = %d, want %d", name, len(v), n)
		}
	}
	if got := reg.Len(); got != len(floats)+len(ints) {
		t.Fatalf("table count = %d, want %d", got, len(floats)+len(ints))
	}
	if got := len(reg.Names()); got != reg.Len() {
		t.Fatalf("len(Names()) = %d, want %d", got, reg.Len())
	}
}

func TestGenerateCrossfadeEndpoints(t *testing.T) {
	reg, err := Generate(WithSampleRate(32000))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	in, _ := reg.Float(TableXfadeIn)
	out, _ := reg.Float(TableXfadeOut)
	last := len(in) - 1
	if in[0] != 0 || in[last] != 1 || out[0] != 1 || out[last] != 0 {
		t.Fatalf("endpoints in=(%v,%v) out=(%v,%v)", in[0], in[last], out[0], out[last])
	}
	for i := range in {
		if math.Abs(in[i]*in[i]+out[i]*out[i]-1) > 1e-12 {
			t.Fatalf("index %d breaks equal power", i)
		}
	}
}

func TestGenerateEqualPowerScale(t *testing.T) {
	reg, err := Generate(WithSampleRate(32000), WithEqualPowerCrossfade())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	in, _ := reg.Float(TableXfadeIn)
	if math.Abs(in[len(in)-1]-wave.EqualPowerScale) > 1e-15 {
		t.Fatalf("in[last] = %v, want %v", in[len(in)-1], wave.EqualPowerScale)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(WithSampleRate(44100))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate(WithSampleRate(44100))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	at, bt := a.FloatTables(), b.FloatTables()
	if len(at) != len(bt) {
		t.Fatalf("table count %d != %d", len(at), len(bt))
	}
	for i := range at {
		if at[i].Name != bt[i].Name {
			t.Fatalf("table %d name %q != %q", i, at[i].Name, bt[i].Name)
		}
		testutil.RequireBitIdentical(t, at[i].Values, bt[i].Values)
	}
	ai, bi := a.IntTables(), b.IntTables()
	for i := range ai {
		for j := range ai[i].Values {
			if ai[i].Values[j] != bi[i].Values[j] {
				t.Fatalf("%s[%d] differs", ai[i].Name, j)
			}
		}
	}
}

func TestGenerateSampleRateScalesTimes(t *testing.T) {
	a, _ := Generate(WithSampleRate(24000))
	b, _ := Generate(WithSampleRate(48000))
	ta, _ := a.Float(preset.TableTimes)
	tb, _ := b.Float(preset.TableTimes)
	for i := range ta {
		if tb[i] != 2*ta[i] {
			t.Fatalf("times[%d]: %v at 48k, %v at 24k", i, tb[i], ta[i])
		}
	}
}

func TestGenerateBouncingMode(t *testing.T) {
	reg, err := Generate(WithSampleRate(48000), WithMode(ModeBouncing))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	sizes, _ := reg.Int(preset.TableSizes)
	if sizes[0] != 15 {
		t.Fatalf("sizes[0] = %d, want 15", sizes[0])
	}
	testutil.RequireZero(t, sizes[1:])
	times, _ := reg.Float(preset.TableTimes)
	if times[14] != 7*48000 {
		t.Fatalf("last bounce time = %v, want %v", times[14], 7*48000)
	}
}

func TestGenerateSortedOrder(t *testing.T) {
	reg, err := Generate(WithSampleRate(48000), WithOrder(preset.OrderByTime))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	slots, err := preset.DefaultLayout().Unflatten(reg)
	if err != nil {
		t.Fatalf("Unflatten() error = %v", err)
	}
	for i, s := range slots {
		for j := 1; j < s.Size; j++ {
			if s.Times[j] < s.Times[j-1] {
				t.Fatalf("slot %d not sorted at tap %d", i, j)
			}
		}
	}
}

func TestGenerateFailsWithoutPartialOutput(t *testing.T) {
	bad := preset.DefaultBasePatterns()
	bad[2] = preset.Pattern{{Time: 1, Velocity: 2}}

	over := preset.DefaultBasePatterns()
	over[0] = make(preset.Pattern, preset.MaxTaps)

	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"missing sample rate", nil, ErrSampleRate},
		{"negative sample rate", []Option{WithSampleRate(-48000)}, ErrSampleRate},
		{"malformed base pattern", []Option{WithSampleRate(48000), WithBasePatterns(bad)}, preset.ErrInvalidTap},
		{"slot overflow", []Option{WithSampleRate(48000), WithBasePatterns(over)}, preset.ErrSlotOverflow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg, err := Generate(tc.opts...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
			if reg != nil {
				t.Fatal("expected no registry on failure")
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"waveform size", []Option{WithWaveformSize(0)}},
		{"crossfade size", []Option{WithCrossfade(1, 1)}},
		{"order", []Option{WithOrder(preset.TapOrder(9))}},
		{"mode", []Option{WithMode(Mode(9))}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := ApplyOptions(append([]Option{WithSampleRate(48000)}, tc.opts...)...)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
	if err := ApplyOptions(WithSampleRate(48000)).Validate(); err != nil {
		t.Fatalf("default config error = %v", err)
	}
}

func TestParseSampleRate(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"48000", 48000, false},
		{" 32000\n", 32000, false},
		{"", 0, true},
		{"48k", 0, true},
		{"44100.0", 0, true},
		{"0", 0, true},
		{"-1", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseSampleRate(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrSampleRate) {
				t.Fatalf("ParseSampleRate(%q) error = %v, want ErrSampleRate", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseSampleRate(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeCombinatorial, ModeBouncing} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("x"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
