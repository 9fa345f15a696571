package preset

import "fmt"

// BouncingConfig describes a "bouncing ball" preset: taps whose spacing
// shrinks towards the end of the pattern.
type BouncingConfig struct {
	Taps   int     // number of taps
	Length float64 // time of the last tap, in seconds
}

// DefaultBouncingConfig returns the factory "long bouncings" preset.
func DefaultBouncingConfig() BouncingConfig {
	return BouncingConfig{Taps: 15, Length: 7}
}

// Bouncing returns the pattern for cfg. Tap i sits at t^3*Length with
// t = (i+1)/Taps, has velocity t, and alternates hard left and right.
func Bouncing(cfg BouncingConfig) (Pattern, error) {
	if cfg.Taps <= 0 {
		return nil, fmt.Errorf("bouncing taps must be > 0: %d", cfg.Taps)
	}
	if cfg.Length <= 0 {
		return nil, fmt.Errorf("bouncing length must be > 0: %f", cfg.Length)
	}

	p := make(Pattern, cfg.Taps)
	for i := range p {
		t := float64(i+1) / float64(cfg.Taps)
		p[i] = TapEvent{
			Time:     t * t * t * cfg.Length,
			Velocity: t,
			Type:     VelocityAmp,
			Pan:      float64(i % 2),
		}
	}
	return p, nil
}

// BouncingSlot returns the unpadded slot for cfg at sampleRate. Times are
// evaluated as t*t*t*sampleRate*Length so the bank matches shipped tables
// bit for bit; converting the seconds of [Bouncing] can differ in the last
// bit.
func BouncingSlot(cfg BouncingConfig, sampleRate int) (Slot, error) {
	p, err := Bouncing(cfg)
	if err != nil {
		return Slot{}, err
	}
	s, err := p.Slot(sampleRate)
	if err != nil {
		return Slot{}, err
	}
	sr := float64(sampleRate)
	for i := range s.Times {
		t := float64(i+1) / float64(cfg.Taps)
		s.Times[i] = t * t * t * sr * cfg.Length
	}
	return s, nil
}
