package wave

import (
	"fmt"
	"math"
)

func validateSize(name string, size int) error {
	if size <= 0 {
		return fmt.Errorf("%s size must be > 0: %d", name, size)
	}
	return nil
}

func validateCrossfade(size int, cfg config) error {
	if size < 2 {
		return fmt.Errorf("crossfade size must be >= 2: %d", size)
	}
	if math.IsNaN(cfg.scale) || math.IsInf(cfg.scale, 0) || cfg.scale <= 0 {
		return fmt.Errorf("crossfade scale must be finite and > 0: %f", cfg.scale)
	}
	if cfg.overOffset > 0 || cfg.overGain+cfg.overOffset < 1 {
		return fmt.Errorf("crossfade remap %.4f*t%+.4f must cover [0,1]", cfg.overGain, cfg.overOffset)
	}
	return nil
}
