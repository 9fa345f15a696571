package preset

// Base pattern indices, in mask bit order.
const (
	PatternPulse = iota
	PatternFilterEcho
	PatternOffbeat
	PatternTail
	NumBasePatterns
)

// DefaultBasePatterns returns the four authored factory base patterns.
func DefaultBasePatterns() [NumBasePatterns]Pattern {
	return [NumBasePatterns]Pattern{
		PatternPulse: {
			{Time: 0.25, Velocity: 1.0, Type: VelocityAmp, Pan: 0.5},
			{Time: 0.50, Velocity: 0.8, Type: VelocityAmp, Pan: 0.5},
			{Time: 0.75, Velocity: 0.6, Type: VelocityAmp, Pan: 0.5},
			{Time: 1.00, Velocity: 0.4, Type: VelocityAmp, Pan: 0.5},
		},
		PatternFilterEcho: {
			{Time: 0.375, Velocity: 0.7, Type: VelocityLowpass, Pan: 0.0},
			{Time: 0.875, Velocity: 0.5, Type: VelocityLowpass, Pan: 1.0},
		},
		PatternOffbeat: {
			{Time: 0.125, Velocity: 0.5, Type: VelocityBandpass, Pan: 0.2},
			{Time: 0.625, Velocity: 0.45, Type: VelocityBandpass, Pan: 0.8},
			{Time: 1.125, Velocity: 0.4, Type: VelocityBandpass, Pan: 0.2},
			{Time: 1.625, Velocity: 0.35, Type: VelocityBandpass, Pan: 0.8},
		},
		PatternTail: {
			{Time: 2.0, Velocity: 0.3, Type: VelocityLowpass, Pan: 0.25},
			{Time: 3.0, Velocity: 0.2, Type: VelocityLowpass, Pan: 0.75},
		},
	}
}
