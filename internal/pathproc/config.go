// Package pathproc turns a validated, sparse waypoint sequence into a smooth
// fixed-rate camera trajectory with per-waypoint orientations.
//
// Processing runs in five stages: look-at orientation per waypoint,
// positional deduplication, corner blending, centripetal Catmull-Rom curve
// construction and arc-length sampling.
package pathproc

import (
	"fmt"
	gomath "math"
)

// Config holds the processor's tunables.
type Config struct {
	// SampleRate is the number of position samples per second of path.
	SampleRate float64
	// MinSamples is the lower bound on the sample count.
	MinSamples int
	// MaxSamples caps the sample count. Paths whose duration would need
	// more samples are rejected.
	MaxSamples int
	// Epsilon is the distance below which two points coincide. All
	// comparisons use squared distances against Epsilon^2.
	Epsilon float64

	// CornerAngleDeg is the turn angle above which a corner is blended.
	CornerAngleDeg float64
	// ReversalMarginDeg excludes turns within this margin of 180 degrees.
	ReversalMarginDeg float64

	// BlendFraction of the shorter adjacent segment is the blend offset,
	// clamped to [MinBlendOffset, MaxBlendFactor*shorter].
	BlendFraction  float64
	MinBlendOffset float64
	MaxBlendFactor float64

	// ArcLengthDivisions is the resolution of the arc-length table.
	ArcLengthDivisions int
}

// DefaultConfig returns the standard tunables.
func DefaultConfig() Config {
	return Config{
		SampleRate:         60,
		MinSamples:         2,
		MaxSamples:         1 << 21,
		Epsilon:            1e-6,
		CornerAngleDeg:     30,
		ReversalMarginDeg:  6,
		BlendFraction:      0.3,
		MinBlendOffset:     0.01,
		MaxBlendFactor:     0.45,
		ArcLengthDivisions: 200,
	}
}

// Validate reports the first out-of-range tunable.
func (c Config) Validate() error {
	switch {
	case !(c.SampleRate > 0) || gomath.IsInf(c.SampleRate, 0):
		return fmt.Errorf("sample rate must be positive and finite, got %v", c.SampleRate)
	case c.MinSamples < 2:
		return fmt.Errorf("min samples must be at least 2, got %d", c.MinSamples)
	case c.MaxSamples < c.MinSamples:
		return fmt.Errorf("max samples must be at least %d, got %d", c.MinSamples, c.MaxSamples)
	case !(c.Epsilon > 0):
		return fmt.Errorf("epsilon must be positive, got %v", c.Epsilon)
	case !(c.CornerAngleDeg > 0 && c.CornerAngleDeg < 180):
		return fmt.Errorf("corner angle must be in (0, 180), got %v", c.CornerAngleDeg)
	case !(c.ReversalMarginDeg >= 0 && c.ReversalMarginDeg < 180-c.CornerAngleDeg):
		return fmt.Errorf("reversal margin must be in [0, %v), got %v", 180-c.CornerAngleDeg, c.ReversalMarginDeg)
	case !(c.BlendFraction > 0 && c.BlendFraction <= 0.5):
		return fmt.Errorf("blend fraction must be in (0, 0.5], got %v", c.BlendFraction)
	case !(c.MinBlendOffset >= 0):
		return fmt.Errorf("min blend offset must be non-negative, got %v", c.MinBlendOffset)
	case !(c.MaxBlendFactor > 0 && c.MaxBlendFactor < 0.5):
		return fmt.Errorf("max blend factor must be in (0, 0.5), got %v", c.MaxBlendFactor)
	case c.ArcLengthDivisions < 1:
		return fmt.Errorf("arc length divisions must be at least 1, got %d", c.ArcLengthDivisions)
	}
	return nil
}

func (c Config) epsilonSq() float64 {
	return c.Epsilon * c.Epsilon
}

func (c Config) cornerAngle() float64 {
	return c.CornerAngleDeg * gomath.Pi / 180
}

func (c Config) reversalAngle() float64 {
	return (180 - c.ReversalMarginDeg) * gomath.Pi / 180
}

// sampleCount returns max(MinSamples, ceil(SampleRate*duration)). It
// reports false when the count would exceed MaxSamples.
func (c Config) sampleCount(duration float64) (int, bool) {
	f := gomath.Ceil(c.SampleRate * duration)
	if !(f <= float64(c.MaxSamples)) {
		return 0, false
	}
	n := int(f)
	if n < c.MinSamples {
		return c.MinSamples, true
	}
	return n, true
}
