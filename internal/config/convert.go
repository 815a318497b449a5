package config

import (
	"fmt"
	"math"

	"github.com/Faultbox/camsynth/internal/constraints"
	"github.com/Faultbox/camsynth/internal/pathproc"
)

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	env := c.Environment
	if !(env.Width > 0 && env.Height > 0 && env.Depth > 0) {
		return fmt.Errorf("environment dimensions must be positive, got %vx%vx%v", env.Width, env.Height, env.Depth)
	}

	cc := c.Constraints
	if !(cc.MinHeightFactor >= 0 && cc.MinHeightFactor <= cc.MaxHeightFactor) {
		return fmt.Errorf("height factors must satisfy 0 <= min <= max, got %v and %v", cc.MinHeightFactor, cc.MaxHeightFactor)
	}
	if !(cc.MinDistanceFactor >= 0 && cc.MinDistanceFactor <= cc.MaxDistanceFactor) {
		return fmt.Errorf("distance factors must satisfy 0 <= min <= max, got %v and %v", cc.MinDistanceFactor, cc.MaxDistanceFactor)
	}
	if !(cc.FallbackMinHeight <= cc.FallbackMaxHeight && cc.FallbackMinDistance <= cc.FallbackMaxDistance) {
		return fmt.Errorf("fallback ranges must satisfy min <= max")
	}
	if cc.MaxSpeed < 0 || cc.MaxAngleChangeDeg < 0 {
		return fmt.Errorf("motion limits must be non-negative")
	}

	if err := c.ProcessorConfig().Validate(); err != nil {
		return fmt.Errorf("path: %w", err)
	}

	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch workers must be at least 1, got %d", c.Batch.Workers)
	}
	return nil
}

// SolverConfig returns the constraint solver settings.
func (c *Config) SolverConfig() constraints.Config {
	sc := constraints.DefaultConfig()
	sc.Environment = constraints.EnvironmentSize{
		Width:  c.Environment.Width,
		Height: c.Environment.Height,
		Depth:  c.Environment.Depth,
	}

	cc := c.Constraints
	sc.MinHeightFactor = cc.MinHeightFactor
	sc.MaxHeightFactor = cc.MaxHeightFactor
	sc.MinDistanceFactor = cc.MinDistanceFactor
	sc.MaxDistanceFactor = cc.MaxDistanceFactor
	sc.FallbackMinHeight = cc.FallbackMinHeight
	sc.FallbackMaxHeight = cc.FallbackMaxHeight
	sc.FallbackMinDistance = cc.FallbackMinDistance
	sc.FallbackMaxDistance = cc.FallbackMaxDistance
	sc.MaxSpeed = cc.MaxSpeed
	sc.MaxAngleChange = cc.MaxAngleChangeDeg * math.Pi / 180
	return sc
}

// ProcessorConfig returns the path processor settings.
func (c *Config) ProcessorConfig() pathproc.Config {
	p := c.Path
	return pathproc.Config{
		SampleRate:         p.SampleRate,
		MinSamples:         p.MinSamples,
		MaxSamples:         p.MaxSamples,
		Epsilon:            p.Epsilon,
		CornerAngleDeg:     p.CornerAngleDeg,
		ReversalMarginDeg:  p.ReversalMarginDeg,
		BlendFraction:      p.BlendFraction,
		MinBlendOffset:     p.MinBlendOffset,
		MaxBlendFactor:     p.MaxBlendFactor,
		ArcLengthDivisions: p.ArcLengthDivisions,
	}
}
