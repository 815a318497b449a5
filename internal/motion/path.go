package motion

import (
	"math"

	gmath "github.com/Faultbox/camsynth/pkg/math"
)

// ProcessedPathData is a smoothed, time-sampled camera path ready for playback.
// It is built once per request and never mutated afterwards.
type ProcessedPathData struct {
	// SampledPositions holds x,y,z triples at a fixed cadence over
	// TotalDuration. The first sample is at time 0, the last at TotalDuration.
	SampledPositions []float64 `yaml:"sampled_positions" json:"sampledPositions"`

	// KeyframeQuaternions[0] is the initial orientation; KeyframeQuaternions[i+1]
	// is the orientation reached at the end of command i.
	KeyframeQuaternions []gmath.Quat `yaml:"keyframe_quaternions" json:"keyframeQuaternions"`

	// SegmentDurations[i] is the duration of command i in seconds.
	SegmentDurations []float64 `yaml:"segment_durations" json:"segmentDurations"`

	// SegmentEasings[i] is the easing of command i, used for orientation.
	SegmentEasings []Easing `yaml:"segment_easings,omitempty" json:"segmentEasings,omitempty"`

	TotalDuration float64 `yaml:"total_duration" json:"totalDuration"`
}

// SampleCount returns the number of position samples.
func (p *ProcessedPathData) SampleCount() int {
	return len(p.SampledPositions) / 3
}

// Sample returns position sample i.
func (p *ProcessedPathData) Sample(i int) gmath.Vec3 {
	return gmath.Vec3{
		X: p.SampledPositions[i*3],
		Y: p.SampledPositions[i*3+1],
		Z: p.SampledPositions[i*3+2],
	}
}

// PositionAt returns the camera position at elapsed time t, interpolating
// linearly between neighbouring samples. t is clamped to the path.
func (p *ProcessedPathData) PositionAt(t float64) gmath.Vec3 {
	n := p.SampleCount()
	if n == 0 {
		return gmath.Vec3{}
	}
	if n == 1 || p.TotalDuration <= 0 || t <= 0 {
		return p.Sample(0)
	}
	if t >= p.TotalDuration {
		return p.Sample(n - 1)
	}

	f := t / p.TotalDuration * float64(n-1)
	i := int(math.Floor(f))
	if i >= n-1 {
		return p.Sample(n - 1)
	}
	return p.Sample(i).Lerp(p.Sample(i+1), f-float64(i))
}

// OrientationAt returns the camera orientation at elapsed time t. Orientation
// is keyed by command durations, independent of how many position samples
// fall in each segment: during command i it slerps from keyframe i to i+1.
func (p *ProcessedPathData) OrientationAt(t float64) gmath.Quat {
	if len(p.KeyframeQuaternions) == 0 {
		return gmath.QuatIdentity()
	}
	if t <= 0 || len(p.SegmentDurations) == 0 {
		return p.KeyframeQuaternions[0]
	}

	start := 0.0
	for i, d := range p.SegmentDurations {
		if i+1 >= len(p.KeyframeQuaternions) {
			break
		}
		end := start + d
		if t < end && d > 0 {
			local := (t - start) / d
			if i < len(p.SegmentEasings) {
				local = p.SegmentEasings[i].Apply(local)
			}
			return p.KeyframeQuaternions[i].Slerp(p.KeyframeQuaternions[i+1], local)
		}
		start = end
	}
	return p.KeyframeQuaternions[len(p.KeyframeQuaternions)-1]
}

// IsOriginFallback reports whether every sample sits at the origin, which is
// what the processor emits when curve construction had no usable points.
func (p *ProcessedPathData) IsOriginFallback() bool {
	if len(p.SampledPositions) == 0 {
		return false
	}
	for _, v := range p.SampledPositions {
		if v != 0 {
			return false
		}
	}
	return true
}
