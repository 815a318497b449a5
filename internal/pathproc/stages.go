package pathproc

import (
	gomath "math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/Faultbox/camsynth/internal/motion"
	"github.com/Faultbox/camsynth/pkg/math"
)

// orient computes the look-at orientation reached at the end of each command.
// The result has len(cmds)+1 entries; entry 0 is the initial orientation.
// Commands whose position and target coincide reuse the previous orientation.
func (p *Processor) orient(cmds []motion.CameraCommand, initial math.Quat, diag *Diagnostics) []math.Quat {
	keys := make([]math.Quat, len(cmds)+1)
	keys[0] = initial
	epsSq := p.cfg.epsilonSq()

	for i, c := range cmds {
		if c.Position.DistanceSq(c.Target) > epsSq {
			keys[i+1] = math.QuatLookAt(c.Position, c.Target, math.Up)
			continue
		}
		keys[i+1] = keys[i]
		diag.DegenerateOrientations = append(diag.DegenerateOrientations, i)
		p.log.Warn("Position and target coincide, reusing previous orientation",
			zap.Int("index", i),
			zap.Float64("x", c.Position.X),
			zap.Float64("y", c.Position.Y),
			zap.Float64("z", c.Position.Z))
	}
	return keys
}

// totalDuration sums command durations, clamping an all-zero total to epsilon.
func (p *Processor) totalDuration(durations []float64, diag *Diagnostics) float64 {
	total := floats.Sum(durations)
	if total <= p.cfg.Epsilon {
		diag.DurationClamped = true
		p.log.Warn("Total duration clamped", zap.Float64("total", total), zap.Float64("clamped", p.cfg.Epsilon))
		return p.cfg.Epsilon
	}
	return total
}

// dedup drops positions within epsilon of the previously kept one. A dropped
// position's duration is added to the most recently kept position.
func (p *Processor) dedup(positions []math.Vec3, durations []float64) ([]math.Vec3, []float64) {
	if len(positions) == 0 {
		return nil, nil
	}
	epsSq := p.cfg.epsilonSq()

	kept := []math.Vec3{positions[0]}
	keptDur := []float64{durations[0]}
	for i := 1; i < len(positions); i++ {
		last := len(kept) - 1
		if positions[i].DistanceSq(kept[last]) > epsSq {
			kept = append(kept, positions[i])
			keptDur = append(keptDur, durations[i])
			continue
		}
		keptDur[last] += durations[i]
	}
	return kept, keptDur
}

// blendCorners replaces each sharp interior waypoint with a pair of points
// pulled back along its incoming and outgoing segments. Endpoints are never
// blended, so the result is never shorter than pts.
func (p *Processor) blendCorners(pts []math.Vec3, diag *Diagnostics) []math.Vec3 {
	if len(pts) < 3 {
		return append([]math.Vec3(nil), pts...)
	}

	epsSq := p.cfg.epsilonSq()
	minAngle := p.cfg.cornerAngle()
	maxAngle := p.cfg.reversalAngle()

	out := make([]math.Vec3, 0, len(pts)+len(pts)/2)
	out = append(out, pts[0])

	for i := 1; i < len(pts)-1; i++ {
		vIn := pts[i].Sub(pts[i-1])
		vOut := pts[i+1].Sub(pts[i])
		inSq, outSq := vIn.LengthSq(), vOut.LengthSq()

		angle := vIn.AngleTo(vOut)
		if !(angle > minAngle && angle < maxAngle && inSq > epsSq && outSq > epsSq) {
			out = append(out, pts[i])
			continue
		}

		offset := p.blendOffset(gomath.Sqrt(gomath.Min(inSq, outSq)))
		b1 := pts[i].Sub(vIn.Normalize().Scale(offset))
		b2 := pts[i].Add(vOut.Normalize().Scale(offset))
		out = append(out, b1, b2)
		diag.BlendedCorners = append(diag.BlendedCorners, i)
	}

	return append(out, pts[len(pts)-1])
}

// blendOffset returns the pull-back distance for a corner whose shorter
// adjacent segment has the given length.
func (p *Processor) blendOffset(shorter float64) float64 {
	offset := shorter * p.cfg.BlendFraction
	if offset < p.cfg.MinBlendOffset {
		offset = p.cfg.MinBlendOffset
	}
	if hi := shorter * p.cfg.MaxBlendFactor; offset > hi {
		offset = hi
	}
	return offset
}

// sample evaluates c at n evenly spaced arc-length fractions.
func sample(c *curve, n int) []float64 {
	buf := make([]float64, 0, n*3)
	for i := 0; i < n; i++ {
		u := float64(i) / float64(n-1)
		u = gomath.Max(0, gomath.Min(1, u))
		pt := c.PointAt(u)
		buf = append(buf, pt.X, pt.Y, pt.Z)
	}
	return buf
}

// constant returns n samples all equal to pt.
func constant(pt math.Vec3, n int) []float64 {
	buf := make([]float64, 0, n*3)
	for i := 0; i < n; i++ {
		buf = append(buf, pt.X, pt.Y, pt.Z)
	}
	return buf
}
