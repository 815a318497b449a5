package pathproc

import (
	"errors"
	gomath "math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/Faultbox/camsynth/pkg/math"
)

// errTooFewControlPoints is returned by newCurve for fewer than two points.
var errTooFewControlPoints = errors.New("catmull-rom curve needs at least 2 control points")

// minKnotInterval guards the non-uniform parametrization against coincident
// control points.
const minKnotInterval = 1e-4

// curve is an open centripetal Catmull-Rom spline through its control points,
// with an arc-length table for uniform-speed sampling.
type curve struct {
	points []math.Vec3

	// lengths[i] is the arc length from t=0 to t=i/(len(lengths)-1)
	lengths []float64
}

// newCurve builds a curve through points. The end tangents are estimated by
// reflecting the second and second-to-last points through the endpoints.
func newCurve(points []math.Vec3, divisions int) (*curve, error) {
	if len(points) < 2 {
		return nil, errTooFewControlPoints
	}
	c := &curve{points: points}
	c.lengths = c.arcLengths(divisions)
	return c, nil
}

// Length returns the total arc length.
func (c *curve) Length() float64 {
	return c.lengths[len(c.lengths)-1]
}

// PointAt returns the point at arc-length fraction u in [0,1].
func (c *curve) PointAt(u float64) math.Vec3 {
	return c.point(c.uToT(u))
}

// point evaluates the curve at parameter t in [0,1], where each segment
// between consecutive control points spans an equal share of t.
func (c *curve) point(t float64) math.Vec3 {
	pts := c.points
	l := len(pts)

	p := float64(l-1) * t
	seg := int(gomath.Floor(p))
	weight := p - float64(seg)

	if seg >= l-1 {
		seg = l - 2
		weight = 1
	} else if seg < 0 {
		seg = 0
		weight = 0
	}

	var p0, p3 math.Vec3
	if seg > 0 {
		p0 = pts[seg-1]
	} else {
		p0 = pts[0].Scale(2).Sub(pts[1])
	}
	p1 := pts[seg]
	p2 := pts[seg+1]
	if seg+2 < l {
		p3 = pts[seg+2]
	} else {
		p3 = pts[l-1].Scale(2).Sub(pts[l-2])
	}

	// Centripetal: knot intervals are the square root of chord length
	dt0 := gomath.Pow(p0.DistanceSq(p1), 0.25)
	dt1 := gomath.Pow(p1.DistanceSq(p2), 0.25)
	dt2 := gomath.Pow(p2.DistanceSq(p3), 0.25)

	if dt1 < minKnotInterval {
		dt1 = 1
	}
	if dt0 < minKnotInterval {
		dt0 = dt1
	}
	if dt2 < minKnotInterval {
		dt2 = dt1
	}

	return math.Vec3{
		X: cubic(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, weight),
		Y: cubic(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, weight),
		Z: cubic(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, weight),
	}
}

// cubic evaluates one coordinate of the non-uniform Catmull-Rom segment
// between x1 and x2 as a Hermite cubic with tangents rescaled to [0,1].
func cubic(x0, x1, x2, x3, dt0, dt1, dt2, t float64) float64 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2

	return c0 + t*(c1+t*(c2+t*c3))
}

func (c *curve) arcLengths(divisions int) []float64 {
	steps := make([]float64, divisions+1)
	last := c.point(0)
	for i := 1; i <= divisions; i++ {
		cur := c.point(float64(i) / float64(divisions))
		steps[i] = cur.Distance(last)
		last = cur
	}
	return floats.CumSum(steps, steps)
}

// uToT maps an arc-length fraction to the curve parameter by inverting the
// arc-length table with linear interpolation between entries.
func (c *curve) uToT(u float64) float64 {
	total := c.Length()
	if total == 0 {
		return u
	}

	n := len(c.lengths)
	target := u * total

	i := sort.SearchFloat64s(c.lengths, target)
	if i >= n {
		return 1
	}
	if c.lengths[i] == target || i == 0 {
		return float64(i) / float64(n-1)
	}

	// lengths[i-1] < target < lengths[i]
	before := c.lengths[i-1]
	span := c.lengths[i] - before
	return (float64(i-1) + (target-before)/span) / float64(n-1)
}
