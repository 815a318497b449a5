package math

import gomath "math"

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3 // Normalized direction
}

// NewRay creates a ray with a normalized direction.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float64, hit bool) {
	tmin := -gomath.MaxFloat64
	tmax := gomath.MaxFloat64

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	bmin := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	bmax := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < bmin[axis] || origin[axis] > bmax[axis] {
				return 0, false
			}
			continue
		}
		t1 := (bmin[axis] - origin[axis]) / dir[axis]
		t2 := (bmax[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// SegmentIntersectsAABB reports whether the closed segment a-b touches box.
func SegmentIntersectsAABB(a, b Vec3, box AABB) bool {
	if box.Contains(a) || box.Contains(b) {
		return true
	}
	length := a.Distance(b)
	if length == 0 {
		return false
	}
	t, hit := NewRay(a, b.Sub(a)).IntersectAABB(box)
	return hit && t <= length
}
