package math

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min Vec3 `yaml:"min" json:"min"`
	Max Vec3 `yaml:"max" json:"max"`
}

// NewAABB creates an AABB from two corners, swapping per axis so Min <= Max.
func NewAABB(a, b Vec3) AABB {
	box := AABB{Min: a, Max: b}
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	if box.Min.Z > box.Max.Z {
		box.Min.Z, box.Max.Z = box.Max.Z, box.Min.Z
	}
	return box
}

// Contains reports whether p lies within the box. Bounds are inclusive.
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the per-axis extents (width, height, depth).
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// IsFinite reports whether both corners are finite.
func (b AABB) IsFinite() bool {
	return b.Min.IsFinite() && b.Max.IsFinite()
}

// Corners returns the eight box corners, bottom face first.
func (b AABB) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
	}
}

// Edges returns the 12 wireframe edges as pairs of corners.
func (b AABB) Edges() [12][2]Vec3 {
	c := b.Corners()
	return [12][2]Vec3{
		// Bottom face
		{c[0], c[1]}, {c[1], c[2]}, {c[2], c[3]}, {c[3], c[0]},
		// Top face
		{c[4], c[5]}, {c[5], c[6]}, {c[6], c[7]}, {c[7], c[4]},
		// Verticals
		{c[0], c[4]}, {c[1], c[5]}, {c[2], c[6]}, {c[3], c[7]},
	}
}
