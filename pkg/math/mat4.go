package math

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float64

// LookAtRotation returns the rotation that orients an object at eye so its
// -Z axis points at target, with up as the reference up direction.
// Unlike a view matrix this is the object's world rotation, not its inverse.
//
// Coincident eye and target fall back to facing -Z. An up vector parallel to
// the view direction is nudged so the basis stays orthonormal.
func LookAtRotation(eye, target, up Vec3) Mat4 {
	z := eye.Sub(target)
	if z.LengthSq() == 0 {
		z.Z = 1
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.LengthSq() == 0 {
		if abs(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		0, 0, 0, 1,
	}
}

// TransformDirection transforms a direction vector (ignores translation).
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[4]*d.Y + m[8]*d.Z,
		m[1]*d.X + m[5]*d.Y + m[9]*d.Z,
		m[2]*d.X + m[6]*d.Y + m[10]*d.Z,
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
