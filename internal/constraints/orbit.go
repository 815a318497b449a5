package constraints

import (
	gomath "math"

	"github.com/Faultbox/camsynth/internal/motion"
	"github.com/Faultbox/camsynth/pkg/math"
)

// Orbit places a camera on a sphere around a center point.
type Orbit struct {
	Center   math.Vec3
	Distance float64 // Distance from center
	Pitch    float64 // Elevation above the horizontal plane (radians)
	Yaw      float64 // Rotation around the vertical axis (radians)
}

// defaultPitch looks down at ~35 degrees.
const defaultPitch = 0.6

// Position returns the camera position in world space.
func (o Orbit) Position() math.Vec3 {
	x := o.Distance * gomath.Cos(o.Pitch) * gomath.Sin(o.Yaw)
	y := o.Distance * gomath.Sin(o.Pitch)
	z := o.Distance * gomath.Cos(o.Pitch) * gomath.Cos(o.Yaw)

	return math.Vec3{
		X: o.Center.X + x,
		Y: o.Center.Y + y,
		Z: o.Center.Z + z,
	}
}

// Orientation returns the quaternion of a camera at Position facing Center.
func (o Orbit) Orientation() math.Quat {
	return math.QuatLookAt(o.Position(), o.Center, math.Up)
}

// Command returns a waypoint at the orbit position looking at the center.
func (o Orbit) Command(duration float64) motion.CameraCommand {
	return motion.CameraCommand{
		Position: o.Position(),
		Target:   o.Center,
		Duration: duration,
	}
}

// FrameObject picks a default orbit around the analyzed object: midway through
// the allowed distance range but clear of the object's bounding sphere, with
// the pitch adjusted so the camera height stays within the allowed range.
func FrameObject(a EnvironmentalAnalysis, yaw float64) Orbit {
	c := a.CameraConstraints
	center := a.Object.Center

	distance := (c.MinDistance + c.MaxDistance) / 2
	radius := a.Object.Dimensions.Length() / 2 * 1.2
	if distance < radius {
		distance = radius
	}
	if distance > c.MaxDistance {
		distance = c.MaxDistance
	}

	pitch := defaultPitch
	if distance > 0 {
		y := center.Y + distance*gomath.Sin(pitch)
		y = clamp(y, c.MinHeight, c.MaxHeight)
		ratio := clamp((y-center.Y)/distance, -1, 1)
		pitch = gomath.Asin(ratio)
	}

	return Orbit{
		Center:   center,
		Distance: distance,
		Pitch:    pitch,
		Yaw:      yaw,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
