// Package constraints derives the camera's spatial limits from an object's
// bounding geometry and the playable environment.
package constraints

import (
	"github.com/Faultbox/camsynth/pkg/math"
)

// SceneAnalysis is the upstream geometry provider's description of an object.
// BoundingBox and Center are required; Dimensions defaults to the box size.
type SceneAnalysis struct {
	BoundingBox *math.AABB `yaml:"bounding_box" json:"boundingBox"`
	Center      *math.Vec3 `yaml:"center" json:"center"`
	Dimensions  *math.Vec3 `yaml:"dimensions,omitempty" json:"dimensions,omitempty"`
}

// ObjectMeasurements describes the analyzed object.
type ObjectMeasurements struct {
	BoundingBox math.AABB `yaml:"bounding_box" json:"boundingBox"`
	Center      math.Vec3 `yaml:"center" json:"center"`
	Dimensions  math.Vec3 `yaml:"dimensions" json:"dimensions"` // X width, Y height, Z depth

	// FloorOffset is the height of the object's lowest point above the
	// ground plane.
	FloorOffset float64 `yaml:"floor_offset" json:"floorOffset"`
}

// EnvironmentBounds is the playable camera volume.
type EnvironmentBounds struct {
	Bounds math.AABB `yaml:"bounds" json:"bounds"`
	Width  float64   `yaml:"width" json:"width"`
	Height float64   `yaml:"height" json:"height"`
	Depth  float64   `yaml:"depth" json:"depth"`
}

// DistanceMeasurements are the gaps between the environment boundary and the
// object's bounding box on each face.
type DistanceMeasurements struct {
	Left   float64 `yaml:"left" json:"left"`
	Right  float64 `yaml:"right" json:"right"`
	Front  float64 `yaml:"front" json:"front"`
	Back   float64 `yaml:"back" json:"back"`
	Top    float64 `yaml:"top" json:"top"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
}

// CameraConstraints bounds camera height and distance from its target.
// MaxSpeed and MaxAngleChange are optional; zero means unlimited.
type CameraConstraints struct {
	MinHeight   float64 `yaml:"min_height" json:"minHeight"`
	MaxHeight   float64 `yaml:"max_height" json:"maxHeight"`
	MinDistance float64 `yaml:"min_distance" json:"minDistance"`
	MaxDistance float64 `yaml:"max_distance" json:"maxDistance"`

	// MaxSpeed is in units per second, MaxAngleChange in radians per command.
	MaxSpeed       float64 `yaml:"max_speed,omitempty" json:"maxSpeed,omitempty"`
	MaxAngleChange float64 `yaml:"max_angle_change,omitempty" json:"maxAngleChange,omitempty"`
}

// EnvironmentalAnalysis is the solver's output.
type EnvironmentalAnalysis struct {
	Environment       EnvironmentBounds    `yaml:"environment" json:"environment"`
	Object            ObjectMeasurements   `yaml:"object" json:"object"`
	Distances         DistanceMeasurements `yaml:"distances" json:"distances"`
	CameraConstraints CameraConstraints    `yaml:"camera_constraints" json:"cameraConstraints"`
}
