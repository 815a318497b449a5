package pathproc

import "github.com/Faultbox/camsynth/internal/motion"

// Status distinguishes a normal path from one produced by a fallback.
type Status string

const (
	StatusOK         Status = "ok"
	StatusDegenerate Status = "degenerate"
)

// DegenerateReason explains which fallback produced a degenerate path.
type DegenerateReason string

const (
	// ReasonSinglePosition: every waypoint collapsed to one position, so the
	// path holds still for its whole duration.
	ReasonSinglePosition DegenerateReason = "single_position"

	// ReasonNoControlPoints: the curve had fewer than two control points and
	// an origin-to-origin curve was used. Treat the path as an upstream data
	// problem, not a valid result.
	ReasonNoControlPoints DegenerateReason = "no_control_points"
)

// Outcome is the result of processing one command sequence.
type Outcome struct {
	Status Status           `yaml:"status" json:"status"`
	Reason DegenerateReason `yaml:"reason,omitempty" json:"reason,omitempty"`

	Path        *motion.ProcessedPathData `yaml:"path" json:"path"`
	Diagnostics Diagnostics               `yaml:"diagnostics" json:"diagnostics"`
}

// Degenerate reports whether a fallback path was produced.
func (o *Outcome) Degenerate() bool {
	return o.Status == StatusDegenerate
}

// Diagnostics records what each stage did, for logging and tests.
type Diagnostics struct {
	CommandCount   int `yaml:"command_count" json:"commandCount"`
	FilteredCount  int `yaml:"filtered_count" json:"filteredCount"`
	AugmentedCount int `yaml:"augmented_count" json:"augmentedCount"`

	// BlendedCorners are indices into the filtered waypoints.
	BlendedCorners []int `yaml:"blended_corners,omitempty" json:"blendedCorners,omitempty"`

	// DegenerateOrientations are command indices whose position and target
	// coincided and reused the previous orientation.
	DegenerateOrientations []int `yaml:"degenerate_orientations,omitempty" json:"degenerateOrientations,omitempty"`

	// WaypointDurations are per filtered waypoint; merged waypoints add their
	// duration to the most recently kept one.
	WaypointDurations []float64 `yaml:"waypoint_durations" json:"waypointDurations"`

	// DurationClamped is set when the total duration was raised to epsilon.
	DurationClamped bool `yaml:"duration_clamped,omitempty" json:"durationClamped,omitempty"`
}
