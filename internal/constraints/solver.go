package constraints

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/camsynth/internal/logger"
	"github.com/Faultbox/camsynth/internal/motion"
	"github.com/Faultbox/camsynth/pkg/math"
)

// Solver derives environment bounds, object measurements and camera
// constraints for one object. A Solver is request-scoped and not safe for
// concurrent mutation; create one per request.
type Solver struct {
	cfg Config
	log *zap.Logger

	object   *ObjectMeasurements
	analysis *EnvironmentalAnalysis
}

// NewSolver creates a solver. A nil logger disables logging.
func NewSolver(cfg Config, log *zap.Logger) *Solver {
	return &Solver{
		cfg: cfg,
		log: logger.OrNop(log).Named("constraints"),
	}
}

// Initialize measures the object described by scene and computes the
// environmental analysis. It fails with *motion.AnalysisError when the scene
// is missing its bounds or center, or holds non-finite values.
func (s *Solver) Initialize(scene SceneAnalysis) error {
	obj, err := measure(scene)
	if err != nil {
		return err
	}
	s.object = &obj
	s.recompute()
	return nil
}

// SetFloorOffset moves the object vertically so its lowest point sits at
// offset above the ground plane, then recomputes the analysis.
func (s *Solver) SetFloorOffset(offset float64) error {
	if s.object == nil {
		return &motion.AnalysisError{Reason: "floor offset set before object", Err: motion.ErrNotInitialized}
	}
	if gomath.IsNaN(offset) || gomath.IsInf(offset, 0) {
		return &motion.StructuralError{Index: -1, Field: "floor_offset", Reason: fmt.Sprintf("must be finite, got %v", offset)}
	}

	shift := math.Vec3{Y: offset - s.object.BoundingBox.Min.Y}
	s.object.BoundingBox.Min = s.object.BoundingBox.Min.Add(shift)
	s.object.BoundingBox.Max = s.object.BoundingBox.Max.Add(shift)
	s.object.Center = s.object.Center.Add(shift)
	s.object.FloorOffset = offset
	s.recompute()
	return nil
}

// Analyze returns the current analysis.
func (s *Solver) Analyze() (EnvironmentalAnalysis, error) {
	if s.analysis == nil {
		return EnvironmentalAnalysis{}, &motion.AnalysisError{Reason: "analyze called before initialize", Err: motion.ErrNotInitialized}
	}
	return *s.analysis, nil
}

// ValidateCameraPosition checks a candidate camera placement against the
// current constraints: position.Y must lie in [MinHeight, MaxHeight] and the
// distance to target in [MinDistance, MaxDistance].
func (s *Solver) ValidateCameraPosition(position, target math.Vec3) (motion.ValidationResult, error) {
	if s.analysis == nil {
		return motion.ValidationResult{}, &motion.AnalysisError{Reason: "validate called before initialize", Err: motion.ErrNotInitialized}
	}
	return CheckPlacement(s.analysis.CameraConstraints, position, target), nil
}

// CheckPlacement is the pure form of Solver.ValidateCameraPosition.
func CheckPlacement(c CameraConstraints, position, target math.Vec3) motion.ValidationResult {
	if err := motion.CheckVector(-1, "position", position); err != nil {
		return motion.Invalid(&motion.ValidationError{Code: motion.CodeInvalidStructure, Index: -1, Message: err.Error()})
	}
	if err := motion.CheckVector(-1, "target", target); err != nil {
		return motion.Invalid(&motion.ValidationError{Code: motion.CodeInvalidStructure, Index: -1, Message: err.Error()})
	}

	height := position.Y
	if height < c.MinHeight || height > c.MaxHeight {
		return motion.Invalid(&motion.ValidationError{
			Code:    motion.CodeHeightOutOfRange,
			Index:   -1,
			Message: fmt.Sprintf("height %.3f outside [%.3f, %.3f]", height, c.MinHeight, c.MaxHeight),
		})
	}

	distance := position.Distance(target)
	if distance < c.MinDistance || distance > c.MaxDistance {
		return motion.Invalid(&motion.ValidationError{
			Code:    motion.CodeDistanceOutOfRange,
			Index:   -1,
			Message: fmt.Sprintf("distance %.3f outside [%.3f, %.3f]", distance, c.MinDistance, c.MaxDistance),
		})
	}

	return motion.Valid()
}

// Analyze is a one-shot helper: initialize a solver and return its analysis.
func Analyze(cfg Config, scene SceneAnalysis, log *zap.Logger) (EnvironmentalAnalysis, error) {
	s := NewSolver(cfg, log)
	if err := s.Initialize(scene); err != nil {
		return EnvironmentalAnalysis{}, err
	}
	return s.Analyze()
}

func (s *Solver) recompute() {
	env := environmentBounds(s.cfg.Environment)
	a := EnvironmentalAnalysis{
		Environment:       env,
		Object:            *s.object,
		Distances:         distances(env.Bounds, s.object.BoundingBox),
		CameraConstraints: s.cameraConstraints(s.object.Dimensions.Y),
	}
	s.analysis = &a

	s.log.Debug("environment analyzed",
		zap.Float64("object_height", s.object.Dimensions.Y),
		zap.Float64("floor_offset", s.object.FloorOffset),
		zap.Float64("min_height", a.CameraConstraints.MinHeight),
		zap.Float64("max_height", a.CameraConstraints.MaxHeight),
		zap.Float64("min_distance", a.CameraConstraints.MinDistance),
		zap.Float64("max_distance", a.CameraConstraints.MaxDistance))
}

func (s *Solver) cameraConstraints(height float64) CameraConstraints {
	c := CameraConstraints{
		MaxSpeed:       s.cfg.MaxSpeed,
		MaxAngleChange: s.cfg.MaxAngleChange,
	}

	if height <= s.cfg.FlatEpsilon {
		s.log.Warn("object height is ~0, using fallback camera range",
			zap.Float64("height", height))
		c.MinHeight = s.cfg.FallbackMinHeight
		c.MaxHeight = s.cfg.FallbackMaxHeight
		c.MinDistance = s.cfg.FallbackMinDistance
		c.MaxDistance = s.cfg.FallbackMaxDistance
		return c
	}

	c.MinHeight = height * s.cfg.MinHeightFactor
	c.MaxHeight = height * s.cfg.MaxHeightFactor
	c.MinDistance = height * s.cfg.MinDistanceFactor
	c.MaxDistance = height * s.cfg.MaxDistanceFactor
	return c
}

// measure copies the scene analysis into ObjectMeasurements.
func measure(scene SceneAnalysis) (ObjectMeasurements, error) {
	if scene.BoundingBox == nil {
		return ObjectMeasurements{}, &motion.AnalysisError{Reason: "scene analysis missing bounding box"}
	}
	if scene.Center == nil {
		return ObjectMeasurements{}, &motion.AnalysisError{Reason: "scene analysis missing center"}
	}

	box := math.NewAABB(scene.BoundingBox.Min, scene.BoundingBox.Max)
	if !box.IsFinite() {
		return ObjectMeasurements{}, &motion.AnalysisError{Reason: "bounding box has non-finite values"}
	}
	if !scene.Center.IsFinite() {
		return ObjectMeasurements{}, &motion.AnalysisError{Reason: "center has non-finite values"}
	}

	dims := box.Size()
	if scene.Dimensions != nil {
		if !scene.Dimensions.IsFinite() {
			return ObjectMeasurements{}, &motion.AnalysisError{Reason: "dimensions have non-finite values"}
		}
		dims = *scene.Dimensions
	}
	if dims.X < 0 || dims.Y < 0 || dims.Z < 0 {
		return ObjectMeasurements{}, &motion.AnalysisError{Reason: fmt.Sprintf("negative dimensions %v", dims)}
	}

	return ObjectMeasurements{
		BoundingBox: box,
		Center:      *scene.Center,
		Dimensions:  dims,
		FloorOffset: box.Min.Y,
	}, nil
}

// environmentBounds centers the volume horizontally on the origin and spans
// [0, height] vertically from the ground plane.
func environmentBounds(size EnvironmentSize) EnvironmentBounds {
	return EnvironmentBounds{
		Bounds: math.AABB{
			Min: math.Vec3{X: -size.Width / 2, Y: 0, Z: -size.Depth / 2},
			Max: math.Vec3{X: size.Width / 2, Y: size.Height, Z: size.Depth / 2},
		},
		Width:  size.Width,
		Height: size.Height,
		Depth:  size.Depth,
	}
}

func distances(env, obj math.AABB) DistanceMeasurements {
	return DistanceMeasurements{
		Left:   gomath.Abs(obj.Min.X - env.Min.X),
		Right:  gomath.Abs(env.Max.X - obj.Max.X),
		Front:  gomath.Abs(env.Max.Z - obj.Max.Z),
		Back:   gomath.Abs(obj.Min.Z - env.Min.Z),
		Top:    gomath.Abs(env.Max.Y - obj.Max.Y),
		Bottom: gomath.Abs(obj.Min.Y - env.Min.Y),
	}
}
