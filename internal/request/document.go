// Package request reads camera requests from and writes results to YAML
// documents.
package request

import (
	"fmt"

	"github.com/Faultbox/camsynth/internal/constraints"
	"github.com/Faultbox/camsynth/internal/motion"
	"github.com/Faultbox/camsynth/internal/pathproc"
	"github.com/Faultbox/camsynth/internal/pipeline"
	"github.com/Faultbox/camsynth/pkg/math"
)

// Document is a camera request as written on disk. Vectors are [x, y, z]
// lists and the orientation is an [x, y, z, w] list.
type Document struct {
	ID                 string    `yaml:"id,omitempty"`
	Object             Object    `yaml:"object"`
	InitialOrientation []float64 `yaml:"initial_orientation,omitempty"`
	Commands           []Command `yaml:"commands"`
}

// Object is the analyzed object's geometry. Min, Max and Center are required.
type Object struct {
	Min        []float64 `yaml:"min"`
	Max        []float64 `yaml:"max"`
	Center     []float64 `yaml:"center"`
	Dimensions []float64 `yaml:"dimensions,omitempty"`
}

// Command is one waypoint.
type Command struct {
	Position []float64     `yaml:"position"`
	Target   []float64     `yaml:"target"`
	Duration float64       `yaml:"duration"`
	Easing   motion.Easing `yaml:"easing,omitempty"`
}

// Request converts the document into a pipeline request. Vectors with the
// wrong number of components fail with a *motion.StructuralError.
func (d *Document) Request() (pipeline.Request, error) {
	req := pipeline.Request{ID: d.ID}

	scene, err := d.Object.scene()
	if err != nil {
		return req, err
	}
	req.Scene = scene

	if d.InitialOrientation != nil {
		if len(d.InitialOrientation) != 4 {
			return req, &motion.StructuralError{
				Index:  -1,
				Field:  "initial_orientation",
				Reason: fmt.Sprintf("expected 4 components, got %d", len(d.InitialOrientation)),
			}
		}
		q := math.Quat{
			X: d.InitialOrientation[0],
			Y: d.InitialOrientation[1],
			Z: d.InitialOrientation[2],
			W: d.InitialOrientation[3],
		}
		req.InitialOrientation = &q
	}

	req.Commands = make([]motion.CameraCommand, len(d.Commands))
	for i, c := range d.Commands {
		pos, err := vec3(i, "position", c.Position)
		if err != nil {
			return req, err
		}
		target, err := vec3(i, "target", c.Target)
		if err != nil {
			return req, err
		}
		req.Commands[i] = motion.CameraCommand{
			Position: pos,
			Target:   target,
			Duration: c.Duration,
			Easing:   c.Easing,
		}
	}
	return req, nil
}

func (o Object) scene() (constraints.SceneAnalysis, error) {
	var scene constraints.SceneAnalysis

	// Missing geometry is left nil for the solver to reject.
	if o.Min != nil || o.Max != nil {
		lo, err := vec3(-1, "object.min", o.Min)
		if err != nil {
			return scene, err
		}
		hi, err := vec3(-1, "object.max", o.Max)
		if err != nil {
			return scene, err
		}
		box := math.NewAABB(lo, hi)
		scene.BoundingBox = &box
	}
	if o.Center != nil {
		c, err := vec3(-1, "object.center", o.Center)
		if err != nil {
			return scene, err
		}
		scene.Center = &c
	}
	if o.Dimensions != nil {
		d, err := vec3(-1, "object.dimensions", o.Dimensions)
		if err != nil {
			return scene, err
		}
		scene.Dimensions = &d
	}
	return scene, nil
}

func vec3(index int, field string, v []float64) (math.Vec3, error) {
	if len(v) != 3 {
		return math.Vec3{}, &motion.StructuralError{
			Index:  index,
			Field:  field,
			Reason: fmt.Sprintf("expected 3 components, got %d", len(v)),
		}
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

// FromRequest builds the on-disk form of req.
func FromRequest(req pipeline.Request) Document {
	doc := Document{ID: req.ID}
	if b := req.Scene.BoundingBox; b != nil {
		doc.Object.Min = list(b.Min)
		doc.Object.Max = list(b.Max)
	}
	if c := req.Scene.Center; c != nil {
		doc.Object.Center = list(*c)
	}
	if d := req.Scene.Dimensions; d != nil {
		doc.Object.Dimensions = list(*d)
	}
	if q := req.InitialOrientation; q != nil {
		doc.InitialOrientation = []float64{q.X, q.Y, q.Z, q.W}
	}
	for _, c := range req.Commands {
		doc.Commands = append(doc.Commands, Command{
			Position: list(c.Position),
			Target:   list(c.Target),
			Duration: c.Duration,
			Easing:   c.Easing,
		})
	}
	return doc
}

func list(v math.Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Status summarizes how a request ended.
type Status string

const (
	StatusOK         Status = "ok"
	StatusDegenerate Status = "degenerate"
	StatusRejected   Status = "rejected"
	StatusFailed     Status = "failed"
)

// ResultDocument is a pipeline result as written on disk.
type ResultDocument struct {
	RequestID  string                             `yaml:"request_id"`
	Status     Status                             `yaml:"status"`
	Reason     pathproc.DegenerateReason          `yaml:"reason,omitempty"`
	Error      string                             `yaml:"error,omitempty"`
	Analysis   *constraints.EnvironmentalAnalysis `yaml:"analysis,omitempty"`
	Validation *motion.ValidationResult           `yaml:"validation,omitempty"`
	Outcome    *pathproc.Outcome                  `yaml:"outcome,omitempty"`
}

// NewResultDocument summarizes the result and error returned by
// pipeline.Run.
func NewResultDocument(res *pipeline.Result, err error) ResultDocument {
	var doc ResultDocument
	if res != nil {
		doc.RequestID = res.RequestID
		doc.Analysis = res.Analysis
		doc.Validation = res.Validation
		doc.Outcome = res.Outcome
	}

	switch {
	case err != nil && res != nil && res.Validation != nil && !res.Validation.IsValid:
		doc.Status = StatusRejected
		doc.Error = err.Error()
	case err != nil:
		doc.Status = StatusFailed
		doc.Error = err.Error()
	case doc.Outcome != nil && doc.Outcome.Degenerate():
		doc.Status = StatusDegenerate
		doc.Reason = doc.Outcome.Reason
	default:
		doc.Status = StatusOK
	}
	return doc
}
