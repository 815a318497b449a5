// Package pipeline runs a camera request through analysis, validation and
// path processing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/camsynth/internal/config"
	"github.com/Faultbox/camsynth/internal/constraints"
	"github.com/Faultbox/camsynth/internal/logger"
	"github.com/Faultbox/camsynth/internal/motion"
	"github.com/Faultbox/camsynth/internal/pathproc"
	"github.com/Faultbox/camsynth/internal/validator"
	"github.com/Faultbox/camsynth/pkg/math"
)

// ErrRejected is wrapped by Run when validation rejects a request. The
// *motion.ValidationError carrying the code and index is also in the chain.
var ErrRejected = errors.New("camera path rejected")

// Request is one camera path synthesis job.
type Request struct {
	// ID identifies the request in logs and results. Generated when empty.
	ID string

	Scene constraints.SceneAnalysis

	// InitialOrientation is the camera orientation before the first command.
	// When nil, the default orbit framing of the object is used.
	InitialOrientation *math.Quat

	Commands []motion.CameraCommand
}

// Result is what Run produced for one request. Fields are filled in stage
// order, so a failed request still reports how far it got.
type Result struct {
	RequestID  string
	Analysis   *constraints.EnvironmentalAnalysis
	Validation *motion.ValidationResult
	Outcome    *pathproc.Outcome
}

// Pipeline wires the constraint solver, validator and path processor.
// It is safe for concurrent use; each request gets its own solver.
type Pipeline struct {
	solverCfg constraints.Config
	validator *validator.Validator
	processor *pathproc.Processor
	workers   int
	log       *zap.Logger
}

// New builds a pipeline from cfg. A nil logger discards output.
func New(cfg *config.Config, log *zap.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log = logger.OrNop(log)

	proc, err := pathproc.NewProcessor(cfg.ProcessorConfig(), log)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		solverCfg: cfg.SolverConfig(),
		validator: validator.New(log),
		processor: proc,
		workers:   cfg.Batch.Workers,
		log:       log.Named("pipeline"),
	}, nil
}

// Analyze runs the constraint solver alone.
func (p *Pipeline) Analyze(scene constraints.SceneAnalysis) (constraints.EnvironmentalAnalysis, error) {
	return constraints.Analyze(p.solverCfg, scene, p.log)
}

// Validate analyzes the scene and validates the commands without building a
// path. Errors are as for Run.
func (p *Pipeline) Validate(req Request) (*Result, error) {
	res, _, err := p.check(req)
	return res, err
}

// Run analyzes the scene, validates the commands against the object and the
// derived limits, and processes them into a sampled path.
//
// Analysis and structural failures are returned as errors. A rejected path
// returns the Result with its Validation set and an error wrapping
// ErrRejected. Degenerate paths are not errors; check Result.Outcome.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	res, log, err := p.check(req)
	if err != nil {
		return res, err
	}

	var initial math.Quat
	if req.InitialOrientation != nil {
		initial = *req.InitialOrientation
	} else {
		initial = constraints.FrameObject(*res.Analysis, 0).Orientation()
	}

	out, err := p.processor.Process(ctx, req.Commands, initial)
	if err != nil {
		log.Error("Path processing failed", zap.Error(err))
		return res, err
	}
	res.Outcome = out

	if out.Path.IsOriginFallback() {
		log.Error("Path collapsed to the origin fallback, check upstream waypoints",
			zap.Int("commands", len(req.Commands)))
	}

	log.Info("Request processed",
		zap.Int("commands", len(req.Commands)),
		zap.String("status", string(out.Status)),
		zap.String("reason", string(out.Reason)),
		zap.Int("samples", out.Path.SampleCount()),
		zap.Float64("duration", out.Path.TotalDuration),
		zap.Duration("elapsed", time.Since(start)))

	return res, nil
}

// check runs analysis and validation and returns a logger tagged with the
// request id.
func (p *Pipeline) check(req Request) (*Result, *zap.Logger, error) {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	log := p.log.With(zap.String("request_id", id))

	res := &Result{RequestID: id}

	solver := constraints.NewSolver(p.solverCfg, log)
	if err := solver.Initialize(req.Scene); err != nil {
		log.Error("Scene analysis failed", zap.Error(err))
		return res, log, err
	}
	analysis, err := solver.Analyze()
	if err != nil {
		return res, log, err
	}
	res.Analysis = &analysis

	box := analysis.Object.BoundingBox
	limits := analysis.CameraConstraints
	vr := p.validator.Validate(req.Commands, &box, &limits)
	res.Validation = &vr
	if !vr.IsValid {
		log.Warn("Commands rejected",
			zap.String("code", string(vr.Code)),
			zap.Int("index", vr.Index),
			zap.Strings("errors", vr.Errors))
		return res, log, fmt.Errorf("%w: %w", ErrRejected, vr.Err())
	}

	vr.Warnings = append(vr.Warnings, placementWarnings(req.Commands, limits)...)
	for _, w := range vr.Warnings {
		log.Warn("Validation warning", zap.String("warning", w))
	}
	return res, log, nil
}

// placementWarnings reports commands outside the recommended height and
// distance range. Authored paths may leave the range briefly, so these only
// warn.
func placementWarnings(cmds []motion.CameraCommand, limits constraints.CameraConstraints) []string {
	var warnings []string
	for i, c := range cmds {
		if r := constraints.CheckPlacement(limits, c.Position, c.Target); !r.IsValid {
			warnings = append(warnings, fmt.Sprintf("command %d: %s", i, strings.Join(r.Errors, "; ")))
		}
	}
	return warnings
}
