package pathproc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/camsynth/internal/logger"
	"github.com/Faultbox/camsynth/internal/motion"
	"github.com/Faultbox/camsynth/pkg/math"
)

// Processor turns command sequences into sampled paths. It holds no
// per-request state and is safe for concurrent use.
type Processor struct {
	cfg Config
	log *zap.Logger
}

// NewProcessor creates a processor. A nil logger discards output.
func NewProcessor(cfg Config, log *zap.Logger) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("path processor config: %w", err)
	}
	return &Processor{cfg: cfg, log: logger.OrNop(log).Named("pathproc")}, nil
}

// Config returns the processor's tunables.
func (p *Processor) Config() Config {
	return p.cfg
}

// Process builds a smoothed, sampled path from cmds starting at the initial
// orientation.
//
// Zero commands fail with motion.ErrNoCommands and malformed input fails with
// a *motion.StructuralError. Degenerate geometry is not an error: the
// returned Outcome carries StatusDegenerate and a reason instead.
func (p *Processor) Process(ctx context.Context, cmds []motion.CameraCommand, initial math.Quat) (*Outcome, error) {
	if len(cmds) == 0 {
		return nil, motion.ErrNoCommands
	}
	if err := motion.CheckCommands(cmds); err != nil {
		return nil, err
	}
	if !initial.IsFinite() {
		return nil, &motion.StructuralError{Index: -1, Field: "initial orientation", Reason: "must be finite"}
	}
	if initial.IsZero() {
		return nil, &motion.StructuralError{Index: -1, Field: "initial orientation", Reason: "must have non-zero length"}
	}
	initial = initial.Normalize()

	out := &Outcome{Status: StatusOK}
	diag := &out.Diagnostics
	diag.CommandCount = len(cmds)

	positions := make([]math.Vec3, len(cmds))
	durations := make([]float64, len(cmds))
	easings := make([]motion.Easing, len(cmds))
	for i, c := range cmds {
		positions[i] = c.Position
		durations[i] = c.Duration
		easings[i] = c.Easing
	}

	total := p.totalDuration(durations, diag)
	n, ok := p.cfg.sampleCount(total)
	if !ok {
		return nil, &motion.StructuralError{
			Index:  -1,
			Field:  "duration",
			Reason: fmt.Sprintf("total %v s needs more than %d samples", total, p.cfg.MaxSamples),
		}
	}
	// Orientation
	keys := p.orient(cmds, initial, diag)

	path := &motion.ProcessedPathData{
		KeyframeQuaternions: keys,
		SegmentDurations:    durations,
		SegmentEasings:      easings,
		TotalDuration:       total,
	}
	out.Path = path

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Deduplication
	filtered, waypointDur := p.dedup(positions, durations)
	diag.FilteredCount = len(filtered)
	diag.WaypointDurations = waypointDur

	if len(filtered) == 1 {
		out.Status = StatusDegenerate
		out.Reason = ReasonSinglePosition
		diag.AugmentedCount = 1
		path.SampledPositions = constant(filtered[0], n)
		p.log.Warn("All waypoints share one position, holding still",
			zap.Int("commands", len(cmds)),
			zap.Int("samples", n))
		return out, nil
	}

	// Corner blending
	augmented := p.blendCorners(filtered, diag)
	diag.AugmentedCount = len(augmented)
	if len(diag.BlendedCorners) > 0 {
		p.log.Debug("Blended sharp corners", zap.Ints("corners", diag.BlendedCorners))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Curve
	c, err := newCurve(augmented, p.cfg.ArcLengthDivisions)
	if err != nil {
		p.log.Warn("Curve construction failed, falling back to origin",
			zap.Int("controlPoints", len(augmented)),
			zap.Error(err))
		out.Status = StatusDegenerate
		out.Reason = ReasonNoControlPoints
		c, _ = newCurve([]math.Vec3{{}, {}}, p.cfg.ArcLengthDivisions)
	}

	// Sampling
	path.SampledPositions = sample(c, n)

	p.log.Debug("Path processed",
		zap.Int("commands", diag.CommandCount),
		zap.Int("filtered", diag.FilteredCount),
		zap.Int("augmented", diag.AugmentedCount),
		zap.Int("samples", n),
		zap.Float64("duration", total),
		zap.Float64("length", c.Length()))

	return out, nil
}
