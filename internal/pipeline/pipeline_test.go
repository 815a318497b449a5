package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/camsynth/internal/config"
	"github.com/Faultbox/camsynth/internal/constraints"
	"github.com/Faultbox/camsynth/internal/motion"
	"github.com/Faultbox/camsynth/internal/pathproc"
	"github.com/Faultbox/camsynth/pkg/math"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := New(config.Default(), nil)
	require.NoError(t, err)
	return p
}

// cubeScene is a 2x2x2 object resting on the ground at the origin.
func cubeScene() constraints.SceneAnalysis {
	box := math.AABB{Min: math.Vec3{X: -1, Y: 0, Z: -1}, Max: math.Vec3{X: 1, Y: 2, Z: 1}}
	center := box.Center()
	return constraints.SceneAnalysis{BoundingBox: &box, Center: &center}
}

func orbitCommands() []motion.CameraCommand {
	target := math.Vec3{Y: 1}
	return []motion.CameraCommand{
		{Position: math.Vec3{X: 5, Y: 3, Z: 0}, Target: target, Duration: 1},
		{Position: math.Vec3{X: 0, Y: 3, Z: 5}, Target: target, Duration: 1.5},
		{Position: math.Vec3{X: -5, Y: 3, Z: 0}, Target: target, Duration: 1.5},
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Path.SampleRate = -1

	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	p := newTestPipeline(t)

	res, err := p.Run(context.Background(), Request{Scene: cubeScene(), Commands: orbitCommands()})
	require.NoError(t, err)

	_, err = uuid.Parse(res.RequestID)
	assert.NoError(t, err, "generated request id should be a uuid")

	require.NotNil(t, res.Analysis)
	assert.InDelta(t, 10, res.Analysis.CameraConstraints.MaxDistance, 1e-12)

	require.NotNil(t, res.Validation)
	assert.True(t, res.Validation.IsValid)

	require.NotNil(t, res.Outcome)
	assert.Equal(t, pathproc.StatusOK, res.Outcome.Status)
	assert.Equal(t, 240, res.Outcome.Path.SampleCount())
	assert.Len(t, res.Outcome.Path.KeyframeQuaternions, 4)
}

func TestRunWarnsOnPlacementOutsideRange(t *testing.T) {
	p := newTestPipeline(t)
	cmds := orbitCommands()
	// Far above the allowed maximum height of 6
	cmds[1].Position.Y = 9

	res, err := p.Run(context.Background(), Request{Scene: cubeScene(), Commands: cmds})
	require.NoError(t, err)
	require.Len(t, res.Validation.Warnings, 1)
	assert.Contains(t, res.Validation.Warnings[0], "command 1")
}

func TestRunKeepsRequestID(t *testing.T) {
	p := newTestPipeline(t)

	res, err := p.Run(context.Background(), Request{ID: "req-7", Scene: cubeScene(), Commands: orbitCommands()})
	require.NoError(t, err)
	assert.Equal(t, "req-7", res.RequestID)
}

func TestRunDefaultInitialOrientation(t *testing.T) {
	p := newTestPipeline(t)

	res, err := p.Run(context.Background(), Request{Scene: cubeScene(), Commands: orbitCommands()})
	require.NoError(t, err)

	want := constraints.FrameObject(*res.Analysis, 0).Orientation()
	assert.InDelta(t, 1, res.Outcome.Path.KeyframeQuaternions[0].Dot(want), 1e-12)
}

func TestRunExplicitInitialOrientation(t *testing.T) {
	p := newTestPipeline(t)
	q := math.QuatFromAxisAngle(math.Up, 1)

	res, err := p.Run(context.Background(), Request{Scene: cubeScene(), InitialOrientation: &q, Commands: orbitCommands()})
	require.NoError(t, err)
	assert.InDelta(t, 1, res.Outcome.Path.KeyframeQuaternions[0].Dot(q), 1e-12)
}

func TestRunAnalysisError(t *testing.T) {
	p := newTestPipeline(t)

	res, err := p.Run(context.Background(), Request{Commands: orbitCommands()})
	require.Error(t, err)

	var aerr *motion.AnalysisError
	assert.True(t, errors.As(err, &aerr))
	assert.Nil(t, res.Analysis)
	assert.Nil(t, res.Outcome)
}

func TestRunRejectsCameraInsideObject(t *testing.T) {
	p := newTestPipeline(t)
	cmds := orbitCommands()
	cmds[1].Position = math.Vec3{X: 0.5, Y: 1, Z: 0.5}

	res, err := p.Run(context.Background(), Request{Scene: cubeScene(), Commands: cmds})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)

	var verr *motion.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, motion.CodeBoundingBox, verr.Code)
	assert.Equal(t, 1, verr.Index)

	require.NotNil(t, res.Validation)
	assert.False(t, res.Validation.IsValid)
	assert.Nil(t, res.Outcome, "rejected paths must not be processed")
}

func TestRunRejectsMalformedCommand(t *testing.T) {
	p := newTestPipeline(t)
	cmds := orbitCommands()
	cmds[2].Duration = -1

	res, err := p.Run(context.Background(), Request{Scene: cubeScene(), Commands: cmds})
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, motion.CodeInvalidStructure, res.Validation.Code)
	assert.Equal(t, 2, res.Validation.Index)
}

func TestRunNoCommands(t *testing.T) {
	p := newTestPipeline(t)

	res, err := p.Run(context.Background(), Request{Scene: cubeScene()})
	assert.ErrorIs(t, err, motion.ErrNoCommands)
	assert.Nil(t, res.Outcome)
}

func TestRunDegenerate(t *testing.T) {
	p := newTestPipeline(t)
	cmds := []motion.CameraCommand{{Position: math.Vec3{X: 4, Y: 2, Z: 4}, Target: math.Vec3{Y: 1}, Duration: 2}}

	res, err := p.Run(context.Background(), Request{Scene: cubeScene(), Commands: cmds})
	require.NoError(t, err)
	assert.True(t, res.Outcome.Degenerate())
	assert.Equal(t, pathproc.ReasonSinglePosition, res.Outcome.Reason)
}

func TestRunBatch(t *testing.T) {
	cfg := config.Default()
	cfg.Batch.Workers = 3
	p, err := New(cfg, nil)
	require.NoError(t, err)

	var reqs []Request
	for i := 0; i < 10; i++ {
		reqs = append(reqs, Request{ID: fmt.Sprintf("req-%d", i), Scene: cubeScene(), Commands: orbitCommands()})
	}
	// One bad request must not affect the others
	bad := orbitCommands()
	bad[0].Position = math.Vec3{Y: 1}
	reqs[4].Commands = bad

	items, err := p.RunBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, items, len(reqs))

	for i, it := range items {
		if i == 4 {
			assert.ErrorIs(t, it.Err, ErrRejected)
			continue
		}
		require.NoError(t, it.Err, "request %d", i)
		assert.Equal(t, reqs[i].ID, it.Result.RequestID)
		assert.Equal(t, 240, it.Result.Outcome.Path.SampleCount())
	}

	// Parallel runs agree with a sequential one
	seq, err := p.Run(context.Background(), reqs[0])
	require.NoError(t, err)
	assert.Equal(t, seq.Outcome, items[0].Result.Outcome)
}

func TestRunBatchCancelled(t *testing.T) {
	p := newTestPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reqs := []Request{{Scene: cubeScene(), Commands: orbitCommands()}, {Scene: cubeScene(), Commands: orbitCommands()}}
	items, err := p.RunBatch(ctx, reqs)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Error(t, it.Err)
	}
}

func TestRunBatchEmpty(t *testing.T) {
	p := newTestPipeline(t)

	items, err := p.RunBatch(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestValidateDoesNotProcess(t *testing.T) {
	p := newTestPipeline(t)

	res, err := p.Validate(Request{Scene: cubeScene(), Commands: orbitCommands()})
	require.NoError(t, err)
	assert.True(t, res.Validation.IsValid)
	assert.NotNil(t, res.Analysis)
	assert.Nil(t, res.Outcome)
}

func TestAnalyze(t *testing.T) {
	p := newTestPipeline(t)

	a, err := p.Analyze(cubeScene())
	require.NoError(t, err)
	assert.InDelta(t, 6, a.CameraConstraints.MaxHeight, 1e-12)
}
