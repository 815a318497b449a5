package validator

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/camsynth/internal/constraints"
	"github.com/Faultbox/camsynth/internal/motion"
	"github.com/Faultbox/camsynth/pkg/math"
)

var unitBox = math.AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

func at(x, y, z, d float64) motion.CameraCommand {
	return motion.CameraCommand{
		Position: math.Vec3{X: x, Y: y, Z: z},
		Target:   math.Vec3{},
		Duration: d,
	}
}

func TestValidateAcceptsPathOutsideBox(t *testing.T) {
	cmds := []motion.CameraCommand{at(5, 0, 0, 1), at(0, 0, 5, 1), at(-5, 0, 0, 1)}

	res := New(nil).Validate(cmds, &unitBox, nil)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.Equal(t, -1, res.Index)
}

func TestValidateRejectsPositionInsideBox(t *testing.T) {
	tests := []struct {
		name  string
		cmds  []motion.CameraCommand
		index int
	}{
		{"center", []motion.CameraCommand{at(5, 0, 0, 1), at(0, 0, 0, 1)}, 1},
		{"on face is inside", []motion.CameraCommand{at(1, 0, 0, 1)}, 0},
		{"on corner is inside", []motion.CameraCommand{at(5, 5, 5, 1), at(5, 0, 0, 1), at(-1, -1, -1, 1)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(nil).Validate(tt.cmds, &unitBox, nil)
			require.False(t, res.IsValid)
			assert.Equal(t, motion.CodeBoundingBox, res.Code)
			assert.Equal(t, tt.index, res.Index)
			require.Len(t, res.Errors, 1)
			assert.Contains(t, res.Errors[0], "PATH_VIOLATION_BOUNDING_BOX")
		})
	}
}

func TestValidateStructuralBeforeSpatial(t *testing.T) {
	// Command 0 is inside the box but command 1 is malformed: structure wins
	cmds := []motion.CameraCommand{at(0, 0, 0, 1), at(5, 0, 0, gomath.NaN())}

	res := New(nil).Validate(cmds, &unitBox, nil)
	require.False(t, res.IsValid)
	assert.Equal(t, motion.CodeInvalidStructure, res.Code)
	assert.Equal(t, 1, res.Index)
	assert.Contains(t, res.Errors[0], "duration")
}

func TestValidateStructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		cmd   motion.CameraCommand
		field string
	}{
		{"nan position", at(gomath.NaN(), 0, 0, 1), "position.x"},
		{"inf target", motion.CameraCommand{Position: math.Vec3{X: 5}, Target: math.Vec3{Y: gomath.Inf(1)}, Duration: 1}, "target.y"},
		{"negative duration", at(5, 0, 0, -0.5), "duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(nil).Validate([]motion.CameraCommand{at(5, 5, 5, 1), tt.cmd}, &unitBox, nil)
			require.False(t, res.IsValid)
			assert.Equal(t, 1, res.Index)
			assert.Contains(t, res.Errors[0], tt.field)
		})
	}
}

func TestValidateWithoutBoxWarns(t *testing.T) {
	cmds := []motion.CameraCommand{at(0, 0, 0, 1)}

	res := New(nil).Validate(cmds, nil, nil)
	assert.True(t, res.IsValid)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "containment check skipped")
}

func TestValidateCrossingIsWarningOnly(t *testing.T) {
	cmds := []motion.CameraCommand{at(-5, 0, 0, 1), at(5, 0, 0, 1)}

	res := New(nil).Validate(cmds, &unitBox, nil)
	assert.True(t, res.IsValid)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "0->1")
}

func TestValidateSpeedLimit(t *testing.T) {
	limits := &constraints.CameraConstraints{MaxSpeed: 2}

	slow := []motion.CameraCommand{at(5, 0, 0, 1), at(5, 0, 4, 2)}
	assert.True(t, New(nil).Validate(slow, &unitBox, limits).IsValid)

	fast := []motion.CameraCommand{at(5, 0, 0, 1), at(5, 0, 4, 1)}
	res := New(nil).Validate(fast, &unitBox, limits)
	require.False(t, res.IsValid)
	assert.Equal(t, motion.CodeSpeedLimit, res.Code)
	assert.Equal(t, 1, res.Index)

	teleport := []motion.CameraCommand{at(5, 0, 0, 1), at(5, 0, 4, 0)}
	res = New(nil).Validate(teleport, &unitBox, limits)
	assert.Equal(t, motion.CodeSpeedLimit, res.Code)
}

func TestValidateAngleLimit(t *testing.T) {
	limits := &constraints.CameraConstraints{MaxAngleChange: gomath.Pi / 4}

	// Both look at the origin from 90 degrees apart
	cmds := []motion.CameraCommand{at(5, 0, 0, 1), at(0, 0, 5, 1)}
	res := New(nil).Validate(cmds, &unitBox, limits)
	require.False(t, res.IsValid)
	assert.Equal(t, motion.CodeAngleLimit, res.Code)

	gentle := []motion.CameraCommand{at(5, 0, 0, 1), at(5, 0, 1, 1)}
	assert.True(t, New(nil).Validate(gentle, &unitBox, limits).IsValid)
}

func TestValidateZeroLimitsSkipped(t *testing.T) {
	cmds := []motion.CameraCommand{at(5, 0, 0, 1), at(-5, 5, 0, 0)}
	res := New(nil).Validate(cmds, &unitBox, &constraints.CameraConstraints{})
	assert.True(t, res.IsValid)
}
