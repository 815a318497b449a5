package pathproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/camsynth/pkg/math"
)

func TestNewCurveNeedsTwoPoints(t *testing.T) {
	_, err := newCurve(nil, 200)
	assert.ErrorIs(t, err, errTooFewControlPoints)

	_, err = newCurve([]math.Vec3{{X: 1}}, 200)
	assert.ErrorIs(t, err, errTooFewControlPoints)
}

func TestCurvePassesThroughControlPoints(t *testing.T) {
	pts := []math.Vec3{{}, {X: 1, Y: 2}, {X: 4, Y: 2, Z: 1}, {X: 5, Z: 7}, {X: -1, Y: 1, Z: 8}}
	c, err := newCurve(pts, 200)
	require.NoError(t, err)

	for i, want := range pts {
		got := c.point(float64(i) / float64(len(pts)-1))
		assert.InDelta(t, 0, got.Distance(want), 1e-9, "control point %d", i)
	}
}

func TestCurveArcLength(t *testing.T) {
	c, err := newCurve([]math.Vec3{{}, {X: 3, Y: 4}}, 200)
	require.NoError(t, err)

	assert.InDelta(t, 5, c.Length(), 1e-9)
	assert.Len(t, c.lengths, 201)
	for i := 1; i < len(c.lengths); i++ {
		assert.GreaterOrEqual(t, c.lengths[i], c.lengths[i-1])
	}
}

func TestCurveEvenArcLengthSampling(t *testing.T) {
	// Uneven spacing would make parameter-uniform samples bunch up
	pts := []math.Vec3{{}, {X: 0.5}, {X: 1}, {X: 9}, {X: 10, Z: 4}}
	c, err := newCurve(pts, 200)
	require.NoError(t, err)

	buf := sample(c, 50)
	require.Len(t, buf, 150)

	step := c.Length() / 49
	for i := 1; i < 50; i++ {
		a := math.Vec3{X: buf[(i-1)*3], Y: buf[(i-1)*3+1], Z: buf[(i-1)*3+2]}
		b := math.Vec3{X: buf[i*3], Y: buf[i*3+1], Z: buf[i*3+2]}
		assert.InDelta(t, step, a.Distance(b), step*0.1, "sample %d", i)
	}
}

func TestCurveCoincidentPointsStayFinite(t *testing.T) {
	c, err := newCurve([]math.Vec3{{X: 1}, {X: 1}, {X: 2, Z: 1}}, 200)
	require.NoError(t, err)

	for i := 0; i <= 20; i++ {
		assert.True(t, c.PointAt(float64(i)/20).IsFinite())
	}
}

func TestOriginCurve(t *testing.T) {
	c, err := newCurve([]math.Vec3{{}, {}}, 200)
	require.NoError(t, err)

	assert.Equal(t, 0.0, c.Length())
	buf := sample(c, 4)
	for _, v := range buf {
		assert.Equal(t, 0.0, v)
	}
}

func TestUToTEndpoints(t *testing.T) {
	c, err := newCurve([]math.Vec3{{}, {X: 2}, {X: 2, Z: 2}}, 200)
	require.NoError(t, err)

	assert.Equal(t, 0.0, c.uToT(0))
	assert.Equal(t, 1.0, c.uToT(1))

	prev := 0.0
	for i := 1; i <= 10; i++ {
		tt := c.uToT(float64(i) / 10)
		assert.Greater(t, tt, prev)
		prev = tt
	}
}
