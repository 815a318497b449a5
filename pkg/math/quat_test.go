package math

import (
	gomath "math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()

	length := gomath.Sqrt(n.Dot(n))
	if gomath.Abs(length-1.0) > 1e-12 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatIsZero(t *testing.T) {
	tests := []struct {
		q    Quat
		zero bool
	}{
		{Quat{}, true},
		{Quat{W: 1e-13}, true},
		{QuatIdentity(), false},
		{Quat{X: 0.5}, false},
	}
	for _, tt := range tests {
		if got := tt.q.IsZero(); got != tt.zero {
			t.Errorf("%v.IsZero() = %v, want %v", tt.q, got, tt.zero)
		}
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, gomath.Pi/2)

	if r := q1.Slerp(q2, 0); gomath.Abs(r.W-q1.W) > 1e-9 {
		t.Errorf("Slerp at t=0 should equal q1")
	}
	if r := q1.Slerp(q2, 1); gomath.Abs(r.W-q2.W) > 1e-9 {
		t.Errorf("Slerp at t=1 should equal q2")
	}

	// Halfway through a 90 degree turn is 45 degrees
	r := q1.Slerp(q2, 0.5)
	expectedW := gomath.Cos(gomath.Pi / 8)
	if gomath.Abs(r.W-expectedW) > 1e-9 {
		t.Errorf("Slerp at t=0.5: expected W ~%v, got %v", expectedW, r.W)
	}
}

func TestQuatRotationMatrixRoundTrip(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 2, 3}.Normalize(), 1.1)
	back := QuatFromRotation(q.ToMat4())

	// q and -q are the same rotation
	if gomath.Abs(gomath.Abs(q.Dot(back))-1) > 1e-9 {
		t.Errorf("round trip mismatch: %v vs %v", q, back)
	}
}

func TestQuatLookAt(t *testing.T) {
	tests := []struct {
		name        string
		eye, target Vec3
	}{
		{"down -Z", Vec3{0, 0, 5}, Vec3{0, 0, 0}},
		{"down +X", Vec3{0, 0, 0}, Vec3{10, 0, 0}},
		{"oblique", Vec3{3, 4, 5}, Vec3{-1, 0, 2}},
		{"straight down", Vec3{0, 10, 0}, Vec3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatLookAt(tt.eye, tt.target, Up)
			if !q.IsFinite() {
				t.Fatalf("QuatLookAt produced non-finite quaternion %v", q)
			}

			got := q.Rotate(Forward)
			want := tt.target.Sub(tt.eye).Normalize()
			if got.Sub(want).Length() > 1e-3 {
				t.Errorf("forward = %v, want %v", got, want)
			}
		})
	}
}

func TestQuatLookAtIdentity(t *testing.T) {
	q := QuatLookAt(Vec3{0, 0, 5}, Vec3{}, Up)
	if gomath.Abs(q.W-1) > 1e-12 {
		t.Errorf("camera already facing -Z should have identity orientation, got %v", q)
	}
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, gomath.Pi/2)
	v := Vec3{1, 0, 0}

	byQuat := q.Rotate(v)
	byMat := q.ToMat4().TransformDirection(v)
	if byQuat.Sub(byMat).Length() > 1e-12 {
		t.Errorf("Rotate = %v, matrix = %v", byQuat, byMat)
	}
	// 90 degrees about Y takes +X to -Z
	if byQuat.Sub(Vec3{0, 0, -1}).Length() > 1e-12 {
		t.Errorf("Rotate = %v, want (0,0,-1)", byQuat)
	}
}
