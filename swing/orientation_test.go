package swing

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestOrientationSolverFrame(t *testing.T) {
	cases := []struct {
		name string
		vel  mgl64.Vec3
		rope mgl64.Vec3
	}{
		{"swing_x", mgl64.Vec3{100, 0, 0}, mgl64.Vec3{0, 0, 1}},
		{"swing_y", mgl64.Vec3{0, -300, 0}, mgl64.Vec3{0, 0, 1}},
		{"tilted_rope", mgl64.Vec3{50, 0, -50}, mgl64.Vec3{1, 0, 1}.Normalize()},
		{"not_perpendicular", mgl64.Vec3{100, 20, 80}, mgl64.Vec3{0, 0, 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := NewOrientationSolver().Solve(c.vel, c.rope)

			for _, axis := range []mgl64.Vec3{o.Forward, o.Right, o.Up} {
				if math.Abs(axis.Len()-1) > 1e-9 {
					t.Fatalf("axis %v not unit", axis)
				}
			}
			if math.Abs(o.Forward.Dot(o.Right)) > 1e-9 || math.Abs(o.Forward.Dot(o.Up)) > 1e-9 || math.Abs(o.Right.Dot(o.Up)) > 1e-9 {
				t.Fatalf("frame not orthogonal: %+v", o)
			}
			if !vecNear(o.Up, c.rope.Normalize()) {
				t.Fatalf("up %v, want rope %v", o.Up, c.rope)
			}
			if !vecNear(o.Forward.Cross(o.Right), o.Up) {
				t.Fatalf("frame is not right-handed: %+v", o)
			}
			if o.Forward.Dot(c.vel) <= 0 {
				t.Fatalf("forward %v points away from velocity %v", o.Forward, c.vel)
			}
		})
	}
}

func TestOrientationSolverDegenerateKeepsLast(t *testing.T) {
	s := NewOrientationSolver()

	if got := s.Solve(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}); got != IdentityOrientation() {
		t.Fatalf("first degenerate solve should be identity, got %+v", got)
	}

	good := s.Solve(mgl64.Vec3{0, 100, 0}, mgl64.Vec3{0, 0, 1})

	degenerate := []struct {
		name string
		vel  mgl64.Vec3
		rope mgl64.Vec3
	}{
		{"zero_velocity", mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}},
		{"zero_rope", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{}},
		{"parallel", mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, 1}},
		{"nan", mgl64.Vec3{math.NaN(), 0, 0}, mgl64.Vec3{0, 0, 1}},
	}
	for _, c := range degenerate {
		t.Run(c.name, func(t *testing.T) {
			if got := s.Solve(c.vel, c.rope); got != good {
				t.Fatalf("got %+v, want last %+v", got, good)
			}
		})
	}
}

func TestOrientationQuatRotatesIdentityFrame(t *testing.T) {
	o := NewOrientationSolver().Solve(mgl64.Vec3{0, 100, 0}, mgl64.Vec3{0, 0, 1})
	q := o.Quat()

	if got := q.Rotate(mgl64.Vec3{1, 0, 0}); !vecNear(got, o.Forward) {
		t.Fatalf("rotated X = %v, want forward %v", got, o.Forward)
	}
	if got := q.Rotate(mgl64.Vec3{0, 0, 1}); !vecNear(got, o.Up) {
		t.Fatalf("rotated Z = %v, want up %v", got, o.Up)
	}
}

// vecNear compares by distance; mgl64's ApproxEqualThreshold squares the
// threshold when a component is exactly zero.
func vecNear(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() <= 1e-9
}
