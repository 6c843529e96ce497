package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestMapRangeClamped(t *testing.T) {
	cases := []struct {
		name string
		v    float64
		want float64
	}{
		{"below", -50, 90},
		{"zero", 0, 90},
		{"half", 750, 100},
		{"max", 1500, 110},
		{"above", 4000, 110},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := MapRangeClamped(c.v, 0, 1500, 90, 110)
			if math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("MapRangeClamped(%v) = %v, want %v", c.v, got, c.want)
			}
		})
	}

	if got := MapRangeClamped(10, 5, 5, 1, 2); got != 1 {
		t.Fatalf("empty input range should map to outMin, got %v", got)
	}
}

func TestExpInterpNeverOvershoots(t *testing.T) {
	for _, dt := range []float64{0.001, 1.0 / 60, 0.5, 10, 1000} {
		got := ExpInterp(90, 110, dt, 5)
		if got < 90 || got > 110 {
			t.Fatalf("dt=%v: got %v outside [90, 110]", dt, got)
		}
	}
	if got := ExpInterp(90, 110, 0, 5); got != 90 {
		t.Fatalf("zero dt should not move, got %v", got)
	}
}

func TestClampDelta(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-1, 0},
		{math.NaN(), 0},
		{0.016, 0.016},
		{2, 0.1},
	}
	for _, c := range cases {
		if got := ClampDelta(c.in, 0.1); got != c.want {
			t.Fatalf("ClampDelta(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSafeNormal(t *testing.T) {
	if _, ok := SafeNormal(mgl64.Vec3{}, Epsilon); ok {
		t.Fatalf("zero vector should not normalize")
	}
	if _, ok := SafeNormal(mgl64.Vec3{math.NaN(), 0, 0}, Epsilon); ok {
		t.Fatalf("NaN vector should not normalize")
	}
	n, ok := SafeNormal(mgl64.Vec3{0, 3, 4}, Epsilon)
	if !ok || math.Abs(n.Len()-1) > 1e-12 {
		t.Fatalf("expected unit vector, got %v ok=%v", n, ok)
	}
}

func TestClampLength(t *testing.T) {
	v := ClampLength(mgl64.Vec3{300, 400, 0}, 100)
	if math.Abs(v.Len()-100) > 1e-9 {
		t.Fatalf("expected length 100, got %v", v.Len())
	}
	short := mgl64.Vec3{1, 2, 3}
	if ClampLength(short, 100) != short {
		t.Fatalf("short vector should be unchanged")
	}
}
