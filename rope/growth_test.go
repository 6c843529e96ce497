package rope

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestGrowthReachesTargetAndStops(t *testing.T) {
	cases := []struct {
		name   string
		target mgl64.Vec3
		speed  float64
		dt     float64
	}{
		{"prop_default", mgl64.Vec3{2000, 0, 0}, 300, 1.0 / 60},
		{"diagonal", mgl64.Vec3{300, 400, 0}, 100, 0.25},
		{"overshooting_step", mgl64.Vec3{0, 0, 50}, 1000, 1},
		{"inside_epsilon", mgl64.Vec3{5, 0, 0}, 300, 1.0 / 60},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewGrowthAnimator(DefaultEpsilon)
			g.Start(mgl64.Vec3{}, c.target, c.speed)

			prev := 0.0
			for i := 0; i < 100000 && g.Growing(); i++ {
				p := g.Tick(c.dt)
				d := p.Len()
				if d < prev {
					t.Fatalf("endpoint moved backwards: %v after %v", d, prev)
				}
				if d > c.target.Len()+1e-9 {
					t.Fatalf("endpoint %v passed target %v", p, c.target)
				}
				prev = d
			}
			if g.Growing() {
				t.Fatalf("still growing")
			}
			if g.Endpoint() != c.target {
				t.Fatalf("endpoint = %v, want exact target %v", g.Endpoint(), c.target)
			}
		})
	}
}

func TestGrowthIdempotentAfterStop(t *testing.T) {
	g := NewGrowthAnimator(DefaultEpsilon)
	g.Start(mgl64.Vec3{}, mgl64.Vec3{0, 0, 100}, 1000)
	g.Tick(1)
	if g.Growing() {
		t.Fatalf("expected stop after a full step")
	}

	want := g.Endpoint()
	for _, dt := range []float64{0, 1.0 / 60, 1, 100} {
		if got := g.Tick(dt); got != want || g.Growing() {
			t.Fatalf("Tick(%v) = %v growing=%v, want %v stopped", dt, got, g.Growing(), want)
		}
	}
}

func TestGrowthRestart(t *testing.T) {
	g := NewProp(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{0, 0, 2}, 0, 0, 0)
	if g.Target() != (mgl64.Vec3{10, 0, DefaultLength}) {
		t.Fatalf("target = %v", g.Target())
	}

	for g.Growing() {
		g.Tick(1)
	}
	g.Restart()
	if !g.Growing() || g.Endpoint() != g.Origin() {
		t.Fatalf("restart should rewind to origin, got %v growing=%v", g.Endpoint(), g.Growing())
	}

	p := g.Tick(1)
	if math.Abs(p.Z()-DefaultSpeed) > 1e-9 {
		t.Fatalf("first second of growth = %v, want %v", p.Z(), DefaultSpeed)
	}
}
