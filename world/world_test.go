package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grapple/swing"
)

func testLevel() Level {
	return Level{
		Width:  4000,
		Height: 3000,
		Blocks: []Block{
			{Name: "ground", MinX: 0, MinZ: 0, MaxX: 4000, MaxZ: 100},
			{Name: "ceiling", MinX: 1000, MinZ: 2000, MaxX: 3000, MaxZ: 2100},
		},
	}
}

func TestQueryLineOfSight(t *testing.T) {
	w := NewWorld(testLevel(), -980)
	c := w.AddCharacter(mgl64.Vec3{2000, 0, 1000}, DefaultCharacterConfig())

	cases := []struct {
		name      string
		start     mgl64.Vec3
		end       mgl64.Vec3
		wantHit   bool
		wantZ     float64
		wantActor any
	}{
		{"up_to_ceiling", mgl64.Vec3{2000, 0, 1000}, mgl64.Vec3{2000, 0, 11000}, true, 2000, "ceiling"},
		{"down_to_ground", mgl64.Vec3{500, 0, 1000}, mgl64.Vec3{500, 0, -1000}, true, 100, "ground"},
		{"open_sky", mgl64.Vec3{500, 0, 1000}, mgl64.Vec3{500, 0, 1500}, false, 0, nil},
		{"zero_length", mgl64.Vec3{500, 0, 1000}, mgl64.Vec3{500, 0, 1000}, false, 0, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := w.QueryLineOfSight(tc.start, tc.end, c)
			if ok != tc.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tc.wantHit)
			}
			if !ok {
				return
			}
			if math.Abs(hit.Point.Z()-tc.wantZ) > 1e-6 {
				t.Fatalf("hit z = %v, want %v", hit.Point.Z(), tc.wantZ)
			}
			if hit.Actor != tc.wantActor {
				t.Fatalf("actor = %v, want %v", hit.Actor, tc.wantActor)
			}
		})
	}
}

func TestQueryLineOfSightIgnoresCharacter(t *testing.T) {
	w := NewWorld(testLevel(), -980)
	c := w.AddCharacter(mgl64.Vec3{500, 0, 1000}, DefaultCharacterConfig())

	// from below the character straight through it
	start := mgl64.Vec3{500, 0, 800}
	end := mgl64.Vec3{500, 0, 2900}

	hit, ok := w.QueryLineOfSight(start, end, c)
	if ok {
		t.Fatalf("expected a miss past the ignored character, got %+v", hit)
	}
	hit, ok = w.QueryLineOfSight(start, end, nil)
	if !ok || hit.Actor != c {
		t.Fatalf("without ignore the character should block, got %+v ok=%v", hit, ok)
	}
}

func TestCharacterLandsOnGround(t *testing.T) {
	w := NewWorld(testLevel(), -980)
	c := w.AddCharacter(mgl64.Vec3{500, 0, 400}, DefaultCharacterConfig())

	for i := 0; i < 180; i++ {
		w.Step(1.0 / 60)
	}
	if !c.Grounded() {
		t.Fatalf("character should be grounded, z = %v", c.Position().Z())
	}
	_, h := c.Size()
	if z := c.Position().Z(); math.Abs(z-(100+h/2)) > 2 {
		t.Fatalf("resting z = %v, want ~%v", z, 100+h/2)
	}
}

func TestCharacterGravityScale(t *testing.T) {
	w := NewWorld(testLevel(), -980)
	c := w.AddCharacter(mgl64.Vec3{500, 0, 1000}, DefaultCharacterConfig())
	c.SetTuning(swing.MovementTuning{})

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}
	if v := c.Velocity(); v.Len() > 1e-9 {
		t.Fatalf("zero gravity scale should leave the body at rest, v = %v", v)
	}
	if z := c.Position().Z(); math.Abs(z-1000) > 1e-9 {
		t.Fatalf("z = %v, want 1000", z)
	}
}

func TestCharacterFallingBraking(t *testing.T) {
	cases := []struct {
		name   string
		tuning swing.MovementTuning
		slower bool
	}{
		{"default_brakes", DefaultCharacterConfig().Tuning, true},
		{"swing_tuning_keeps_speed", swing.MovementTuning{GravityScale: 1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(testLevel(), -980)
			c := w.AddCharacter(mgl64.Vec3{500, 0, 1500}, DefaultCharacterConfig())
			c.SetTuning(tc.tuning)
			c.SetVelocity(mgl64.Vec3{400, 0, 0})

			for i := 0; i < 10; i++ {
				w.Step(1.0 / 60)
			}
			vx := c.Velocity().X()
			if tc.slower && vx >= 400 {
				t.Fatalf("expected braking, vx = %v", vx)
			}
			if !tc.slower && math.Abs(vx-400) > 1e-9 {
				t.Fatalf("expected no braking, vx = %v", vx)
			}
		})
	}
}

func TestCharacterSetVelocityDropsY(t *testing.T) {
	w := NewWorld(testLevel(), -980)
	c := w.AddCharacter(mgl64.Vec3{500, 0, 1500}, DefaultCharacterConfig())

	c.SetVelocity(mgl64.Vec3{10, 99, -20})
	if v := c.Velocity(); v != (mgl64.Vec3{10, 0, -20}) {
		t.Fatalf("velocity = %v", v)
	}
}

func TestCharacterForwardFollowsOrientation(t *testing.T) {
	w := NewWorld(testLevel(), -980)
	c := w.AddCharacter(mgl64.Vec3{500, 0, 1500}, DefaultCharacterConfig())

	c.MoveInput(-1)
	if c.Forward() != (mgl64.Vec3{-1, 0, 0}) {
		t.Fatalf("forward = %v after moving left", c.Forward())
	}

	o := swing.NewOrientationSolver().Solve(mgl64.Vec3{100, 0, -100}, mgl64.Vec3{1, 0, 1}.Normalize())
	c.SetOrientation(o)
	if !vecNear(c.Forward(), o.Forward) {
		t.Fatalf("forward = %v, want %v", c.Forward(), o.Forward)
	}
}

func TestMoverReversesAfterRange(t *testing.T) {
	w := NewWorld(Level{}, 0)
	m := w.AddMover(MoverConfig{
		Name:        "lift",
		Center:      mgl64.Vec3{0, 0, 0},
		Width:       100,
		Height:      20,
		Direction:   mgl64.Vec3{0, 0, 1},
		TravelSpeed: 100,
		Range:       100,
	})

	for i := 0; i < 4; i++ {
		w.Step(0.25)
	}
	if z := m.Position().Z(); math.Abs(z-100) > 1e-6 {
		t.Fatalf("after one second z = %v, want 100", z)
	}
	for i := 0; i < 4; i++ {
		w.Step(0.25)
	}
	if z := m.Position().Z(); math.Abs(z) > 1e-6 {
		t.Fatalf("after reversing z = %v, want 0", z)
	}

	hit, ok := w.QueryLineOfSight(mgl64.Vec3{0, 0, 500}, mgl64.Vec3{0, 0, -500}, nil)
	if !ok || hit.Actor != m {
		t.Fatalf("mover should be hookable, got %+v ok=%v", hit, ok)
	}
}

func vecNear(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() <= 1e-9
}
