package script

import (
	"strings"
	"testing"
)

type fakeDriver struct {
	fires    int
	releases int
	boost    bool
	move     float64
	jumps    int
	aimX     float64
	aimZ     float64
	state    string
	hit      bool
}

func (d *fakeDriver) Fire() bool {
	d.fires++
	if d.hit {
		d.state = "swinging"
	}
	return d.hit
}
func (d *fakeDriver) Release()                 { d.releases++; d.state = "idle" }
func (d *fakeDriver) SetBoost(active bool)     { d.boost = active }
func (d *fakeDriver) Move(x float64)           { d.move = x }
func (d *fakeDriver) Jump()                    { d.jumps++ }
func (d *fakeDriver) Aim(x, z float64)         { d.aimX, d.aimZ = x, z }
func (d *fakeDriver) State() string            { return d.state }
func (d *fakeDriver) Speed() float64           { return 1234.5 }
func (d *fakeDriver) FOV() float64             { return 97 }
func (d *fakeDriver) Position() (float64, float64) { return 10, 20 }

func TestScenarioDrivesEngine(t *testing.T) {
	src := `
update := func(engine, state, frame) {
	if frame == 0 {
		engine.aim(0.5, 1)
		state.hooked = engine.fire()
		engine.boost(true)
		engine.move(-1)
		engine.jump()
	}
	if frame == 1 && state.hooked && engine.state() == "swinging" {
		engine.log("speed", engine.speed(), "fov", engine.fov())
		engine.boost(false)
		engine.release()
	}
	if frame == 2 {
		pos := engine.position()
		engine.log(pos[0] + pos[1])
		engine.finish()
	}
}
`
	sc, err := Compile("inline", []byte(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	d := &fakeDriver{hit: true, state: "idle"}

	for frame := 0; frame < 10 && !sc.Done(); frame++ {
		if err := sc.Step(frame, d); err != nil {
			t.Fatalf("Step(%d): %v", frame, err)
		}
	}

	if !sc.Done() {
		t.Fatalf("scenario should have finished")
	}
	if d.fires != 1 || d.releases != 1 || d.jumps != 1 {
		t.Fatalf("fires=%d releases=%d jumps=%d", d.fires, d.releases, d.jumps)
	}
	if d.boost {
		t.Fatalf("boost should be off")
	}
	if d.move != -1 || d.aimX != 0.5 || d.aimZ != 1 {
		t.Fatalf("move=%v aim=(%v, %v)", d.move, d.aimX, d.aimZ)
	}

	logs := sc.Logs()
	if len(logs) != 2 || !strings.HasPrefix(logs[0], "speed 1234.5") || logs[1] != "30" {
		t.Fatalf("logs = %q", logs)
	}
	if len(sc.Logs()) != 0 {
		t.Fatalf("Logs should clear")
	}

	// finished scenarios ignore further steps
	if err := sc.Step(100, d); err != nil || d.fires != 1 {
		t.Fatalf("step after finish: err=%v fires=%d", err, d.fires)
	}
}

func TestScenarioErrors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		compile bool
	}{
		{"missing_update", `x := 1`, true},
		{"syntax", `update := func(engine, state, frame) {`, true},
		{"bad_argument", `update := func(engine, state, frame) { engine.move("left") }`, false},
		{"missing_argument", `update := func(engine, state, frame) { engine.aim(1) }`, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sc, err := Compile(c.name, []byte(c.src))
			if c.compile {
				if err == nil {
					t.Fatalf("expected compile error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if err := sc.Step(0, &fakeDriver{}); err == nil {
				t.Fatalf("expected runtime error")
			}
		})
	}
}

func TestLoadEmbeddedScenarios(t *testing.T) {
	for _, name := range []string{"pendulum", "boost", "walk_and_swing"} {
		t.Run(name, func(t *testing.T) {
			sc, err := Load(name)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			d := &fakeDriver{hit: true, state: "idle"}
			for frame := 0; frame < 1000 && !sc.Done(); frame++ {
				if err := sc.Step(frame, d); err != nil {
					t.Fatalf("Step(%d): %v", frame, err)
				}
			}
			if !sc.Done() {
				t.Fatalf("%s never finished", name)
			}
			if d.fires == 0 {
				t.Fatalf("%s never fired", name)
			}
		})
	}
}
