package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/milk9111/grapple/prefabs"
	"github.com/milk9111/grapple/script"
	"github.com/milk9111/grapple/sim"
)

type options struct {
	scenario string
	frames   int
	dt       float64
	every    int
}

func main() {
	scenario := flag.String("scenario", "pendulum", "scenario script in prefabs/scripts (basename, .tengo optional)")
	frames := flag.Int("frames", 0, "frames to simulate; 0 runs until the scenario finishes")
	dt := flag.Float64("dt", 1.0/60, "fixed step in seconds")
	every := flag.Int("every", 30, "log a sample every N frames; 0 disables samples")
	list := flag.Bool("list", false, "list embedded scenarios and exit")
	flag.Parse()

	if *list {
		fmt.Println(strings.Join(prefabs.ScriptNames(), "\n"))
		return
	}

	opts := options{scenario: *scenario, frames: *frames, dt: *dt, every: *every}
	if err := run(opts, log.New(os.Stdout, "", 0)); err != nil {
		log.Fatal(err)
	}
}

// maxFrames bounds scenarios that never call finish.
const maxFrames = 60 * 60 * 10

func run(opts options, out *log.Logger) error {
	if opts.dt <= 0 {
		return fmt.Errorf("swingsim: dt must be positive, got %v", opts.dt)
	}

	swingSpec, err := prefabs.LoadSwingSpec()
	if err != nil {
		return err
	}
	cfg, err := swingSpec.Config()
	if err != nil {
		return err
	}
	levelSpec, err := prefabs.LoadLevelSpec()
	if err != nil {
		return err
	}
	sc, err := script.Load(opts.scenario)
	if err != nil {
		return err
	}

	session, err := sim.NewSession(cfg, swingSpec.CharacterConfig(), *levelSpec, sim.WithLogger(out))
	if err != nil {
		return err
	}

	limit := opts.frames
	if limit <= 0 {
		limit = maxFrames
	}

	out.Printf("swingsim: scenario=%s level=%s dt=%.4f", sc.Name(), levelSpec.Name, opts.dt)
	prev := session.State()
	frame := 0
	for ; frame < limit; frame++ {
		if opts.frames <= 0 && sc.Done() {
			break
		}
		if err := sc.Step(frame, session); err != nil {
			return err
		}
		for _, line := range sc.Logs() {
			out.Printf("[%05d] script: %s", frame, line)
		}

		session.Step(opts.dt)

		if st := session.State(); st != prev {
			out.Printf("[%05d] %s -> %s", frame, prev, st)
			prev = st
		}
		if opts.every > 0 && frame%opts.every == 0 {
			logSample(out, frame, session)
		}
	}

	x, z := session.Position()
	out.Printf("swingsim: done after %d frames at (%.1f, %.1f) state=%s", frame, x, z, session.State())
	return nil
}

func logSample(out *log.Logger, frame int, s *sim.Session) {
	x, z := s.Position()
	q := s.Character.Orientation().Quat()
	out.Printf("[%05d] state=%-8s pos=(%7.1f, %7.1f) speed=%7.1f fov=%6.2f rot=(%.3f, %.3f, %.3f, %.3f)",
		frame, s.State(), x, z, s.Speed(), s.FOV(), q.W, q.V[0], q.V[1], q.V[2])
}
