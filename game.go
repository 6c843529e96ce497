package main

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/grapple/common"
	"github.com/milk9111/grapple/obj"
	"github.com/milk9111/grapple/prefabs"
	"github.com/milk9111/grapple/script"
	"github.com/milk9111/grapple/sim"
	"github.com/milk9111/grapple/swing"
	"github.com/milk9111/grapple/world"
	"golang.org/x/image/font/gofont/goregular"
)

// baseZoom is the camera zoom at the configured base field of view.
const baseZoom = 0.5

type gameOptions struct {
	debug    bool
	watch    bool
	scenario string
}

type Game struct {
	session *sim.Session
	camera  *obj.Camera
	input   *obj.Input
	watcher *prefabs.Watcher

	cfg     swing.Config
	charCfg world.CharacterConfig

	scenarioName  string
	scenario      *script.Scenario
	scenarioStart int

	pauseUI *ebitenui.UI
	readout *widget.Text
	paused  bool

	hudFace text.Face
	debug   bool
	status  string
}

func NewGame(opts gameOptions) (*Game, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	swingSpec, err := prefabs.LoadSwingSpec()
	if err != nil {
		return nil, err
	}
	cfg, err := swingSpec.Config()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:          cfg,
		charCfg:      swingSpec.CharacterConfig(),
		scenarioName: opts.scenario,
		hudFace:      &text.GoTextFace{Source: src, Size: 16},
		debug:        opts.debug,
	}
	g.camera = obj.NewCamera(common.BaseWidth, common.BaseHeight, baseZoom, cfg.BaseFOV)
	g.input = obj.NewInput(g.camera)

	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	if g.scenarioName != "" {
		if err := g.loadScenario(); err != nil {
			return nil, err
		}
	}

	if opts.watch {
		g.startWatcher()
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) loadLevel() error {
	levelSpec, err := prefabs.LoadLevelSpec()
	if err != nil {
		return err
	}
	session, err := sim.NewSession(g.cfg, g.charCfg, *levelSpec, sim.WithCamera(g.camera))
	if err != nil {
		return err
	}
	g.session = session

	spawn := levelSpec.SpawnPoint()
	g.camera.SetWorldBounds(levelSpec.Width, levelSpec.Height)
	g.camera.SetBaseFOV(g.cfg.BaseFOV)
	g.camera.SetFieldOfView(g.cfg.BaseFOV)
	g.camera.SnapTo(spawn.X(), spawn.Z())
	g.scenarioStart = session.Frame()
	return nil
}

func (g *Game) loadScenario() error {
	sc, err := script.Load(g.scenarioName)
	if err != nil {
		return err
	}
	g.scenario = sc
	g.scenarioStart = g.session.Frame()
	return nil
}

// startWatcher watches the on-disk prefabs when running from the repo root.
// The embedded copies are used otherwise and nothing is watched.
func (g *Game) startWatcher() {
	var dirs []string
	for _, dir := range []string{"prefabs", "prefabs/scripts"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("hot reload disabled: %v", err)
		return
	}
	g.watcher = w
}

func (g *Game) Close() {
	if err := g.watcher.Close(); err != nil {
		log.Printf("close watcher: %v", err)
	}
}

func (g *Game) Update() error {
	g.pollWatcher()

	muzzle := g.session.Muzzle()
	g.input.Update(muzzle.X(), muzzle.Z())
	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.refreshReadout()
		g.pauseUI.Update()
		return nil
	}

	if g.scenario != nil && !g.scenario.Done() {
		g.stepScenario()
	} else {
		g.applyInput()
	}

	g.session.Step(1.0 / float64(ebiten.TPS()))

	x, z := g.session.Position()
	g.camera.Update(x, z)
	return nil
}

func (g *Game) applyInput() {
	in := g.input
	s := g.session

	s.Move(in.MoveX)
	if in.JumpPressed {
		s.Jump()
	}
	s.SetBoost(in.BoostHeld)
	if in.FirePressed {
		s.AimAt(mgl64.Vec3{in.AimWorldX, 0, in.AimWorldZ})
		if !s.Fire() && s.State() == swing.Idle.String() {
			g.status = "nothing to hook"
		}
	}
	if in.FireReleased {
		s.Release()
	}
	if in.RestartPressed {
		s.RestartProps()
	}
}

func (g *Game) stepScenario() {
	frame := g.session.Frame() - g.scenarioStart
	if err := g.scenario.Step(frame, g.session); err != nil {
		log.Printf("scenario %s: %v", g.scenario.Name(), err)
		g.scenario = nil
		return
	}
	for _, line := range g.scenario.Logs() {
		log.Printf("script: %s", line)
		g.status = line
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	var err error
	switch prefabs.Classify(path) {
	case prefabs.FileSwing:
		err = g.reloadSwing()
	case prefabs.FileLevel:
		err = g.loadLevel()
	case prefabs.FileScript:
		if g.scenarioName == "" {
			return
		}
		err = g.loadScenario()
	default:
		return
	}
	if err != nil {
		log.Printf("reload %s: %v", path, err)
		g.status = "reload failed, see log"
		return
	}
	log.Printf("reloaded %s", path)
	g.status = "reloaded " + path
}

// reloadSwing pushes new swing settings into the running session. Character
// settings only change the body, so they wait for the next level load.
func (g *Game) reloadSwing() error {
	spec, err := prefabs.LoadSwingSpec()
	if err != nil {
		return err
	}
	cfg, err := spec.Config()
	if err != nil {
		return err
	}
	if err := g.session.Reconfigure(cfg); err != nil {
		return err
	}
	g.cfg = cfg
	g.charCfg = spec.CharacterConfig()
	g.camera.SetBaseFOV(cfg.BaseFOV)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background())
	g.camera.Render(screen, g.drawWorld)
	g.drawHUD(screen)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
