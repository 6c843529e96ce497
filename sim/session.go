package sim

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grapple/common"
	"github.com/milk9111/grapple/prefabs"
	"github.com/milk9111/grapple/rope"
	"github.com/milk9111/grapple/swing"
	"github.com/milk9111/grapple/world"
)

// Session wires one level, one character and one swing controller together.
// It is driven by a frame loop calling Step and is not safe for concurrent
// use.
type Session struct {
	World      *world.World
	Character  *world.Character
	Controller *swing.Controller
	Props      []*rope.GrowthAnimator

	level   prefabs.LevelSpec
	cfg     swing.Config
	charCfg world.CharacterConfig
	camera  swing.Camera
	log     *log.Logger

	aim     mgl64.Vec3
	pending *swing.Config
	frame   int
}

type Option func(*Session)

func WithCamera(c swing.Camera) Option {
	return func(s *Session) {
		s.camera = c
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func NewSession(cfg swing.Config, charCfg world.CharacterConfig, level prefabs.LevelSpec, opts ...Option) (*Session, error) {
	s := &Session{
		level:   level,
		cfg:     cfg,
		charCfg: charCfg,
		log:     log.Default(),
		aim:     mgl64.Vec3{0, 0, 1},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.World = world.NewWorld(level.Level(), cfg.Gravity.Z())
	s.Character = s.World.AddCharacter(level.SpawnPoint(), charCfg)

	ctrl, err := s.newController(cfg)
	if err != nil {
		return nil, err
	}
	s.Controller = ctrl

	for _, p := range level.Props {
		speed := p.Speed
		if speed <= 0 {
			speed = cfg.RopeTravelSpeed
		}
		s.Props = append(s.Props, rope.NewProp(
			mgl64.Vec3{p.X, 0, p.Z},
			mgl64.Vec3{p.DirX, 0, p.DirZ},
			p.Length,
			speed,
			cfg.RopeGrowthEpsilon,
		))
	}
	return s, nil
}

func (s *Session) newController(cfg swing.Config, opts ...swing.Option) (*swing.Controller, error) {
	opts = append([]swing.Option{swing.WithLogger(s.log)}, opts...)
	ctrl, err := swing.NewController(cfg, s.Character, s.Character, s.camera, s.World, s.Character, opts...)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	return ctrl, nil
}

// Reconfigure swaps in a new swing config. While swinging the swap waits
// until the character is back to Idle so the captured tuning is restored by
// the controller that captured it.
func (s *Session) Reconfigure(cfg swing.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("sim: reconfigure: %w", err)
	}
	if s.Controller.State() == swing.Swinging {
		s.pending = &cfg
		s.log.Printf("sim: config change deferred until release")
		return nil
	}
	return s.apply(cfg)
}

func (s *Session) apply(cfg swing.Config) error {
	ctrl, err := s.newController(cfg, swing.WithFOV(s.Controller.FOV()))
	if err != nil {
		return err
	}
	boost := s.Controller.Boosting()
	s.Controller = ctrl
	s.Controller.SetBoost(boost)
	s.cfg = cfg
	s.pending = nil
	s.log.Printf("sim: swing config applied")
	return nil
}

// Step runs one frame: swing first so the world integrates the velocity the
// controller wrote, then the physics space, then the cosmetic props.
func (s *Session) Step(dt float64) {
	if s.pending != nil && s.Controller.State() == swing.Idle {
		if err := s.apply(*s.pending); err != nil {
			s.log.Printf("sim: %v", err)
			s.pending = nil
		}
	}

	dt = common.ClampDelta(dt, s.cfg.MaxDeltaTime)
	s.Controller.Tick(dt, s.Character.Position())
	s.World.Step(dt)
	for _, p := range s.Props {
		p.Tick(dt)
	}
	s.frame++
}

func (s *Session) RestartProps() {
	for _, p := range s.Props {
		p.Restart()
	}
}

func (s *Session) Frame() int {
	return s.frame
}

func (s *Session) Config() swing.Config {
	return s.cfg
}

func (s *Session) Level() prefabs.LevelSpec {
	return s.level
}

// Muzzle is where hooks are fired from.
func (s *Session) Muzzle() mgl64.Vec3 {
	_, h := s.Character.Size()
	return s.Character.Position().Add(mgl64.Vec3{0, 0, h / 4})
}

func (s *Session) AimDirection() mgl64.Vec3 {
	return s.aim
}

// AimAt points the hook at a world position.
func (s *Session) AimAt(target mgl64.Vec3) {
	s.Aim(target.X()-s.Muzzle().X(), target.Z()-s.Muzzle().Z())
}

// Fire, Release and SetBoost are the input bindings; they feed the
// controller's On* entry points.
func (s *Session) Fire() bool {
	return s.Controller.OnFire(s.Muzzle(), s.aim)
}

func (s *Session) Release() {
	s.Controller.OnRelease()
}

func (s *Session) SetBoost(active bool) {
	if active {
		s.Controller.OnBoostStart()
		return
	}
	s.Controller.OnBoostStop()
}

func (s *Session) Move(x float64) {
	s.Character.MoveInput(x)
}

func (s *Session) Jump() {
	s.Character.Jump()
}

// Aim sets the fire direction in the X/Z plane. A zero vector keeps the
// previous direction.
func (s *Session) Aim(x, z float64) {
	if dir, ok := common.SafeNormal(mgl64.Vec3{x, 0, z}, common.Epsilon); ok {
		s.aim = dir
	}
}

func (s *Session) State() string {
	return s.Controller.State().String()
}

func (s *Session) Speed() float64 {
	return s.Character.Velocity().Len()
}

func (s *Session) FOV() float64 {
	return s.Controller.FOV()
}

func (s *Session) Position() (float64, float64) {
	p := s.Character.Position()
	return p.X(), p.Z()
}
