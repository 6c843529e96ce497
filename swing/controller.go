package swing

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grapple/common"
)

// Movement is the character movement collaborator. The controller reads and
// writes its velocity at most once per tick.
type Movement interface {
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	Forward() mgl64.Vec3
	Tuning() MovementTuning
	SetTuning(t MovementTuning)
}

type Rotator interface {
	SetOrientation(o Orientation)
}

type Camera interface {
	SetFieldOfView(fov float64)
}

// CableState is what the renderer needs to draw the rope.
type CableState struct {
	Visible  bool
	Endpoint mgl64.Vec3
}

type Option func(*Controller)

// WithFOV starts the FOV controller at fov instead of BaseFOV, so a
// replacement controller continues from where the camera is.
func WithFOV(fov float64) Option {
	return func(c *Controller) {
		c.fov.Reset(fov)
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithStrategy(s Strategy) Option {
	return func(c *Controller) {
		if s != nil {
			c.strategy = s
		}
	}
}

// Controller is the swing state machine. It owns the anchor and drives the
// integrator, orientation solver and FOV controller each tick.
type Controller struct {
	cfg      Config
	movement Movement
	rotator  Rotator
	camera   Camera
	query    AnchorQuery
	ignore   any
	strategy Strategy
	solver   *OrientationSolver
	fov      *FOVController
	log      *log.Logger

	state      State
	anchor     Hit
	saved      MovementTuning
	boosting   bool
	cable      CableState
	degenerate bool
	speed      float64
}

// NewController validates cfg and wires the collaborators. rotator and
// camera may be nil. ignore is passed to the raycaster so the character
// never hooks itself.
func NewController(cfg Config, movement Movement, rotator Rotator, camera Camera, rc Raycaster, ignore any, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("swing: new controller: %w", err)
	}
	if movement == nil {
		return nil, errors.New("swing: new controller: nil movement")
	}
	if rc == nil {
		return nil, errors.New("swing: new controller: nil raycaster")
	}

	c := &Controller{
		cfg:      cfg,
		movement: movement,
		rotator:  rotator,
		camera:   camera,
		query:    NewAnchorQuery(rc),
		ignore:   ignore,
		strategy: ProjectionStrategy{},
		solver:   NewOrientationSolver(),
		fov:      NewFOVController(cfg.BaseFOV, cfg.MaxFOV, cfg.MaxSwingSpeed, cfg.FOVInterpSpeed),
		log:      log.Default(),
		state:    Idle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fire casts from origin along viewDirection and attaches on a hit. It
// returns true when the controller entered Swinging.
func (c *Controller) Fire(origin, viewDirection mgl64.Vec3) bool {
	if c == nil || c.state == Swinging {
		return false
	}

	hit, ok := c.query.CastForward(origin, viewDirection, c.cfg.MaxFireDistance, c.ignore)
	if !ok {
		return false
	}

	c.state = Swinging
	c.anchor = hit
	c.degenerate = false
	c.saved = c.movement.Tuning()
	c.movement.SetTuning(c.cfg.SwingTuning)
	c.cable = CableState{Visible: true, Endpoint: hit.Point}
	c.log.Printf("swing: attached at (%.1f, %.1f, %.1f)", hit.Point[0], hit.Point[1], hit.Point[2])
	return true
}

// Release detaches and restores the movement tuning captured at Fire.
func (c *Controller) Release() {
	if c == nil || c.state != Swinging {
		return
	}

	c.state = Idle
	c.anchor = Hit{}
	c.degenerate = false
	c.cable = CableState{}
	c.movement.SetTuning(c.saved)
	c.log.Printf("swing: released")
}

func (c *Controller) SetBoost(active bool) {
	if c == nil {
		return
	}
	c.boosting = active
}

// Input entry points for a host's bindings.

func (c *Controller) OnFire(origin, viewDirection mgl64.Vec3) bool { return c.Fire(origin, viewDirection) }
func (c *Controller) OnRelease()                                    { c.Release() }
func (c *Controller) OnBoostStart()                                 { c.SetBoost(true) }
func (c *Controller) OnBoostStop()                                  { c.SetBoost(false) }

// Tick advances the swing by dt seconds. position is the character's current
// world position.
func (c *Controller) Tick(dt float64, position mgl64.Vec3) {
	if c == nil {
		return
	}
	dt = common.ClampDelta(dt, c.cfg.MaxDeltaTime)

	if c.state != Swinging {
		c.speed = c.movement.Velocity().Len()
		c.pushFOV(dt, c.speed, false)
		return
	}

	velocity := c.movement.Velocity()
	toAnchor := c.anchor.Point.Sub(position)
	dist := toAnchor.Len()
	if dist < c.cfg.AnchorEpsilon || !common.IsFinite(toAnchor) {
		if !c.degenerate {
			c.log.Printf("swing: anchor distance %.4f below %.4f, skipping projection", dist, c.cfg.AnchorEpsilon)
			c.degenerate = true
		}
		c.speed = velocity.Len()
		c.cable.Endpoint = c.anchor.Point
		c.pushFOV(dt, c.speed, true)
		return
	}
	c.degenerate = false
	ropeDir := toAnchor.Mul(1 / dist)

	next := c.strategy.Step(velocity, ropeDir, c.cfg.Gravity, dt)
	if c.boosting && next.Len() < c.cfg.MaxSwingSpeed {
		if fwd, ok := common.SafeNormal(c.movement.Forward(), common.Epsilon); ok {
			next = next.Add(fwd.Mul(c.cfg.BoostRate * dt))
		}
		next = common.ClampLength(next, c.cfg.MaxSwingSpeed)
	}
	c.movement.SetVelocity(next)

	orientation := c.solver.Solve(common.ProjectOnPlane(next, ropeDir), ropeDir)
	if c.rotator != nil {
		c.rotator.SetOrientation(orientation)
	}

	c.cable.Endpoint = c.anchor.Point
	c.speed = next.Len()
	c.pushFOV(dt, c.speed, true)
}

func (c *Controller) pushFOV(dt, speed float64, swinging bool) {
	fov := c.fov.Advance(dt, speed, swinging)
	if c.camera != nil {
		c.camera.SetFieldOfView(fov)
	}
}

func (c *Controller) State() State {
	if c == nil {
		return Idle
	}
	return c.state
}

// Anchor returns the current anchor; ok is false while Idle.
func (c *Controller) Anchor() (Hit, bool) {
	if c == nil || c.state != Swinging {
		return Hit{}, false
	}
	return c.anchor, true
}

func (c *Controller) Cable() CableState {
	if c == nil {
		return CableState{}
	}
	return c.cable
}

func (c *Controller) FOV() float64 {
	if c == nil {
		return 0
	}
	return c.fov.Current()
}

func (c *Controller) Boosting() bool {
	if c == nil {
		return false
	}
	return c.boosting
}

// Speed is the velocity magnitude seen by the last tick.
func (c *Controller) Speed() float64 {
	if c == nil {
		return 0
	}
	return c.speed
}

func (c *Controller) Orientation() Orientation {
	if c == nil {
		return IdentityOrientation()
	}
	return c.solver.Last()
}

func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}
