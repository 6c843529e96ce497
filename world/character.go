package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapple/common"
	"github.com/milk9111/grapple/swing"
)

// CharacterConfig holds the walking parameters and the default movement
// tuning a character starts with.
type CharacterConfig struct {
	Width         float64
	Height        float64
	MaxWalkSpeed  float64
	GroundAccel   float64
	JumpZVelocity float64
	Tuning        swing.MovementTuning
}

func DefaultCharacterConfig() CharacterConfig {
	return CharacterConfig{
		Width:         42,
		Height:        96,
		MaxWalkSpeed:  500,
		GroundAccel:   2048,
		JumpZVelocity: 700,
		Tuning: swing.MovementTuning{
			AirControl:                 0.35,
			FallingLateralFriction:     0,
			BrakingDecelerationFalling: 1500,
			GravityScale:               1,
		},
	}
}

// Character is a dynamic body that implements swing.Movement and
// swing.Rotator.
type Character struct {
	cfg    CharacterConfig
	body   *cp.Body
	shape  *cp.Shape
	ground *cp.Shape

	tuning      swing.MovementTuning
	orientation swing.Orientation
	forward     mgl64.Vec3
	moveInput   float64
	jump        bool

	grounded    bool
	groundGrace int
}

// AddCharacter places the character centred at pos. Only one character is
// supported per world; later calls return the existing one.
func (w *World) AddCharacter(pos mgl64.Vec3, cfg CharacterConfig) *Character {
	if w == nil {
		return nil
	}
	if w.character != nil {
		return w.character
	}
	def := DefaultCharacterConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}

	c := &Character{
		cfg:         cfg,
		tuning:      cfg.Tuning,
		orientation: swing.IdentityOrientation(),
		forward:     common.AxisX,
	}

	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(toCP(pos))
	body.UserData = c
	shape := cp.NewBox(body, cfg.Width, cfg.Height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)
	groundBB := cp.BB{
		L: -cfg.Width * 0.45,
		B: -cfg.Height/2 - 2,
		R: cfg.Width * 0.45,
		T: -cfg.Height / 2,
	}
	ground := cp.NewBox2(body, groundBB, 0)
	ground.SetSensor(true)
	ground.SetCollisionType(collisionTypeCharacterGround)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.space.AddShape(ground)

	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		c.updateVelocity(body, gravity, damping, dt)
	})

	c.body = body
	c.shape = shape
	c.ground = ground
	w.character = c
	w.setupHandlers()
	return c
}

func (c *Character) beginStep() {
	if c.groundGrace > 0 {
		c.groundGrace--
	}
	c.grounded = false
}

func (c *Character) markGrounded() {
	c.grounded = true
	c.groundGrace = 6
}

// updateVelocity runs inside the space step. Host gravity is scaled by the
// current tuning and the falling parameters only apply while airborne.
func (c *Character) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(body, gravity.Mult(c.tuning.GravityScale), damping, dt)
	v := body.Velocity()

	if c.jump && c.Grounded() {
		v.Y = c.cfg.JumpZVelocity
		c.groundGrace = 0
	}
	c.jump = false

	if c.Grounded() {
		target := c.moveInput * c.cfg.MaxWalkSpeed
		v.X = approach(v.X, target, c.cfg.GroundAccel*dt)
		body.SetVelocityVector(v)
		return
	}

	if c.moveInput != 0 {
		accel := c.cfg.GroundAccel * c.tuning.AirControl * dt
		if c.moveInput*v.X < c.cfg.MaxWalkSpeed {
			v.X += c.moveInput * accel
		}
	} else if c.tuning.BrakingDecelerationFalling > 0 {
		v.X = approach(v.X, 0, c.tuning.BrakingDecelerationFalling*dt)
	}
	if c.tuning.FallingLateralFriction > 0 {
		v.X *= math.Max(0, 1-c.tuning.FallingLateralFriction*dt)
	}
	body.SetVelocityVector(v)
}

func approach(v, target, step float64) float64 {
	if v < target {
		return math.Min(v+step, target)
	}
	return math.Max(v-step, target)
}

// MoveInput sets the horizontal input axis in [-1, 1].
func (c *Character) MoveInput(x float64) {
	if c == nil {
		return
	}
	c.moveInput = mgl64.Clamp(x, -1, 1)
	if x != 0 {
		c.forward = mgl64.Vec3{math.Copysign(1, x), 0, 0}
	}
}

// Jump requests a jump on the next step. Ignored while airborne.
func (c *Character) Jump() {
	if c == nil {
		return
	}
	c.jump = true
}

func (c *Character) Grounded() bool {
	return c != nil && (c.grounded || c.groundGrace > 0)
}

func (c *Character) Position() mgl64.Vec3 {
	if c == nil {
		return mgl64.Vec3{}
	}
	return toVec3(c.body.Position())
}

func (c *Character) SetPosition(p mgl64.Vec3) {
	if c == nil {
		return
	}
	c.body.SetPosition(toCP(p))
}

func (c *Character) Size() (float64, float64) {
	if c == nil {
		return 0, 0
	}
	return c.cfg.Width, c.cfg.Height
}

func (c *Character) Velocity() mgl64.Vec3 {
	if c == nil {
		return mgl64.Vec3{}
	}
	return toVec3(c.body.Velocity())
}

// SetVelocity drops the Y component; the character lives in the X/Z plane.
func (c *Character) SetVelocity(v mgl64.Vec3) {
	if c == nil {
		return
	}
	c.body.SetVelocityVector(toCP(v))
}

// Forward is the last solved swing forward, or the facing direction once
// the character walks.
func (c *Character) Forward() mgl64.Vec3 {
	if c == nil {
		return common.AxisX
	}
	return c.forward
}

func (c *Character) Tuning() swing.MovementTuning {
	if c == nil {
		return swing.MovementTuning{}
	}
	return c.tuning
}

func (c *Character) SetTuning(t swing.MovementTuning) {
	if c == nil {
		return
	}
	c.tuning = t
}

func (c *Character) SetOrientation(o swing.Orientation) {
	if c == nil {
		return
	}
	c.orientation = o
	if fwd, ok := common.SafeNormal(mgl64.Vec3{o.Forward.X(), 0, o.Forward.Z()}, common.Epsilon); ok {
		c.forward = fwd
	}
}

func (c *Character) Orientation() swing.Orientation {
	if c == nil {
		return swing.IdentityOrientation()
	}
	return c.orientation
}

var (
	_ swing.Movement = (*Character)(nil)
	_ swing.Rotator  = (*Character)(nil)
)
