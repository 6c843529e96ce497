package world

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapple/common"
)

// MoverConfig describes a box that travels at a constant speed. With a
// positive Range it turns around after covering that distance.
type MoverConfig struct {
	Name        string
	Center      mgl64.Vec3
	Width       float64
	Height      float64
	Direction   mgl64.Vec3
	TravelSpeed float64
	Range       float64
}

// Mover is a kinematic box. It can be hooked like any block.
type Mover struct {
	cfg      MoverConfig
	body     *cp.Body
	shape    *cp.Shape
	dir      mgl64.Vec3
	traveled float64
}

func (w *World) AddMover(cfg MoverConfig) *Mover {
	if w == nil {
		return nil
	}
	dir, ok := common.SafeNormal(mgl64.Vec3{cfg.Direction.X(), 0, cfg.Direction.Z()}, common.Epsilon)
	if !ok {
		dir = common.AxisX
	}
	m := &Mover{cfg: cfg, dir: dir}

	body := cp.NewKinematicBody()
	body.SetPosition(toCP(cfg.Center))
	body.UserData = m
	shape := cp.NewBox(body, cfg.Width, cfg.Height, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	w.space.AddBody(body)
	w.space.AddShape(shape)

	m.body = body
	m.shape = shape
	w.movers = append(w.movers, m)
	return m
}

func (m *Mover) update(dt float64) {
	if m.cfg.Range > 0 && m.traveled >= m.cfg.Range {
		m.dir = m.dir.Mul(-1)
		m.traveled = 0
	}
	m.body.SetVelocityVector(toCP(m.dir.Mul(m.cfg.TravelSpeed)))
	m.traveled += m.cfg.TravelSpeed * dt
}

func (m *Mover) Name() string {
	if m == nil {
		return ""
	}
	return m.cfg.Name
}

func (m *Mover) Position() mgl64.Vec3 {
	if m == nil {
		return mgl64.Vec3{}
	}
	return toVec3(m.body.Position())
}

func (m *Mover) Size() (float64, float64) {
	if m == nil {
		return 0, 0
	}
	return m.cfg.Width, m.cfg.Height
}
