package world

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/grapple/swing"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeCharacterGround
	collisionTypeSolid
)

// Block is a static axis-aligned box in the X/Z plane.
type Block struct {
	Name       string
	MinX, MinZ float64
	MaxX, MaxZ float64
}

// Level is everything the world needs to build its static geometry and
// movers. Width and Height bound the playable X/Z area; zero disables bounds.
type Level struct {
	Width  float64
	Height float64
	Blocks []Block
	Movers []MoverConfig
}

// World hosts the physics space. The cp X axis is world X and the cp Y axis
// is world Z; world Y is always 0.
type World struct {
	space     *cp.Space
	level     Level
	character *Character
	movers    []*Mover

	handlersReady bool
}

func NewWorld(level Level, gravityZ float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravityZ})
	w := &World{space: space, level: level}
	w.buildStaticShapes()
	for _, mc := range level.Movers {
		w.AddMover(mc)
	}
	return w
}

func (w *World) buildStaticShapes() {
	for _, b := range w.level.Blocks {
		if b.MaxX <= b.MinX || b.MaxZ <= b.MinZ {
			log.Printf("world: skipping empty block %q", b.Name)
			continue
		}
		bb := cp.BB{L: b.MinX, B: b.MinZ, R: b.MaxX, T: b.MaxZ}
		shape := cp.NewBox2(w.space.StaticBody, bb, 0)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.UserData = b.Name
		w.space.AddShape(shape)
	}

	width, height := w.level.Width, w.level.Height
	if width <= 0 || height <= 0 {
		return
	}
	thickness := 1.0
	segments := []struct {
		name string
		a, b cp.Vector
	}{
		{"floor", cp.Vector{X: 0, Y: 0}, cp.Vector{X: width, Y: 0}},
		{"ceiling", cp.Vector{X: 0, Y: height}, cp.Vector{X: width, Y: height}},
		{"left_wall", cp.Vector{X: 0, Y: 0}, cp.Vector{X: 0, Y: height}},
		{"right_wall", cp.Vector{X: width, Y: 0}, cp.Vector{X: width, Y: height}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.UserData = seg.name
		w.space.AddShape(shape)
	}
}

func (w *World) setupHandlers() {
	if w.handlersReady {
		return
	}
	groundHandler := w.space.NewCollisionHandler(collisionTypeCharacterGround, collisionTypeSolid)
	groundHandler.UserData = w
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil || world.character == nil {
			return true
		}
		world.character.markGrounded()
		return true
	}
	w.handlersReady = true
}

// Level returns the level the world was built from.
func (w *World) Level() Level {
	if w == nil {
		return Level{}
	}
	return w.level
}

func (w *World) Character() *Character {
	if w == nil {
		return nil
	}
	return w.character
}

func (w *World) Movers() []*Mover {
	if w == nil {
		return nil
	}
	return w.movers
}

// Gravity returns the space gravity as a world vector.
func (w *World) Gravity() mgl64.Vec3 {
	if w == nil {
		return mgl64.Vec3{}
	}
	g := w.space.Gravity()
	return mgl64.Vec3{g.X, 0, g.Y}
}

// Step advances movers and the physics space by dt.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	if w.character != nil {
		w.character.beginStep()
	}
	for _, m := range w.movers {
		m.update(dt)
	}
	w.space.Step(dt)
}

// QueryLineOfSight returns the closest solid hit between start and end. The
// segment is flattened onto the X/Z plane; the hit's Y is interpolated along
// the original segment. Shapes or bodies whose UserData equals ignore are
// skipped, as are sensors.
func (w *World) QueryLineOfSight(start, end mgl64.Vec3, ignore any) (swing.Hit, bool) {
	if w == nil {
		return swing.Hit{}, false
	}
	a := cp.Vector{X: start.X(), Y: start.Z()}
	b := cp.Vector{X: end.X(), Y: end.Z()}
	if a.Equal(b) {
		return swing.Hit{}, false
	}

	closest := math.Inf(1)
	var hitShape *cp.Shape
	var hitPoint cp.Vector
	w.space.SegmentQuery(a, b, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
		if shape.Sensor() || owned(shape, ignore) {
			return
		}
		if alpha < closest {
			closest = alpha
			hitShape = shape
			hitPoint = point
		}
	}, nil)

	if hitShape == nil {
		return swing.Hit{}, false
	}
	y := start.Y() + (end.Y()-start.Y())*closest
	return swing.Hit{Point: mgl64.Vec3{hitPoint.X, y, hitPoint.Y}, Actor: actorOf(hitShape)}, true
}

func owned(shape *cp.Shape, ignore any) bool {
	if ignore == nil {
		return false
	}
	if shape.UserData == ignore {
		return true
	}
	if body := shape.Body(); body != nil && body.UserData == ignore {
		return true
	}
	return false
}

func actorOf(shape *cp.Shape) any {
	if shape.UserData != nil {
		return shape.UserData
	}
	if body := shape.Body(); body != nil {
		return body.UserData
	}
	return nil
}

func toVec3(v cp.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, 0, v.Y}
}

func toCP(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Z()}
}
