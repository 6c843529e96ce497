package rope

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grapple/common"
)

const (
	DefaultLength  = 2000
	DefaultSpeed   = 300
	DefaultEpsilon = 10
)

// GrowthAnimator moves an endpoint from an origin toward a target at a
// constant speed. It is cosmetic and has no tie to the swing controller.
type GrowthAnimator struct {
	Epsilon float64

	origin   mgl64.Vec3
	target   mgl64.Vec3
	endpoint mgl64.Vec3
	speed    float64
	growing  bool
}

func NewGrowthAnimator(epsilon float64) *GrowthAnimator {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &GrowthAnimator{Epsilon: epsilon}
}

// NewProp places a rope that grows from origin along forward for length
// units. Zero values fall back to the prop defaults.
func NewProp(origin, forward mgl64.Vec3, length, speed, epsilon float64) *GrowthAnimator {
	if length <= 0 {
		length = DefaultLength
	}
	if speed <= 0 {
		speed = DefaultSpeed
	}
	dir, ok := common.SafeNormal(forward, common.Epsilon)
	if !ok {
		dir = common.AxisX
	}
	g := NewGrowthAnimator(epsilon)
	g.Start(origin, origin.Add(dir.Mul(length)), speed)
	return g
}

func (g *GrowthAnimator) Start(origin, target mgl64.Vec3, speed float64) {
	if g == nil {
		return
	}
	g.origin = origin
	g.target = target
	g.endpoint = origin
	g.speed = speed
	g.growing = true
	g.settle()
}

// Restart replays the last Start.
func (g *GrowthAnimator) Restart() {
	if g == nil {
		return
	}
	g.Start(g.origin, g.target, g.speed)
}

// Tick advances the endpoint and returns it. Once stopped it always returns
// the target.
func (g *GrowthAnimator) Tick(dt float64) mgl64.Vec3 {
	if g == nil {
		return mgl64.Vec3{}
	}
	if !g.growing || dt <= 0 {
		return g.endpoint
	}

	delta := g.target.Sub(g.endpoint)
	dist := delta.Len()
	step := g.speed * dt
	if dist <= step {
		g.endpoint = g.target
		g.growing = false
		return g.endpoint
	}
	g.endpoint = g.endpoint.Add(delta.Mul(step / dist))
	g.settle()
	return g.endpoint
}

func (g *GrowthAnimator) settle() {
	// zero speed would never arrive, so it snaps too
	if g.speed <= 0 || g.target.Sub(g.endpoint).Len() <= g.Epsilon {
		g.endpoint = g.target
		g.growing = false
	}
}

func (g *GrowthAnimator) Endpoint() mgl64.Vec3 {
	if g == nil {
		return mgl64.Vec3{}
	}
	return g.endpoint
}

func (g *GrowthAnimator) Origin() mgl64.Vec3 {
	if g == nil {
		return mgl64.Vec3{}
	}
	return g.origin
}

func (g *GrowthAnimator) Target() mgl64.Vec3 {
	if g == nil {
		return mgl64.Vec3{}
	}
	return g.target
}

func (g *GrowthAnimator) Growing() bool {
	return g != nil && g.growing
}
