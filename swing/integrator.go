package swing

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grapple/common"
)

// Strategy advances a swinging velocity by one step. ropeDir is the unit
// vector from the character to the anchor.
type Strategy interface {
	Step(velocity, ropeDir, gravity mgl64.Vec3, dt float64) mgl64.Vec3
}

// ProjectionStrategy models an inextensible rope by stripping the radial
// component of velocity every step.
type ProjectionStrategy struct{}

func (ProjectionStrategy) Step(velocity, ropeDir, gravity mgl64.Vec3, dt float64) mgl64.Vec3 {
	return Project(velocity, ropeDir, gravity, dt)
}

// Project removes the component of velocity along ropeDir and integrates the
// tangential part of gravity with explicit Euler:
//
//	v' = (v - (v.r)r) + (g - (g.r)r) * dt
//
// Gravity is projected as well so it cannot reintroduce a radial component
// that the next step would strip again.
func Project(velocity, ropeDir, gravity mgl64.Vec3, dt float64) mgl64.Vec3 {
	tangential := common.ProjectOnPlane(velocity, ropeDir)
	tangentialGravity := common.ProjectOnPlane(gravity, ropeDir)
	return tangential.Add(tangentialGravity.Mul(dt))
}
