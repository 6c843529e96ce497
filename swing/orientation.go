package swing

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grapple/common"
)

// Orientation is an orthonormal character frame.
type Orientation struct {
	Forward mgl64.Vec3
	Right   mgl64.Vec3
	Up      mgl64.Vec3
}

func IdentityOrientation() Orientation {
	return Orientation{Forward: common.AxisX, Right: common.AxisY, Up: common.AxisZ}
}

// Quat converts the frame to a rotation from the identity frame.
func (o Orientation) Quat() mgl64.Quat {
	m := mgl64.Mat3FromCols(o.Forward, o.Right, o.Up)
	return mgl64.Mat4ToQuat(m.Mat4())
}

// OrientationSolver builds a frame whose up axis follows the rope and whose
// forward axis follows the swing direction. It remembers the last good frame
// and hands it back for degenerate input.
type OrientationSolver struct {
	last Orientation
}

func NewOrientationSolver() *OrientationSolver {
	return &OrientationSolver{last: IdentityOrientation()}
}

// Solve returns a right-handed frame with up = ropeDirection, right = up x
// forward and forward = right x up.
func (s *OrientationSolver) Solve(tangentialVelocity, ropeDirection mgl64.Vec3) Orientation {
	if s == nil {
		return IdentityOrientation()
	}

	up, ok := common.SafeNormal(ropeDirection, common.Epsilon)
	if !ok {
		return s.last
	}
	fwd, ok := common.SafeNormal(tangentialVelocity, common.Epsilon)
	if !ok {
		return s.last
	}
	right, ok := common.SafeNormal(up.Cross(fwd), common.Epsilon)
	if !ok {
		// velocity parallel to the rope
		return s.last
	}
	forward := right.Cross(up)

	s.last = Orientation{Forward: forward, Right: right, Up: up}
	return s.last
}

// Last returns the most recent frame, identity before the first solve.
func (s *OrientationSolver) Last() Orientation {
	if s == nil {
		return IdentityOrientation()
	}
	return s.last
}
