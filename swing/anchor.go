package swing

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grapple/common"
)

// Hit is the result of a line-of-sight query. Actor is informational only.
type Hit struct {
	Point mgl64.Vec3
	Actor any
}

// Raycaster is the collision query service.
type Raycaster interface {
	// QueryLineOfSight returns the first blocking hit between start and end,
	// skipping anything owned by ignore.
	QueryLineOfSight(start, end mgl64.Vec3, ignore any) (Hit, bool)
}

// RaycasterFunc adapts a function to Raycaster.
type RaycasterFunc func(start, end mgl64.Vec3, ignore any) (Hit, bool)

func (f RaycasterFunc) QueryLineOfSight(start, end mgl64.Vec3, ignore any) (Hit, bool) {
	return f(start, end, ignore)
}

// AnchorQuery wraps a single forward cast. It holds no state of its own.
type AnchorQuery struct {
	rc Raycaster
}

func NewAnchorQuery(rc Raycaster) AnchorQuery {
	return AnchorQuery{rc: rc}
}

// CastForward casts from origin along direction for maxDistance. A missing
// raycaster, a zero direction or a non-positive distance is a miss.
func (q AnchorQuery) CastForward(origin, direction mgl64.Vec3, maxDistance float64, ignore any) (Hit, bool) {
	if q.rc == nil || maxDistance <= 0 {
		return Hit{}, false
	}
	dir, ok := common.SafeNormal(direction, common.Epsilon)
	if !ok {
		return Hit{}, false
	}
	end := origin.Add(dir.Mul(maxDistance))
	return q.rc.QueryLineOfSight(origin, end, ignore)
}
