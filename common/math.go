package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MapRangeClamped clamps v into [inMin, inMax] and remaps it linearly into
// [outMin, outMax]. An empty input range maps everything to outMin.
func MapRangeClamped(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax <= inMin {
		return outMin
	}
	t := (mgl64.Clamp(v, inMin, inMax) - inMin) / (inMax - inMin)
	return Lerp(outMin, outMax, t)
}

// ExpInterp moves current toward target by the fraction 1-exp(-rate*dt).
// The step never overshoots for any dt >= 0.
func ExpInterp(current, target, dt, rate float64) float64 {
	if rate <= 0 || dt <= 0 {
		return current
	}
	alpha := 1 - math.Exp(-rate*dt)
	return current + (target-current)*alpha
}

// ClampDelta bounds a frame time into [0, max]. NaN is treated as 0.
func ClampDelta(dt, max float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if max > 0 && dt > max {
		return max
	}
	return dt
}
