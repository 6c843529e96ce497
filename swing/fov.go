package swing

import "github.com/milk9111/grapple/common"

// FOVController eases the camera field of view toward a speed-driven target.
type FOVController struct {
	base     float64
	max      float64
	maxSpeed float64
	rate     float64
	current  float64
}

func NewFOVController(base, max, maxSpeed, rate float64) *FOVController {
	return &FOVController{
		base:     base,
		max:      max,
		maxSpeed: maxSpeed,
		rate:     rate,
		current:  base,
	}
}

// Target is MaxFOV at MaxSwingSpeed while swinging and BaseFOV otherwise.
func (f *FOVController) Target(speed float64, swinging bool) float64 {
	if f == nil {
		return 0
	}
	if !swinging {
		return f.base
	}
	return common.MapRangeClamped(speed, 0, f.maxSpeed, f.base, f.max)
}

// Advance moves the current FOV toward the target and returns it.
func (f *FOVController) Advance(dt, speed float64, swinging bool) float64 {
	if f == nil {
		return 0
	}
	f.current = common.ExpInterp(f.current, f.Target(speed, swinging), dt, f.rate)
	return f.current
}

// Reset jumps the current FOV to fov without easing.
func (f *FOVController) Reset(fov float64) {
	if f == nil {
		return
	}
	f.current = fov
}

func (f *FOVController) Current() float64 {
	if f == nil {
		return 0
	}
	return f.current
}
