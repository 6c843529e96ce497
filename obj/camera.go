package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Camera looks at the X/Z plane from the side. World Z points up, screen Y
// points down, so every conversion flips the vertical axis.
type Camera struct {
	PosX float64
	PosZ float64

	screenW int
	screenH int
	zoom    float64
	off     *ebiten.Image

	// zoom at baseFOV; wider fields of view zoom out from here
	baseZoom float64
	baseFOV  float64
	fov      float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// world bounds (0 means unbounded)
	worldW float64
	worldH float64
}

// NewCamera creates a camera with the given logical screen size. zoom is used
// while the field of view equals baseFOV (degrees).
func NewCamera(screenW, screenH int, zoom, baseFOV float64) *Camera {
	c := &Camera{
		screenW:  screenW,
		screenH:  screenH,
		zoom:     zoom,
		baseZoom: zoom,
		baseFOV:  baseFOV,
		fov:      baseFOV,
		smooth:   0.15,
	}
	c.PosX = float64(screenW) / 2.0
	c.PosZ = float64(screenH) / 2.0
	return c
}

// SetFieldOfView maps a horizontal field of view in degrees to zoom so the
// visible width scales with tan(fov/2).
func (c *Camera) SetFieldOfView(fov float64) {
	c.fov = fov
	c.zoom = ZoomForFOV(c.baseZoom, c.baseFOV, fov)
}

// SetBaseFOV changes the field of view at which the camera uses its base
// zoom.
func (c *Camera) SetBaseFOV(fov float64) {
	c.baseFOV = fov
	c.zoom = ZoomForFOV(c.baseZoom, c.baseFOV, c.fov)
}

func (c *Camera) FieldOfView() float64 {
	return c.fov
}

// ZoomForFOV returns the zoom that shows as much of the world at fov as
// baseZoom shows at baseFOV. Degenerate angles keep baseZoom.
func ZoomForFOV(baseZoom, baseFOV, fov float64) float64 {
	if baseFOV <= 0 || baseFOV >= 180 || fov <= 0 || fov >= 180 {
		return baseZoom
	}
	half := func(deg float64) float64 {
		return math.Tan(mgl64.DegToRad(deg) / 2)
	}
	return baseZoom * half(baseFOV) / half(fov)
}

// SetScreenSize updates the logical screen size used by the camera.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if c.screenW == w && c.screenH == h {
		return
	}
	c.screenW = w
	c.screenH = h
	c.off = nil
}

// SetWorldBounds sets the world dimensions for clamping camera position.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) SetSmooth(f float64) {
	if f < 0 {
		f = 0
	}
	c.smooth = f
}

// ViewTopLeft returns the world X of the left edge and the world Z of the top
// edge of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	if c.zoom == 0 {
		return c.PosX, c.PosZ
	}
	viewW := float64(c.screenW) / c.zoom
	viewH := float64(c.screenH) / c.zoom
	return c.PosX - viewW/2.0, c.PosZ + viewH/2.0
}

// Zoom returns the current camera zoom.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// WorldToScreen converts a world X/Z position to screen pixels.
func (c *Camera) WorldToScreen(x, z float64) (float64, float64) {
	left, top := c.ViewTopLeft()
	return (x - left) * c.zoom, (top - z) * c.zoom
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	left, top := c.ViewTopLeft()
	if c.zoom == 0 {
		return left, top
	}
	return left + sx/c.zoom, top - sy/c.zoom
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Update moves the camera toward the target world coordinate. Call from the
// fixed-rate Update loop to get consistent smoothing.
func (c *Camera) Update(targetX, targetZ float64) {
	if c.smooth <= 0 {
		c.PosX = targetX
		c.PosZ = targetZ
	} else {
		c.PosX += (targetX - c.PosX) * c.smooth
		c.PosZ += (targetZ - c.PosZ) * c.smooth
	}
	c.constrain()
}

// SnapTo immediately centers the camera, e.g. after a level load.
func (c *Camera) SnapTo(x, z float64) {
	c.PosX = x
	c.PosZ = z
	c.constrain()
}

func (c *Camera) constrain() {
	if c.zoom == 0 {
		return
	}
	halfW := float64(c.screenW) / c.zoom / 2.0
	halfH := float64(c.screenH) / c.zoom / 2.0
	if c.worldW > 0 {
		if c.worldW < 2*halfW {
			c.PosX = c.worldW / 2.0
		} else {
			c.PosX = clamp(c.PosX, halfW, c.worldW-halfW)
		}
	}
	if c.worldH > 0 {
		if c.worldH < 2*halfH {
			c.PosZ = c.worldH / 2.0
		} else {
			c.PosZ = clamp(c.PosZ, halfH, c.worldH-halfH)
		}
	}
}

// Render lets drawWorld paint into an offscreen image sized to the screen,
// then copies it onto screen. drawWorld should place things with
// WorldToScreen.
func (c *Camera) Render(screen *ebiten.Image, drawWorld func(world *ebiten.Image)) {
	if c.off == nil {
		c.off = ebiten.NewImage(c.screenW, c.screenH)
	}

	c.off.Clear()
	if drawWorld != nil {
		drawWorld(c.off)
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(c.off, op)
}
