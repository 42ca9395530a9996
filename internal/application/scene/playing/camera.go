package playing

import "math"

// Camera is the world position of the screen's top-left corner.
type Camera struct {
	X, Y float64
}

// Viewport describes what the camera looks at, in pixels.
type Viewport struct {
	ScreenW, ScreenH float64
	WorldW, WorldH   float64
}

// Snap centres the camera on the target immediately.
func (c *Camera) Snap(tx, ty float64, vp Viewport) {
	c.X = tx - vp.ScreenW/2
	c.Y = ty - vp.ScreenH/2
	c.clamp(vp)
}

// Follow eases the camera towards the target. The target may drift
// deadzoneX pixels from the centre before the camera moves horizontally.
func (c *Camera) Follow(tx, ty float64, vp Viewport, lerp, deadzoneX float64) {
	wantX := tx - vp.ScreenW/2
	if dx := wantX - c.X; math.Abs(dx) > deadzoneX {
		c.X += (dx - math.Copysign(deadzoneX, dx)) * lerp
	}
	c.Y += (ty - vp.ScreenH/2 - c.Y) * lerp
	c.clamp(vp)
}

func (c *Camera) clamp(vp Viewport) {
	c.X = math.Max(0, math.Min(c.X, vp.WorldW-vp.ScreenW))
	c.Y = math.Max(0, math.Min(c.Y, vp.WorldH-vp.ScreenH))
}

// ScreenPos converts a world position to integer screen coordinates.
func (c *Camera) ScreenPos(x, y float64) (float64, float64) {
	return math.Round(x - c.X), math.Round(y - c.Y)
}
