// Package camera maps draw coordinates onto the window with zoom and pan.
package camera

// Camera is a viewport over a bounded field. Coordinates are draw
// coordinates: origin top-left, y down.
type Camera struct {
	// X, Y is the view centre in field coordinates
	X, Y float32

	// Zoom level (1.0 shows the whole field when it matches the viewport)
	Zoom float32

	ViewportW, ViewportH float32
	FieldW, FieldH       float32

	MinZoom, MaxZoom float32
}

// New creates a camera centred on the field at 1:1 zoom.
func New(viewportW, viewportH, fieldW, fieldH float32) *Camera {
	c := &Camera{
		Zoom:    1.0,
		MinZoom: 1.0,
		MaxZoom: 6.0,
	}
	c.Resize(viewportW, viewportH, fieldW, fieldH)
	c.Reset()
	return c
}

// WorldToScreen converts field coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to field coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// Scale converts a field length to screen pixels.
func (c *Camera) Scale(length float32) float32 {
	return length * c.Zoom
}

// IsVisible reports whether a circle at (wx, wy) could be on screen.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates the viewport and field extents and keeps the view inside
// the field.
func (c *Camera) Resize(viewportW, viewportH, fieldW, fieldH float32) {
	c.ViewportW, c.ViewportH = viewportW, viewportH
	c.FieldW, c.FieldH = fieldW, fieldH
	c.clampCentre()
}

// Pan moves the camera by a screen-pixel delta.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCentre()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCentre()
}

// ZoomAt multiplies the zoom by factor while keeping the field point under
// the screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)
	c.X = wx - (sx-c.ViewportW/2)/c.Zoom
	c.Y = wy - (sy-c.ViewportH/2)/c.Zoom
	c.clampCentre()
}

// Reset returns the camera to the field centre at 1:1 zoom.
func (c *Camera) Reset() {
	c.X = c.FieldW / 2
	c.Y = c.FieldH / 2
	c.Zoom = 1.0
}

// clampCentre keeps the visible area inside the field where it fits.
func (c *Camera) clampCentre() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	c.X = clampAxis(c.X, halfW, c.FieldW)
	c.Y = clampAxis(c.Y, halfH, c.FieldH)
}

func clampAxis(centre, half, extent float32) float32 {
	if 2*half >= extent {
		return extent / 2
	}
	return clamp(centre, half, extent-half)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
