package editor

import "github.com/venuekit/seatmap-designer/internal/geometry"

// Zoom clamp bounds.  Scales outside this range produce degenerate rendering
// (sub-pixel seats or a single seat filling the canvas).
const (
	MinScale = 0.25
	MaxScale = 3.0
)

// Viewport is the camera: pan/zoom state and the screen↔world transforms.
// It is ephemeral view state, reset on load and never persisted.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// NewViewport returns a viewport at identity scale with no offset.
func NewViewport() Viewport {
	return Viewport{Scale: 1}
}

// ScreenToWorld converts a screen-pixel point into world units.
func (v *Viewport) ScreenToWorld(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: (p.X - v.OffsetX) / v.Scale,
		Y: (p.Y - v.OffsetY) / v.Scale,
	}
}

// WorldToScreen converts a world point into screen pixels.
func (v *Viewport) WorldToScreen(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: p.X*v.Scale + v.OffsetX,
		Y: p.Y*v.Scale + v.OffsetY,
	}
}

// PanBy translates the offset by a screen-space delta.  Panning never
// touches scale.
func (v *Viewport) PanBy(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// ZoomAt sets the scale, clamped to [MinScale, MaxScale], anchored at the
// given screen point: the world point under the cursor stays fixed on
// screen.
func (v *Viewport) ZoomAt(screen geometry.Point, scale float64) {
	if scale < MinScale {
		scale = MinScale
	}
	if scale > MaxScale {
		scale = MaxScale
	}
	world := v.ScreenToWorld(screen)
	v.Scale = scale
	v.OffsetX = screen.X - world.X*scale
	v.OffsetY = screen.Y - world.Y*scale
}
