package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/venuekit/seatmap-designer/internal/geometry"
)

func TestScreenToWorldRoundTrip(t *testing.T) {
	v := Viewport{Scale: 2, OffsetX: 100, OffsetY: -40}
	world := geometry.Point{X: 33.5, Y: -7.25}
	screen := v.WorldToScreen(world)
	back := v.ScreenToWorld(screen)
	assert.InDelta(t, world.X, back.X, 1e-9)
	assert.InDelta(t, world.Y, back.Y, 1e-9)
}

func TestZoomAtKeepsCursorAnchored(t *testing.T) {
	v := NewViewport()
	v.PanBy(50, 20)

	cursor := geometry.Point{X: 300, Y: 200}
	before := v.ScreenToWorld(cursor)

	v.ZoomAt(cursor, 2.5)

	after := v.ScreenToWorld(cursor)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
	assert.Equal(t, 2.5, v.Scale)
}

func TestZoomClamped(t *testing.T) {
	v := NewViewport()
	v.ZoomAt(geometry.Point{}, 100)
	assert.Equal(t, MaxScale, v.Scale)
	v.ZoomAt(geometry.Point{}, 0.01)
	assert.Equal(t, MinScale, v.Scale)
}

func TestPanNeverTouchesScale(t *testing.T) {
	v := NewViewport()
	v.ZoomAt(geometry.Point{X: 10, Y: 10}, 1.5)
	scale := v.Scale
	v.PanBy(-35, 80)
	assert.Equal(t, scale, v.Scale)
	assert.InDelta(t, -35, v.OffsetX-(10-10*1.5), 1e-9)
}
