// Package geometry provides the world-coordinate primitives used by the
// seat-map editor.  All values are in world units; one logical foot equals
// UnitsPerFoot world units.  Screen pixels never appear here — converting
// between screen and world space is the viewport's job.
package geometry

import "math"

// UnitsPerFoot is the number of world units that represent one real-world
// foot.  The default editor grid is one foot wide, so GridSize == UnitsPerFoot
// unless the operator changes it.
const UnitsPerFoot = 10.0

// Point represents a 2D coordinate in world units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned bounding rectangle in world units.
type Rect struct {
	X      float64 // left edge
	Y      float64 // top edge
	Width  float64
	Height float64
}

// RectAround builds the bounding rect of a square object of size s centred at c.
func RectAround(c Point, s float64) Rect {
	return Rect{X: c.X - s/2, Y: c.Y - s/2, Width: s, Height: s}
}

// ClosestEdgePoint returns the point on the rectangle boundary nearest to p,
// together with its distance from p.  For a point inside the rectangle the
// nearest boundary point is still returned (distance to the closest edge).
func (r Rect) ClosestEdgePoint(p Point) (Point, float64) {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height

	// Clamp onto the rectangle first.
	cx := math.Min(math.Max(p.X, x0), x1)
	cy := math.Min(math.Max(p.Y, y0), y1)

	if cx != p.X || cy != p.Y {
		// Point is outside: the clamped point already lies on the boundary.
		q := Point{X: cx, Y: cy}
		return q, p.Dist(q)
	}

	// Point is inside: project onto the nearest of the four edges.
	dl := p.X - x0
	dr := x1 - p.X
	dt := p.Y - y0
	db := y1 - p.Y
	min := math.Min(math.Min(dl, dr), math.Min(dt, db))
	switch min {
	case dl:
		return Point{X: x0, Y: p.Y}, dl
	case dr:
		return Point{X: x1, Y: p.Y}, dr
	case dt:
		return Point{X: p.X, Y: y0}, dt
	default:
		return Point{X: p.X, Y: y1}, db
	}
}

// SnapToGrid snaps a scalar coordinate to the nearest multiple of grid.
// Degenerate inputs (non-positive grid, NaN or infinite n) are returned
// unchanged so callers never have to guard before snapping.
func SnapToGrid(n, grid float64) float64 {
	if grid <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return n
	}
	return math.Round(n/grid) * grid
}

// SnapPoint snaps both axes of p independently via SnapToGrid.
func SnapPoint(p Point, grid float64) Point {
	return Point{X: SnapToGrid(p.X, grid), Y: SnapToGrid(p.Y, grid)}
}

// QuantizeAngle moves p so that the direction from start to p lies on the
// nearest 45° increment while the distance from start is preserved.  When
// start and p coincide, p is returned unchanged (no direction to quantize).
func QuantizeAngle(start, p Point) Point {
	d := p.Sub(start)
	dist := math.Hypot(d.X, d.Y)
	if dist == 0 {
		return p
	}
	step := math.Pi / 4
	ang := math.Round(math.Atan2(d.Y, d.X)/step) * step
	return Point{X: start.X + dist*math.Cos(ang), Y: start.Y + dist*math.Sin(ang)}
}
