package editor

import (
	"math"

	"github.com/venuekit/seatmap-designer/internal/geometry"
)

// ResolvePoint turns a raw world point into the point a tool should actually
// use, honoring the modifier precedence:
//
//  1. angle lock – with a start point, quantize the direction to 45°;
//  2. freehand   – return the raw point untouched;
//  3. force grid – grid-snap both axes, skip object snapping;
//  4. default    – snap to the nearest object edge within threshold, else
//     grid-snap when snap-to-grid is enabled, else raw.
//
// Freehand and force-grid are mutually exclusive escape hatches from the
// default behavior, which is why the order matters.  excludeSeat keeps a
// dragged seat from snapping to its own edges.
func (s *Session) ResolvePoint(raw geometry.Point, start *geometry.Point, excludeSeat string) geometry.Point {
	if s.mods.AngleLock && start != nil {
		return geometry.QuantizeAngle(*start, raw)
	}
	if s.mods.Freehand {
		return raw
	}
	if s.mods.ForceGrid {
		return geometry.SnapPoint(raw, s.Settings.GridSize)
	}
	if p, ok := s.snapToObjectEdge(raw, excludeSeat); ok {
		return p
	}
	if s.Settings.SnapToGrid {
		return geometry.SnapPoint(raw, s.Settings.GridSize)
	}
	return raw
}

// snapToObjectEdge searches the seats and aisles on the active floor plus
// the stage for the closest bounding-rectangle edge point.  Rows commonly
// need to align with walls and existing seats without pixel-perfect input,
// so anything within the threshold wins over the raw point.
func (s *Session) snapToObjectEdge(raw geometry.Point, excludeSeat string) (geometry.Point, bool) {
	threshold := s.Settings.SnapThreshold * s.Settings.GridSize
	best := raw
	bestDist := math.Inf(1)

	consider := func(r geometry.Rect) {
		p, d := r.ClosestEdgePoint(raw)
		if d < bestDist {
			best, bestDist = p, d
		}
	}

	for i := range s.Doc.Seats {
		seat := &s.Doc.Seats[i]
		if seat.FloorID != s.ActiveFloorID || seat.ID == excludeSeat {
			continue
		}
		consider(geometry.RectAround(seat.Pos(), s.Settings.SeatSize))
	}
	for i := range s.Doc.Elements {
		e := &s.Doc.Elements[i]
		if e.FloorID != s.ActiveFloorID {
			continue
		}
		consider(e.Bounds())
	}
	consider(s.Doc.Stage.Bounds())

	if bestDist <= threshold {
		return best, true
	}
	return raw, false
}
