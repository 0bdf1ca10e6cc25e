package geometry

import "math"

// PolylineLength returns the total arc length of an open polyline.
func PolylineLength(pts []Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Dist(pts[i-1])
	}
	return total
}

// ResamplePolyline distributes count points along the polyline at uniform
// arc-length intervals, first point at the start and last point at the end.
// Fewer than two input points or a count below two yields a copy of the
// input truncated to count.
func ResamplePolyline(pts []Point, count int) []Point {
	if len(pts) < 2 || count < 2 {
		out := make([]Point, 0, len(pts))
		for i := 0; i < len(pts) && i < count; i++ {
			out = append(out, pts[i])
		}
		return out
	}
	total := PolylineLength(pts)
	if total == 0 {
		// Degenerate polyline: every sample lands on the same spot.
		out := make([]Point, count)
		for i := range out {
			out[i] = pts[0]
		}
		return out
	}

	spacing := total / float64(count-1)
	out := make([]Point, 0, count)
	out = append(out, pts[0])

	seg := 1           // index of the segment end point being walked
	walked := 0.0      // arc length consumed before the current segment
	segLen := pts[1].Dist(pts[0])

	for i := 1; i < count-1; i++ {
		target := spacing * float64(i)
		for walked+segLen < target && seg < len(pts)-1 {
			walked += segLen
			seg++
			segLen = pts[seg].Dist(pts[seg-1])
		}
		t := 0.0
		if segLen > 0 {
			t = (target - walked) / segLen
		}
		a, b := pts[seg-1], pts[seg]
		out = append(out, Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t})
	}
	out = append(out, pts[len(pts)-1])
	return out
}

// SharpestTurnSpacing returns the seat spacing required to keep square seats
// of size seatSize from overlapping across the sharpest corner of the
// polyline.  For each interior vertex the incoming segment direction θ is
// evaluated as seatSize / max(|cos θ|, |sin θ|); the worst case over all
// segments is returned.  A polyline with no segments requires seatSize.
func SharpestTurnSpacing(pts []Point, seatSize float64) float64 {
	required := seatSize
	for i := 1; i < len(pts); i++ {
		d := pts[i].Sub(pts[i-1])
		if d.X == 0 && d.Y == 0 {
			continue
		}
		theta := math.Atan2(d.Y, d.X)
		denom := math.Max(math.Abs(math.Cos(theta)), math.Abs(math.Sin(theta)))
		if denom == 0 {
			continue
		}
		if r := seatSize / denom; r > required {
			required = r
		}
	}
	return required
}
