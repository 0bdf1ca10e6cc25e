package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/venuekit/seatmap-designer/internal/geometry"
)

// Row-draw seat counts are clamped to this range; a drag shorter than one
// pitch still yields a two-seat row, and a pathological drag cannot flood
// the layout.
const (
	minRowSeats = 2
	maxRowSeats = 200
)

// sectionGap is the vertical breathing room between stacked generated
// sections, in world units.
const sectionGap = 2 * geometry.UnitsPerFoot

// GridOptions configures GenerateSectionGrid.
type GridOptions struct {
	FloorID  string  // target floor; empty means the first floor
	GridSize float64 // world units per cell; defaults to one foot
}

// GenerateSectionGrid places an R×N grid of seats for the named section.
// The first section on a floor is centered on the origin; later sections
// start one gap below the lowest seat already on the floor, so sections of
// any row count stack without overlapping.  Seat IDs are deterministic per
// (section, row, number), and seats whose ID already exists are skipped, so
// re-running with identical parameters adds nothing.  Non-positive rows or
// cols are clamped to 1.  Returns the number of seats added.
func GenerateSectionGrid(doc *Document, name string, rows, cols int, opts GridOptions) int {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	grid := opts.GridSize
	if grid <= 0 {
		grid = geometry.UnitsPerFoot
	}
	floorID := opts.FloorID
	if floorID == "" && len(doc.Floors) > 0 {
		floorID = doc.Floors[0].ID
	}

	// Stack beneath the seats already on the floor.  The target section's
	// own seats are excluded, so a re-run computes the same base and the
	// generated positions stay stable.
	base := math.Inf(-1)
	for i := range doc.Seats {
		s := &doc.Seats[i]
		if s.FloorID != floorID || s.Section == name || s.PosY == nil {
			continue
		}
		if *s.PosY > base {
			base = *s.PosY
		}
	}
	rowY := func(r int) float64 {
		if math.IsInf(base, -1) {
			return (float64(r) - float64(rows-1)/2) * grid
		}
		return base + sectionGap + float64(r)*grid
	}

	ids := make(map[string]bool, len(doc.Seats))
	for i := range doc.Seats {
		ids[doc.Seats[i].ID] = true
	}

	added := 0
	for r := 0; r < rows; r++ {
		label := RowLabel(r)
		for c := 0; c < cols; c++ {
			id := fmt.Sprintf("%s-%s-%d", sectionSlug(name), label, c+1)
			if ids[id] {
				continue
			}
			ids[id] = true
			seat := Seat{
				ID:        id,
				Row:       label,
				Number:    c + 1,
				Section:   name,
				FloorID:   floorID,
				Available: true,
			}
			seat.SetPos(geometry.Point{
				X: (float64(c) - float64(cols-1)/2) * grid,
				Y: rowY(r),
			})
			doc.Seats = append(doc.Seats, seat)
			added++
		}
	}
	return added
}

// RowOptions configures GenerateRow.
type RowOptions struct {
	FloorID string
	Section string
	Pitch   float64 // seat spacing in world units; defaults to one foot
}

// GenerateRow places seats evenly along the drag-defined line from start to
// end.  The seat count is round(length/pitch)+1 clamped to [2, 200], and all
// placed seats share a freshly generated row group id, which is returned
// along with the number of seats added.
func GenerateRow(doc *Document, start, end geometry.Point, opts RowOptions) (string, int) {
	pitch := opts.Pitch
	if pitch <= 0 || math.IsNaN(pitch) {
		pitch = geometry.UnitsPerFoot
	}
	floorID := opts.FloorID
	if floorID == "" && len(doc.Floors) > 0 {
		floorID = doc.Floors[0].ID
	}

	length := start.Dist(end)
	count := int(math.Round(length/pitch)) + 1
	if count < minRowSeats {
		count = minRowSeats
	}
	if count > maxRowSeats {
		count = maxRowSeats
	}

	groupID := uuid.NewString()
	for i := 0; i < count; i++ {
		t := float64(i) / float64(count-1)
		seat := Seat{
			ID:         uuid.NewString(),
			Number:     i + 1,
			Section:    opts.Section,
			FloorID:    floorID,
			Available:  true,
			RowGroupID: groupID,
		}
		seat.SetPos(geometry.Point{
			X: start.X + (end.X-start.X)*t,
			Y: start.Y + (end.Y-start.Y)*t,
		})
		doc.Seats = append(doc.Seats, seat)
	}
	return groupID, count
}

// PathOptions configures PlanPathPlacement.  Exactly one of Count or Spacing
// should be set; when both are present Count wins.
type PathOptions struct {
	FloorID  string
	Section  string
	Count    int     // target seat count (>= 2)
	Spacing  float64 // explicit spacing in world units, used when Count == 0
	SeatSize float64 // seat footprint in world units, for the overlap test
}

// PathPlacement is a planned path placement awaiting confirmation.  When
// Conflict is set, the requested spacing would overlap seats at the sharpest
// turn of the path and SeatSize holds the shrunken size that makes the
// placement fit.  Commit(false) discards the plan without touching the
// document; this is the interactive conflict-resolution step, not an error.
type PathPlacement struct {
	doc      *Document
	seats    []Seat
	Conflict bool
	Spacing  float64
	SeatSize float64 // possibly reduced from the requested size
	GroupID  string
}

// PlanPathPlacement resamples an open polyline at uniform arc-length
// intervals and prepares one seat per sample point.  Nothing is added to the
// document until Commit is called.  Returns nil for degenerate input (fewer
// than two path points, or fewer than two seats requested).
func PlanPathPlacement(doc *Document, pts []geometry.Point, opts PathOptions) *PathPlacement {
	if len(pts) < 2 {
		return nil
	}
	total := geometry.PolylineLength(pts)
	if total <= 0 {
		return nil
	}
	seatSize := opts.SeatSize
	if seatSize <= 0 {
		seatSize = geometry.UnitsPerFoot
	}

	count := opts.Count
	spacing := opts.Spacing
	switch {
	case count >= 2:
		spacing = total / float64(count-1)
	case spacing > 0:
		count = int(math.Floor(total/spacing)) + 1
		if count < 2 {
			count = 2
			spacing = total
		}
	default:
		return nil
	}

	plan := &PathPlacement{
		doc:      doc,
		Spacing:  spacing,
		SeatSize: seatSize,
		GroupID:  uuid.NewString(),
	}

	// Overlap test: the worst-case segment angle dictates how much spacing
	// square seats of this size need.  Shrink the seat size for this
	// placement instead of silently producing overlapping seats; the caller
	// confirms or declines.
	required := geometry.SharpestTurnSpacing(pts, seatSize)
	if spacing < required {
		plan.Conflict = true
		plan.SeatSize = seatSize * spacing / required
	}

	samples := geometry.ResamplePolyline(pts, count)
	plan.seats = make([]Seat, 0, len(samples))
	floorID := opts.FloorID
	if floorID == "" && len(doc.Floors) > 0 {
		floorID = doc.Floors[0].ID
	}
	for i, p := range samples {
		seat := Seat{
			ID:         uuid.NewString(),
			Number:     i + 1,
			Section:    opts.Section,
			FloorID:    floorID,
			Available:  true,
			RowGroupID: plan.GroupID,
		}
		seat.SetPos(p)
		plan.seats = append(plan.seats, seat)
	}
	return plan
}

// Commit applies or discards the plan.  A conflicted plan is applied only
// when accept is true; a conflict-free plan ignores accept.  Returns the
// number of seats added.
func (p *PathPlacement) Commit(accept bool) int {
	if p == nil || p.seats == nil {
		return 0
	}
	if p.Conflict && !accept {
		p.seats = nil
		return 0
	}
	p.doc.Seats = append(p.doc.Seats, p.seats...)
	n := len(p.seats)
	p.seats = nil
	return n
}

// AutoLabel relabels every seat on a floor from geometry alone: seats are
// bucketed by section, rows within a section by Y snapped to the grid, rows
// sorted top to bottom get alphabetic labels, and seats within a row sorted
// left to right get sequential numbers.  Freely dragged seats therefore end
// up with deterministic labels.
func AutoLabel(doc *Document, floorID string, grid float64) {
	if grid <= 0 {
		grid = geometry.UnitsPerFoot
	}

	bySection := map[string][]*Seat{}
	var sections []string
	for i := range doc.Seats {
		s := &doc.Seats[i]
		if s.FloorID != floorID {
			continue
		}
		if _, ok := bySection[s.Section]; !ok {
			sections = append(sections, s.Section)
		}
		bySection[s.Section] = append(bySection[s.Section], s)
	}

	for _, sec := range sections {
		seats := bySection[sec]

		rows := map[float64][]*Seat{}
		var ys []float64
		for _, s := range seats {
			y := geometry.SnapToGrid(s.Pos().Y, grid)
			if _, ok := rows[y]; !ok {
				ys = append(ys, y)
			}
			rows[y] = append(rows[y], s)
		}
		sort.Float64s(ys)

		for ri, y := range ys {
			row := rows[y]
			sort.SliceStable(row, func(i, j int) bool {
				return row[i].Pos().X < row[j].Pos().X
			})
			label := RowLabel(ri)
			for si, s := range row {
				s.Row = label
				s.Number = si + 1
			}
		}
	}
}

// Reflow straightens a row group back into an evenly spaced line.  The
// non-detached members are sorted by seat number, the first and last become
// the line endpoints, and every member is re-placed at
// start + direction·pitch·index.  Detached seats are untouched.  Reflowing
// twice yields the same positions as reflowing once.
func Reflow(doc *Document, groupID string, pitch float64) {
	if pitch <= 0 {
		pitch = geometry.UnitsPerFoot
	}
	seats := doc.GroupSeats(groupID, false)
	if len(seats) < 2 {
		return
	}
	sort.SliceStable(seats, func(i, j int) bool {
		if seats[i].Number != seats[j].Number {
			return seats[i].Number < seats[j].Number
		}
		return seats[i].ID < seats[j].ID
	})

	start := seats[0].Pos()
	end := seats[len(seats)-1].Pos()
	dist := start.Dist(end)
	dir := geometry.Point{X: 1, Y: 0} // coincident endpoints reflow horizontally
	if dist > 0 {
		dir = geometry.Point{X: (end.X - start.X) / dist, Y: (end.Y - start.Y) / dist}
	}
	for i, s := range seats {
		s.SetPos(geometry.Point{
			X: start.X + dir.X*pitch*float64(i),
			Y: start.Y + dir.Y*pitch*float64(i),
		})
	}
}
