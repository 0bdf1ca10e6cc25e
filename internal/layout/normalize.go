package layout

import (
	"math"

	"github.com/venuekit/seatmap-designer/internal/geometry"
)

// DefaultFloorID and DefaultFloorName describe the floor synthesized when a
// loaded document carries none.
const (
	DefaultFloorID   = "floor-1"
	DefaultFloorName = "Main Floor"
)

// Normalize repairs structural gaps in a freshly loaded document so the
// editor always starts from a renderable layout.  Load-time gaps are
// repaired, never rejected:
//
//   - a document with zero floors gets a single default floor;
//   - seats referencing a missing floor are assigned to the first floor;
//   - legacy 0–100 percentage positions are remapped to world units, once:
//     the document is then stamped world-space, so world coordinates that
//     happen to fall inside [0,100] survive later normalizations intact;
//   - seats with no position are placed on a synthesized grid near the
//     origin, unless most seats are already positioned, in which case the
//     minority is parked at the origin instead of distorting the layout.
//
// Normalize is idempotent: running it on an already normalized document
// changes nothing.
func Normalize(doc *Document) {
	if len(doc.Floors) == 0 {
		doc.Floors = []Floor{{ID: DefaultFloorID, Name: DefaultFloorName, Order: 0}}
	}
	doc.SortFloors()

	if doc.Elements == nil {
		doc.Elements = []Element{}
	}
	if doc.Seats == nil {
		doc.Seats = []Seat{}
	}

	known := make(map[string]bool, len(doc.Floors))
	for _, f := range doc.Floors {
		known[f.ID] = true
	}
	first := doc.Floors[0].ID
	for i := range doc.Seats {
		if !known[doc.Seats[i].FloorID] {
			doc.Seats[i].FloorID = first
		}
	}
	for i := range doc.Elements {
		if !known[doc.Elements[i].FloorID] {
			doc.Elements[i].FloorID = first
		}
	}

	normalizePositions(doc)
	doc.CoordinateSpace = CoordinateSpaceWorld
}

// positioned reports whether the seat carries a usable coordinate pair.
func positioned(s *Seat) bool {
	if s.PosX == nil || s.PosY == nil {
		return false
	}
	if math.IsNaN(*s.PosX) || math.IsInf(*s.PosX, 0) ||
		math.IsNaN(*s.PosY) || math.IsInf(*s.PosY, 0) {
		return false
	}
	return true
}

// normalizePositions applies the legacy-percentage remap and places seats
// that have no coordinates.
func normalizePositions(doc *Document) {
	withPos := 0
	for i := range doc.Seats {
		if positioned(&doc.Seats[i]) {
			withPos++
		}
	}

	// Legacy documents stored seat positions as 0–100 percentages of the
	// canvas.  When an unstamped document's positioned seats all fall
	// inside that range and at least one sits off the world grid origin,
	// remap the whole set to world units centered at the origin.  Stamped
	// documents are already world-space; their values are never remapped.
	if doc.CoordinateSpace != CoordinateSpaceWorld && withPos > 0 && looksLikePercentages(doc) {
		for i := range doc.Seats {
			s := &doc.Seats[i]
			if !positioned(s) {
				continue
			}
			s.SetPos(geometry.Point{
				X: (*s.PosX - 50) * 10,
				Y: (*s.PosY - 50) * 10,
			})
		}
	}

	missing := len(doc.Seats) - withPos
	if missing == 0 {
		return
	}

	if withPos > missing {
		// Mostly-positioned layout: park the minority at the origin rather
		// than scattering a grid over a real arrangement.
		for i := range doc.Seats {
			if !positioned(&doc.Seats[i]) {
				doc.Seats[i].SetPos(geometry.Point{})
			}
		}
		return
	}

	// Majority missing: synthesize a square grid near the origin, one grid
	// cell of breathing room per seat.
	cols := int(math.Ceil(math.Sqrt(float64(missing))))
	pitch := geometry.UnitsPerFoot * 2
	idx := 0
	for i := range doc.Seats {
		s := &doc.Seats[i]
		if positioned(s) {
			continue
		}
		col := idx % cols
		row := idx / cols
		s.SetPos(geometry.Point{
			X: (float64(col) - float64(cols-1)/2) * pitch,
			Y: float64(row) * pitch,
		})
		idx++
	}
}

// looksLikePercentages reports whether every positioned seat lies inside the
// 0–100 legacy range.  World-unit layouts are centered at the origin, so a
// set that is entirely non-negative and bounded by 100 on both axes is taken
// to be legacy data.  At least one coordinate must be strictly positive:
// a lone seat parked at the origin is already world data.
func looksLikePercentages(doc *Document) bool {
	nonzero := false
	for i := range doc.Seats {
		s := &doc.Seats[i]
		if !positioned(s) {
			continue
		}
		if *s.PosX < 0 || *s.PosX > 100 || *s.PosY < 0 || *s.PosY > 100 {
			return false
		}
		if *s.PosX > 0 || *s.PosY > 0 {
			nonzero = true
		}
	}
	return nonzero
}
