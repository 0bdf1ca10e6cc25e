package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuekit/seatmap-designer/internal/geometry"
)

func seatAt(id string, x, y float64) Seat {
	s := Seat{ID: id, Available: true}
	s.SetPos(geometry.Point{X: x, Y: y})
	return s
}

func TestNormalizeZeroFloors(t *testing.T) {
	doc := &Document{
		Seats: []Seat{seatAt("s1", -20, 0), seatAt("s2", 15, 5)},
	}
	Normalize(doc)

	require.Len(t, doc.Floors, 1)
	assert.Equal(t, DefaultFloorID, doc.Floors[0].ID)
	assert.Equal(t, DefaultFloorName, doc.Floors[0].Name)
	assert.Equal(t, 0, doc.Floors[0].Order)
	for _, s := range doc.Seats {
		assert.Equal(t, DefaultFloorID, s.FloorID)
	}
}

func TestNormalizeUnknownFloorReassigned(t *testing.T) {
	doc := &Document{
		Floors: []Floor{{ID: "f2", Name: "Balcony", Order: 1}, {ID: "f1", Name: "Main", Order: 0}},
		Seats:  []Seat{{ID: "s1", FloorID: "ghost"}},
		Elements: []Element{
			{ID: "e1", Type: "aisle", FloorID: "gone", Orientation: "vertical", Length: 100, Thickness: 10},
		},
	}
	Normalize(doc)

	// Floors sort by (order, name); orphans go to the first floor.
	assert.Equal(t, "f1", doc.Floors[0].ID)
	assert.Equal(t, "f1", doc.Seats[0].FloorID)
	assert.Equal(t, "f1", doc.Elements[0].FloorID)
}

func TestNormalizePercentageRemap(t *testing.T) {
	doc := &Document{
		Floors: []Floor{{ID: "f1", Name: "Main", Order: 0}},
		Seats:  []Seat{seatAt("s1", 50, 50), seatAt("s2", 100, 0)},
	}
	Normalize(doc)

	assert.InDelta(t, 0, *doc.Seats[0].PosX, 1e-9)
	assert.InDelta(t, 0, *doc.Seats[0].PosY, 1e-9)
	assert.InDelta(t, 500, *doc.Seats[1].PosX, 1e-9)
	assert.InDelta(t, -500, *doc.Seats[1].PosY, 1e-9)
}

func TestNormalizeWorldCoordsNotRemapped(t *testing.T) {
	doc := &Document{
		Floors: []Floor{{ID: "f1", Name: "Main", Order: 0}},
		Seats:  []Seat{seatAt("s1", -20, 30), seatAt("s2", 40, 50)},
	}
	Normalize(doc)

	// A negative coordinate rules out legacy percentages.
	assert.Equal(t, -20.0, *doc.Seats[0].PosX)
	assert.Equal(t, 40.0, *doc.Seats[1].PosX)
}

func TestNormalizeAllSeatsMissingCoords(t *testing.T) {
	doc := &Document{
		Floors: []Floor{{ID: "f1", Name: "Main", Order: 0}},
		Seats:  []Seat{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}, {ID: "s4"}, {ID: "s5"}},
	}
	Normalize(doc)

	for _, s := range doc.Seats {
		require.NotNil(t, s.PosX)
		require.NotNil(t, s.PosY)
		assert.False(t, math.IsNaN(*s.PosX) || math.IsInf(*s.PosX, 0))
		assert.False(t, math.IsNaN(*s.PosY) || math.IsInf(*s.PosY, 0))
	}

	// No two seats share a synthesized grid cell.
	seen := map[[2]float64]bool{}
	for _, s := range doc.Seats {
		key := [2]float64{*s.PosX, *s.PosY}
		assert.False(t, seen[key], "duplicate position %v", key)
		seen[key] = true
	}
}

func TestNormalizeMinorityMissingParkedAtOrigin(t *testing.T) {
	doc := &Document{
		Floors: []Floor{{ID: "f1", Name: "Main", Order: 0}},
		Seats: []Seat{
			seatAt("s1", -20, 0),
			seatAt("s2", 10, 5),
			seatAt("s3", 30, -10),
			{ID: "s4"},
		},
	}
	Normalize(doc)

	assert.Equal(t, 0.0, *doc.Seats[3].PosX)
	assert.Equal(t, 0.0, *doc.Seats[3].PosY)
	// Positioned seats are untouched.
	assert.Equal(t, -20.0, *doc.Seats[0].PosX)
}

func TestNormalizePercentageRemapRunsOnce(t *testing.T) {
	// pct (55,52) remaps to world (50,20), which still lies inside the
	// 0–100 range.  The save path normalizes again; the world-space stamp
	// must keep the second pass from shifting the seats.
	doc := &Document{
		Floors: []Floor{{ID: "f1", Name: "Main", Order: 0}},
		Seats:  []Seat{seatAt("s1", 55, 52)},
	}
	Normalize(doc)
	assert.Equal(t, 50.0, *doc.Seats[0].PosX)
	assert.Equal(t, 20.0, *doc.Seats[0].PosY)
	assert.Equal(t, CoordinateSpaceWorld, doc.CoordinateSpace)

	Normalize(doc)
	DeriveSections(doc)
	assert.Equal(t, 50.0, *doc.Seats[0].PosX)
	assert.Equal(t, 20.0, *doc.Seats[0].PosY)
}

func TestNormalizeIdempotent(t *testing.T) {
	doc := &Document{
		Seats: []Seat{{ID: "s1"}, seatAt("s2", -30, 12)},
	}
	Normalize(doc)
	first := Snapshot(doc)
	Normalize(doc)
	assert.Equal(t, first, Snapshot(doc))
}

func TestNormalizeThenSaveProducesFiniteCoords(t *testing.T) {
	// Load-with-missing-positions then save must never crash and must yield
	// finite coordinates for every seat.
	doc := &Document{
		Seats: []Seat{{ID: "a"}, {ID: "b"}, {ID: "c", Section: "VIP"}},
	}
	Normalize(doc)
	DeriveSections(doc)
	snap := Snapshot(doc)
	require.NotEmpty(t, snap)
	for _, s := range doc.Seats {
		require.NotNil(t, s.PosX)
		require.NotNil(t, s.PosY)
	}
}
