package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuekit/seatmap-designer/internal/geometry"
	"github.com/venuekit/seatmap-designer/internal/layout"
)

// newTestSession builds a session over a single-floor document with the
// stage parked far from the origin so it never interferes with snapping
// assertions.
func newTestSession() *Session {
	doc := &layout.Document{
		Floors: []layout.Floor{{ID: "f1", Name: "Main Floor", Order: 0}},
		Stage:  layout.Stage{X: -1000, Y: -1000, Width: 10, Height: 10, Shape: "rect"},
	}
	return NewSession(doc)
}

func addSeat(s *Session, id string, x, y float64) *layout.Seat {
	seat := layout.Seat{ID: id, FloorID: "f1", Available: true}
	seat.SetPos(geometry.Point{X: x, Y: y})
	s.Doc.Seats = append(s.Doc.Seats, seat)
	return &s.Doc.Seats[len(s.Doc.Seats)-1]
}

func TestFreshSessionHasNoUnsavedChanges(t *testing.T) {
	s := newTestSession()
	assert.False(t, s.HasUnsavedChanges())
}

func TestUnsavedChangesPredicate(t *testing.T) {
	s := newTestSession()

	s.AddAisle("vertical", 100)
	assert.True(t, s.HasUnsavedChanges())

	// Only a successful save advances the snapshot; a failed save leaves
	// the predicate reporting dirty.
	s.MarkSaved()
	assert.False(t, s.HasUnsavedChanges())

	s.Doc.Name = "Arena Bowl"
	assert.True(t, s.HasUnsavedChanges())
}

func TestSnappingPrecedence(t *testing.T) {
	s := newTestSession()
	addSeat(s, "anchor", 100, 100)

	// Default: the nearest object edge wins within threshold.
	p := s.ResolvePoint(geometry.Point{X: 103, Y: 101}, nil, "")
	assert.InDelta(t, 105, p.X, 1e-9)
	assert.InDelta(t, 101, p.Y, 1e-9)

	// Far from any object the grid takes over.
	p = s.ResolvePoint(geometry.Point{X: 131, Y: 149}, nil, "")
	assert.Equal(t, geometry.Point{X: 130, Y: 150}, p)

	// Freehand bypasses everything.
	s.SetModifiers(Modifiers{Freehand: true})
	raw := geometry.Point{X: 103.37, Y: 101.11}
	assert.Equal(t, raw, s.ResolvePoint(raw, nil, ""))

	// Forced grid skips object snapping even next to the seat.
	s.SetModifiers(Modifiers{ForceGrid: true})
	p = s.ResolvePoint(geometry.Point{X: 103, Y: 101}, nil, "")
	assert.Equal(t, geometry.Point{X: 100, Y: 100}, p)

	// Angle lock wins over both when a start point exists.
	s.SetModifiers(Modifiers{AngleLock: true, Freehand: true})
	start := geometry.Point{}
	p = s.ResolvePoint(geometry.Point{X: 50, Y: 3}, &start, "")
	assert.InDelta(t, 0, p.Y, 1e-9)
}

func TestMeasureTwoClickProtocol(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolMeasure)

	s.PointerDown(geometry.Point{X: 10, Y: 10})
	s.PointerUp(geometry.Point{X: 10, Y: 10})
	m := s.Measure()
	require.NotNil(t, m)
	assert.False(t, m.Done)
	assert.Equal(t, m.Start, m.End)

	// Hover previews the second point.
	s.PointerMove(geometry.Point{X: 30, Y: 10})
	assert.Equal(t, geometry.Point{X: 30, Y: 10}, s.Measure().End)

	s.PointerDown(geometry.Point{X: 50, Y: 40})
	s.PointerUp(geometry.Point{X: 50, Y: 40})
	m = s.Measure()
	assert.True(t, m.Done)
	assert.InDelta(t, 50, m.Length(), 1e-9)

	// The next click starts a fresh measurement, discarding the old one.
	s.PointerDown(geometry.Point{X: 70, Y: 70})
	m = s.Measure()
	assert.False(t, m.Done)
	assert.Equal(t, geometry.Point{X: 70, Y: 70}, m.Start)
}

func TestPanGestureRecomputesFromSnapshot(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolPan)

	s.PointerDown(geometry.Point{X: 100, Y: 100})
	s.PointerMove(geometry.Point{X: 110, Y: 120})
	// Repeated move events within one gesture recompute from the gesture's
	// own start, so replaying the same position changes nothing.
	s.PointerMove(geometry.Point{X: 110, Y: 120})
	s.PointerUp(geometry.Point{X: 110, Y: 120})

	assert.Equal(t, 10.0, s.View.OffsetX)
	assert.Equal(t, 20.0, s.View.OffsetY)

	s.PointerDown(geometry.Point{X: 0, Y: 0})
	s.PointerMove(geometry.Point{X: 10, Y: 0})
	s.PointerUp(geometry.Point{X: 10, Y: 0})

	assert.Equal(t, 20.0, s.View.OffsetX)
	assert.Equal(t, 20.0, s.View.OffsetY)
}

func TestSpaceBarPansFromAnyTool(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolSelect)
	s.SetModifiers(Modifiers{Space: true})

	s.PointerDown(geometry.Point{})
	s.PointerMove(geometry.Point{X: 25, Y: -5})
	s.PointerUp(geometry.Point{X: 25, Y: -5})

	assert.Equal(t, 25.0, s.View.OffsetX)
	assert.Equal(t, -5.0, s.View.OffsetY)
	assert.Equal(t, ToolSelect, s.Tool())
}

func TestSelectClickAndFreeDrag(t *testing.T) {
	s := newTestSession()
	addSeat(s, "s1", 0, 0)

	s.PointerDown(geometry.Point{})
	assert.Equal(t, "s1", s.SelectedSeatID)

	s.PointerMove(geometry.Point{X: 23, Y: 14})
	s.PointerUp(geometry.Point{X: 23, Y: 14})

	// Snap-to-grid is on by default, so the drop lands on the grid.
	p := s.Doc.SeatByID("s1").Pos()
	assert.Equal(t, geometry.Point{X: 20, Y: 10}, p)

	// Clicking empty space clears the selection.
	s.PointerDown(geometry.Point{X: 500, Y: 500})
	s.PointerUp(geometry.Point{X: 500, Y: 500})
	assert.Equal(t, "", s.SelectedSeatID)
}

func TestRowToolDragGeneratesRow(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolRow)

	s.PointerDown(geometry.Point{})
	s.PointerMove(geometry.Point{X: 40, Y: 0})
	s.PointerUp(geometry.Point{X: 40, Y: 0})

	require.Len(t, s.Doc.Seats, 5)
	group := s.Doc.Seats[0].RowGroupID
	require.NotEmpty(t, group)
	for i, seat := range s.Doc.Seats {
		assert.Equal(t, group, seat.RowGroupID)
		assert.InDelta(t, float64(i)*10, seat.Pos().X, 1e-9)
	}
	assert.True(t, s.HasUnsavedChanges())
}

func TestRowGroupDragIsReversible(t *testing.T) {
	s := newTestSession()
	s.Settings.SnapToGrid = false
	groupID, _ := layout.GenerateRow(s.Doc, geometry.Point{}, geometry.Point{X: 40}, layout.RowOptions{FloorID: "f1", Pitch: 10})
	require.NotEmpty(t, groupID)

	before := make([]geometry.Point, len(s.Doc.Seats))
	for i := range s.Doc.Seats {
		before[i] = s.Doc.Seats[i].Pos()
	}

	s.SetTool(ToolRow)

	// Drag the group by (7.5, 4.25) starting on the first member.
	s.PointerDown(geometry.Point{})
	s.PointerMove(geometry.Point{X: 7.5, Y: 4.25})
	s.PointerUp(geometry.Point{X: 7.5, Y: 4.25})
	assert.Equal(t, geometry.Point{X: 7.5, Y: 4.25}, s.Doc.Seats[0].Pos())

	// Drag it back by the exact inverse vector.
	s.PointerDown(geometry.Point{X: 7.5, Y: 4.25})
	s.PointerMove(geometry.Point{})
	s.PointerUp(geometry.Point{})

	for i := range s.Doc.Seats {
		assert.Equal(t, before[i], s.Doc.Seats[i].Pos(), "seat %d drifted", i)
	}
}

func TestRowGroupDragSkipsDetachedMembers(t *testing.T) {
	s := newTestSession()
	s.Settings.SnapToGrid = false
	layout.GenerateRow(s.Doc, geometry.Point{}, geometry.Point{X: 40}, layout.RowOptions{FloorID: "f1", Pitch: 10})

	s.Doc.Seats[4].Detached = true
	parked := s.Doc.Seats[4].Pos()

	s.SetTool(ToolRow)
	s.PointerDown(geometry.Point{})
	s.PointerMove(geometry.Point{X: 5, Y: 5})
	s.PointerUp(geometry.Point{X: 5, Y: 5})

	assert.Equal(t, parked, s.Doc.Seats[4].Pos())
	assert.Equal(t, geometry.Point{X: 15, Y: 5}, s.Doc.Seats[1].Pos())
}

func TestPathToolClickFinalizeConfirm(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolPath)

	s.PointerDown(geometry.Point{})
	s.PointerUp(geometry.Point{})
	s.PointerDown(geometry.Point{X: 40, Y: 0})
	s.PointerUp(geometry.Point{X: 40, Y: 0})
	require.Len(t, s.PathPoints(), 2)

	plan := s.FinalizePath(5)
	require.NotNil(t, plan)
	assert.False(t, plan.Conflict)
	assert.Nil(t, s.PathPoints(), "finalize consumes the draft")

	added := s.ConfirmPath(true)
	assert.Equal(t, 5, added)
	assert.Len(t, s.Doc.Seats, 5)
}

func TestPathToolDeclineAddsNothing(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolPath)
	s.SetModifiers(Modifiers{Freehand: true}) // keep the diagonal exact

	s.PointerDown(geometry.Point{})
	s.PointerUp(geometry.Point{})
	s.PointerDown(geometry.Point{X: 40, Y: 40})
	s.PointerUp(geometry.Point{X: 40, Y: 40})

	plan := s.FinalizePath(13)
	require.NotNil(t, plan)
	assert.True(t, plan.Conflict)

	added := s.ConfirmPath(false)
	assert.Equal(t, 0, added)
	assert.Empty(t, s.Doc.Seats)
	assert.False(t, s.HasUnsavedChanges())
}

func TestStageDragTranslatesOnly(t *testing.T) {
	s := newTestSession()
	s.Doc.Stage = layout.Stage{X: 0, Y: 0, Width: 40, Height: 20, Shape: "rect"}
	s.MarkSaved()
	s.SetTool(ToolStage)

	s.PointerDown(geometry.Point{X: 10, Y: 10})
	s.PointerMove(geometry.Point{X: 27, Y: 15})
	s.PointerUp(geometry.Point{X: 27, Y: 15})

	assert.Equal(t, 20.0, s.Doc.Stage.X)
	assert.Equal(t, 10.0, s.Doc.Stage.Y)
	assert.Equal(t, 40.0, s.Doc.Stage.Width, "drag must never resize")
	assert.Equal(t, 20.0, s.Doc.Stage.Height)
}

func TestAisleDragTranslatesOnly(t *testing.T) {
	s := newTestSession()
	e := s.AddAisle("vertical", 100)
	id := e.ID
	s.SetTool(ToolAisle)

	s.PointerDown(geometry.Point{X: 5, Y: 50})
	s.PointerMove(geometry.Point{X: 18, Y: 60})
	s.PointerUp(geometry.Point{X: 18, Y: 60})

	for _, el := range s.Doc.Elements {
		if el.ID != id {
			continue
		}
		assert.Equal(t, 10.0, el.X)
		assert.Equal(t, 10.0, el.Y)
		assert.Equal(t, 100.0, el.Length)
	}
}

func TestToolSwitchDiscardsDrafts(t *testing.T) {
	s := newTestSession()

	s.SetTool(ToolMeasure)
	s.PointerDown(geometry.Point{X: 10, Y: 10})
	s.PointerUp(geometry.Point{X: 10, Y: 10})
	require.NotNil(t, s.Measure())

	s.SetTool(ToolPath)
	assert.Nil(t, s.Measure())

	s.PointerDown(geometry.Point{})
	s.PointerUp(geometry.Point{})
	require.Len(t, s.PathPoints(), 1)

	s.SetTool(ToolSelect)
	assert.Nil(t, s.PathPoints())
}

func TestPointerUpClearsEveryDragRef(t *testing.T) {
	s := newTestSession()
	addSeat(s, "s1", 0, 0)

	s.PointerDown(geometry.Point{})
	s.PointerUp(geometry.Point{})

	// With no live drag ref, movement must not touch the seat.
	p := s.Doc.SeatByID("s1").Pos()
	s.PointerMove(geometry.Point{X: 300, Y: 300})
	assert.Equal(t, p, s.Doc.SeatByID("s1").Pos())
}

func TestReflowSelectedGroup(t *testing.T) {
	s := newTestSession()
	groupID, _ := layout.GenerateRow(s.Doc, geometry.Point{}, geometry.Point{X: 40}, layout.RowOptions{FloorID: "f1", Pitch: 10})
	require.NotEmpty(t, groupID)

	// Knock a member off the line, then reflow through the selection.
	s.Doc.Seats[2].SetPos(geometry.Point{X: 22, Y: 9})
	s.SelectedSeatID = s.Doc.Seats[2].ID

	s.ReflowSelectedGroup()
	for i, seat := range s.Doc.Seats {
		assert.InDelta(t, float64(i)*10, seat.Pos().X, 1e-9)
		assert.InDelta(t, 0, seat.Pos().Y, 1e-9)
	}
}
