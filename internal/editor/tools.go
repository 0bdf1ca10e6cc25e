package editor

import (
	"github.com/google/uuid"

	"github.com/venuekit/seatmap-designer/internal/geometry"
	"github.com/venuekit/seatmap-designer/internal/layout"
)

// toolHandler is the pointer protocol one tool owns.  Keeping a handler per
// mode (instead of one big conditional) keeps each mode's invariants — like
// "only one drag ref active" — locally checkable.
type toolHandler interface {
	down(screen geometry.Point)
	move(screen geometry.Point)
	up(screen geometry.Point)
}

// handlerFor returns the handler owning the given tool's pointer protocol.
func (s *Session) handlerFor(t Tool) toolHandler {
	switch t {
	case ToolPan:
		return panTool{s}
	case ToolRow:
		return rowTool{s}
	case ToolMeasure:
		return measureTool{s}
	case ToolStage:
		return stageTool{s}
	case ToolAisle:
		return aisleTool{s}
	case ToolPath:
		return pathTool{s}
	default:
		return selectTool{s}
	}
}

// selectTool: click-to-select, with individual free-drag of the hit seat.
type selectTool struct{ s *Session }

func (t selectTool) down(screen geometry.Point) {
	world := t.s.View.ScreenToWorld(screen)
	seat := t.s.seatAt(world)
	if seat == nil {
		t.s.SelectedSeatID = ""
		return
	}
	t.s.SelectedSeatID = seat.ID
	t.s.drag.seatID = seat.ID
	t.s.drag.seatStart = seat.Pos().Sub(world) // grab offset, keeps the seat from jumping under the cursor
}

func (t selectTool) move(screen geometry.Point) {
	if t.s.drag.seatID == "" {
		return
	}
	seat := t.s.Doc.SeatByID(t.s.drag.seatID)
	if seat == nil {
		return
	}
	world := t.s.View.ScreenToWorld(screen)
	target := world.Add(t.s.drag.seatStart)
	seat.SetPos(t.s.ResolvePoint(target, nil, seat.ID))
}

func (t selectTool) up(geometry.Point) {}

// panTool: each gesture recomputes the offset from its own start snapshot,
// so rapid gestures do not accumulate error.
type panTool struct{ s *Session }

func (t panTool) down(screen geometry.Point) {
	t.s.drag.pan = true
	t.s.drag.panScreenStart = screen
	t.s.drag.panOffsetStart = geometry.Point{X: t.s.View.OffsetX, Y: t.s.View.OffsetY}
}

func (t panTool) move(screen geometry.Point) {
	if !t.s.drag.pan {
		return
	}
	delta := screen.Sub(t.s.drag.panScreenStart)
	t.s.View.OffsetX = t.s.drag.panOffsetStart.X + delta.X
	t.s.View.OffsetY = t.s.drag.panOffsetStart.Y + delta.Y
}

func (t panTool) up(geometry.Point) {}

// measureTool: first click places A, second click places B and finishes;
// the next click starts over.
type measureTool struct{ s *Session }

func (t measureTool) down(screen geometry.Point) {
	p := t.s.ResolvePoint(t.s.View.ScreenToWorld(screen), nil, "")
	if t.s.measure == nil || t.s.measure.Done {
		t.s.measure = &Measurement{Start: p, End: p}
		return
	}
	t.s.measure.End = p
	t.s.measure.Done = true
}

func (t measureTool) move(screen geometry.Point) {
	if t.s.measure == nil || t.s.measure.Done {
		return
	}
	t.s.measure.End = t.s.ResolvePoint(t.s.View.ScreenToWorld(screen), &t.s.measure.Start, "")
}

func (t measureTool) up(geometry.Point) {}

// rowTool: drag defines the row line; releasing generates the seats.
// Pressing on a seat that belongs to a row group drags the group instead.
type rowTool struct{ s *Session }

func (t rowTool) down(screen geometry.Point) {
	world := t.s.View.ScreenToWorld(screen)
	if seat := t.s.seatAt(world); seat != nil && seat.RowGroupID != "" {
		t.s.beginGroupDrag(seat.RowGroupID, world)
		return
	}
	p := t.s.ResolvePoint(world, nil, "")
	t.s.rowDraft = &rowDraft{start: p, end: p}
}

func (t rowTool) move(screen geometry.Point) {
	world := t.s.View.ScreenToWorld(screen)
	if t.s.drag.groupID != "" {
		t.s.moveGroup(world)
		return
	}
	if t.s.rowDraft != nil {
		t.s.rowDraft.end = t.s.ResolvePoint(world, &t.s.rowDraft.start, "")
	}
}

func (t rowTool) up(geometry.Point) {
	if t.s.rowDraft == nil {
		return
	}
	draft := t.s.rowDraft
	t.s.rowDraft = nil
	layout.GenerateRow(t.s.Doc, draft.start, draft.end, layout.RowOptions{
		FloorID: t.s.ActiveFloorID,
		Pitch:   t.s.RowPitch(),
	})
}

// stageTool: translate-only drag of the stage rectangle.
type stageTool struct{ s *Session }

func (t stageTool) down(screen geometry.Point) {
	world := t.s.View.ScreenToWorld(screen)
	r := t.s.Doc.Stage.Bounds()
	if world.X < r.X || world.X > r.X+r.Width || world.Y < r.Y || world.Y > r.Y+r.Height {
		return
	}
	t.s.drag.stage = true
	t.s.drag.stageStart = geometry.Point{X: t.s.Doc.Stage.X, Y: t.s.Doc.Stage.Y}
	t.s.drag.stageGrab = world
}

func (t stageTool) move(screen geometry.Point) {
	if !t.s.drag.stage {
		return
	}
	world := t.s.View.ScreenToWorld(screen)
	target := t.s.drag.stageStart.Add(world.Sub(t.s.drag.stageGrab))
	p := t.s.finalizeCoord(target)
	t.s.Doc.Stage.X = p.X
	t.s.Doc.Stage.Y = p.Y
}

func (t stageTool) up(geometry.Point) {}

// aisleTool: translate-only drag of an aisle element.
type aisleTool struct{ s *Session }

func (t aisleTool) down(screen geometry.Point) {
	world := t.s.View.ScreenToWorld(screen)
	e := t.s.elementAt(world)
	if e == nil {
		return
	}
	t.s.drag.elementID = e.ID
	t.s.drag.elementStart = geometry.Point{X: e.X, Y: e.Y}
	t.s.drag.elementGrab = world
}

func (t aisleTool) move(screen geometry.Point) {
	if t.s.drag.elementID == "" {
		return
	}
	var e *layout.Element
	for i := range t.s.Doc.Elements {
		if t.s.Doc.Elements[i].ID == t.s.drag.elementID {
			e = &t.s.Doc.Elements[i]
			break
		}
	}
	if e == nil {
		return
	}
	world := t.s.View.ScreenToWorld(screen)
	target := t.s.drag.elementStart.Add(world.Sub(t.s.drag.elementGrab))
	p := t.s.finalizeCoord(target)
	e.X = p.X
	e.Y = p.Y
}

func (t aisleTool) up(geometry.Point) {}

// pathTool: each press appends a vertex; movement previews the next
// uncommitted segment.  Finalization is an explicit command (double-click in
// the UI) handled by Session.FinalizePath.
type pathTool struct{ s *Session }

func (t pathTool) down(screen geometry.Point) {
	world := t.s.View.ScreenToWorld(screen)
	if t.s.pathDraft == nil {
		t.s.pathDraft = &pathDraft{}
	}
	var start *geometry.Point
	if n := len(t.s.pathDraft.points); n > 0 {
		start = &t.s.pathDraft.points[n-1]
	}
	t.s.pathDraft.points = append(t.s.pathDraft.points, t.s.ResolvePoint(world, start, ""))
}

func (t pathTool) move(screen geometry.Point) {
	if t.s.pathDraft == nil || len(t.s.pathDraft.points) == 0 {
		return
	}
	last := t.s.pathDraft.points[len(t.s.pathDraft.points)-1]
	t.s.pathDraft.hover = t.s.ResolvePoint(t.s.View.ScreenToWorld(screen), &last, "")
	t.s.pathDraft.hovering = true
}

func (t pathTool) up(geometry.Point) {}

// PathPoints returns the committed vertices of the open path draft.
func (s *Session) PathPoints() []geometry.Point {
	if s.pathDraft == nil {
		return nil
	}
	return append([]geometry.Point(nil), s.pathDraft.points...)
}

// FinalizePath terminates the open polyline and plans seat placement along
// it with the requested seat count.  The returned plan may carry a Conflict
// that the operator must confirm via ConfirmPath; nothing touches the
// document until then.  Returns nil when the draft has fewer than two
// points.
func (s *Session) FinalizePath(count int) *layout.PathPlacement {
	if s.pathDraft == nil || len(s.pathDraft.points) < 2 {
		s.pathDraft = nil
		return nil
	}
	pts := s.pathDraft.points
	s.pathDraft = nil
	s.pendingPath = layout.PlanPathPlacement(s.Doc, pts, layout.PathOptions{
		FloorID:  s.ActiveFloorID,
		Count:    count,
		SeatSize: s.Settings.SeatSize,
	})
	return s.pendingPath
}

// ConfirmPath resolves the pending placement: accept applies it (with the
// shrunken seat size when the plan was conflicted), decline adds nothing.
// Returns the number of seats added.
func (s *Session) ConfirmPath(accept bool) int {
	if s.pendingPath == nil {
		return 0
	}
	n := s.pendingPath.Commit(accept)
	s.pendingPath = nil
	return n
}

// AddAisle appends a default-sized aisle element on the active floor so the
// operator can drag it into place with the aisle tool.
func (s *Session) AddAisle(orientation string, length float64) *layout.Element {
	if orientation != "horizontal" {
		orientation = "vertical"
	}
	if length <= 0 {
		length = 10 * geometry.UnitsPerFoot
	}
	e := layout.Element{
		ID:          "aisle-" + uuid.NewString(),
		Type:        "aisle",
		FloorID:     s.ActiveFloorID,
		Orientation: orientation,
		Length:      length,
		Thickness:   geometry.UnitsPerFoot,
	}
	s.Doc.Elements = append(s.Doc.Elements, e)
	return &s.Doc.Elements[len(s.Doc.Elements)-1]
}
