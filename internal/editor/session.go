// Package editor implements the interactive layer of the seat-map designer:
// the tool state machine, the snapping engine, the viewport and the
// unsaved-change tracking.  A Session holds every piece of ephemeral
// interaction state — drafts, drag refs, modifier keys, camera — strictly
// apart from the layout.Document it mutates, so serialization code can never
// accidentally persist transient fields.
package editor

import (
	"math"

	"github.com/venuekit/seatmap-designer/internal/geometry"
	"github.com/venuekit/seatmap-designer/internal/layout"
)

// Tool identifies the active interaction mode.  Exactly one tool is active
// at a time and transitions are explicit operator actions.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPan
	ToolRow
	ToolMeasure
	ToolStage
	ToolAisle
	ToolPath
)

// Settings are the operator-tunable editor parameters.  They are session
// state, not document state.
type Settings struct {
	GridSize      float64 // world units per grid cell
	SeatSize      float64 // seat footprint in world units
	SeatPitchFeet float64 // row pitch in feet
	SnapToGrid    bool    // whether final coordinates snap to the grid
	SnapThreshold float64 // object-edge snap distance, as a fraction of GridSize
}

// DefaultSettings returns the editor defaults: a one-foot grid with
// one-foot seats and object snapping just under one grid cell.
func DefaultSettings() Settings {
	return Settings{
		GridSize:      geometry.UnitsPerFoot,
		SeatSize:      geometry.UnitsPerFoot,
		SeatPitchFeet: 1,
		SnapToGrid:    true,
		SnapThreshold: 0.85,
	}
}

// Modifiers is the explicit modifier-key state for the current pointer
// event.  Keeping it a plain struct (rather than module-level flags) makes
// drag sequences unit-testable without simulating real input.
type Modifiers struct {
	AngleLock bool // quantize direction to 45° increments (needs a start point)
	Freehand  bool // bypass all snapping
	ForceGrid bool // snap to grid, skip object-edge snapping
	Space     bool // temporary pan regardless of active tool
}

// Measurement is the two-click measuring draft.  Only one measurement is
// live at a time; starting a new one discards the previous.
type Measurement struct {
	Start geometry.Point
	End   geometry.Point
	Done  bool
}

// Length returns the measured distance in world units.
func (m *Measurement) Length() float64 {
	return m.Start.Dist(m.End)
}

// rowDraft is the in-progress row drag line.
type rowDraft struct {
	start geometry.Point
	end   geometry.Point
}

// pathDraft is the open polyline being clicked out by the path tool.
type pathDraft struct {
	points   []geometry.Point
	hover    geometry.Point
	hovering bool
}

// dragState bundles every drag ref.  Pointer-up resets the whole struct, so
// no stuck drag can survive a mode switch or an unexpected release.
type dragState struct {
	seatID    string
	seatStart geometry.Point

	groupID     string
	groupStarts map[string]geometry.Point // member id -> position at drag start
	groupAnchor geometry.Point            // world point where the drag began

	stage      bool
	stageStart geometry.Point
	stageGrab  geometry.Point // world point grabbed relative to stage origin

	elementID    string
	elementStart geometry.Point
	elementGrab  geometry.Point

	pan            bool
	panScreenStart geometry.Point
	panOffsetStart geometry.Point
}

// Session is one editing session over a layout document.
type Session struct {
	Doc      *layout.Document
	Settings Settings
	View     Viewport

	ActiveFloorID  string
	SelectedSeatID string

	tool        Tool
	mods        Modifiers
	drag        dragState
	measure     *Measurement
	rowDraft    *rowDraft
	pathDraft   *pathDraft
	pendingPath *layout.PathPlacement

	savedSnapshot string
}

// NewSession normalizes the loaded document, centers the view and records
// the saved snapshot, so HasUnsavedChanges reports false immediately after
// load.
func NewSession(doc *layout.Document) *Session {
	layout.Normalize(doc)
	s := &Session{
		Doc:      doc,
		Settings: DefaultSettings(),
		View:     NewViewport(),
		tool:     ToolSelect,
	}
	if len(doc.Floors) > 0 {
		s.ActiveFloorID = doc.Floors[0].ID
	}
	s.savedSnapshot = layout.Snapshot(doc)
	return s
}

// Tool returns the active tool.
func (s *Session) Tool() Tool {
	return s.tool
}

// SetTool switches the active interaction mode.  Drafts and drag refs are
// ephemeral per-tool state and are discarded on every switch.
func (s *Session) SetTool(t Tool) {
	s.tool = t
	s.drag = dragState{}
	s.rowDraft = nil
	s.pathDraft = nil
	s.pendingPath = nil
	s.measure = nil
}

// SetModifiers records the modifier-key state for subsequent pointer events.
func (s *Session) SetModifiers(m Modifiers) {
	s.mods = m
}

// Measure returns the live measurement, or nil.
func (s *Session) Measure() *Measurement {
	return s.measure
}

// HasUnsavedChanges reports whether the document differs from the last
// loaded or saved state.  The same predicate backs the in-page "done"
// confirmation, the leave-page prompt and the navigation blocker.
func (s *Session) HasUnsavedChanges() bool {
	return layout.Snapshot(s.Doc) != s.savedSnapshot
}

// MarkSaved records the current document as the saved state.  Callers must
// invoke it only after a save actually succeeds; a failed save leaves the
// snapshot - and therefore unsaved-change detection - untouched.
func (s *Session) MarkSaved() {
	s.savedSnapshot = layout.Snapshot(s.Doc)
}

// activeTool resolves the effective tool for the current event: holding
// space pans regardless of the selected tool.
func (s *Session) activeTool() Tool {
	if s.mods.Space {
		return ToolPan
	}
	return s.tool
}

// PointerDown dispatches a pointer press at the given screen position to the
// active tool's handler.
func (s *Session) PointerDown(screen geometry.Point) {
	s.handlerFor(s.activeTool()).down(screen)
}

// PointerMove dispatches pointer movement to the active tool's handler.
func (s *Session) PointerMove(screen geometry.Point) {
	s.handlerFor(s.activeTool()).move(screen)
}

// PointerUp finishes the current gesture.  The active handler runs first
// (a row draft, for example, generates its seats on release), then every
// drag ref is cleared unconditionally.
func (s *Session) PointerUp(screen geometry.Point) {
	s.handlerFor(s.activeTool()).up(screen)
	s.drag = dragState{}
}

// seatAt hit-tests seats on the active floor against a world point.
func (s *Session) seatAt(world geometry.Point) *layout.Seat {
	half := s.Settings.SeatSize / 2
	var best *layout.Seat
	bestDist := math.Inf(1)
	for i := range s.Doc.Seats {
		seat := &s.Doc.Seats[i]
		if seat.FloorID != s.ActiveFloorID {
			continue
		}
		p := seat.Pos()
		if math.Abs(p.X-world.X) <= half && math.Abs(p.Y-world.Y) <= half {
			if d := p.Dist(world); d < bestDist {
				best, bestDist = seat, d
			}
		}
	}
	return best
}

// elementAt hit-tests aisle elements on the active floor.
func (s *Session) elementAt(world geometry.Point) *layout.Element {
	for i := range s.Doc.Elements {
		e := &s.Doc.Elements[i]
		if e.FloorID != s.ActiveFloorID {
			continue
		}
		r := e.Bounds()
		if world.X >= r.X && world.X <= r.X+r.Width && world.Y >= r.Y && world.Y <= r.Y+r.Height {
			return e
		}
	}
	return nil
}

// beginGroupDrag captures the stored start position of every non-detached
// group member.  Drag deltas are applied against these snapshots, never
// against per-frame positions, so repeated moves cannot compound error.
func (s *Session) beginGroupDrag(groupID string, anchor geometry.Point) {
	members := s.Doc.GroupSeats(groupID, false)
	starts := make(map[string]geometry.Point, len(members))
	for _, m := range members {
		starts[m.ID] = m.Pos()
	}
	s.drag.groupID = groupID
	s.drag.groupStarts = starts
	s.drag.groupAnchor = anchor
}

// moveGroup applies one delta from the drag anchor to every captured member.
func (s *Session) moveGroup(world geometry.Point) {
	if s.drag.groupID == "" {
		return
	}
	delta := world.Sub(s.drag.groupAnchor)
	for id, start := range s.drag.groupStarts {
		if seat := s.Doc.SeatByID(id); seat != nil {
			seat.SetPos(s.finalizeCoord(start.Add(delta)))
		}
	}
}

// finalizeCoord applies grid snapping to a final coordinate when enabled,
// honoring the freehand override.
func (s *Session) finalizeCoord(p geometry.Point) geometry.Point {
	if s.mods.Freehand || !s.Settings.SnapToGrid {
		return p
	}
	return geometry.SnapPoint(p, s.Settings.GridSize)
}

// RowPitch returns the row seat pitch in world units, never below one grid
// cell.
func (s *Session) RowPitch() float64 {
	pitch := s.Settings.SeatPitchFeet * s.Settings.GridSize
	if pitch < s.Settings.GridSize {
		pitch = s.Settings.GridSize
	}
	return pitch
}

// ReflowSelectedGroup straightens the row group of the currently selected
// seat.  No-op when the selection has no group.
func (s *Session) ReflowSelectedGroup() {
	seat := s.Doc.SeatByID(s.SelectedSeatID)
	if seat == nil || seat.RowGroupID == "" {
		return
	}
	layout.Reflow(s.Doc, seat.RowGroupID, s.RowPitch())
}

// DetachSelectedSeat excludes the selected seat from subsequent group drag
// and reflow operations.
func (s *Session) DetachSelectedSeat() {
	if seat := s.Doc.SeatByID(s.SelectedSeatID); seat != nil && seat.RowGroupID != "" {
		seat.Detached = true
	}
}
