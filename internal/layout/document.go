// Package layout defines the seat-map document model: the aggregate of
// floors, seats, aisle elements and the stage that an operator edits in one
// session, plus the generative algorithms that turn sparse operator input
// into dense seat collections.  Everything in this package is persisted as a
// whole on save; ephemeral interaction state (drafts, drag refs, view state)
// lives in the editor package and must never appear here.
package layout

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/venuekit/seatmap-designer/internal/geometry"
)

// Floor is an independently toggleable layer of seats and elements.
//
// Fields:
//  ID    – unique floor identifier within the layout.
//  Name  – display name, e.g. "Main Floor", "Balcony".
//  Order – sort order; floors are sorted by (Order, Name).
type Floor struct {
	ID    string `json:"floorId"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Seat is a single purchasable position.  PosX/PosY are pointers so that
// legacy records with missing coordinates can be detected on load; after
// Normalize both are always non-nil.
type Seat struct {
	ID                string   `json:"seatId"`
	Row               string   `json:"row"`
	Number            int      `json:"seatNumber"`
	Section           string   `json:"section"`
	FloorID           string   `json:"floorId"`
	TierID            string   `json:"tierId,omitempty"`
	PosX              *float64 `json:"posX,omitempty"`
	PosY              *float64 `json:"posY,omitempty"`
	Available         bool     `json:"isAvailable"`
	AccessibilityTags []string `json:"accessibilityTags,omitempty"`
	RowGroupID        string   `json:"rowGroupId,omitempty"`
	Detached          bool     `json:"detachedFromRow,omitempty"`
}

// Pos returns the seat position.  Valid only after Normalize has run.
func (s *Seat) Pos() geometry.Point {
	var p geometry.Point
	if s.PosX != nil {
		p.X = *s.PosX
	}
	if s.PosY != nil {
		p.Y = *s.PosY
	}
	return p
}

// SetPos stores a seat position.
func (s *Seat) SetPos(p geometry.Point) {
	x, y := p.X, p.Y
	s.PosX, s.PosY = &x, &y
}

// Element is a non-seat layout object.  Aisles are the only element type;
// they act as snap targets and visual guides, never as seat containers.
type Element struct {
	ID          string  `json:"elementId"`
	Type        string  `json:"type"` // always "aisle"
	FloorID     string  `json:"floorId"`
	Orientation string  `json:"orientation"` // "vertical" | "horizontal"
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Length      float64 `json:"length"`
	Thickness   float64 `json:"thickness"`
	Label       string  `json:"label,omitempty"`
}

// Bounds returns the element's bounding rectangle in world units.
func (e *Element) Bounds() geometry.Rect {
	if e.Orientation == "horizontal" {
		return geometry.Rect{X: e.X, Y: e.Y, Width: e.Length, Height: e.Thickness}
	}
	return geometry.Rect{X: e.X, Y: e.Y, Width: e.Thickness, Height: e.Length}
}

// Stage is the single stage rectangle.  It is floor-independent: the stage
// is drawn on every floor.
type Stage struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Shape        string  `json:"shape"` // "rect" | "rounded"
	CornerRadius float64 `json:"cornerRadius,omitempty"`
}

// Bounds returns the stage rectangle.
func (st *Stage) Bounds() geometry.Rect {
	return geometry.Rect{X: st.X, Y: st.Y, Width: st.Width, Height: st.Height}
}

// Section is a derived read model grouping seats by (floor, section name).
// Sections are recomputed from seats before every save and are ignored on
// load; they are never hand-edited.
type Section struct {
	ID          string   `json:"sectionId"`
	Name        string   `json:"name"`
	FloorID     string   `json:"floorId"`
	Rows        []string `json:"rows"`
	SeatsPerRow []int    `json:"seatsPerRow"`
}

// CoordinateSpaceWorld marks a document whose seat positions are world
// units.  Legacy documents carry no value and may store 0–100 percentage
// positions; Normalize remaps those once and stamps the document, so
// world coordinates that happen to fall inside [0,100] are never remapped
// again.
const CoordinateSpaceWorld = "world"

// Document is the layout aggregate: the full in-memory seating document
// edited in one session and saved as a whole.
type Document struct {
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	StagePosition      string    `json:"stagePosition"`
	CoordinateSpace    string    `json:"coordinateSpace,omitempty"`
	Floors             []Floor   `json:"floors"`
	Elements           []Element `json:"elements"`
	BackgroundImageURL string    `json:"backgroundImageUrl,omitempty"`
	Stage              Stage     `json:"stage"`
	Sections           []Section `json:"sections"`
	Seats              []Seat    `json:"seats"`
}

// ErrLastFloor is returned when removing the only remaining floor.
var ErrLastFloor = errors.New("layout must keep at least one floor")

// SortFloors orders floors by (Order, Name).
func (d *Document) SortFloors() {
	sort.SliceStable(d.Floors, func(i, j int) bool {
		if d.Floors[i].Order != d.Floors[j].Order {
			return d.Floors[i].Order < d.Floors[j].Order
		}
		return d.Floors[i].Name < d.Floors[j].Name
	})
}

// FloorByID returns the floor with the given id, or nil.
func (d *Document) FloorByID(id string) *Floor {
	for i := range d.Floors {
		if d.Floors[i].ID == id {
			return &d.Floors[i]
		}
	}
	return nil
}

// AddFloor appends a floor ordered after the existing ones and returns it.
func (d *Document) AddFloor(name string) Floor {
	order := 0
	for _, f := range d.Floors {
		if f.Order >= order {
			order = f.Order + 1
		}
	}
	f := Floor{ID: "floor-" + uuid.NewString(), Name: name, Order: order}
	d.Floors = append(d.Floors, f)
	d.SortFloors()
	return f
}

// RemoveFloor deletes a floor and reassigns its seats and elements to the
// first remaining floor.  The last floor can never be removed.
func (d *Document) RemoveFloor(id string) error {
	if len(d.Floors) <= 1 {
		return ErrLastFloor
	}
	idx := -1
	for i := range d.Floors {
		if d.Floors[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	d.Floors = append(d.Floors[:idx], d.Floors[idx+1:]...)
	d.SortFloors()
	fallback := d.Floors[0].ID
	for i := range d.Seats {
		if d.Seats[i].FloorID == id {
			d.Seats[i].FloorID = fallback
		}
	}
	for i := range d.Elements {
		if d.Elements[i].FloorID == id {
			d.Elements[i].FloorID = fallback
		}
	}
	return nil
}

// SeatByID returns the seat with the given id, or nil.
func (d *Document) SeatByID(id string) *Seat {
	for i := range d.Seats {
		if d.Seats[i].ID == id {
			return &d.Seats[i]
		}
	}
	return nil
}

// GroupSeats returns pointers to all seats sharing a row group id.  Detached
// members are excluded unless includeDetached is set.
func (d *Document) GroupSeats(groupID string, includeDetached bool) []*Seat {
	if groupID == "" {
		return nil
	}
	var out []*Seat
	for i := range d.Seats {
		s := &d.Seats[i]
		if s.RowGroupID != groupID {
			continue
		}
		if s.Detached && !includeDetached {
			continue
		}
		out = append(out, s)
	}
	return out
}

// sectionSlug builds a stable identifier fragment from a section name.
func sectionSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
