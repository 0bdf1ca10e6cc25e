package layout

import (
	"encoding/json"
	"sort"
)

// snapshotDoc is the canonical serialized form used for unsaved-change
// detection.  It contains exactly the editable fields — derived sections are
// excluded — and its collections are sorted so two equal documents always
// produce byte-identical snapshots regardless of in-memory ordering.
type snapshotDoc struct {
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	StagePosition      string    `json:"stagePosition"`
	CoordinateSpace    string    `json:"coordinateSpace"`
	Floors             []Floor   `json:"floors"`
	Elements           []Element `json:"elements"`
	BackgroundImageURL string    `json:"backgroundImageUrl"`
	Stage              Stage     `json:"stage"`
	Seats              []Seat    `json:"seats"`
}

// Snapshot returns the canonical serialization of the document's editable
// fields.  The same predicate — current snapshot != last-saved snapshot —
// gates every "unsaved changes" check so behavior is identical across exit
// paths.
func Snapshot(doc *Document) string {
	snap := snapshotDoc{
		Name:               doc.Name,
		Description:        doc.Description,
		StagePosition:      doc.StagePosition,
		CoordinateSpace:    doc.CoordinateSpace,
		Floors:             append([]Floor(nil), doc.Floors...),
		Elements:           append([]Element(nil), doc.Elements...),
		BackgroundImageURL: doc.BackgroundImageURL,
		Stage:              doc.Stage,
		Seats:              append([]Seat(nil), doc.Seats...),
	}
	sort.SliceStable(snap.Floors, func(i, j int) bool {
		if snap.Floors[i].Order != snap.Floors[j].Order {
			return snap.Floors[i].Order < snap.Floors[j].Order
		}
		return snap.Floors[i].Name < snap.Floors[j].Name
	})
	sort.SliceStable(snap.Elements, func(i, j int) bool {
		return snap.Elements[i].ID < snap.Elements[j].ID
	})
	sort.SliceStable(snap.Seats, func(i, j int) bool {
		return snap.Seats[i].ID < snap.Seats[j].ID
	})

	// Marshaling cannot fail here: the snapshot struct contains only plain
	// values.  Guard anyway so a future field change degrades to "always
	// dirty" instead of a panic.
	b, err := json.Marshal(snap)
	if err != nil {
		return ""
	}
	return string(b)
}
