package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotInsensitiveToSliceOrder(t *testing.T) {
	a := testDoc()
	a.Seats = []Seat{seatAt("s1", 0, 0), seatAt("s2", 10, 0)}

	b := testDoc()
	b.Seats = []Seat{seatAt("s2", 10, 0), seatAt("s1", 0, 0)}

	assert.Equal(t, Snapshot(a), Snapshot(b))
}

func TestSnapshotExcludesDerivedSections(t *testing.T) {
	doc := testDoc()
	before := Snapshot(doc)
	doc.Sections = []Section{{ID: "x", Name: "X", FloorID: "f1"}}
	assert.Equal(t, before, Snapshot(doc), "derived sections are not editable state")
}

func TestSnapshotDetectsMutations(t *testing.T) {
	doc := testDoc()
	doc.Seats = []Seat{seatAt("s1", 0, 0)}
	before := Snapshot(doc)

	s := seatAt("s1", 10, 0)
	doc.Seats[0].SetPos(s.Pos())
	moved := Snapshot(doc)
	assert.NotEqual(t, before, moved)

	doc.Name = "Renamed"
	assert.NotEqual(t, moved, Snapshot(doc))

	doc.Stage.Width = 80
	assert.NotEqual(t, moved, Snapshot(doc))
}
