package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSections(t *testing.T) {
	doc := testDoc()
	doc.Seats = []Seat{
		{ID: "1", FloorID: "f1", Section: "VIP", Row: "A", Number: 1},
		{ID: "2", FloorID: "f1", Section: "VIP", Row: "A", Number: 2},
		{ID: "3", FloorID: "f1", Section: "VIP", Row: "B", Number: 1},
		{ID: "4", FloorID: "f1", Section: "GA", Row: "A", Number: 1},
	}
	DeriveSections(doc)

	require.Len(t, doc.Sections, 2)
	// Sections sort by (floor, name).
	assert.Equal(t, "GA", doc.Sections[0].Name)
	vip := doc.Sections[1]
	assert.Equal(t, "VIP", vip.Name)
	assert.Equal(t, "f1", vip.FloorID)
	assert.Equal(t, []string{"A", "B"}, vip.Rows)
	assert.Equal(t, []int{2, 1}, vip.SeatsPerRow)
}

func TestDeriveSectionsExactNameEquality(t *testing.T) {
	// Near-duplicate names are distinct groups: no case or whitespace
	// normalization is applied.
	doc := testDoc()
	doc.Seats = []Seat{
		{ID: "1", FloorID: "f1", Section: "VIP", Row: "A", Number: 1},
		{ID: "2", FloorID: "f1", Section: "vip ", Row: "A", Number: 1},
	}
	DeriveSections(doc)
	require.Len(t, doc.Sections, 2)

	// Both names slug to "vip"; the derived ids must still be distinct so
	// downstream consumers never see two sections under one identifier.
	assert.NotEqual(t, doc.Sections[0].ID, doc.Sections[1].ID)
}

func TestDeriveSectionsSplitsByFloor(t *testing.T) {
	doc := testDoc()
	doc.Floors = append(doc.Floors, Floor{ID: "f2", Name: "Balcony", Order: 1})
	doc.Seats = []Seat{
		{ID: "1", FloorID: "f1", Section: "VIP", Row: "A", Number: 1},
		{ID: "2", FloorID: "f2", Section: "VIP", Row: "A", Number: 1},
	}
	DeriveSections(doc)

	require.Len(t, doc.Sections, 2)
	assert.NotEqual(t, doc.Sections[0].ID, doc.Sections[1].ID)
}

func TestDeriveSectionsRecomputedFresh(t *testing.T) {
	doc := testDoc()
	doc.Sections = []Section{{ID: "stale", Name: "Gone", FloorID: "f1"}}
	DeriveSections(doc)
	assert.Empty(t, doc.Sections, "stale hand-edited sections are discarded")
}
