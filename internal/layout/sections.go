package layout

import (
	"fmt"
	"sort"
)

// DeriveSections recomputes the section read models from the current seats
// and stores them on the document.  Grouping is exact (floorID, section
// name) string equality — names are deliberately not case- or
// whitespace-normalized.  Called immediately before every save; sections
// are never edited directly.
func DeriveSections(doc *Document) {
	type key struct {
		floor string
		name  string
	}
	groups := make(map[key]map[string]int) // (floor,name) -> row label -> seat count
	order := []key{}
	for i := range doc.Seats {
		s := &doc.Seats[i]
		k := key{floor: s.FloorID, name: s.Section}
		rows, ok := groups[k]
		if !ok {
			rows = make(map[string]int)
			groups[k] = rows
			order = append(order, k)
		}
		rows[s.Row]++
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].floor != order[j].floor {
			return order[i].floor < order[j].floor
		}
		return order[i].name < order[j].name
	})

	sections := make([]Section, 0, len(order))
	used := make(map[string]bool, len(order))
	for _, k := range order {
		rowsMap := groups[k]
		labels := make([]string, 0, len(rowsMap))
		for lbl := range rowsMap {
			labels = append(labels, lbl)
		}
		// Order rows by their base-26 index, falling back to lexical order
		// for labels that are not plain letters.
		sort.Slice(labels, func(i, j int) bool {
			ii, okI := RowLabelIndex(labels[i])
			jj, okJ := RowLabelIndex(labels[j])
			if !okI || !okJ {
				return labels[i] < labels[j]
			}
			return ii < jj
		})
		counts := make([]int, len(labels))
		for i, lbl := range labels {
			counts[i] = rowsMap[lbl]
		}
		// Slugging can collapse distinct names ("VIP" and "vip ") onto one
		// slug; suffix until the id is unique so every section keeps its
		// own identifier downstream.
		id := k.floor + "-" + sectionSlug(k.name)
		for n := 2; used[id]; n++ {
			id = fmt.Sprintf("%s-%s-%d", k.floor, sectionSlug(k.name), n)
		}
		used[id] = true
		sections = append(sections, Section{
			ID:          id,
			Name:        k.name,
			FloorID:     k.floor,
			Rows:        labels,
			SeatsPerRow: counts,
		})
	}
	doc.Sections = sections
}
