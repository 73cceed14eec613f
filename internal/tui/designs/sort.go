package designs

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/atelierhq/atelier/internal/catalog"
)

type sortField int

const (
	sortByModifiedAt sortField = iota
	sortByName
	sortByStatus
)

type sortOrder int

const (
	descending sortOrder = iota
	ascending
)

func sortDesigns(designs []catalog.Design, field sortField, order sortOrder) []catalog.Design {
	sorted := make([]catalog.Design, len(designs))
	copy(sorted, designs)

	sort.SliceStable(sorted, func(i, j int) bool {
		var less bool
		switch field {
		case sortByName:
			less = strings.Compare(sorted[i].Name, sorted[j].Name) < 0
		case sortByStatus:
			less = strings.Compare(string(sorted[i].DisplayStatus), string(sorted[j].DisplayStatus)) < 0
		default:
			// Modified time: "ascending" means oldest first.
			less = sorted[i].ModTime.Before(sorted[j].ModTime)
		}
		if order == descending {
			return !less && !equalByField(sorted[i], sorted[j], field)
		}
		return less
	})

	return sorted
}

func equalByField(a, b catalog.Design, field sortField) bool {
	switch field {
	case sortByName:
		return a.Name == b.Name
	case sortByStatus:
		return a.DisplayStatus == b.DisplayStatus
	default:
		return a.ModTime.Equal(b.ModTime)
	}
}

func toListItems(designs []catalog.Design, showDetails bool) []list.Item {
	items := make([]list.Item, len(designs))
	for i, d := range designs {
		items[i] = ListItem{design: d, showDetails: showDetails}
	}
	return items
}
