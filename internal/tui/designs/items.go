package designs

import (
	"fmt"
	"strings"

	"github.com/atelierhq/atelier/internal/catalog"
)

type ListItem struct {
	design      catalog.Design
	showDetails bool
}

func (i ListItem) Title() string {
	title := strings.TrimSuffix(i.design.Name, ".html")
	if i.design.Archived {
		title += " [archived]"
	}
	return title
}

func (i ListItem) Description() string {
	description := fmt.Sprintf("%s · %s", i.design.DisplayStatus, i.design.Viewport)

	if i.showDetails {
		description += fmt.Sprintf(
			" · %s · v%d",
			readableSize(i.design.Size),
			i.design.Version,
		)
		if i.design.Parent != "" {
			description += " · from " + strings.TrimSuffix(i.design.Parent, ".html")
		}
	}

	if len(i.design.Tags) > 0 {
		description += " · " + strings.Join(i.design.Tags, ", ")
	}

	return description
}

func (i ListItem) FilterValue() string {
	parts := []string{
		i.design.Name,
		string(i.design.DisplayStatus),
		string(i.design.Viewport),
		strings.Join(i.design.Tags, " "),
	}
	return strings.Join(parts, " ")
}

func (i ListItem) Design() catalog.Design {
	return i.design
}

func readableSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%dB", size)
	}
}
