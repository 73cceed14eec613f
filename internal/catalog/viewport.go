package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// Viewport is the inferred device class of a mockup, derived from filename
// heuristics only; documents carry no explicit viewport metadata.
type Viewport string

const (
	ViewportMobile  Viewport = "mobile"
	ViewportTablet  Viewport = "tablet"
	ViewportDesktop Viewport = "desktop"
)

var widthHint = regexp.MustCompile(`(?:^|[_\-])(\d{3,4})(?:[_\-.]|$)`)

// ClassifyViewport infers the viewport class from a design filename.
// Keyword hints win over width hints; anything unrecognized is desktop.
func ClassifyViewport(filename string) Viewport {
	lower := strings.ToLower(filename)

	switch {
	case strings.Contains(lower, "mobile"),
		strings.Contains(lower, "phone"),
		strings.Contains(lower, "iphone"),
		strings.Contains(lower, "android"):
		return ViewportMobile
	case strings.Contains(lower, "tablet"),
		strings.Contains(lower, "ipad"):
		return ViewportTablet
	case strings.Contains(lower, "desktop"),
		strings.Contains(lower, "wide"):
		return ViewportDesktop
	}

	if match := widthHint.FindStringSubmatch(lower); match != nil {
		if width, err := strconv.Atoi(match[1]); err == nil {
			switch {
			case width <= 480:
				return ViewportMobile
			case width <= 1024:
				return ViewportTablet
			}
		}
	}

	return ViewportDesktop
}
