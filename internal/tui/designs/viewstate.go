package designs

import (
	"strings"

	"github.com/atelierhq/atelier/internal/catalog"
	"github.com/atelierhq/atelier/internal/metadata"
)

// Mode is the active presentation mode.
type Mode string

const (
	ModeGallery Mode = "gallery"
	ModeCompare Mode = "compare"
	ModeStudio  Mode = "studio"
)

// maxCompare caps the side-by-side set; adding a fourth design evicts the
// oldest member.
const maxCompare = 3

// Filters narrow the visible slice of the catalog. Zero value shows every
// active design and hides archived ones.
type Filters struct {
	Statuses        []metadata.Status  `json:"statuses,omitempty"`
	Viewports       []catalog.Viewport `json:"viewports,omitempty"`
	Query           string             `json:"query,omitempty"`
	IncludeArchived bool               `json:"includeArchived"`
}

// ViewState is the pure mode machine behind the TUI: which mode is
// active, which design is primary, what is being compared, and what the
// studio is focused on. It holds names only; the catalog stays the
// source of design data, and Reconcile drops any name the catalog no
// longer carries.
type ViewState struct {
	Mode        Mode     `json:"mode"`
	Primary     string   `json:"primary,omitempty"`
	CompareSet  []string `json:"compareSet,omitempty"`
	StudioFocus string   `json:"studioFocus,omitempty"`
	Filters     Filters  `json:"filters"`
}

func NewViewState() *ViewState {
	return &ViewState{Mode: ModeGallery}
}

// SetPrimary moves the single primary slot. An empty name clears it.
func (s *ViewState) SetPrimary(name string) {
	s.Primary = name
}

// ToggleCompare adds or removes a design from the compare set. Adding
// beyond capacity evicts the oldest member.
func (s *ViewState) ToggleCompare(name string) {
	for i, existing := range s.CompareSet {
		if existing == name {
			s.CompareSet = append(s.CompareSet[:i], s.CompareSet[i+1:]...)
			// Compare mode with nothing left to show is invalid.
			if s.Mode == ModeCompare && len(s.CompareSet) == 0 {
				s.Mode = ModeGallery
			}
			return
		}
	}

	s.CompareSet = append(s.CompareSet, name)
	if len(s.CompareSet) > maxCompare {
		s.CompareSet = s.CompareSet[len(s.CompareSet)-maxCompare:]
	}
}

// EnterCompare switches to compare mode. An empty compare set has
// nothing to show, so the switch is refused and the mode stays put.
func (s *ViewState) EnterCompare() bool {
	if len(s.CompareSet) == 0 {
		return false
	}
	s.Mode = ModeCompare
	return true
}

// EnterStudio focuses a single design for detail work.
func (s *ViewState) EnterStudio(name string) bool {
	if name == "" {
		return false
	}
	s.Mode = ModeStudio
	s.StudioFocus = name
	return true
}

func (s *ViewState) EnterGallery() {
	s.Mode = ModeGallery
}

// Reconcile drops references to designs the catalog no longer carries
// and falls back to the gallery when the current mode's subject is gone.
func (s *ViewState) Reconcile(designs []catalog.Design) {
	if s.Primary != "" {
		if _, ok := catalog.Find(designs, s.Primary); !ok {
			s.Primary = ""
		}
	}

	kept := s.CompareSet[:0]
	for _, name := range s.CompareSet {
		if _, ok := catalog.Find(designs, name); ok {
			kept = append(kept, name)
		}
	}
	s.CompareSet = kept

	if s.StudioFocus != "" {
		if _, ok := catalog.Find(designs, s.StudioFocus); !ok {
			s.StudioFocus = ""
		}
	}

	switch s.Mode {
	case ModeCompare:
		if len(s.CompareSet) == 0 {
			s.Mode = ModeGallery
		}
	case ModeStudio:
		if s.StudioFocus == "" {
			s.Mode = ModeGallery
		}
	}
}

// Visible applies the filters to a catalog slice, preserving order.
func (s *ViewState) Visible(designs []catalog.Design) []catalog.Design {
	out := make([]catalog.Design, 0, len(designs))
	for _, d := range designs {
		if s.matches(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s *ViewState) matches(d catalog.Design) bool {
	if d.Archived && !s.Filters.IncludeArchived {
		return false
	}

	if len(s.Filters.Statuses) > 0 {
		hit := false
		for _, st := range s.Filters.Statuses {
			if d.DisplayStatus == st || d.Status == st {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if len(s.Filters.Viewports) > 0 {
		hit := false
		for _, vp := range s.Filters.Viewports {
			if d.Viewport == vp {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if q := strings.ToLower(strings.TrimSpace(s.Filters.Query)); q != "" {
		if !strings.Contains(strings.ToLower(d.Name), q) && !hasTagMatch(d.Tags, q) {
			return false
		}
	}

	return true
}

func hasTagMatch(tags []string, q string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
