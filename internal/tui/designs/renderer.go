package designs

import (
	"github.com/atelierhq/atelier/internal/cache"
)

// maxRenderings caps live preview renderings regardless of configuration.
const maxRenderings = 3

// Renderer tracks which design previews are live. Rendering a document
// body is the expensive part of the TUI, so the set of live renderings
// is bounded: mounting past capacity evicts the least recently used
// preview.
type Renderer struct {
	cap    int
	live   *cache.LRUCache
	render func(name string) string

	unmounted []string
}

// NewRenderer creates a renderer with the given capacity, clamped to
// 1..maxRenderings. render produces the preview body for a design name.
func NewRenderer(capacity int, render func(name string) string) *Renderer {
	if capacity < 1 {
		capacity = 1
	}
	if capacity > maxRenderings {
		capacity = maxRenderings
	}

	r := &Renderer{cap: capacity, render: render}
	r.live = cache.NewLRUCache(capacity, func(key string, _ any) {
		r.unmounted = append(r.unmounted, key)
	})
	return r
}

// Mount ensures a live rendering for name and returns its body. Evicted
// previews are reported by the next Sync call.
func (r *Renderer) Mount(name string) string {
	if body, ok := r.live.Get(name); ok {
		return body.(string)
	}
	body := r.render(name)
	r.live.Put(name, body)
	return body
}

// Unmount drops a single live rendering.
func (r *Renderer) Unmount(name string) {
	r.live.Remove(name)
}

// Mounted reports whether a design currently has a live rendering.
func (r *Renderer) Mounted(name string) bool {
	return r.live.Contains(name)
}

// Live returns the number of live renderings.
func (r *Renderer) Live() int {
	return r.live.Len()
}

// Sync adjusts the live set to the wanted names (mode-dependent: the
// hovered design in the gallery, the compare set side by side, the
// studio focus) and returns the names that lost their rendering.
func (r *Renderer) Sync(wanted []string) []string {
	if len(wanted) > r.cap {
		wanted = wanted[:r.cap]
	}

	keep := make(map[string]struct{}, len(wanted))
	for _, name := range wanted {
		keep[name] = struct{}{}
	}
	for _, name := range r.live.Keys() {
		if _, ok := keep[name]; !ok {
			r.live.Remove(name)
		}
	}
	for _, name := range wanted {
		r.Mount(name)
	}

	evicted := r.unmounted
	r.unmounted = nil
	return evicted
}

// WantedFor computes the render set for a view state: studio renders its
// focus, compare renders the compare set, the gallery renders only the
// hovered design.
func WantedFor(s *ViewState, hovered string) []string {
	switch s.Mode {
	case ModeStudio:
		if s.StudioFocus != "" {
			return []string{s.StudioFocus}
		}
	case ModeCompare:
		return append([]string(nil), s.CompareSet...)
	case ModeGallery:
		if hovered != "" {
			return []string{hovered}
		}
	}
	return nil
}
