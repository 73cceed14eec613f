package designs

import (
	"testing"
)

func countingRender(calls *int) func(string) string {
	return func(name string) string {
		*calls++
		return "<rendered " + name + ">"
	}
}

func TestMountCapsLiveRenderings(t *testing.T) {
	t.Parallel()

	var calls int
	r := NewRenderer(3, countingRender(&calls))

	for _, n := range []string{"a", "b", "c", "d"} {
		r.Mount(n)
	}

	if r.Live() != 3 {
		t.Fatalf("expected 3 live renderings, got %d", r.Live())
	}
	if r.Mounted("a") {
		t.Fatalf("expected oldest rendering evicted")
	}
}

func TestMountReusesLiveRendering(t *testing.T) {
	t.Parallel()

	var calls int
	r := NewRenderer(3, countingRender(&calls))

	r.Mount("a")
	r.Mount("a")

	if calls != 1 {
		t.Fatalf("expected single render for repeated mount, got %d", calls)
	}
}

func TestCapacityClampedToThree(t *testing.T) {
	t.Parallel()

	var calls int
	r := NewRenderer(10, countingRender(&calls))

	for _, n := range []string{"a", "b", "c", "d"} {
		r.Mount(n)
	}
	if r.Live() != 3 {
		t.Fatalf("expected hard cap of 3, got %d", r.Live())
	}
}

func TestSyncSwapsLiveSetAndReportsEvictions(t *testing.T) {
	t.Parallel()

	var calls int
	r := NewRenderer(3, countingRender(&calls))

	r.Sync([]string{"a", "b"})
	evicted := r.Sync([]string{"b", "c"})

	if len(evicted) != 1 || evicted[0] != "a" {
		t.Fatalf("expected a evicted, got %v", evicted)
	}
	if !r.Mounted("b") || !r.Mounted("c") || r.Mounted("a") {
		t.Fatalf("unexpected live set after sync")
	}
}

func TestWantedForModes(t *testing.T) {
	t.Parallel()

	s := NewViewState()
	s.ToggleCompare("a")
	s.ToggleCompare("b")

	if got := WantedFor(s, "hovered.html"); len(got) != 1 || got[0] != "hovered.html" {
		t.Fatalf("gallery should render only the hovered design, got %v", got)
	}

	s.EnterCompare()
	if got := WantedFor(s, "hovered.html"); len(got) != 2 || got[0] != "a" {
		t.Fatalf("compare should render the compare set, got %v", got)
	}

	s.EnterStudio("focus.html")
	if got := WantedFor(s, "hovered.html"); len(got) != 1 || got[0] != "focus.html" {
		t.Fatalf("studio should render its focus, got %v", got)
	}
}
