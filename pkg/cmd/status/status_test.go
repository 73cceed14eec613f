package status

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/atelierhq/atelier/internal/catalog"
	"github.com/atelierhq/atelier/internal/handler"
	"github.com/atelierhq/atelier/internal/metadata"
	"github.com/atelierhq/atelier/internal/state"
)

func newTestState(t *testing.T) (*state.State, string) {
	t.Helper()

	designs := t.TempDir()
	archive := filepath.Join(designs, "archive")
	h := handler.NewFileHandler(designs, archive, ".html")
	store := metadata.NewStore(filepath.Join(designs, ".atelier", "designs.json"))

	return &state.State{
		Handler: h,
		Store:   store,
		Builder: catalog.NewBuilder(h, store),
		Designs: designs,
	}, designs
}

func runStatus(t *testing.T, s *state.State, args ...string) string {
	t.Helper()

	cmd := NewCmdStatus(s)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	return out.String()
}

func TestSetStatusPersists(t *testing.T) {
	t.Parallel()

	s, designs := newTestState(t)
	if err := os.WriteFile(filepath.Join(designs, "hero.html"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}

	runStatus(t, s, "hero.html", "approved")

	rec, err := s.Store.Get("hero.html")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Status != metadata.StatusApproved {
		t.Fatalf("expected approved, got %q", rec.Status)
	}
}

func TestSetArchivedMovesFile(t *testing.T) {
	t.Parallel()

	s, designs := newTestState(t)
	if err := os.WriteFile(filepath.Join(designs, "hero.html"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}

	runStatus(t, s, "hero.html", "archived")

	if _, err := os.Stat(filepath.Join(designs, "hero.html")); !os.IsNotExist(err) {
		t.Fatalf("expected file moved out of designs dir")
	}
	if _, err := os.Stat(filepath.Join(designs, "archive", "hero.html")); err != nil {
		t.Fatalf("expected file in archive: %v", err)
	}
}

func TestStatusAwayFromArchivedRestoresFile(t *testing.T) {
	t.Parallel()

	s, designs := newTestState(t)
	if err := os.WriteFile(filepath.Join(designs, "hero.html"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}
	runStatus(t, s, "hero.html", "archived")

	runStatus(t, s, "hero.html", "review")

	if _, err := os.Stat(filepath.Join(designs, "hero.html")); err != nil {
		t.Fatalf("expected file restored: %v", err)
	}
	rec, err := s.Store.Get("hero.html")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Status != metadata.StatusReview {
		t.Fatalf("expected review, got %q", rec.Status)
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	t.Parallel()

	s, designs := newTestState(t)
	if err := os.WriteFile(filepath.Join(designs, "hero.html"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}

	cmd := NewCmdStatus(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"hero.html", "shipped"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
