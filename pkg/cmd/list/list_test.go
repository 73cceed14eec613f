package list

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
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

func TestListPrintsCatalog(t *testing.T) {
	t.Parallel()

	s, designs := newTestState(t)
	if err := os.WriteFile(filepath.Join(designs, "hero.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}
	if err := s.Store.SetStatus("hero.html", metadata.StatusApproved); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}

	cmd := NewCmdList(s)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(out.String(), "hero.html") || !strings.Contains(out.String(), "approved") {
		t.Fatalf("unexpected output: %s", out.String())
	}
}

func TestListHidesArchivedByDefault(t *testing.T) {
	t.Parallel()

	s, designs := newTestState(t)
	archiveDir := filepath.Join(designs, "archive")
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		t.Fatalf("failed to create archive dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(archiveDir, "old.html"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write archived design: %v", err)
	}

	cmd := NewCmdList(s)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if strings.Contains(out.String(), "old.html") {
		t.Fatalf("expected archived design hidden, got: %s", out.String())
	}

	cmd = NewCmdList(s)
	out.Reset()
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--archived"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(out.String(), "old.html") {
		t.Fatalf("expected archived design shown with --archived, got: %s", out.String())
	}
}

func TestListFiltersByStatus(t *testing.T) {
	t.Parallel()

	s, designs := newTestState(t)
	for _, n := range []string{"a.html", "b.html"} {
		if err := os.WriteFile(filepath.Join(designs, n), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write design: %v", err)
		}
	}
	if err := s.Store.SetStatus("a.html", metadata.StatusApproved); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}

	cmd := NewCmdList(s)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--status", "approved"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.Contains(out.String(), "a.html") || strings.Contains(out.String(), "b.html") {
		t.Fatalf("status filter failed: %s", out.String())
	}
}
