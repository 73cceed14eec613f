package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atelierhq/atelier/internal/handler"
	"github.com/atelierhq/atelier/internal/metadata"
)

func newTestBuilder(t *testing.T) (*Builder, string, *metadata.Store) {
	t.Helper()

	designs := t.TempDir()
	archive := filepath.Join(designs, "archive")
	h := handler.NewFileHandler(designs, archive, ".html")
	store := metadata.NewStore(filepath.Join(designs, ".atelier", "designs.json"))
	return NewBuilder(h, store), designs, store
}

func TestBuildJoinsMetadata(t *testing.T) {
	t.Parallel()

	b, designs, store := newTestBuilder(t)
	if err := os.WriteFile(filepath.Join(designs, "login_1.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}

	err := store.Update("login_1.html", func(rec *metadata.Record) {
		rec.Status = metadata.StatusApproved
		rec.ParentDesign = "login.html"
		rec.AddTags("auth")
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	list, err := b.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 design, got %d", len(list))
	}

	d := list[0]
	if d.Status != metadata.StatusApproved {
		t.Fatalf("expected approved, got %q", d.Status)
	}
	if d.Parent != "login.html" {
		t.Fatalf("expected lineage pointer, got %q", d.Parent)
	}
	if len(d.Tags) != 1 || d.Tags[0] != "auth" {
		t.Fatalf("expected tags [auth], got %v", d.Tags)
	}
}

func TestBuildDefaultsUntrackedToDraft(t *testing.T) {
	t.Parallel()

	b, designs, _ := newTestBuilder(t)
	if err := os.WriteFile(filepath.Join(designs, "new.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}

	list, err := b.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 design, got %d", len(list))
	}
	if list[0].Status != metadata.StatusDraft {
		t.Fatalf("expected draft default, got %q", list[0].Status)
	}
}

func TestBuildOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	b, designs, _ := newTestBuilder(t)

	oldPath := filepath.Join(designs, "old.html")
	newPath := filepath.Join(designs, "new.html")
	for _, p := range []string{oldPath, newPath} {
		if err := os.WriteFile(p, []byte("<html></html>"), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}

	stale := time.Now().Add(-time.Hour)
	if err := os.Chtimes(oldPath, stale, stale); err != nil {
		t.Fatalf("failed to age old.html: %v", err)
	}

	list, err := b.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 designs, got %d", len(list))
	}
	if list[0].Name != "new.html" || list[1].Name != "old.html" {
		t.Fatalf("expected newest-first order, got %s then %s", list[0].Name, list[1].Name)
	}
}

func TestBuildMirrorsDiskExactly(t *testing.T) {
	t.Parallel()

	b, designs, store := newTestBuilder(t)

	if err := os.WriteFile(filepath.Join(designs, "kept.html"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}
	// Record for a file that no longer exists must not invent an entry.
	if err := store.SetStatus("ghost.html", metadata.StatusApproved); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}

	list, err := b.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(list) != 1 || list[0].Name != "kept.html" {
		t.Fatalf("expected catalog to mirror disk, got %v", list)
	}
}

func TestBuildIncludesArchivedDesigns(t *testing.T) {
	t.Parallel()

	b, designs, store := newTestBuilder(t)
	archive := filepath.Join(designs, "archive")
	if err := os.MkdirAll(archive, 0o755); err != nil {
		t.Fatalf("failed to create archive dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(archive, "retired.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("failed to write archived design: %v", err)
	}
	if err := store.SetStatus("retired.html", metadata.StatusArchived); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}

	list, err := b.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 design, got %d", len(list))
	}
	if !list[0].Archived {
		t.Fatalf("expected archived location flag")
	}
	if list[0].Status != metadata.StatusArchived {
		t.Fatalf("expected archived status, got %q", list[0].Status)
	}
}

func TestExportedDisplaysAsArchivedButKeepsValue(t *testing.T) {
	t.Parallel()

	b, designs, store := newTestBuilder(t)
	if err := os.WriteFile(filepath.Join(designs, "shipped.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}
	if err := store.SetStatus("shipped.html", metadata.StatusExported); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}

	list, err := b.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if list[0].Status != metadata.StatusExported {
		t.Fatalf("persisted value must stay exported, got %q", list[0].Status)
	}
	if list[0].DisplayStatus != metadata.StatusArchived {
		t.Fatalf("expected archived display bucket, got %q", list[0].DisplayStatus)
	}

	rec, err := store.Get("shipped.html")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Status != metadata.StatusExported {
		t.Fatalf("catalog build must not rewrite the store, got %q", rec.Status)
	}
}

func TestBuildInlinesRelativeStylesheet(t *testing.T) {
	t.Parallel()

	b, designs, _ := newTestBuilder(t)

	css := "body { height: 100dvh; }"
	if err := os.WriteFile(filepath.Join(designs, "theme.css"), []byte(css), 0o644); err != nil {
		t.Fatalf("failed to write stylesheet: %v", err)
	}
	body := `<html><head><link rel="stylesheet" href="theme.css"></head><body></body></html>`
	if err := os.WriteFile(filepath.Join(designs, "page.html"), []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}

	list, err := b.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	got := list[0].Body
	if strings.Contains(got, "<link") {
		t.Fatalf("expected stylesheet link to be inlined, body: %s", got)
	}
	if !strings.Contains(got, "100vh") {
		t.Fatalf("expected compat rewrite of 100dvh, body: %s", got)
	}
	if strings.Contains(got, "100dvh") {
		t.Fatalf("expected 100dvh to be rewritten, body: %s", got)
	}
}
