package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atelierhq/atelier/internal/metadata"
)

const testWindow = 50 * time.Millisecond

func newTestMonitor(t *testing.T, dir string) *Monitor {
	t.Helper()

	m, err := NewMonitor(dir, ".html", testWindow)
	if err != nil {
		t.Fatalf("NewMonitor returned error: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func waitForEvent(t *testing.T, m *Monitor) Event {
	t.Helper()

	select {
	case event := <-m.Events():
		return event
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}

func expectNoEvent(t *testing.T, m *Monitor) {
	t.Helper()

	select {
	case event := <-m.Events():
		t.Fatalf("expected no event, got %s %s", event.Op, event.Name)
	case <-time.After(5 * testWindow):
	}
}

func TestCreateFiresSingleEvent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := newTestMonitor(t, dir)

	path := filepath.Join(dir, "login.html")
	if err := os.WriteFile(path, []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}
	// A single save often produces several raw events; nudge that case.
	if err := os.WriteFile(path, []byte("<html>v2</html>"), 0o644); err != nil {
		t.Fatalf("failed to rewrite design: %v", err)
	}

	event := waitForEvent(t, m)
	if event.Name != "login.html" || event.Op != Created {
		t.Fatalf("expected created login.html, got %s %s", event.Op, event.Name)
	}

	expectNoEvent(t, m)
}

func TestModifyAfterReportFiresModified(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "hero.html")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("failed to seed design: %v", err)
	}

	m := newTestMonitor(t, dir)

	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("failed to modify design: %v", err)
	}

	event := waitForEvent(t, m)
	if event.Name != "hero.html" || event.Op != Modified {
		t.Fatalf("expected modified hero.html, got %s %s", event.Op, event.Name)
	}
}

func TestDeleteOfKnownFileFiresDeleted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "old.html")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to seed design: %v", err)
	}

	m := newTestMonitor(t, dir)

	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove design: %v", err)
	}

	event := waitForEvent(t, m)
	if event.Name != "old.html" || event.Op != Deleted {
		t.Fatalf("expected deleted old.html, got %s %s", event.Op, event.Name)
	}
}

func TestCreateThenDeleteInsideWindowIsSilent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := newTestMonitor(t, dir)

	path := filepath.Join(dir, "flash.html")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove design: %v", err)
	}

	// Net state (absent) equals the last report (never reported): silence.
	expectNoEvent(t, m)
}

func TestDeleteThenRecreateInsideWindowFiresModified(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "churn.html")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("failed to seed design: %v", err)
	}

	m := newTestMonitor(t, dir)

	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove design: %v", err)
	}
	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("failed to recreate design: %v", err)
	}

	event := waitForEvent(t, m)
	if event.Name != "churn.html" || event.Op != Modified {
		t.Fatalf("expected modified churn.html, got %s %s", event.Op, event.Name)
	}
}

func TestIgnoresForeignExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m := newTestMonitor(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	expectNoEvent(t, m)
}

func TestReconcileSeedsUntrackedDesigns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.html", "b.html"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to seed %s: %v", name, err)
		}
	}

	store := metadata.NewStore(filepath.Join(dir, ".atelier", "designs.json"))
	if _, err := store.ApplyDefault("a.html"); err != nil {
		t.Fatalf("ApplyDefault returned error: %v", err)
	}
	// Orphaned record: file gone but status must survive (soft orphan).
	if err := store.SetStatus("moved.html", metadata.StatusApproved); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}

	m := newTestMonitor(t, dir)

	seeded, err := m.Reconcile(store)
	if err != nil {
		t.Fatalf("Reconcile returned error: %v", err)
	}
	if seeded != 1 {
		t.Fatalf("expected exactly b.html to be seeded, got %d", seeded)
	}

	if _, err := store.Get("b.html"); err != nil {
		t.Fatalf("expected b.html record after reconcile: %v", err)
	}
	rec, err := store.Get("moved.html")
	if err != nil {
		t.Fatalf("expected orphaned record to survive: %v", err)
	}
	if rec.Status != metadata.StatusApproved {
		t.Fatalf("expected orphaned status preserved, got %q", rec.Status)
	}
}
