package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/atelierhq/atelier/internal/catalog"
	"github.com/atelierhq/atelier/internal/handler"
	"github.com/atelierhq/atelier/internal/metadata"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	designs := t.TempDir()
	archive := filepath.Join(designs, "archive")
	files := handler.NewFileHandler(designs, archive, ".html")
	store := metadata.NewStore(filepath.Join(designs, ".atelier", "designs.json"))
	builder := catalog.NewBuilder(files, store)
	return New(4777, designs, archive, builder), designs
}

func TestServesDesignFile(t *testing.T) {
	t.Parallel()

	s, designs := newTestServer(t)
	if err := os.WriteFile(filepath.Join(designs, "hero.html"), []byte("<html>hero</html>"), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/designs/hero.html", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "<html>hero</html>" {
		t.Fatalf("unexpected body: %s", got)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected permissive CORS header on preview responses")
	}
}

func TestListDesignsEndpoint(t *testing.T) {
	t.Parallel()

	s, designs := newTestServer(t)
	if err := os.WriteFile(filepath.Join(designs, "hero.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("failed to write design: %v", err)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/designs", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var list []catalog.Design
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode catalog: %v", err)
	}
	if len(list) != 1 || list[0].Name != "hero.html" {
		t.Fatalf("expected catalog with hero.html, got %v", list)
	}
}

func TestOptionsPreflightShortCircuits(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/designs", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
}

func TestDesignURL(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)

	if got := s.DesignURL("hero.html", false); got != "http://127.0.0.1:4777/designs/hero.html" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := s.DesignURL("hero.html", true); got != "http://127.0.0.1:4777/archive/hero.html" {
		t.Fatalf("unexpected archive url: %s", got)
	}
}
