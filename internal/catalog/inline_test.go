package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInlineStylesheetsSkipsMissingTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	body := `<head><link rel="stylesheet" href="missing.css"></head>`

	got := InlineStylesheets(body, dir)
	if got != body {
		t.Fatalf("expected broken reference to be left untouched, got %s", got)
	}
}

func TestInlineStylesheetsLeavesExternalLinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testCases := []string{
		`<link rel="stylesheet" href="https://cdn.example.com/a.css">`,
		`<link rel="stylesheet" href="http://cdn.example.com/a.css">`,
		`<link rel="stylesheet" href="//cdn.example.com/a.css">`,
	}

	for _, body := range testCases {
		if got := InlineStylesheets(body, dir); got != body {
			t.Fatalf("expected external link untouched, got %s", got)
		}
	}
}

func TestInlineStylesheetsEmbedsLocalCSS(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.css"), []byte("h1 { color: red; }"), 0o644); err != nil {
		t.Fatalf("failed to write css: %v", err)
	}

	body := `<link rel="STYLESHEET" href='app.css'>`
	got := InlineStylesheets(body, dir)
	if !strings.Contains(got, "<style>") || !strings.Contains(got, "color: red") {
		t.Fatalf("expected embedded style block, got %s", got)
	}
}

func TestApplyCompatSubstitutions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"dvh", "height: 100dvh;", "height: 100vh;"},
		{"svh", "min-height: 100svh;", "min-height: 100vh;"},
		{"text-wrap", "h1 { text-wrap: balance; }", "h1 {  }"},
		{"untouched", "height: 50vh;", "height: 50vh;"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := ApplyCompat(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
