package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// substitution is one entry in the compatibility rewrite table. The
// presentation surface renders documents in a constrained engine, so a few
// modern CSS constructs are rewritten to safe equivalents. Extend the
// table rather than special-casing call sites.
type substitution struct {
	old string
	new string
}

var compatSubstitutions = []substitution{
	// Dynamic viewport units are not understood by older embedded engines.
	{"100dvh", "100vh"},
	{"100svh", "100vh"},
	{"100lvh", "100vh"},
	{"100dvw", "100vw"},
	// text-wrap shorthands render as literal garbage in some engines.
	{"text-wrap: balance;", ""},
	{"text-wrap:balance;", ""},
}

var (
	stylesheetLink = regexp.MustCompile(`(?i)<link\b[^>]*rel\s*=\s*["']stylesheet["'][^>]*>`)
	hrefAttr       = regexp.MustCompile(`(?i)href\s*=\s*["']([^"']+)["']`)
)

// ApplyCompat runs the substitution table over a document body.
func ApplyCompat(body string) string {
	for _, sub := range compatSubstitutions {
		body = strings.ReplaceAll(body, sub.old, sub.new)
	}
	return body
}

// InlineStylesheets rewrites relative stylesheet links into embedded
// <style> blocks so a document is self-contained for the presentation
// surface, which cannot resolve relative references. External (http/https)
// links are left alone; a reference whose target is missing is skipped
// rather than failing the document.
func InlineStylesheets(body, baseDir string) string {
	return stylesheetLink.ReplaceAllStringFunc(body, func(tag string) string {
		href := hrefAttr.FindStringSubmatch(tag)
		if href == nil {
			return tag
		}

		target := strings.TrimSpace(href[1])
		if target == "" || isExternalRef(target) {
			return tag
		}

		css, err := os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(target)))
		if err != nil {
			// Broken reference: keep the tag, never fail the catalog.
			return tag
		}

		return fmt.Sprintf("<style>\n%s\n</style>", ApplyCompat(string(css)))
	})
}

func isExternalRef(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "data:")
}
