package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// ValidateInput splits space-separated tags and rejects anything outside
// alphanumerics, hyphens, and underscores.
func ValidateInput(input string) ([]string, error) {
	if input == "" {
		return []string{}, nil
	}

	items := strings.Fields(input)
	for _, item := range items {
		if !isValidInput(item) {
			return nil, fmt.Errorf(
				"invalid input '%s': Input must only contain alphanumeric characters, hyphens, and underscores",
				item,
			)
		}
	}
	return items, nil
}

func isValidInput(input string) bool {
	return regexp.MustCompile(`^[a-zA-Z0-9-_]+$`).MatchString(input)
}

// RenderMarkdownNotes renders design notes for terminal display using
// the configured glamour theme.
func RenderMarkdownNotes(notes, theme string) string {
	if strings.TrimSpace(notes) == "" {
		return ""
	}
	if theme == "" {
		theme = "dracula"
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(100),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	rendered, err := r.Render(notes)
	if err != nil {
		return notes
	}
	return rendered
}
