package utils

import (
	"strings"
	"testing"
)

func TestValidateInput(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"empty", "", 0, false},
		{"single tag", "auth", 1, false},
		{"multiple tags", "auth mobile v2", 3, false},
		{"hyphens and underscores", "sign-up hero_v2", 2, false},
		{"rejects punctuation", "nav bar!", 0, true},
		{"rejects spaces only in tag", "a,b", 0, true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ValidateInput(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("expected %d tags, got %v", tc.want, got)
			}
		})
	}
}

func TestRenderMarkdownNotesEmptyInput(t *testing.T) {
	t.Parallel()

	if got := RenderMarkdownNotes("   ", "dracula"); got != "" {
		t.Fatalf("expected empty render for blank notes, got %q", got)
	}
}

func TestRenderMarkdownNotesKeepsContent(t *testing.T) {
	t.Parallel()

	got := RenderMarkdownNotes("client wants **bolder** header", "dracula")
	if !strings.Contains(got, "bolder") {
		t.Fatalf("expected note text to survive rendering, got %q", got)
	}
}
