package gallery

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/state"
	"github.com/atelierhq/atelier/internal/tui/designs"
)

func NewCmdGallery(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gallery",
		Aliases: []string{"g", "tui"},
		Short:   "Browse the design gallery.",
		Long: heredoc.Doc(`
			Opens the interactive gallery over the workspace designs.

			Modes:
			  1  gallery  grid of all designs, filter and sort
			  2  compare  up to three designs side by side (space toggles membership)
			  3  studio   single design focus

			The gallery stays in sync with the designs directory: files added,
			edited, or removed outside the app show up without a restart.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(s)
		},
	}

	return cmd
}

func Run(s *state.State) error {
	ws := s.Workspace

	s.StartHost()

	model := designs.NewModel(s.Bridge, ws.RendererCap, ws.SessionPath(), ws.PreviewTheme)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("gallery exited with error: %w", err)
	}
	return nil
}
