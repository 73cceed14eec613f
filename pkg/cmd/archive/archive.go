package archive

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/metadata"
	"github.com/atelierhq/atelier/internal/state"
)

func NewCmdArchive(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive [design]",
		Short: "Archive a design.",
		Long: heredoc.Doc(`
			Moves a design into the archive directory and marks its record
			archived. The two changes happen together; an archived record never
			points at a file still sitting in the designs directory.

			Example:
			  atelier archive hero.html
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !s.Handler.Exists(name) {
				return fmt.Errorf("design %s not found", name)
			}
			if err := s.Handler.Archive(name); err != nil {
				return err
			}
			if err := s.Store.SetStatus(name, metadata.StatusArchived); err != nil {
				return err
			}
			cmd.Printf("Archived %s\n", name)
			return nil
		},
	}

	return cmd
}
