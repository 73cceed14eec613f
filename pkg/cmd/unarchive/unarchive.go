package unarchive

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/metadata"
	"github.com/atelierhq/atelier/internal/state"
)

func NewCmdUnarchive(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "unarchive [design]",
		Aliases: []string{"restore"},
		Short:   "Restore an archived design.",
		Long: heredoc.Doc(`
			Moves a design back from the archive directory into the working set
			and resets its status to draft.

			Example:
			  atelier unarchive hero.html
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !s.Handler.ExistsArchived(name) {
				return fmt.Errorf("no archived design named %s", name)
			}
			if err := s.Handler.Unarchive(name); err != nil {
				return err
			}
			if err := s.Store.SetStatus(name, metadata.StatusDraft); err != nil {
				return err
			}
			cmd.Printf("Restored %s as draft\n", name)
			return nil
		},
	}

	return cmd
}
