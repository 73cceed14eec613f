package delete

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/state"
)

func NewCmdDelete(s *state.State) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete [design]",
		Aliases: []string{"rm"},
		Short:   "Delete a design permanently.",
		Long: heredoc.Doc(`
			Removes a design file and its metadata record. This is
			irreversible, so the command asks for confirmation unless --force
			is given.

			Example:
			  atelier delete hero.html
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !s.Handler.Exists(name) && !s.Handler.ExistsArchived(name) {
				return fmt.Errorf("design %s not found", name)
			}

			if !force {
				input := confirmation.New(
					fmt.Sprintf("Delete %s permanently? This removes the file and its metadata.", name),
					confirmation.No,
				)
				confirmed, err := input.RunPrompt()
				if err != nil {
					return err
				}
				if !confirmed {
					cmd.Println("Aborted.")
					return nil
				}
			}

			if err := s.Handler.Delete(name); err != nil {
				return err
			}
			if err := s.Store.Delete(name); err != nil {
				return err
			}
			cmd.Printf("Deleted %s\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	return cmd
}
