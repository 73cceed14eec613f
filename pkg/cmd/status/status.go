package status

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/metadata"
	"github.com/atelierhq/atelier/internal/state"
)

func NewCmdStatus(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [design] [status]",
		Short: "Show or set a design's lifecycle status.",
		Long: heredoc.Doc(`
			With one argument, prints the design's current status. With two,
			moves the design to the given status: draft, review, approved,
			archived, or exported.

			Setting archived also moves the file into the archive directory;
			the status and the file location always change together.

			Examples:
			  atelier status hero.html
			  atelier status hero.html approved
		`),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if len(args) == 1 {
				rec, err := s.Store.Get(name)
				if err != nil {
					return err
				}
				cmd.Printf("%s: %s (updated %s)\n", name, rec.Status, rec.UpdatedAt.Format("2006-01-02 15:04"))
				return nil
			}

			status, err := metadata.ParseStatus(args[1])
			if err != nil {
				return err
			}
			if !s.Handler.Exists(name) && !s.Handler.ExistsArchived(name) {
				return fmt.Errorf("design %s not found", name)
			}

			// Keep status and file location coupled.
			switch {
			case status == metadata.StatusArchived && s.Handler.Exists(name):
				if err := s.Handler.Archive(name); err != nil {
					return err
				}
			case status != metadata.StatusArchived && s.Handler.ExistsArchived(name) && !s.Handler.Exists(name):
				if err := s.Handler.Unarchive(name); err != nil {
					return err
				}
			}

			if err := s.Store.SetStatus(name, status); err != nil {
				return err
			}
			cmd.Printf("%s is now %s\n", name, status)
			return nil
		},
	}

	return cmd
}
