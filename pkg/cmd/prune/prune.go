package prune

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/state"
)

func NewCmdPrune(s *state.State) *cobra.Command {
	var (
		days  int
		purge bool
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Archive stale designs, optionally purging the archive.",
		Long: heredoc.Doc(`
			Archives every design whose metadata has not been touched in the
			given number of days. Already archived and exported designs are
			left alone.

			With --purge, archived designs and their records are removed
			permanently instead.

			Examples:
			  atelier prune --days 30
			  atelier prune --purge
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if purge {
				names, err := s.Store.DeleteAllArchived()
				if err != nil {
					return err
				}
				for _, name := range names {
					if err := s.Handler.Delete(name); err != nil {
						return err
					}
				}
				// Archived files without records are purged too.
				leftover, err := s.Handler.ListArchived()
				if err != nil {
					return err
				}
				for _, name := range leftover {
					if err := s.Handler.Delete(name); err != nil {
						return err
					}
					names = append(names, name)
				}
				cmd.Printf("Purged %d archived design(s)\n", len(names))
				return nil
			}

			names, err := s.Store.ArchiveOlderThan(days)
			if err != nil {
				return err
			}
			for _, name := range names {
				if s.Handler.Exists(name) {
					if err := s.Handler.Archive(name); err != nil {
						return err
					}
				}
			}
			cmd.Printf("Archived %d stale design(s)\n", len(names))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Age in days before a design counts as stale")
	cmd.Flags().BoolVar(&purge, "purge", false, "Permanently remove archived designs and records")
	return cmd
}
