package tags

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/metadata"
	"github.com/atelierhq/atelier/internal/state"
	"github.com/atelierhq/atelier/utils"
)

func NewCmdTags(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage design tags.",
		Long: heredoc.Doc(`
			Tags group related designs across status and viewport. Subcommands
			add tags to a design or list every tag in the workspace.
		`),
	}

	cmd.AddCommand(newCmdAdd(s), newCmdList(s))
	return cmd
}

func newCmdAdd(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "add [design] [tags]",
		Short: "Add tags to a design.",
		Long: heredoc.Doc(`
			Adds one or more space-separated tags to a design. Tags may contain
			letters, numbers, hyphens, and underscores.

			Example:
			  atelier tags add hero.html "landing q3-refresh"
		`),
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			tags, err := utils.ValidateInput(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			err = s.Store.Update(name, func(rec *metadata.Record) {
				rec.AddTags(tags...)
			})
			if err != nil {
				return err
			}
			cmd.Printf("Tagged %s with %s\n", name, strings.Join(tags, ", "))
			return nil
		},
	}
}

func newCmdList(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tags in the workspace.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags := s.Store.AllTags()
			if len(tags) == 0 {
				cmd.Println("No tags yet.")
				return nil
			}
			for _, tag := range tags {
				cmd.Println(tag)
			}
			return nil
		},
	}
}
