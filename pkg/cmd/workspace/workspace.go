package workspace

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/config"
	"github.com/atelierhq/atelier/internal/state"
)

func NewCmdWorkspace(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage design workspaces.",
		Long: heredoc.Doc(`
			A workspace is one designs directory with its own archive, metadata
			table, and presentation settings. Subcommands list, add, and switch
			workspaces.
		`),
	}

	cmd.AddCommand(newCmdList(s), newCmdAdd(s), newCmdSwitch(s))
	return cmd
}

func newCmdList(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured workspaces.",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range s.Config.WorkspaceNames() {
				marker := "  "
				if name == s.Config.CurrentWorkspace {
					marker = "* "
				}
				cmd.Println(marker + name)
			}
			return nil
		},
	}
}

func newCmdAdd(s *state.State) *cobra.Command {
	var (
		designsDir  string
		makeCurrent bool
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a workspace.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := &config.Workspace{DesignsDir: designsDir}
			if err := s.Config.AddWorkspace(args[0], ws, makeCurrent); err != nil {
				return err
			}
			cmd.Printf("Added workspace %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&designsDir, "dir", "d", "", "Designs directory for the workspace")
	cmd.Flags().BoolVar(&makeCurrent, "current", false, "Switch to the new workspace")
	return cmd
}

func newCmdSwitch(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "switch [name]",
		Short: "Switch the active workspace.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.SwitchWorkspace(args[0]); err != nil {
				return err
			}
			cmd.Printf("Switched to workspace %s\n", args[0])
			return nil
		},
	}
}
