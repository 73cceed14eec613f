package export

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/state"
)

func NewCmdExport(s *state.State) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "export [design]",
		Short: "Export a design to a directory or S3 bucket.",
		Long: heredoc.Doc(`
			Copies a design to the export target and marks the record exported
			with the destination recorded on it. Targets starting with s3://
			upload to the named bucket; anything else is a local directory.

			The workspace export directory is used when --target is omitted.

			Examples:
			  atelier export hero.html
			  atelier export hero.html --target ./handoff
			  atelier export hero.html --target s3://design-handoff/q3
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			dest := target
			if dest == "" {
				dest = s.Workspace.ExportDir
			}
			if dest == "" {
				return fmt.Errorf("no export target: pass --target or set exportdir in the workspace config")
			}

			location, err := s.Exporter.Export(cmd.Context(), name, dest)
			if err != nil {
				return err
			}
			cmd.Printf("Exported %s to %s\n", name, location)
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Export destination (directory or s3://bucket/prefix)")
	return cmd
}
