package list

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/catalog"
	"github.com/atelierhq/atelier/internal/metadata"
	"github.com/atelierhq/atelier/internal/state"
)

func NewCmdList(s *state.State) *cobra.Command {
	var (
		statusFilter string
		tagFilter    string
		showArchived bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List designs and their lifecycle state.",
		Long: heredoc.Doc(`
			Prints the design catalog: name, status, viewport, lineage, and tags.
			Archived designs are hidden unless --archived is given.

			Examples:
			  atelier list
			  atelier list --status approved
			  atelier list --tag auth --archived
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			designs, err := s.Builder.Build()
			if err != nil {
				return err
			}

			var status metadata.Status
			if statusFilter != "" {
				status, err = metadata.ParseStatus(statusFilter)
				if err != nil {
					return err
				}
			}

			shown := 0
			for _, d := range designs {
				if !matches(d, status, tagFilter, showArchived) {
					continue
				}
				printDesign(cmd, d)
				shown++
			}
			if shown == 0 {
				cmd.Println("No designs found.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show designs with this status")
	cmd.Flags().StringVar(&tagFilter, "tag", "", "Only show designs carrying this tag")
	cmd.Flags().BoolVar(&showArchived, "archived", false, "Include archived designs")

	return cmd
}

func matches(d catalog.Design, status metadata.Status, tag string, showArchived bool) bool {
	if d.Archived && !showArchived {
		return false
	}
	if status != "" && d.Status != status && d.DisplayStatus != status {
		return false
	}
	if tag != "" {
		hit := false
		for _, t := range d.Tags {
			if strings.EqualFold(t, tag) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func printDesign(cmd *cobra.Command, d catalog.Design) {
	line := fmt.Sprintf("%-40s %-10s %-8s", d.Name, d.DisplayStatus, d.Viewport)
	if d.Parent != "" {
		line += "  from " + d.Parent
	}
	if len(d.Tags) > 0 {
		line += "  [" + strings.Join(d.Tags, ", ") + "]"
	}
	if d.Archived {
		line += "  (archived)"
	}
	cmd.Println(line)
}
