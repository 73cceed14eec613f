package root

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atelierhq/atelier/internal/state"
	"github.com/atelierhq/atelier/pkg/cmd/archive"
	deletecmd "github.com/atelierhq/atelier/pkg/cmd/delete"
	"github.com/atelierhq/atelier/pkg/cmd/export"
	"github.com/atelierhq/atelier/pkg/cmd/gallery"
	"github.com/atelierhq/atelier/pkg/cmd/list"
	"github.com/atelierhq/atelier/pkg/cmd/open"
	"github.com/atelierhq/atelier/pkg/cmd/prune"
	"github.com/atelierhq/atelier/pkg/cmd/serve"
	"github.com/atelierhq/atelier/pkg/cmd/status"
	"github.com/atelierhq/atelier/pkg/cmd/tags"
	"github.com/atelierhq/atelier/pkg/cmd/unarchive"
	"github.com/atelierhq/atelier/pkg/cmd/workspace"
)

var designsDir string

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "atelier",
		Aliases: []string{"atl"},
		Short:   "Manage the lifecycle of HTML design mockups.",
		Long: `Atelier keeps a directory of self-contained HTML design mockups under
  control: statuses, tags, lineage, archiving, exports, and an interactive
  gallery that stays in sync with the filesystem.

  atelier                open the gallery
  atelier list           print the catalog
  atelier status x.html approved
  `,
		RunE: gallery.NewCmdGallery(s).RunE,
	}

	cmd.PersistentFlags().
		StringVarP(
			&designsDir,
			"dir",
			"d",
			"",
			"Designs directory override for this command.",
		)
	viper.BindPFlag("designsdir", cmd.PersistentFlags().Lookup("dir"))

	cmd.AddCommand(
		gallery.NewCmdGallery(s),
		list.NewCmdList(s),
		status.NewCmdStatus(s),
		tags.NewCmdTags(s),
		archive.NewCmdArchive(s),
		unarchive.NewCmdUnarchive(s),
		deletecmd.NewCmdDelete(s),
		export.NewCmdExport(s),
		open.NewCmdOpen(s),
		prune.NewCmdPrune(s),
		serve.NewCmdServe(s),
		workspace.NewCmdWorkspace(s),
	)

	return cmd, nil
}
