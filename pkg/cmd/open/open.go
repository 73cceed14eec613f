package open

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/bridge"
	"github.com/atelierhq/atelier/internal/state"
)

func NewCmdOpen(s *state.State) *cobra.Command {
	var useServer bool

	cmd := &cobra.Command{
		Use:     "open [query]",
		Aliases: []string{"o"},
		Short:   "Open a design in the browser.",
		Long: heredoc.Doc(`
			Opens a design in the default browser. With an argument the first
			matching design opens directly; without one, a fuzzy finder over
			the workspace designs picks it.

			With --server the design is opened through the local preview server
			instead of as a file path, so relative assets resolve.

			Examples:
			  atelier open
			  atelier open hero
			  atelier open hero --server
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := s.Handler.ListDesigns()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				return fmt.Errorf("no designs in %s", s.Designs)
			}

			name, err := pick(names, args)
			if err != nil {
				return err
			}

			target := s.Handler.DesignPath(name)
			if useServer {
				target = s.Server.DesignURL(name, false)
			}
			return bridge.OpenInBrowser(target)
		},
	}

	cmd.Flags().BoolVar(&useServer, "server", false, "Open through the local preview server")
	return cmd
}

func pick(names []string, args []string) (string, error) {
	if len(args) == 1 {
		query := strings.ToLower(args[0])
		for _, n := range names {
			if strings.Contains(strings.ToLower(n), query) {
				return n, nil
			}
		}
		return "", fmt.Errorf("no design matches %q", args[0])
	}

	idx, err := fuzzyfinder.Find(names, func(i int) string {
		return names[i]
	}, fuzzyfinder.WithHeader("Select design to open."))
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return "", fmt.Errorf("no design selected")
		}
		return "", err
	}
	return names[idx], nil
}
