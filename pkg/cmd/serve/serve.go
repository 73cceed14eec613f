package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/atelierhq/atelier/internal/state"
)

func NewCmdServe(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the designs over loopback HTTP.",
		Long: heredoc.Doc(`
			Starts the local preview server. Designs are available under
			/designs/, archived ones under /archive/, and the JSON catalog at
			/api/designs. The listener binds to 127.0.0.1 only.

			Example:
			  atelier serve
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Printf("Serving %s on http://127.0.0.1:%d (ctrl+c to stop)\n", s.Designs, s.Workspace.ServerPort)

			errCh := make(chan error, 1)
			go func() {
				errCh <- s.Server.Start()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-stop:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return s.Server.Shutdown(ctx)
		},
	}

	return cmd
}
