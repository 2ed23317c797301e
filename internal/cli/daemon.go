package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrewgazelka/tap/internal/host"
	"github.com/andrewgazelka/tap/internal/socketserver"
	"github.com/andrewgazelka/tap/internal/tapconfig"
)

func newDaemonCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:    "_daemon --name=<name> -- <command> [args...]",
		Short:  "Run a detached session host (internal)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			cfg, err := tapconfig.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			h, err := host.Start(host.StartOpts{
				SessionID: name,
				Command:   args,
				Config:    cfg,
				Attached:  false,
			})
			if err != nil {
				return err
			}

			go socketserver.Serve(h.Listener(), h)
			h.RunDetached()
			h.Teardown()
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Session id")
	return cmd
}
