package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrewgazelka/tap/internal/wire"
)

func newScrollbackCmd() *cobra.Command {
	var session string
	var lines int

	cmd := &cobra.Command{
		Use:   "scrollback",
		Short: "Print a session's scrollback",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSession(session)
			if err != nil {
				return err
			}
			conn, err := dial(s)
			if err != nil {
				return err
			}
			defer conn.Close()

			req := wire.Request{Type: wire.ReqGetScrollback}
			if cmd.Flags().Changed("lines") {
				req.Lines = &lines
			}
			resp, err := roundTrip(conn, req)
			if err != nil {
				return err
			}
			fmt.Println(resp.Content)
			return nil
		},
	}
	cmd.Flags().StringVar(&session, "session", "", "Session id (defaults to the latest)")
	cmd.Flags().IntVar(&lines, "lines", 0, "Limit output to the last N lines")
	return cmd
}
