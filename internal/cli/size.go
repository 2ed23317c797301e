package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrewgazelka/tap/internal/wire"
)

func newSizeCmd() *cobra.Command {
	var session string
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Print a session's PTY size",
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

			resp, err := roundTrip(conn, wire.Request{Type: wire.ReqGetSize})
			if err != nil {
				return err
			}
			fmt.Printf("%dx%d\n", resp.Cols, resp.Rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&session, "session", "", "Session id (defaults to the latest)")
	return cmd
}
