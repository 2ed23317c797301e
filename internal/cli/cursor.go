package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrewgazelka/tap/internal/wire"
)

func newCursorCmd() *cobra.Command {
	var session string
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Print a session's cursor position",
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

			resp, err := roundTrip(conn, wire.Request{Type: wire.ReqGetCursor})
			if err != nil {
				return err
			}
			fmt.Printf("%d,%d\n", resp.Row, resp.Col)
			return nil
		},
	}
	cmd.Flags().StringVar(&session, "session", "", "Session id (defaults to the latest)")
	return cmd
}
