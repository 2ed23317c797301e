package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrewgazelka/tap/internal/wire"
)

func newInjectCmd() *cobra.Command {
	var session string
	cmd := &cobra.Command{
		Use:   "inject <text>",
		Short: "Write text into a session's PTY",
		Args:  cobra.MinimumNArgs(1),
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

			text := strings.Join(args, " ")
			_, err = roundTrip(conn, wire.Request{Type: wire.ReqInject, Data: []byte(text)})
			return err
		},
	}
	cmd.Flags().StringVar(&session, "session", "", "Session id (defaults to the latest)")
	return cmd
}
