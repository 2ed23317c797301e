package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrewgazelka/tap/internal/wire"
)

func newSubscribeCmd() *cobra.Command {
	var session string
	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Stream a session's output until it ends",
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

			if err := wire.SendRequest(conn, wire.Request{Type: wire.ReqSubscribe}); err != nil {
				return fmt.Errorf("send subscribe: %w", err)
			}
			r := bufio.NewReader(conn)
			for {
				resp, err := wire.ReadResponse(r)
				if err != nil {
					return nil
				}
				switch resp.Type {
				case wire.RespSubscribed:
					continue
				case wire.RespOutput:
					os.Stdout.Write(resp.Data)
				case wire.RespSessionEnded:
					return nil
				case wire.RespError:
					return fmt.Errorf("%s", resp.Error)
				}
			}
		},
	}
	cmd.Flags().StringVar(&session, "session", "", "Session id (defaults to the latest)")
	return cmd
}
