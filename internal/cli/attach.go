package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/andrewgazelka/tap/internal/wire"
)

func newAttachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach [session]",
		Short: "Attach the local terminal to a running session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			s, err := resolveSession(id)
			if err != nil {
				return err
			}
			conn, err := dial(s)
			if err != nil {
				return err
			}
			defer conn.Close()

			cols, rows, err := term.GetSize(int(os.Stdin.Fd()))
			if err != nil {
				cols, rows = 80, 24
			}

			if err := wire.SendRequest(conn, wire.Request{Type: wire.ReqAttach, Rows: rows, Cols: cols}); err != nil {
				return fmt.Errorf("send attach: %w", err)
			}
			r := bufio.NewReader(conn)
			resp, err := wire.ReadResponse(r)
			if err != nil {
				return fmt.Errorf("read attach response: %w", err)
			}
			if resp.Type == wire.RespError {
				return fmt.Errorf("%s", resp.Error)
			}

			fd := int(os.Stdin.Fd())
			restore, err := term.MakeRaw(fd)
			if err != nil {
				return fmt.Errorf("set raw mode: %w", err)
			}
			defer term.Restore(fd, restore)

			fmt.Print("\x1b[2J\x1b[H")
			fmt.Print(resp.Scrollback)

			done := make(chan int, 1)
			go readClientOutput(r, done)
			go writeClientInput(conn)
			code := <-done

			// os.Exit skips deferred calls; run them explicitly so the
			// terminal is left cooked before the process replaces itself
			// with the inner exit code.
			term.Restore(fd, restore)
			conn.Close()
			os.Exit(code)
			return nil
		},
	}
	return cmd
}

// readClientOutput reads Output responses from the attach channel and
// writes them to stdout until a SessionEnded response (which carries the
// child's exit code) or the connection closes (a plain detach, exit 0).
func readClientOutput(r *bufio.Reader, done chan<- int) {
	for {
		resp, err := wire.ReadResponse(r)
		if err != nil {
			done <- 0
			return
		}
		switch resp.Type {
		case wire.RespOutput:
			os.Stdout.Write(resp.Data)
		case wire.RespSessionEnded:
			done <- resp.ExitCode
			return
		}
	}
}

// writeClientInput reads raw stdin and forwards it as data frames. The host
// writes those bytes to the PTY as they are: no keybinds (detach,
// open-editor) are recognised in a reattached client's input.
func writeClientInput(conn io.Writer) {
	buf := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			if err := wire.WriteFrame(conn, wire.FrameTypeData, buf[:n]); err != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
}
